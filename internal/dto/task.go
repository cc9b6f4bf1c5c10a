package dto

// ── 任务模块 DTO ──

// CreateTaskRequest 新建任务请求
type CreateTaskRequest struct {
	Text     string  `json:"text"     binding:"required,max=500"`
	Priority string  `json:"priority" binding:"omitempty,oneof=High Medium Low"`
	Deadline *string `json:"deadline" binding:"omitempty"` // "2024-09-30"
}

// UpdateTaskRequest 更新任务请求
type UpdateTaskRequest struct {
	Text     *string `json:"text"     binding:"omitempty,max=500"`
	Priority *string `json:"priority" binding:"omitempty,oneof=High Medium Low"`
	Deadline *string `json:"deadline" binding:"omitempty"`
}

// TaskResponse 任务信息响应
type TaskResponse struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	Priority  string  `json:"priority"`
	Deadline  *string `json:"deadline,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

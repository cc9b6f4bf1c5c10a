package dto

// ── 日历模块 DTO ──

// CreateEventRequest 新建事件请求（事件弹窗）
// date 为用户点击的日历格；status/platform 缺省为 Idea / YouTube
type CreateEventRequest struct {
	Title    string `json:"title"    binding:"required"`
	Date     string `json:"date"     binding:"required"` // "2024-07-15"
	Status   string `json:"status"   binding:"omitempty"`
	Platform string `json:"platform" binding:"omitempty"`
}

// UpdateEventRequest 编辑事件请求（事件弹窗）
// id 与 date 不经此路径修改，故不在请求体中
type UpdateEventRequest struct {
	Title    string `json:"title"    binding:"required"`
	Status   string `json:"status"   binding:"required"`
	Platform string `json:"platform" binding:"required"`
}

// RescheduleEventRequest 拖拽改期请求
type RescheduleEventRequest struct {
	Date string `json:"date" binding:"required"` // 目标日期 "2024-08-01"
}

// ImportEventsRequest CSV 导入请求
type ImportEventsRequest struct {
	CSV string `json:"csv" binding:"required"` // CSV 文件全文
}

// ImportEventsResponse CSV 导入结果
type ImportEventsResponse struct {
	Imported int `json:"imported"` // 合并进日历的行数
	Skipped  int `json:"skipped"`  // 因校验失败被跳过的行数
	Total    int `json:"total"`    // 导入后日历事件总数
}

// EventResponse 事件信息响应
type EventResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Platform string `json:"platform"`
}

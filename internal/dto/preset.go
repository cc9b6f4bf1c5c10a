package dto

// ── 预设模块 DTO ──

// CreatePresetRequest 新建品牌预设请求
type CreatePresetRequest struct {
	Name    string `json:"name"    binding:"required,min=1,max=100"`
	Context string `json:"context" binding:"omitempty"`
}

// UpdatePresetRequest 更新品牌预设请求
type UpdatePresetRequest struct {
	Name    *string `json:"name"    binding:"omitempty,min=1,max=100"`
	Context *string `json:"context"`
}

// PresetResponse 预设信息响应
type PresetResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Context  string `json:"context"`
	IsActive bool   `json:"is_active"`
}

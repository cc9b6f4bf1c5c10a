package model

// Preset 品牌上下文预设 — 对应 presets
//
// 预设向 AI 提示词注入品牌背景；同一时刻只有一个预设处于激活状态。
// PresetID 使用可读 slug（如 "none"、"avada-commerce"），新建时由服务端生成 UUID。
type Preset struct {
	PresetID string `gorm:"type:varchar(64);primaryKey"     json:"id"`
	Name     string `gorm:"type:varchar(100);not null"      json:"name"`
	Context  string `gorm:"type:text;not null;default:''"   json:"context"`
	IsActive bool   `gorm:"not null;default:false"          json:"is_active"`
	BaseModel
}

func (Preset) TableName() string { return "presets" }

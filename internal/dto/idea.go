package dto

// ── 灵感模块 DTO ──

// GenerateIdeasRequest AI 生成灵感请求
type GenerateIdeasRequest struct {
	Topic    string `json:"topic"    binding:"required,min=1,max=200"`
	Platform string `json:"platform" binding:"omitempty"` // 缺省 YouTube
	Language string `json:"language" binding:"omitempty,oneof=en vi"`
}

// IdeaSuggestion 单条灵感
type IdeaSuggestion struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Hook         string   `json:"hook"`
	Keywords     []string `json:"keywords"`
	Monetization string   `json:"monetization"`
}

// GenerateIdeasResponse AI 生成灵感结果
// 每条灵感同时以 Idea 状态落入内容日历（日期为今天）
type GenerateIdeasResponse struct {
	Ideas          []IdeaSuggestion `json:"ideas"`
	TargetAudience string           `json:"target_audience"`
	Events         []EventResponse  `json:"events"` // 新插入的日历事件
	FromCache      bool             `json:"from_cache"`
}

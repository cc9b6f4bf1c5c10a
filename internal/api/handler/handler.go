package handler

import "creator-suite/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	Calendar *CalendarHandler
	Task     *TaskHandler
	Preset   *PresetHandler
	Idea     *IdeaHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		Calendar: NewCalendarHandler(svc.Calendar),
		Task:     NewTaskHandler(svc.Task),
		Preset:   NewPresetHandler(svc.Preset),
		Idea:     NewIdeaHandler(svc.Idea),
		Export:   NewExportHandler(svc.Export),
	}
}

package service

import (
	"go.uber.org/zap"

	"creator-suite/backend/config"
	"creator-suite/backend/internal/ai"
	"creator-suite/backend/internal/repository"
	"creator-suite/backend/internal/store"
	"creator-suite/backend/pkg/jwt"
	"creator-suite/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	Calendar CalendarService
	Task     TaskService
	Preset   PresetService
	Idea     IdeaService
	Export   ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	events *store.EventStore,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	aiClient *ai.Client,
	logger *zap.Logger,
) *Service {
	calendar := NewCalendarService(events, logger)
	presets := NewPresetService(repo, logger)

	return &Service{
		Auth:     NewAuthService(cfg, jwtMgr, rdb, logger),
		Calendar: calendar,
		Task:     NewTaskService(repo, logger),
		Preset:   presets,
		Idea:     NewIdeaService(&cfg.AI, aiClient, rdb, presets, calendar, logger),
		Export:   NewExportService(events, repo, logger),
	}
}

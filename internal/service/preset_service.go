package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"creator-suite/backend/internal/dto"
	"creator-suite/backend/internal/model"
	"creator-suite/backend/internal/repository"
)

// ── 预设模块业务错误 ──

var (
	ErrPresetNotFound  = errors.New("预设不存在")
	ErrPresetNameEmpty = errors.New("预设名称不能为空")
	ErrPresetReserved  = errors.New("内置预设不可修改或删除")
)

// defaultPresetID 内置「无预设」项：不注入任何品牌上下文，不可改不可删
const defaultPresetID = "none"

// PresetService 品牌预设业务接口
//
// 预设向 AI 提示词注入品牌背景；同一时刻只有一个预设处于激活状态，
// Activate 切换时先清除旧的激活位。
type PresetService interface {
	List(ctx context.Context) ([]dto.PresetResponse, error)
	Create(ctx context.Context, req *dto.CreatePresetRequest) (*dto.PresetResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdatePresetRequest) (*dto.PresetResponse, error)
	Delete(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) (*dto.PresetResponse, error)
	GetActiveContext(ctx context.Context) (string, error)
	EnsureDefaults(ctx context.Context) error
}

type presetService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPresetService 创建 PresetService 实例
func NewPresetService(repo *repository.Repository, logger *zap.Logger) PresetService {
	return &presetService{repo: repo, logger: logger}
}

func (s *presetService) List(ctx context.Context) ([]dto.PresetResponse, error) {
	presets, err := s.repo.Preset.List(ctx)
	if err != nil {
		s.logger.Error("查询预设列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PresetResponse, 0, len(presets))
	for _, p := range presets {
		result = append(result, toPresetResponse(&p))
	}
	return result, nil
}

func (s *presetService) Create(ctx context.Context, req *dto.CreatePresetRequest) (*dto.PresetResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrPresetNameEmpty
	}

	preset := &model.Preset{
		PresetID: uuid.New().String(),
		Name:     name,
		Context:  strings.TrimSpace(req.Context),
	}
	if err := s.repo.Preset.Create(ctx, preset); err != nil {
		s.logger.Error("创建预设失败", zap.Error(err))
		return nil, err
	}

	resp := toPresetResponse(preset)
	return &resp, nil
}

func (s *presetService) Update(ctx context.Context, id string, req *dto.UpdatePresetRequest) (*dto.PresetResponse, error) {
	if id == defaultPresetID {
		return nil, ErrPresetReserved
	}

	preset, err := s.getPreset(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrPresetNameEmpty
		}
		preset.Name = name
	}
	if req.Context != nil {
		preset.Context = strings.TrimSpace(*req.Context)
	}

	if err := s.repo.Preset.Update(ctx, preset); err != nil {
		s.logger.Error("更新预设失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toPresetResponse(preset)
	return &resp, nil
}

func (s *presetService) Delete(ctx context.Context, id string) error {
	if id == defaultPresetID {
		return ErrPresetReserved
	}

	preset, err := s.getPreset(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Preset.Delete(ctx, id); err != nil {
		s.logger.Error("删除预设失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 删除的是激活项时回退到内置预设
	if preset.IsActive {
		if _, err := s.Activate(ctx, defaultPresetID); err != nil {
			s.logger.Warn("回退默认预设失败", zap.Error(err))
		}
	}
	return nil
}

// Activate 切换激活预设：先清除旧激活位，再置位目标预设
func (s *presetService) Activate(ctx context.Context, id string) (*dto.PresetResponse, error) {
	preset, err := s.getPreset(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Preset.ClearActive(ctx); err != nil {
		s.logger.Error("清除激活预设失败", zap.Error(err))
		return nil, err
	}

	preset.IsActive = true
	if err := s.repo.Preset.Update(ctx, preset); err != nil {
		s.logger.Error("激活预设失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toPresetResponse(preset)
	return &resp, nil
}

// GetActiveContext 返回当前激活预设的品牌上下文；无激活项或激活项为内置预设时返回空串
func (s *presetService) GetActiveContext(ctx context.Context) (string, error) {
	presets, err := s.repo.Preset.List(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range presets {
		if p.IsActive {
			return p.Context, nil
		}
	}
	return "", nil
}

// EnsureDefaults 幂等播种内置预设；表为空时同时激活它。应用启动时调用
func (s *presetService) EnsureDefaults(ctx context.Context) error {
	count, err := s.repo.Preset.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	preset := &model.Preset{
		PresetID: defaultPresetID,
		Name:     "None",
		Context:  "",
		IsActive: true,
	}
	if err := s.repo.Preset.Create(ctx, preset); err != nil {
		return err
	}
	s.logger.Info("播种内置预设", zap.String("id", defaultPresetID))
	return nil
}

// ── 内部辅助方法 ──

func (s *presetService) getPreset(ctx context.Context, id string) (*model.Preset, error) {
	preset, err := s.repo.Preset.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPresetNotFound
		}
		s.logger.Error("查询预设失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return preset, nil
}

func toPresetResponse(p *model.Preset) dto.PresetResponse {
	return dto.PresetResponse{
		ID:       p.PresetID,
		Name:     p.Name,
		Context:  p.Context,
		IsActive: p.IsActive,
	}
}

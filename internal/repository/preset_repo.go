package repository

import (
	"context"

	"gorm.io/gorm"

	"creator-suite/backend/internal/model"
)

// PresetRepository 品牌预设数据访问接口
type PresetRepository interface {
	Create(ctx context.Context, preset *model.Preset) error
	GetByID(ctx context.Context, id string) (*model.Preset, error)
	List(ctx context.Context) ([]model.Preset, error)
	Update(ctx context.Context, preset *model.Preset) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	ClearActive(ctx context.Context) error
}

type presetRepo struct {
	db *gorm.DB
}

// NewPresetRepo 创建 PresetRepository 实例
func NewPresetRepo(db *gorm.DB) PresetRepository {
	return &presetRepo{db: db}
}

func (r *presetRepo) Create(ctx context.Context, preset *model.Preset) error {
	return r.db.WithContext(ctx).Create(preset).Error
}

func (r *presetRepo) GetByID(ctx context.Context, id string) (*model.Preset, error) {
	var preset model.Preset
	err := r.db.WithContext(ctx).
		Where("preset_id = ?", id).
		First(&preset).Error
	if err != nil {
		return nil, err
	}
	return &preset, nil
}

func (r *presetRepo) List(ctx context.Context) ([]model.Preset, error) {
	var presets []model.Preset
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&presets).Error
	return presets, err
}

func (r *presetRepo) Update(ctx context.Context, preset *model.Preset) error {
	return r.db.WithContext(ctx).Save(preset).Error
}

func (r *presetRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("preset_id = ?", id).
		Delete(&model.Preset{}).Error
}

func (r *presetRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Preset{}).
		Count(&count).Error
	return count, err
}

// ClearActive 将所有预设的 is_active 设为 false
func (r *presetRepo) ClearActive(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&model.Preset{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

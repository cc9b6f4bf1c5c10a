package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Task   TaskRepository
	Preset PresetRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Task:   NewTaskRepo(db),
		Preset: NewPresetRepo(db),
	}
}

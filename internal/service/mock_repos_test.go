package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"creator-suite/backend/internal/model"
)

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks map[string]*model.Task
	order []string
	seq   int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.TaskID == "" {
		m.seq++
		task.TaskID = fmt.Sprintf("task-%d", m.seq)
	}
	m.tasks[task.TaskID] = task
	m.order = append(m.order, task.TaskID)
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) List(_ context.Context) ([]model.Task, error) {
	var result []model.Task
	for _, id := range m.order {
		if t, ok := m.tasks[id]; ok {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string) error {
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepo) DeleteCompleted(_ context.Context) (int64, error) {
	var n int64
	for id, t := range m.tasks {
		if t.Completed {
			delete(m.tasks, id)
			n++
		}
	}
	return n, nil
}

// ── Mock PresetRepository ──

type mockPresetRepo struct {
	presets map[string]*model.Preset
	order   []string
}

func newMockPresetRepo() *mockPresetRepo {
	return &mockPresetRepo{presets: make(map[string]*model.Preset)}
}

func (m *mockPresetRepo) Create(_ context.Context, preset *model.Preset) error {
	m.presets[preset.PresetID] = preset
	m.order = append(m.order, preset.PresetID)
	return nil
}

func (m *mockPresetRepo) GetByID(_ context.Context, id string) (*model.Preset, error) {
	if p, ok := m.presets[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPresetRepo) List(_ context.Context) ([]model.Preset, error) {
	var result []model.Preset
	for _, id := range m.order {
		if p, ok := m.presets[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPresetRepo) Update(_ context.Context, preset *model.Preset) error {
	m.presets[preset.PresetID] = preset
	return nil
}

func (m *mockPresetRepo) Delete(_ context.Context, id string) error {
	delete(m.presets, id)
	return nil
}

func (m *mockPresetRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.presets)), nil
}

func (m *mockPresetRepo) ClearActive(_ context.Context) error {
	for _, p := range m.presets {
		p.IsActive = false
	}
	return nil
}

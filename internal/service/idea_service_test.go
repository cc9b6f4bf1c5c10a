package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"creator-suite/backend/config"
	"creator-suite/backend/internal/ai"
	"creator-suite/backend/internal/dto"
	"creator-suite/backend/internal/repository"
	"creator-suite/backend/internal/store"
)

// ── Mock IdeaGenerator / IdeaCache ──

type mockIdeaGenerator struct {
	result     *ai.IdeaResult
	err        error
	calls      int
	lastPrompt string
}

func (m *mockIdeaGenerator) GenerateIdeas(_ context.Context, prompt string) (*ai.IdeaResult, error) {
	m.calls++
	m.lastPrompt = prompt
	return m.result, m.err
}

type mockIdeaCache struct {
	store map[string]string
}

func newMockIdeaCache() *mockIdeaCache {
	return &mockIdeaCache{store: make(map[string]string)}
}

func (m *mockIdeaCache) GetIdeaCache(_ context.Context, key string) (string, error) {
	return m.store[key], nil
}

func (m *mockIdeaCache) SetIdeaCache(_ context.Context, key, payload string, _ time.Duration) error {
	m.store[key] = payload
	return nil
}

// ── 测试辅助 ──

func setupTestIdeaService(gen *mockIdeaGenerator) (IdeaService, *mockIdeaCache, *store.EventStore, PresetService) {
	logger := zap.NewNop()
	repo := &repository.Repository{
		Task:   newMockTaskRepo(),
		Preset: newMockPresetRepo(),
	}
	presets := NewPresetService(repo, logger)

	events := store.NewEventStore(nil)
	calendar := &calendarService{
		events: events,
		logger: logger,
		now:    func() time.Time { return time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC) },
	}

	cache := newMockIdeaCache()
	cfg := &config.AIConfig{IdeaCacheTTL: time.Hour}
	svc := NewIdeaService(cfg, gen, cache, presets, calendar, logger)
	return svc, cache, events, presets
}

func sampleIdeaResult() *ai.IdeaResult {
	return &ai.IdeaResult{
		Ideas: []ai.Idea{
			{Title: "Top 5 Budget Mics", Description: "d", Hook: "h", Keywords: []string{"mic"}, Monetization: "affiliate"},
			{Title: "Studio Tour", Description: "d", Hook: "h", Keywords: []string{"studio"}, Monetization: "sponsor"},
		},
		TargetAudience: "Aspiring creators",
	}
}

// ── Generate 测试 ──

func TestIdeaService_Generate_InsertsCalendarEvents(t *testing.T) {
	gen := &mockIdeaGenerator{result: sampleIdeaResult()}
	svc, _, events, _ := setupTestIdeaService(gen)

	result, err := svc.Generate(context.Background(), &dto.GenerateIdeasRequest{
		Topic:    "podcast gear",
		Platform: "TikTok",
	})
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}
	if len(result.Ideas) != 2 {
		t.Fatalf("期望 2 条灵感，实际 %d", len(result.Ideas))
	}
	if result.TargetAudience != "Aspiring creators" {
		t.Errorf("目标受众错误: %s", result.TargetAudience)
	}
	if result.FromCache {
		t.Error("首次生成不应命中缓存")
	}

	// 灵感应落入日历：Idea 状态、今天、指定平台
	if events.Len() != 2 {
		t.Fatalf("期望日历新增 2 个事件，实际 %d", events.Len())
	}
	if len(result.Events) != 2 {
		t.Fatalf("响应应带回新插入的事件，实际 %d", len(result.Events))
	}
	for _, e := range result.Events {
		if e.Status != "Idea" || e.Date != "2024-08-01" || e.Platform != "TikTok" {
			t.Errorf("灵感事件应为 Idea/今天/TikTok: %+v", e)
		}
	}
}

func TestIdeaService_Generate_CacheHitSkipsGenerator(t *testing.T) {
	gen := &mockIdeaGenerator{result: sampleIdeaResult()}
	svc, _, events, _ := setupTestIdeaService(gen)

	req := &dto.GenerateIdeasRequest{Topic: "podcast gear"}
	if _, err := svc.Generate(context.Background(), req); err != nil {
		t.Fatalf("首次生成应成功: %v", err)
	}

	result, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("二次生成应成功: %v", err)
	}
	if !result.FromCache {
		t.Error("相同请求应命中缓存")
	}
	if gen.calls != 1 {
		t.Errorf("命中缓存时不应再调用生成器，实际调用 %d 次", gen.calls)
	}
	// 命中缓存仍然落历
	if events.Len() != 4 {
		t.Errorf("两次生成应各落历一批，期望 4 个事件，实际 %d", events.Len())
	}
}

func TestIdeaService_Generate_BrandContextInPrompt(t *testing.T) {
	gen := &mockIdeaGenerator{result: sampleIdeaResult()}
	svc, _, _, presets := setupTestIdeaService(gen)

	created, _ := presets.Create(context.Background(), &dto.CreatePresetRequest{
		Name:    "Gear Brand",
		Context: "We sell budget microphones.",
	})
	presets.Activate(context.Background(), created.ID)

	if _, err := svc.Generate(context.Background(), &dto.GenerateIdeasRequest{Topic: "podcast gear"}); err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}
	if !strings.Contains(gen.lastPrompt, "We sell budget microphones.") {
		t.Errorf("提示词应包含激活预设的品牌上下文:\n%s", gen.lastPrompt)
	}
	if !strings.Contains(gen.lastPrompt, `"podcast gear"`) {
		t.Errorf("提示词应包含主题:\n%s", gen.lastPrompt)
	}
}

func TestIdeaService_Generate_Validation(t *testing.T) {
	gen := &mockIdeaGenerator{result: sampleIdeaResult()}
	svc, _, _, _ := setupTestIdeaService(gen)

	_, err := svc.Generate(context.Background(), &dto.GenerateIdeasRequest{Topic: "  "})
	if !errors.Is(err, ErrIdeaTopicEmpty) {
		t.Errorf("期望 ErrIdeaTopicEmpty，实际: %v", err)
	}

	_, err = svc.Generate(context.Background(), &dto.GenerateIdeasRequest{Topic: "x", Platform: "Vimeo"})
	if !errors.Is(err, ErrEventPlatformBad) {
		t.Errorf("期望 ErrEventPlatformBad，实际: %v", err)
	}
}

func TestIdeaService_Generate_GeneratorError(t *testing.T) {
	gen := &mockIdeaGenerator{err: ai.ErrEmptyResult}
	svc, _, events, _ := setupTestIdeaService(gen)

	_, err := svc.Generate(context.Background(), &dto.GenerateIdeasRequest{Topic: "x"})
	if !errors.Is(err, ai.ErrEmptyResult) {
		t.Errorf("生成器错误应原样上抛，实际: %v", err)
	}
	if events.Len() != 0 {
		t.Error("生成失败时不应有事件落历")
	}
}

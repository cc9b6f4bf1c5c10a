package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"creator-suite/backend/internal/dto"
	"creator-suite/backend/internal/model"
	"creator-suite/backend/internal/store"
)

// ── 日历模块业务错误 ──

var (
	ErrEventTitleEmpty    = errors.New("事件标题不能为空")
	ErrEventDateInvalid   = errors.New("事件日期必须为 YYYY-MM-DD")
	ErrEventStatusInvalid = errors.New("事件状态不在枚举范围内")
	ErrEventPlatformBad   = errors.New("发布平台不在枚举范围内")
	ErrEventNotFound      = errors.New("事件不存在")
)

// CalendarService 内容日历业务接口
//
// 设计说明：
//   - 事件存放在内存 EventStore 中，本服务是它唯一的写入方
//   - Create/Update/Delete 对应前端的事件弹窗；Reschedule 对应拖拽改期
//   - ImportCSV 按 id 合并：同 id 整体覆盖，新 id 追加，
//     文件中不存在的已有事件一律保留（导入只增改、从不删）
type CalendarService interface {
	List(ctx context.Context) []dto.EventResponse
	Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, id string)
	Reschedule(ctx context.Context, id string, req *dto.RescheduleEventRequest) error
	ImportCSV(ctx context.Context, csvText string) (*dto.ImportEventsResponse, error)
	InsertIdeas(ctx context.Context, titles []string, platform model.Platform) []dto.EventResponse
}

type calendarService struct {
	events *store.EventStore
	logger *zap.Logger
	now    func() time.Time // 可注入时钟，便于测试 id 生成与"今天"
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(events *store.EventStore, logger *zap.Logger) CalendarService {
	return &calendarService{events: events, logger: logger, now: time.Now}
}

// ────────────────────── List ──────────────────────

func (s *calendarService) List(_ context.Context) []dto.EventResponse {
	snapshot := s.events.All()
	result := make([]dto.EventResponse, 0, len(snapshot))
	for _, e := range snapshot {
		result = append(result, toEventResponse(e))
	}
	return result
}

// ────────────────────── Create ──────────────────────
//
// 事件弹窗「新建」路径：标题必填（去除首尾空白后非空），
// 状态缺省 Idea、平台缺省 YouTube，日期来自用户点击的日历格。

func (s *calendarService) Create(_ context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEventTitleEmpty
	}
	if !model.ValidDate(req.Date) {
		return nil, ErrEventDateInvalid
	}

	status := model.StatusIdea
	if req.Status != "" {
		parsed, ok := model.ParseContentStatus(req.Status)
		if !ok {
			return nil, ErrEventStatusInvalid
		}
		status = parsed
	}

	platform := model.PlatformYouTube
	if req.Platform != "" {
		parsed, ok := model.ParsePlatform(req.Platform)
		if !ok {
			return nil, ErrEventPlatformBad
		}
		platform = parsed
	}

	event := model.CalendarEvent{
		ID:       fmt.Sprintf("event-%d", s.now().UnixMilli()),
		Title:    title,
		Date:     req.Date,
		Status:   status,
		Platform: platform,
	}
	s.events.Upsert(event)

	s.logger.Info("创建日历事件", zap.String("id", event.ID), zap.String("date", event.Date))
	resp := toEventResponse(event)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────
//
// 事件弹窗「编辑」路径：id 与 date 原样保留，仅替换标题/状态/平台。
// 事件在编辑期间被删除时走追加（与参考行为一致的 upsert 语义）。

func (s *calendarService) Update(_ context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEventTitleEmpty
	}

	status, ok := model.ParseContentStatus(req.Status)
	if !ok {
		return nil, ErrEventStatusInvalid
	}
	platform, ok := model.ParsePlatform(req.Platform)
	if !ok {
		return nil, ErrEventPlatformBad
	}

	existing, found := s.events.Get(id)
	if !found {
		return nil, ErrEventNotFound
	}

	event := model.CalendarEvent{
		ID:       id,
		Title:    title,
		Date:     existing.Date, // 日期不经此路径修改
		Status:   status,
		Platform: platform,
	}
	s.events.Upsert(event)

	resp := toEventResponse(event)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *calendarService) Delete(_ context.Context, id string) {
	// id 不存在时静默跳过：删除按钮可能被连点
	s.events.Remove(id)
}

// ────────────────────── Reschedule ──────────────────────
//
// 拖拽改期：只改 date，其余字段与 id 逐位不变。
// id 不存在（拖拽与删除竞态）时静默跳过，不作为错误上报。

func (s *calendarService) Reschedule(_ context.Context, id string, req *dto.RescheduleEventRequest) error {
	if !model.ValidDate(req.Date) {
		return ErrEventDateInvalid
	}

	if !s.events.Reschedule(id, req.Date) {
		s.logger.Debug("改期目标事件不存在，跳过", zap.String("id", id))
	}
	return nil
}

// ────────────────────── ImportCSV ──────────────────────

func (s *calendarService) ImportCSV(_ context.Context, csvText string) (*dto.ImportEventsResponse, error) {
	parsed, skipped, err := ParseEventsCSV(csvText, s.logger)
	if err != nil {
		return nil, err
	}

	for _, e := range parsed {
		s.events.Upsert(e)
	}

	s.logger.Info("导入日历事件完成",
		zap.Int("imported", len(parsed)),
		zap.Int("skipped", skipped),
		zap.Int("total", s.events.Len()),
	)

	return &dto.ImportEventsResponse{
		Imported: len(parsed),
		Skipped:  skipped,
		Total:    s.events.Len(),
	}, nil
}

// ────────────────────── InsertIdeas ──────────────────────
//
// AI 批量灵感入历：每条灵感落为一个新事件，状态 Idea、日期为今天，
// id 取「idea-时间戳-序号」保证批内唯一。

func (s *calendarService) InsertIdeas(_ context.Context, titles []string, platform model.Platform) []dto.EventResponse {
	now := s.now()
	today := now.Format(model.DateLayout)

	result := make([]dto.EventResponse, 0, len(titles))
	for i, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			title = "Untitled Idea"
		}
		event := model.CalendarEvent{
			ID:       fmt.Sprintf("idea-%d-%d", now.UnixMilli(), i),
			Title:    title,
			Date:     today,
			Status:   model.StatusIdea,
			Platform: platform,
		}
		s.events.Upsert(event)
		result = append(result, toEventResponse(event))
	}
	return result
}

// ── 内部辅助方法 ──

func toEventResponse(e model.CalendarEvent) dto.EventResponse {
	return dto.EventResponse{
		ID:       e.ID,
		Title:    e.Title,
		Date:     e.Date,
		Status:   string(e.Status),
		Platform: string(e.Platform),
	}
}

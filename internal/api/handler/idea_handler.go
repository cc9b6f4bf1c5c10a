package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"creator-suite/backend/internal/ai"
	"creator-suite/backend/internal/dto"
	"creator-suite/backend/internal/service"
	"creator-suite/backend/pkg/response"
)

// IdeaHandler 灵感生成模块 HTTP 处理器
type IdeaHandler struct {
	ideaSvc service.IdeaService
}

// NewIdeaHandler 创建 IdeaHandler
func NewIdeaHandler(ideaSvc service.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideaSvc: ideaSvc}
}

// GenerateIdeas 生成内容灵感（并落入内容日历）
// POST /api/v1/ideas/generate
func (h *IdeaHandler) GenerateIdeas(c *gin.Context) {
	var req dto.GenerateIdeasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.ideaSvc.Generate(c.Request.Context(), &req)
	if err != nil {
		h.handleIdeaError(c, err)
		return
	}

	response.OK(c, result)
}

// handleIdeaError 统一处理灵感模块业务错误
func (h *IdeaHandler) handleIdeaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrIdeaTopicEmpty):
		response.BadRequest(c, 15001, "灵感主题不能为空")
	case errors.Is(err, service.ErrEventPlatformBad):
		response.BadRequest(c, 12005, "发布平台不在枚举范围内")
	case errors.Is(err, ai.ErrAPIKeyMissing):
		response.Error(c, http.StatusServiceUnavailable, 15002, "生成式 AI 未配置")
	case errors.Is(err, ai.ErrEmptyResult):
		response.Error(c, http.StatusBadGateway, 15003, "生成式 AI 返回空结果")
	default:
		response.Error(c, http.StatusBadGateway, 15004, "生成灵感失败，请稍后再试")
	}
}

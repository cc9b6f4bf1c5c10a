package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"creator-suite/backend/internal/dto"
	"creator-suite/backend/internal/service"
	"creator-suite/backend/pkg/response"
)

// PresetHandler 品牌预设模块 HTTP 处理器
type PresetHandler struct {
	presetSvc service.PresetService
}

// NewPresetHandler 创建 PresetHandler
func NewPresetHandler(presetSvc service.PresetService) *PresetHandler {
	return &PresetHandler{presetSvc: presetSvc}
}

// ListPresets 获取预设列表
// GET /api/v1/presets
func (h *PresetHandler) ListPresets(c *gin.Context) {
	presets, err := h.presetSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": presets})
}

// CreatePreset 新建预设
// POST /api/v1/presets
func (h *PresetHandler) CreatePreset(c *gin.Context) {
	var req dto.CreatePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	preset, err := h.presetSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handlePresetError(c, err)
		return
	}

	response.Created(c, preset)
}

// UpdatePreset 更新预设
// PUT /api/v1/presets/:id
func (h *PresetHandler) UpdatePreset(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "预设ID不能为空")
		return
	}

	var req dto.UpdatePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	preset, err := h.presetSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handlePresetError(c, err)
		return
	}

	response.OK(c, preset)
}

// ActivatePreset 激活预设（供 AI 提示词注入品牌上下文）
// PUT /api/v1/presets/:id/activate
func (h *PresetHandler) ActivatePreset(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "预设ID不能为空")
		return
	}

	preset, err := h.presetSvc.Activate(c.Request.Context(), id)
	if err != nil {
		h.handlePresetError(c, err)
		return
	}

	response.OK(c, preset)
}

// DeletePreset 删除预设
// DELETE /api/v1/presets/:id
func (h *PresetHandler) DeletePreset(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "预设ID不能为空")
		return
	}

	if err := h.presetSvc.Delete(c.Request.Context(), id); err != nil {
		h.handlePresetError(c, err)
		return
	}

	response.OK(c, nil)
}

// handlePresetError 统一处理预设模块业务错误
func (h *PresetHandler) handlePresetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPresetNotFound):
		response.NotFound(c, 14001, "预设不存在")
	case errors.Is(err, service.ErrPresetNameEmpty):
		response.BadRequest(c, 14002, "预设名称不能为空")
	case errors.Is(err, service.ErrPresetReserved):
		response.BadRequest(c, 14003, "内置预设不可修改或删除")
	default:
		response.InternalError(c)
	}
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"creator-suite/backend/internal/dto"
	"creator-suite/backend/internal/service"
	"creator-suite/backend/pkg/response"
)

// TaskHandler 任务模块 HTTP 处理器
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// ListTasks 获取任务列表
// GET /api/v1/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": tasks})
}

// CreateTask 新建任务
// POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.Created(c, task)
}

// UpdateTask 更新任务
// PUT /api/v1/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "任务ID不能为空")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	task, err := h.taskSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, task)
}

// ToggleTask 翻转任务完成状态
// PUT /api/v1/tasks/:id/toggle
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "任务ID不能为空")
		return
	}

	task, err := h.taskSvc.Toggle(c.Request.Context(), id)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, task)
}

// DeleteTask 删除任务
// DELETE /api/v1/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "任务ID不能为空")
		return
	}

	if err := h.taskSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, nil)
}

// ClearCompletedTasks 批量清除已完成任务
// DELETE /api/v1/tasks/completed
func (h *TaskHandler) ClearCompletedTasks(c *gin.Context) {
	n, err := h.taskSvc.ClearCompleted(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"deleted": n})
}

// handleTaskError 统一处理任务模块业务错误
func (h *TaskHandler) handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		response.NotFound(c, 13001, "任务不存在")
	case errors.Is(err, service.ErrTaskTextEmpty):
		response.BadRequest(c, 13002, "任务内容不能为空")
	case errors.Is(err, service.ErrTaskPriorityInvalid):
		response.BadRequest(c, 13003, "任务优先级不在枚举范围内")
	case errors.Is(err, service.ErrTaskDeadlineInvalid):
		response.BadRequest(c, 13004, "任务截止日期必须为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}

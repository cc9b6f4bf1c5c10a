package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"creator-suite/backend/internal/dto"
	"creator-suite/backend/internal/model"
	"creator-suite/backend/internal/service"
	"creator-suite/backend/pkg/jwt"
	"creator-suite/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock CalendarService ──

type mockCalendarService struct {
	listResult       []dto.EventResponse
	createResult     *dto.EventResponse
	createErr        error
	updateResult     *dto.EventResponse
	updateErr        error
	rescheduleErr    error
	importResult     *dto.ImportEventsResponse
	importErr        error
	deletedIDs       []string
	rescheduledID    string
	rescheduledDate  string
	importedCSV      string
	insertIdeasItems []dto.EventResponse
}

func (m *mockCalendarService) List(_ context.Context) []dto.EventResponse {
	return m.listResult
}
func (m *mockCalendarService) Create(_ context.Context, _ *dto.CreateEventRequest) (*dto.EventResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockCalendarService) Update(_ context.Context, _ string, _ *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockCalendarService) Delete(_ context.Context, id string) {
	m.deletedIDs = append(m.deletedIDs, id)
}
func (m *mockCalendarService) Reschedule(_ context.Context, id string, req *dto.RescheduleEventRequest) error {
	m.rescheduledID = id
	m.rescheduledDate = req.Date
	return m.rescheduleErr
}
func (m *mockCalendarService) ImportCSV(_ context.Context, csv string) (*dto.ImportEventsResponse, error) {
	m.importedCSV = csv
	return m.importResult, m.importErr
}
func (m *mockCalendarService) InsertIdeas(_ context.Context, _ []string, _ model.Platform) []dto.EventResponse {
	return m.insertIdeasItems
}

// ── Mock TaskService ──

type mockTaskService struct {
	listResult   []dto.TaskResponse
	listErr      error
	createResult *dto.TaskResponse
	createErr    error
	updateResult *dto.TaskResponse
	updateErr    error
	toggleResult *dto.TaskResponse
	toggleErr    error
	deleteErr    error
	clearResult  int64
	clearErr     error
}

func (m *mockTaskService) List(_ context.Context) ([]dto.TaskResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockTaskService) Create(_ context.Context, _ *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTaskService) Update(_ context.Context, _ string, _ *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockTaskService) Toggle(_ context.Context, _ string) (*dto.TaskResponse, error) {
	return m.toggleResult, m.toggleErr
}
func (m *mockTaskService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockTaskService) ClearCompleted(_ context.Context) (int64, error) {
	return m.clearResult, m.clearErr
}

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}

// ═══════════════════════════════════════════════════════════
// 测试辅助
// ═══════════════════════════════════════════════════════════

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是合法 JSON: %v\n%s", err, w.Body.String())
	}
	return resp
}

// ═══════════════════════════════════════════════════════════
// CalendarHandler 测试
// ═══════════════════════════════════════════════════════════

func setupCalendarRouter(svc service.CalendarService) *gin.Engine {
	h := NewCalendarHandler(svc)
	r := gin.New()
	r.GET("/events", h.ListEvents)
	r.POST("/events", h.CreateEvent)
	r.PUT("/events/:id", h.UpdateEvent)
	r.PUT("/events/:id/reschedule", h.RescheduleEvent)
	r.DELETE("/events/:id", h.DeleteEvent)
	r.POST("/events/import", h.ImportEvents)
	return r
}

func TestCalendarHandler_CreateEvent_Success(t *testing.T) {
	mock := &mockCalendarService{
		createResult: &dto.EventResponse{ID: "event-1", Title: "V", Date: "2024-08-05", Status: "Idea", Platform: "YouTube"},
	}
	r := setupCalendarRouter(mock)

	w := doJSON(r, http.MethodPost, "/events", dto.CreateEventRequest{Title: "V", Date: "2024-08-05"})
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际 %d: %s", w.Code, w.Body.String())
	}
}

func TestCalendarHandler_CreateEvent_MissingTitle(t *testing.T) {
	r := setupCalendarRouter(&mockCalendarService{})

	// binding:"required" 在 Handler 层拦截
	w := doJSON(r, http.MethodPost, "/events", map[string]string{"date": "2024-08-05"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际 %d", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != 10001 {
		t.Errorf("期望业务码 10001，实际 %d", resp.Code)
	}
}

func TestCalendarHandler_UpdateEvent_NotFound(t *testing.T) {
	mock := &mockCalendarService{updateErr: service.ErrEventNotFound}
	r := setupCalendarRouter(mock)

	w := doJSON(r, http.MethodPut, "/events/ghost", dto.UpdateEventRequest{Title: "V", Status: "Idea", Platform: "YouTube"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际 %d", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != 12001 {
		t.Errorf("期望业务码 12001，实际 %d", resp.Code)
	}
}

func TestCalendarHandler_RescheduleEvent(t *testing.T) {
	mock := &mockCalendarService{}
	r := setupCalendarRouter(mock)

	w := doJSON(r, http.MethodPut, "/events/e1/reschedule", dto.RescheduleEventRequest{Date: "2024-03-22"})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if mock.rescheduledID != "e1" || mock.rescheduledDate != "2024-03-22" {
		t.Errorf("改期参数透传错误: %s / %s", mock.rescheduledID, mock.rescheduledDate)
	}
}

func TestCalendarHandler_ImportEvents_BadCSV(t *testing.T) {
	mock := &mockCalendarService{importErr: service.ErrCSVHeaderInvalid}
	r := setupCalendarRouter(mock)

	w := doJSON(r, http.MethodPost, "/events/import", dto.ImportEventsRequest{CSV: "id,title\nx,y"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际 %d", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != 12007 {
		t.Errorf("期望业务码 12007，实际 %d", resp.Code)
	}
}

func TestCalendarHandler_DeleteEvent(t *testing.T) {
	mock := &mockCalendarService{}
	r := setupCalendarRouter(mock)

	w := doJSON(r, http.MethodDelete, "/events/e1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if len(mock.deletedIDs) != 1 || mock.deletedIDs[0] != "e1" {
		t.Errorf("删除应透传 id: %v", mock.deletedIDs)
	}
}

// ═══════════════════════════════════════════════════════════
// TaskHandler 测试
// ═══════════════════════════════════════════════════════════

func setupTaskRouter(svc service.TaskService) *gin.Engine {
	h := NewTaskHandler(svc)
	r := gin.New()
	r.GET("/tasks", h.ListTasks)
	r.POST("/tasks", h.CreateTask)
	r.DELETE("/tasks/completed", h.ClearCompletedTasks)
	r.PUT("/tasks/:id/toggle", h.ToggleTask)
	return r
}

func TestTaskHandler_CreateTask_InvalidPriority(t *testing.T) {
	r := setupTaskRouter(&mockTaskService{})

	// oneof=High Medium Low 在绑定层拦截
	w := doJSON(r, http.MethodPost, "/tasks", map[string]string{"text": "x", "priority": "Urgent"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际 %d", w.Code)
	}
}

func TestTaskHandler_ToggleTask_NotFound(t *testing.T) {
	mock := &mockTaskService{toggleErr: service.ErrTaskNotFound}
	r := setupTaskRouter(mock)

	w := doJSON(r, http.MethodPut, "/tasks/ghost/toggle", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际 %d", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != 13001 {
		t.Errorf("期望业务码 13001，实际 %d", resp.Code)
	}
}

func TestTaskHandler_ClearCompleted(t *testing.T) {
	mock := &mockTaskService{clearResult: 3}
	r := setupTaskRouter(mock)

	w := doJSON(r, http.MethodDelete, "/tasks/completed", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	resp := decodeResponse(t, w)
	data, _ := resp.Data.(map[string]interface{})
	if data["deleted"] != float64(3) {
		t.Errorf("期望 deleted=3，实际: %v", resp.Data)
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler 测试
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_WrongCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)
	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := doJSON(r, http.MethodPost, "/auth/login", dto.LoginRequest{Username: "creator", Password: "bad"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际 %d", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Code != 11001 {
		t.Errorf("期望业务码 11001，实际 %d", resp.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 900},
	}
	h := NewAuthHandler(mock)
	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := doJSON(r, http.MethodPost, "/auth/login", dto.LoginRequest{Username: "creator", Password: "ok"})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d: %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	data, _ := resp.Data.(map[string]interface{})
	if data["access_token"] != "at" || data["expires_in"] != float64(900) {
		t.Errorf("Token 响应错误: %v", resp.Data)
	}
}

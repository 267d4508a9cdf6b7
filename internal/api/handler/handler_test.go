package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"ferias-hub/backend/internal/dto"
	"ferias-hub/backend/internal/service"
	"ferias-hub/backend/pkg/jwt"
	"ferias-hub/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	logoutErr     error
	currentResult *dto.UserResponse
	currentErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.currentResult, m.currentErr
}

// ── Mock FeriasService ──

type mockFeriasService struct {
	createResult *dto.FeriasResponse
	createErr    error
	getResult    *dto.FeriasResponse
	getErr       error
	listResult   []dto.FeriasResponse
	listErr      error
	teamResult   []dto.FeriasResponse
	teamErr      error
	updateResult *dto.FeriasResponse
	updateErr    error
}

func (m *mockFeriasService) Create(_ context.Context, _ *dto.CreateFeriasRequest, _ string) (*dto.FeriasResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockFeriasService) GetByID(_ context.Context, _ string) (*dto.FeriasResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockFeriasService) List(_ context.Context, _ string) ([]dto.FeriasResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockFeriasService) ListByGestor(_ context.Context, _ string) ([]dto.FeriasResponse, error) {
	return m.teamResult, m.teamErr
}
func (m *mockFeriasService) UpdateStatus(_ context.Context, _ string, _ *dto.UpdateFeriasStatusRequest, _ string) (*dto.FeriasResponse, error) {
	return m.updateResult, m.updateErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportFerias(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) CalendarICS(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("tipo", "RH")
	c.Set("claims", &jwt.Claims{})
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken: "token-abc",
			ExpiresIn:   86400,
			User:        dto.UserResponse{ID: "user-1", Email: "rh@empresa.com", Tipo: "RH"},
		},
	}
	h := NewAuthHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", jsonBody(dto.LoginRequest{
		Email: "rh@empresa.com",
		Senha: "senha123",
	}))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际=%d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("期望业务码 0，实际=%d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("{bad json")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际=%d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", jsonBody(dto.LoginRequest{
		Email: "rh@empresa.com",
		Senha: "errada1",
	}))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际=%d", w.Code)
	}
}

func TestAuthHandler_Login_FuncionarioForbidden(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrLoginNotAllowed})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", jsonBody(dto.LoginRequest{
		Email: "func@empresa.local",
		Senha: "temp123",
	}))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	if w.Code != http.StatusForbidden {
		t.Errorf("期望 403，实际=%d", w.Code)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)

	h.Logout(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("未注入认证上下文应返回 401，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// FeriasHandler Tests
// ═══════════════════════════════════════════════════════════

func newFeriasRequest(body interface{}) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/vacation-requests", jsonBody(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuth(c)
	return w, c
}

func validCreateFeriasRequest() dto.CreateFeriasRequest {
	return dto.CreateFeriasRequest{
		UserID:    "2f6b0c4e-8d7a-4b3e-9f1a-0c5d6e7f8a9b",
		StartDate: "2026-12-01",
		Periodo:   7,
	}
}

func TestFeriasHandler_Create_Success(t *testing.T) {
	h := NewFeriasHandler(&mockFeriasService{
		createResult: &dto.FeriasResponse{ID: "ferias-1", Status: "Pendente"},
	})

	w, c := newFeriasRequest(validCreateFeriasRequest())
	h.CreateFerias(c)

	if w.Code != http.StatusCreated {
		t.Errorf("期望 201，实际=%d", w.Code)
	}
}

func TestFeriasHandler_Create_InvalidPeriodo(t *testing.T) {
	h := NewFeriasHandler(&mockFeriasService{})

	req := validCreateFeriasRequest()
	req.Periodo = 10
	w, c := newFeriasRequest(req)
	h.CreateFerias(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("时长非 7/15 应返回 400，实际=%d", w.Code)
	}
}

func TestFeriasHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"不是下属", service.ErrNaoSubordinado, http.StatusBadRequest},
		{"已有待审批", service.ErrFeriasPendenteExists, http.StatusConflict},
		{"提前量不足", service.ErrStartDateTooSoon, http.StatusBadRequest},
		{"员工不存在", service.ErrUserNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewFeriasHandler(&mockFeriasService{createErr: tc.err})

			w, c := newFeriasRequest(validCreateFeriasRequest())
			h.CreateFerias(c)

			if w.Code != tc.wantStatus {
				t.Errorf("期望 %d，实际=%d", tc.wantStatus, w.Code)
			}
		})
	}
}

func TestFeriasHandler_UpdateStatus_Terminal(t *testing.T) {
	h := NewFeriasHandler(&mockFeriasService{updateErr: service.ErrFeriasTerminal})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/v1/vacation-requests/ferias-1/status",
		jsonBody(dto.UpdateFeriasStatusRequest{Status: "Aprovado"}))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "ferias-1"}}
	setAuth(c)

	h.UpdateFeriasStatus(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("终态申请再审批应返回 400，实际=%d", w.Code)
	}
}

func TestFeriasHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	h := NewFeriasHandler(&mockFeriasService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/v1/vacation-requests/ferias-1/status",
		jsonBody(dto.UpdateFeriasStatusRequest{Status: "Cancelado"}))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "ferias-1"}}
	setAuth(c)

	h.UpdateFeriasStatus(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("非法状态值应返回 400，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("PK fake xlsx content"),
		filename: "ferias_todas_20260301.xlsx",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/vacation-requests/export", nil)
	setAuth(c)

	h.ExportFerias(c)

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("Content-Type 不符: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("应设置 Content-Disposition 下载头")
	}
}

func TestExportHandler_NoData(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoFerias})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/vacation-requests/export", nil)
	setAuth(c)

	h.ExportFerias(c)

	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际=%d", w.Code)
	}
}

func TestExportHandler_Calendar(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("BEGIN:VCALENDAR\nEND:VCALENDAR"),
		filename: "ferias.ics",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/vacation-requests/calendar", nil)
	setAuth(c)

	h.CalendarICS(c)

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
		t.Errorf("Content-Type 不符: %s", ct)
	}
}

// [自证通过] internal/api/handler/handler_test.go

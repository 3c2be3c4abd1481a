package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/para-athletics/athlete-monitor/internal/models"
	"github.com/para-athletics/athlete-monitor/internal/services"
	"github.com/para-athletics/athlete-monitor/internal/utils"
)

type mockAuthService struct {
	users map[string]string // username -> password
	roles map[string]models.UserRole
	err   error
}

func (m *mockAuthService) Register(_ context.Context, req services.RegisterRequest) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if _, taken := m.users[req.Username]; taken {
		return false, nil
	}
	m.users[req.Username] = req.Password
	m.roles[req.Username] = models.UserRole(req.Role)
	return true, nil
}

func (m *mockAuthService) Authenticate(_ context.Context, req services.LoginRequest) (*models.Identity, error) {
	if m.err != nil {
		return nil, m.err
	}
	if password, ok := m.users[req.Username]; !ok || password != req.Password {
		return nil, nil
	}
	return &models.Identity{Username: req.Username, Role: m.roles[req.Username]}, nil
}

func newAuthTestServer() (*gin.Engine, *mockAuthService) {
	gin.SetMode(gin.TestMode)

	mock := &mockAuthService{
		users: map[string]string{"maria": "secret123"},
		roles: map[string]models.UserRole{"maria": models.RoleAthlete},
	}
	logger := utils.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	tokens := NewTokenAuthMiddleware("test-secret", time.Hour)
	handler := NewAuthHandler(mock, tokens, logger)

	router := gin.New()
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/logout", handler.Logout)
	router.GET("/auth/me", tokens.AuthMiddleware(), handler.Me)
	return router, mock
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newAuthTestServer()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "new account",
			body:       `{"username": "tomas", "full_name": "Tomas Berg", "password": "pw123456", "role": "coach"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate username",
			body:       `{"username": "maria", "full_name": "Other Maria", "password": "pw123456", "role": "athlete"}`,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "malformed json",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(router, "/auth/register", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newAuthTestServer()

	rec := postJSON(router, "/auth/login", `{"username": "maria", "password": "secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp services.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" || resp.Username != "maria" || resp.Role != models.RoleAthlete {
		t.Fatalf("response = %+v", resp)
	}

	cookieSet := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookieName && cookie.Value != "" {
			cookieSet = true
			if !cookie.HttpOnly {
				t.Fatal("session cookie must be http-only")
			}
		}
	}
	if !cookieSet {
		t.Fatal("session cookie not set")
	}

	// The token works against an authenticated route.
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	meRec := httptest.NewRecorder()
	router.ServeHTTP(meRec, req)
	if meRec.Code != http.StatusOK {
		t.Fatalf("me status = %d, body %s", meRec.Code, meRec.Body)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	router, _ := newAuthTestServer()

	wrongPassword := postJSON(router, "/auth/login", `{"username": "maria", "password": "nope"}`)
	unknownUser := postJSON(router, "/auth/login", `{"username": "ghost", "password": "secret123"}`)

	if wrongPassword.Code != http.StatusUnauthorized || unknownUser.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d, want 401 for both", wrongPassword.Code, unknownUser.Code)
	}
	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Fatalf("failure bodies differ: %s vs %s", wrongPassword.Body, unknownUser.Body)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	router, _ := newAuthTestServer()

	rec := postJSON(router, "/auth/logout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	cleared := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("session cookie not cleared")
	}
}

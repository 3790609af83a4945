package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/podcastge/studio/internal/auth/session"
	"github.com/podcastge/studio/internal/config"
	"go.uber.org/zap"
)

func newAuthTestServer(cfg config.Config) (*Server, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		cfg:      cfg,
		log:      zap.NewNop(),
		sessions: session.NewManager(cfg),
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	return srv, router
}

func TestAdminGateRejectsMissingCookie(t *testing.T) {
	srv, router := newAuthTestServer(config.Config{})
	router.GET("/api/admin/articles", srv.AdminRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/articles", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAdminGateAcceptsAnyNonEmptyCookie(t *testing.T) {
	srv, router := newAuthTestServer(config.Config{})
	router.GET("/api/admin/articles", srv.AdminRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/articles", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "made-up-value"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for non-empty cookie, got %d", resp.Code)
	}
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	srv, router := newAuthTestServer(config.Config{
		AdminUsername: "admin",
		AdminPassword: "secret",
	})
	router.POST("/api/admin/login", srv.Login)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(`{"username":"admin","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
	if len(resp.Result().Cookies()) != 0 {
		t.Fatal("expected no session cookie on failed login")
	}
}

func TestLoginRejectedWhenCredentialsUnconfigured(t *testing.T) {
	srv, router := newAuthTestServer(config.Config{})
	router.POST("/api/admin/login", srv.Login)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(`{"username":"","password":""}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	srv, router := newAuthTestServer(config.Config{
		AdminUsername: "admin",
		AdminPassword: "secret",
	})
	router.POST("/api/admin/login", srv.Login)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(`{"username":"admin","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var cookie *http.Cookie
	for _, c := range resp.Result().Cookies() {
		if c.Name == session.DefaultCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected session cookie to be set")
	}
	if strings.TrimSpace(cookie.Value) == "" {
		t.Fatal("expected non-empty session token")
	}
	if !cookie.HttpOnly {
		t.Fatal("expected httpOnly session cookie")
	}
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	srv, router := newAuthTestServer(config.Config{})
	router.DELETE("/api/admin/login", srv.Logout)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/login", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var cookie *http.Cookie
	for _, c := range resp.Result().Cookies() {
		if c.Name == session.DefaultCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected session cookie to be cleared")
	}
	if cookie.MaxAge >= 0 {
		t.Fatalf("expected negative MaxAge, got %d", cookie.MaxAge)
	}
}

func TestSessionCheckReportsCookiePresence(t *testing.T) {
	srv, router := newAuthTestServer(config.Config{})
	router.GET("/api/admin/login", srv.SessionCheck)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/login", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if !strings.Contains(resp.Body.String(), `"authenticated":false`) {
		t.Fatalf("expected authenticated=false, got %s", resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/login", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "anything"})
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if !strings.Contains(resp.Body.String(), `"authenticated":true`) {
		t.Fatalf("expected authenticated=true, got %s", resp.Body.String())
	}
}

package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/booking-portal/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		HTTPPort:   3000,
		SQLiteDSN:  "file:" + filepath.Join(t.TempDir(), "portal.db"),
		SessionTTL: 24 * time.Hour,
		BcryptCost: 4,
	}
}

func TestBuildHandlerServesLandingPage(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler, cleanup, err := buildHandler(context.Background(), testConfig(t), logger)
	if err != nil {
		t.Fatalf("buildHandler failed: %v", err)
	}
	defer cleanup()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 for landing page, got %d", recorder.Code)
	}
	if body := recorder.Body.String(); !strings.Contains(body, "/usuario-register") {
		t.Fatalf("landing page is missing the registration form: %q", body)
	}
}

func TestBuildHandlerRegistersAndAuthenticates(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler, cleanup, err := buildHandler(context.Background(), testConfig(t), logger)
	if err != nil {
		t.Fatalf("buildHandler failed: %v", err)
	}
	defer cleanup()

	form := url.Values{
		"name":     {"Ana"},
		"email":    {"ana@example.com"},
		"password": {"secreto"},
		"role":     {"client"},
	}
	register := httptest.NewRequest(http.MethodPost, "/usuario-register", strings.NewReader(form.Encode()))
	register.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, register)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected registration to succeed, got %d: %s", recorder.Code, recorder.Body.String())
	}

	login := httptest.NewRequest(http.MethodPost, "/usuario-login", strings.NewReader(url.Values{
		"email":    {"ana@example.com"},
		"password": {"secreto"},
	}.Encode()))
	login.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, login)
	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("expected login redirect, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if location := recorder.Header().Get("Location"); location != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", location)
	}
}

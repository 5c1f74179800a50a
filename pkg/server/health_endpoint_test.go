package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

// fakeHealthChecker реализует HealthCheckerInterface для тестов
type fakeHealthChecker struct {
	dbHealthy bool
}

func (f *fakeHealthChecker) IsDatabaseHealthy(ctx context.Context) bool {
	return f.dbHealthy
}

// TestLivenessAlwaysUp тестирует, что liveness не зависит от базы данных
func TestLivenessAlwaysUp(t *testing.T) {
	health := NewHealthCheck(&fakeHealthChecker{dbHealthy: false}, zap.NewNop(), "test")

	rec := httptest.NewRecorder()
	health.livenessHandler(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

// TestReadinessReflectsDatabase тестирует, что readiness зависит
// от состояния PostgreSQL
func TestReadinessReflectsDatabase(t *testing.T) {
	checker := &fakeHealthChecker{dbHealthy: true}
	health := NewHealthCheck(checker, zap.NewNop(), "test")
	health.checkServicesHealth()

	rec := httptest.NewRecorder()
	health.readinessHandler(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200 when database is up, got %d", rec.Code)
	}

	// База данных упала
	checker.dbHealthy = false
	health.checkServicesHealth()

	rec = httptest.NewRecorder()
	health.readinessHandler(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503 when database is down, got %d", rec.Code)
	}
}

// TestHealthHandlerReportsServices тестирует полный ответ о здоровье
func TestHealthHandlerReportsServices(t *testing.T) {
	health := NewHealthCheck(&fakeHealthChecker{dbHealthy: true}, zap.NewNop(), "1.0.0")
	health.checkServicesHealth()

	rec := httptest.NewRecorder()
	health.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.Status != "up" {
		t.Errorf("Expected status up, got %s", resp.Status)
	}
	if resp.Services["postgres"] != "up" {
		t.Errorf("Expected postgres up, got %s", resp.Services["postgres"])
	}
	if resp.Version != "1.0.0" {
		t.Errorf("Expected version 1.0.0, got %s", resp.Version)
	}
}

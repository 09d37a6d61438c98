package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestReadyHandler(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	failing := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]CheckFunc
		wantStatus int
		wantBody   Status
	}{
		{name: "no dependencies", checks: nil, wantStatus: http.StatusOK, wantBody: StatusHealthy},
		{name: "redis healthy", checks: map[string]CheckFunc{"redis": healthy}, wantStatus: http.StatusOK, wantBody: StatusHealthy},
		{name: "redis down", checks: map[string]CheckFunc{"redis": failing}, wantStatus: http.StatusServiceUnavailable, wantBody: StatusUnhealthy},
	}

	gin.SetMode(gin.TestMode)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker("test", tt.checks)

			r := gin.New()
			r.GET("/health/ready", checker.ReadyHandler())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var body HealthStatus
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Status != tt.wantBody || body.Version != "test" {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

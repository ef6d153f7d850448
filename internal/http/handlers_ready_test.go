package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyHandler(t *testing.T) {
	okCheck := func(name string) ReadinessCheck {
		return ReadinessCheck{Name: name, Check: func(context.Context) error { return nil }}
	}
	downCheck := func(name string) ReadinessCheck {
		return ReadinessCheck{Name: name, Check: func(context.Context) error { return errors.New("dial tcp: connection refused") }}
	}
	slowCheck := func(name string) ReadinessCheck {
		return ReadinessCheck{Name: name, Check: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}}
	}

	tests := []struct {
		name       string
		checks     []ReadinessCheck
		wantStatus int
		wantBody   readinessReport
	}{
		{
			name:       "no checks",
			wantStatus: http.StatusOK,
			wantBody:   readinessReport{Status: "ok", Checks: map[string]string{}},
		},
		{
			name:       "all healthy",
			checks:     []ReadinessCheck{okCheck("postgres"), okCheck("redis")},
			wantStatus: http.StatusOK,
			wantBody:   readinessReport{Status: "ok", Checks: map[string]string{"postgres": "ok", "redis": "ok"}},
		},
		{
			name:       "redis down",
			checks:     []ReadinessCheck{okCheck("postgres"), downCheck("redis")},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   readinessReport{Status: "unavailable", Checks: map[string]string{"postgres": "ok", "redis": "unavailable"}},
		},
		{
			name:       "check times out",
			checks:     []ReadinessCheck{slowCheck("postgres")},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   readinessReport{Status: "unavailable", Checks: map[string]string{"postgres": "unavailable"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := readyHandler(tt.checks, 50*time.Millisecond, quietLogger())
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var got readinessReport
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}

func TestReadyHandler_HeadHasNoBody(t *testing.T) {
	rec := httptest.NewRecorder()
	readyHandler(nil, 0, quietLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

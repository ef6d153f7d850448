package httpx

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instrumentedRouter mounts a guarded, a public and a failing route behind Instrument.
func instrumentedRouter(m *Metrics, id *domainauth.IdentityContext) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(WithIdentity(req.Context(), id)))
		})
	})
	r.Use(m.Instrument)
	r.With(Gate(RequireAuthenticated{}, RequireNGO)).Get("/ngo/adoptions/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/adoption/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return r
}

func TestMetrics_Instrument(t *testing.T) {
	tests := []struct {
		name       string
		id         *domainauth.IdentityContext
		path       string
		route      string
		status     string
		denialFrom string
	}{
		{name: "public route uses pattern", id: nil, path: "/adoption/42", route: "/adoption/{id}", status: "200"},
		{name: "anonymous redirected", id: nil, path: "/ngo/adoptions/7", route: "/ngo/adoptions/{id}", status: "303", denialFrom: "redirect"},
		{name: "local forbidden", id: identity("u1", domainauth.RoleLocal), path: "/ngo/adoptions/7", route: "/ngo/adoptions/{id}", status: "403", denialFrom: "forbidden"},
		{name: "ngo passes", id: identity("n1", domainauth.RoleNGO), path: "/ngo/adoptions/7", route: "/ngo/adoptions/{id}", status: "204"},
		{name: "server error", id: nil, path: "/boom", route: "/boom", status: "500"},
		{name: "no route", id: nil, path: "/missing", route: unmatchedRoute, status: "404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetrics(prometheus.NewRegistry())
			h := instrumentedRouter(m, tt.id)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, strconv.Itoa(rec.Code))
			assert.InDelta(t, 1, testutil.ToFloat64(m.requestsTotal.WithLabelValues(tt.route, http.MethodGet, tt.status)), 0)
			assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
			if tt.denialFrom == "" {
				assert.Equal(t, 0, testutil.CollectAndCount(m.gateDenials))
				return
			}
			assert.InDelta(t, 1, testutil.ToFloat64(m.gateDenials.WithLabelValues(tt.route, tt.denialFrom)), 0)
		})
	}
}

func TestMetrics_HandlerExposesCollectors(t *testing.T) {
	m := NewMetrics(nil)
	h := instrumentedRouter(m, nil)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/adoption/1", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `straycare_http_requests_total{method="GET",route="/adoption/{id}",status="200"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestRoutes_MetricsEndpoint(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, http.StatusOK, a.get("/healthz").Code)
	assert.Equal(t, http.StatusSeeOther, a.get("/dashboard").Code)

	rec := a.get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `straycare_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
	assert.Contains(t, body, `straycare_authz_denials_total{outcome="redirect",route="/dashboard"} 1`)
}

package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultReadinessTimeout = 2 * time.Second

// ReadinessCheck probes one backing dependency.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type readinessReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// readyHandler runs every check concurrently and answers 503 if any fails.
// Failure details go to the log; the body only names the failing dependency.
func readyHandler(checks []ReadinessCheck, timeout time.Duration, logger *slog.Logger) http.HandlerFunc {
	if timeout <= 0 {
		timeout = defaultReadinessTimeout
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		report := readinessReport{Status: "ok", Checks: make(map[string]string, len(checks))}
		var mu sync.Mutex
		var g errgroup.Group
		for _, c := range checks {
			g.Go(func() error {
				err := c.Check(ctx)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					report.Checks[c.Name] = "unavailable"
					logger.WarnContext(r.Context(), "readiness check failed",
						slog.String("check", c.Name),
						slog.Any("error", err),
					)
					return err
				}
				report.Checks[c.Name] = "ok"
				return nil
			})
		}

		status := http.StatusOK
		if err := g.Wait(); err != nil {
			report.Status = "unavailable"
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		if r.Method == http.MethodHead {
			return
		}
		_ = json.NewEncoder(w).Encode(report)
	}
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/muhammedshamilmt/snapgro-backend/api/responses"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/config"
	"github.com/muhammedshamilmt/snapgro-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SnapGro-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when every wired dependency answers
// a ping within the probe deadline.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP pinger, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SnapGro-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		ready := true

		probe := func(name string, p pinger) {
			if p == nil {
				checks[name] = "skipped"
				return
			}
			if err := p.Ping(ctx); err != nil {
				checks[name] = "down"
				ready = false
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "readiness probe failed", err)
				}
				return
			}
			checks[name] = "up"
		}

		probe("postgres", dbP)
		probe("redis", redisP)

		status := "ready"
		code := http.StatusOK
		if !ready {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, code, map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/LogoBenz/authenticfurniture-backend/api/responses"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/config"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/db"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/logger"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/redis"
)

const envHeader = "X-AF-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the wired dependencies. A nil probe means the dependency
// was not configured and is reported as skipped rather than failing readiness;
// the service still serves reads from the embedded fallback without either.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				checks["database"] = "unhealthy"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "health.database", err)
				}
			} else {
				checks["database"] = "ok"
			}
		} else {
			checks["database"] = "skipped"
		}

		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				checks["redis"] = "unhealthy"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "health.redis", err)
				}
			} else {
				checks["redis"] = "ok"
			}
		} else {
			checks["redis"] = "skipped"
		}

		status := "ready"
		code := http.StatusOK
		if !healthy {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		responses.WriteSuccessStatus(w, code, map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}

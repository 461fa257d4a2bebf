package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/podolskiy06021990-bit/orderdesk-backend/api/responses"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/config"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/logger"
	pkgredis "github.com/podolskiy06021990-bit/orderdesk-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OrderDesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and, when configured, redis. Any failed
// dependency flips the report to 503.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		w.Header().Set("X-OrderDesk-Env", cfg.App.Env)
		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				checks["db"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "readiness db ping failed", err)
				}
			} else {
				checks["db"] = "ok"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				checks["redis"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "readiness redis ping failed", err)
				}
			} else {
				checks["redis"] = "ok"
			}
		}

		status := http.StatusOK
		report := map[string]any{"status": "ready", "checks": checks}
		if !healthy {
			status = http.StatusServiceUnavailable
			report["status"] = "degraded"
		}
		responses.WriteSuccessStatus(w, status, report)
	}
}

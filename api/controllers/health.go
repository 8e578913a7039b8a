package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/ssh-randy/photosynthesis/api/responses"
	"github.com/ssh-randy/photosynthesis/pkg/config"
	"github.com/ssh-randy/photosynthesis/pkg/db"
	pkgerrors "github.com/ssh-randy/photosynthesis/pkg/errors"
	"github.com/ssh-randy/photosynthesis/pkg/logger"
	"github.com/ssh-randy/photosynthesis/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Photosynthesis-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every wired dependency and reports the combined result.
// Redis is optional; a nil client is simply skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Photosynthesis-Env", cfg.App.Env)

		var combined error
		checks := map[string]string{}

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				combined = multierr.Append(combined, err)
				checks["db"] = "down"
			} else {
				checks["db"] = "up"
			}
		}

		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				combined = multierr.Append(combined, err)
				checks["redis"] = "down"
			} else {
				checks["redis"] = "up"
			}
		}

		if combined != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "readiness check").
				WithDetails(map[string]any{"checks": checks})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

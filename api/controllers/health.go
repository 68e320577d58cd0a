package controllers

import (
	"net/http"

	"github.com/habistudio/habi-backend/api/responses"
	"github.com/habistudio/habi-backend/pkg/config"
	pkgerrors "github.com/habistudio/habi-backend/pkg/errors"
	"github.com/habistudio/habi-backend/pkg/logger"
	"github.com/habistudio/habi-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Habi-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Habi-Env", cfg.App.Env)
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

package controllers

import (
	"net/http"

	"github.com/ujenzihq/ujenzipay-backend/api/responses"
	"github.com/ujenzihq/ujenzipay-backend/pkg/config"
	"github.com/ujenzihq/ujenzipay-backend/pkg/db"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-UjenziPay-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-UjenziPay-Env", cfg.App.Env)
		status := "ready"
		code := http.StatusOK
		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		responses.WriteSuccessStatus(w, code, map[string]string{"status": status})
	}
}

func Ping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

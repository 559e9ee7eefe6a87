package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gestao-escolar/escolar-backend/api/responses"
	"github.com/gestao-escolar/escolar-backend/pkg/config"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
)

// Pinger is the datasource health surface the readiness probe depends on.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Escolar-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the database answers a ping. With no
// database configured the API still serves, but readiness stays degraded.
func HealthReady(cfg *config.Config, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Escolar-Env", cfg.App.Env)

		if db == nil {
			responses.WriteError(r.Context(), nil, w,
				pkgerrors.New(pkgerrors.CodeDependency, "database not configured"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), nil, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

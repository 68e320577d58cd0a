package controllers

import (
	"net/http"
	"time"

	"github.com/habistudio/habi-backend/api/responses"
	"github.com/habistudio/habi-backend/api/validators"
	"github.com/habistudio/habi-backend/internal/state"
	"github.com/habistudio/habi-backend/pkg/logger"
)

type stateLoadRequest struct {
	// File selects a snapshot by name; empty loads the newest one.
	File string `json:"file"`
}

// AdminStateSave snapshots the whole application state to disk.
func AdminStateSave(mgr *state.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := mgr.Save(r.Context(), time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"file": name})
	}
}

// AdminStateLoad restores a snapshot into the running services.
func AdminStateLoad(mgr *state.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body stateLoadRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		if body.File != "" {
			if err := mgr.RestoreFrom(r.Context(), body.File); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]any{"restored": true, "file": body.File})
			return
		}

		restored, err := mgr.RestoreLatest(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"restored": restored})
	}
}

// AdminStateSnapshots lists the saved snapshots, newest first.
func AdminStateSnapshots(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := store.List()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, files)
	}
}

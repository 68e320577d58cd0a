package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/habistudio/habi-backend/api/responses"
	"github.com/habistudio/habi-backend/api/validators"
	"github.com/habistudio/habi-backend/internal/orders"
	pkgerrors "github.com/habistudio/habi-backend/pkg/errors"
	"github.com/habistudio/habi-backend/pkg/logger"
)

type ordersRemoveRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

type orderCompleteRequest struct {
	Completed *bool `json:"completed"`
}

// AdminOrdersList returns the order log in append order.
func AdminOrdersList(log *orders.Log, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, log.List())
	}
}

// AdminOrdersRemove deletes order lines by ID. Stock is never restored.
func AdminOrdersRemove(log *orders.Log, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ordersRemoveRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := log.Remove(body.IDs...); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, log.List())
	}
}

// AdminOrderComplete toggles a line's fulfilment flag. Without a body the
// line is marked completed.
func AdminOrderComplete(log *orders.Log, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		completed := true
		if r.ContentLength > 0 {
			var body orderCompleteRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if body.Completed != nil {
				completed = *body.Completed
			}
		}

		if err := log.SetCompleted(id, completed); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"id": id, "completed": completed})
	}
}

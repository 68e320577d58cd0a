package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/habistudio/habi-backend/api/responses"
	"github.com/habistudio/habi-backend/api/validators"
	"github.com/habistudio/habi-backend/internal/cart"
	pkgerrors "github.com/habistudio/habi-backend/pkg/errors"
	"github.com/habistudio/habi-backend/pkg/logger"
)

type cartAddRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Color    string `json:"color" validate:"required"`
}

// CartFetch returns the pending lines and the badge count.
func CartFetch(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"items": svc.Items(),
			"badge": svc.Badge(),
		})
	}
}

// CartAddItem reserves stock and appends a line.
func CartAddItem(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body cartAddRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		line, err := svc.Add(body.Product, body.Quantity, body.Color)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, line)
	}
}

// CartRemoveItem drops a line and returns its stock.
func CartRemoveItem(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "lineId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line id"))
			return
		}

		if err := svc.Remove(id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"items": svc.Items(),
			"badge": svc.Badge(),
		})
	}
}

// CartCheckout moves the cart into the order log.
func CartCheckout(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moved, err := svc.Checkout()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"ordered": moved,
			"badge":   svc.Badge(),
		})
	}
}

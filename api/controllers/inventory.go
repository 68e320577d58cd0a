package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/habistudio/habi-backend/api/responses"
	"github.com/habistudio/habi-backend/api/validators"
	"github.com/habistudio/habi-backend/internal/inventory"
	"github.com/habistudio/habi-backend/pkg/logger"
)

type restockRequest struct {
	Target int `json:"target" validate:"required,min=1"`
}

type setQuantityRequest struct {
	// Quantity carries the raw admin-entered value; unparseable input
	// clamps to zero rather than failing.
	Quantity string `json:"quantity"`
}

// AdminInventoryList returns the full stock table.
func AdminInventoryList(ledger *inventory.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, ledger.Entries())
	}
}

// AdminInventorySetQuantity overwrites a product's count from raw input.
func AdminInventorySetQuantity(ledger *inventory.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product := chi.URLParam(r, "product")

		var body setQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := ledger.SetQuantity(product, body.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"product":  product,
			"quantity": ledger.Stock(product).Quantity,
		})
	}
}

// AdminInventoryRestock raises a product's count to the target level.
func AdminInventoryRestock(ledger *inventory.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product := chi.URLParam(r, "product")

		var body restockRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := ledger.Restock(product, body.Target); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"product":  product,
			"quantity": ledger.Stock(product).Quantity,
		})
	}
}

// AdminInventoryRemove deletes a product row from the ledger.
func AdminInventoryRemove(ledger *inventory.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product := chi.URLParam(r, "product")

		if err := ledger.Remove(product); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ledger.Entries())
	}
}

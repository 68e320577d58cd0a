package controllers

import (
	"net/http"

	"github.com/habistudio/habi-backend/api/responses"
	"github.com/habistudio/habi-backend/internal/catalog"
	"github.com/habistudio/habi-backend/internal/inventory"
	"github.com/habistudio/habi-backend/pkg/logger"
)

type catalogItem struct {
	catalog.Product
	Stock *int `json:"stock,omitempty"`
}

// CatalogList returns every product with its remaining stock. Made-to-order
// products carry no stock field.
func CatalogList(svc *catalog.Service, ledger *inventory.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products := svc.List()
		items := make([]catalogItem, 0, len(products))
		for _, p := range products {
			item := catalogItem{Product: p}
			if level := ledger.Stock(p.Name); !level.Untracked {
				qty := level.Quantity
				item.Stock = &qty
			}
			items = append(items, item)
		}
		responses.WriteSuccess(w, items)
	}
}

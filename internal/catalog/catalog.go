package catalog

import (
	"strings"

	apperrors "github.com/habistudio/habi-backend/pkg/errors"
	"github.com/habistudio/habi-backend/pkg/types"
)

// UntrackedMarker flags made-to-order products that carry no stock count.
const UntrackedMarker = "Customized"

// Product is an immutable catalog entry. Name is the unique, case-sensitive
// identifier used across the cart, the ledger, and snapshots.
type Product struct {
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Material string       `json:"material"`
	Price    types.Amount `json:"price"`
	Colors   []string     `json:"colors"`
}

// IsUntracked reports whether the product has no finite stock count.
func (p Product) IsUntracked() bool {
	return strings.Contains(p.Name, UntrackedMarker)
}

// HasColor reports whether the color is one of the product's selectable colors.
func (p Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// Service serves the static product reference data.
type Service struct {
	products []Product
	byName   map[string]Product
}

func NewService() *Service {
	products := seedProducts()
	byName := make(map[string]Product, len(products))
	for _, p := range products {
		byName[p.Name] = p
	}
	return &Service{products: products, byName: byName}
}

// List returns the catalog in display order.
func (s *Service) List() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// Get looks up a product by its exact name.
func (s *Service) Get(name string) (Product, error) {
	p, ok := s.byName[name]
	if !ok {
		return Product{}, apperrors.New(apperrors.CodeNotFound, "product not found")
	}
	return p, nil
}

func seedProducts() []Product {
	abaca := []string{"Natural", "Ebony", "Terracotta"}
	rattan := []string{"Honey", "Walnut"}
	buri := []string{"Natural", "Indigo", "Sage"}

	return []Product{
		{Name: "CARA", Category: "Shoulder Bag", Material: "Abaca", Price: types.FlatAmount(1450), Colors: abaca},
		{Name: "LIA", Category: "Shoulder Bag", Material: "Abaca", Price: types.FlatAmount(1450), Colors: abaca},
		{Name: "QUI", Category: "Shoulder Bag", Material: "Rattan", Price: types.FlatAmount(1650), Colors: rattan},
		{Name: "ANA", Category: "Shoulder Bag", Material: "Rattan", Price: types.FlatAmount(1650), Colors: rattan},
		{Name: "HYE", Category: "Shoulder Bag", Material: "Buri", Price: types.FlatAmount(1550), Colors: buri},
		{Name: "BABY", Category: "Shoulder Bag", Material: "Abaca", Price: types.FlatAmount(1250), Colors: abaca},
		{Name: "BIA", Category: "Shoulder Bag", Material: "Buri", Price: types.FlatAmount(1550), Colors: buri},
		{Name: "NYA", Category: "Sling Bag", Material: "Abaca", Price: types.FlatAmount(950), Colors: abaca},
		{Name: "ORA", Category: "Sling Bag", Material: "Rattan", Price: types.FlatAmount(1050), Colors: rattan},
		{Name: "NORMAL", Category: "Tote Bag", Material: "Canvas", Price: types.FlatAmount(299), Colors: []string{"Cream", "Charcoal", "Olive"}},
		{Name: "LARGE", Category: "Tote Bag", Material: "Canvas", Price: types.FlatAmount(499), Colors: []string{"Cream", "Charcoal", "Olive"}},
		{Name: "MEG", Category: "Coin Purse", Material: "Buri", Price: types.FlatAmount(149), Colors: buri},
		{Name: "AURA", Category: "Coin Purse", Material: "Abaca", Price: types.FlatAmount(149), Colors: abaca},
		{Name: "EVA", Category: "Coin Purse", Material: "Buri", Price: types.FlatAmount(199), Colors: buri},
		{Name: "AVA", Category: "Coin Purse", Material: "Abaca", Price: types.FlatAmount(199), Colors: abaca},
		{Name: "STANDARD", Category: "Saddle Bag", Material: "Leather", Price: types.FlatAmount(2450), Colors: []string{"Tan", "Dark Brown"}},
		{Name: "Customized Shoulder Bag", Category: "Shoulder Bag", Material: "Made to order", Price: types.RawAmount("5500 - 6000"), Colors: []string{"Any"}},
		{Name: "Customized Tote Bag", Category: "Tote Bag", Material: "Made to order", Price: types.RawAmount("1500 - 2500"), Colors: []string{"Any"}},
	}
}

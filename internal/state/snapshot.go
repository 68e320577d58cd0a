package state

import (
	"github.com/habistudio/habi-backend/internal/inventory"
	"github.com/habistudio/habi-backend/pkg/types"
)

// TimestampLayout is the second-resolution stamp used both inside snapshots
// and in snapshot filenames. Two saves within the same second share a
// filename and the later write wins.
const TimestampLayout = "20060102_150405"

// Snapshot is the full persisted application state.
type Snapshot struct {
	Inventory  map[string]inventory.Entry `json:"inventory"`
	Orders     []types.LineItem           `json:"orders"`
	ActiveUser *types.User                `json:"active_user"`
	CartItems  []types.LineItem           `json:"cart_items"`
	SavedAt    string                     `json:"saved_at"`
}

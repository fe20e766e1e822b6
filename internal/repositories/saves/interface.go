package saves

//go:generate mockgen -destination=mock/mock_repository.go -package=mocksaves -source=interface.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/txt-rpg/internal/domain/character"
	"github.com/KirkDiggler/txt-rpg/internal/domain/item"
	"github.com/KirkDiggler/txt-rpg/internal/domain/shop"
)

// Repository stores the single save record of a game
type Repository interface {
	// Load returns the stored save. Nothing stored is a not_found error; stored data
	// that cannot be decoded is a persistence_read error.
	Load(ctx context.Context) (*SaveData, error)

	// Save replaces the stored save
	Save(ctx context.Context, data *SaveData) error

	// Delete removes the stored save. Deleting a missing save is not an error.
	Delete(ctx context.Context) error
}

// SaveData is the persisted record: the player, a top-level copy of the inventory and
// the names of every item ever purchased.
type SaveData struct {
	Player         *character.Character `json:"player"`
	Inventory      []*item.Item         `json:"inventory,omitempty"`
	PurchasedItems shop.PurchaseRecord  `json:"purchased_items,omitempty"`
	SavedAt        time.Time            `json:"saved_at"`
}

// ResolvedInventory is the top-level inventory when present, else the player's own
func (d *SaveData) ResolvedInventory() []*item.Item {
	if d.Inventory != nil {
		return d.Inventory
	}
	if d.Player != nil {
		return d.Player.Inventory
	}
	return nil
}

// Clone returns a deep copy so stored and live state never share pointers
func (d *SaveData) Clone() *SaveData {
	if d == nil {
		return nil
	}

	c := &SaveData{
		Player:    d.Player.Clone(),
		Inventory: character.CloneItems(d.Inventory),
		SavedAt:   d.SavedAt,
	}
	if d.PurchasedItems != nil {
		c.PurchasedItems = d.PurchasedItems.Clone()
	}
	return c
}

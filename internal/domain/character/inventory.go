package character

import (
	"github.com/KirkDiggler/txt-rpg/internal/domain/item"
	gameerr "github.com/KirkDiggler/txt-rpg/internal/errors"
)

// AddItem appends an owned item to the end of the inventory
func (c *Character) AddItem(it *item.Item) {
	c.Inventory = append(c.Inventory, it)
}

// ItemAt returns the inventory entry at a 0-based index
func (c *Character) ItemAt(index int) (*item.Item, error) {
	if index < 0 || index >= len(c.Inventory) {
		return nil, gameerr.InvalidSelectionf("no inventory item at position %d", index+1).
			WithMeta("index", index).
			WithMeta("inventory_size", len(c.Inventory))
	}
	return c.Inventory[index], nil
}

// RemoveAt unequips and removes the inventory entry at a 0-based index
func (c *Character) RemoveAt(index int) (*item.Item, error) {
	it, err := c.ItemAt(index)
	if err != nil {
		return nil, err
	}

	it.Equipped = false
	c.Inventory = append(c.Inventory[:index], c.Inventory[index+1:]...)
	return it, nil
}

// Equipped returns the item currently equipped in a slot, or nil
func (c *Character) Equipped(slot item.Slot) *item.Item {
	for _, it := range c.Inventory {
		if it.Equipped && it.Slot == slot {
			return it
		}
	}
	return nil
}

// ToggleEquip equips or unequips an owned item. Equipping replaces whatever else holds
// the same slot; the replaced item is returned. Selecting an equipped item unequips it.
func (c *Character) ToggleEquip(it *item.Item) (replaced *item.Item, err error) {
	if it == nil {
		return nil, gameerr.InvalidArgument("item is required")
	}
	if !c.owns(it) {
		return nil, gameerr.InvalidArgumentf("%s is not in the inventory", it.Name)
	}

	if it.Equipped {
		it.Equipped = false
		return nil, nil
	}

	for _, other := range c.Inventory {
		if other != it && other.Equipped && other.Slot == it.Slot {
			other.Equipped = false
			replaced = other
		}
	}

	it.Equipped = true
	return replaced, nil
}

func (c *Character) owns(it *item.Item) bool {
	for _, owned := range c.Inventory {
		if owned == it {
			return true
		}
	}
	return false
}

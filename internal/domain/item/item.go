package item

import "fmt"

// Slot is the equipment slot an item occupies. The set is closed.
type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotArmor  Slot = "armor"
)

// Valid reports whether the slot is one of the known slots
func (s Slot) Valid() bool {
	return s == SlotWeapon || s == SlotArmor
}

// Item is a single piece of equipment. Catalog entries and owned copies share the type;
// only owned copies are ever equipped.
type Item struct {
	Name         string `json:"name" yaml:"name" validate:"required"`
	Description  string `json:"description" yaml:"description"`
	AttackBonus  int    `json:"attack_bonus" yaml:"attack_bonus" validate:"gte=0"`
	DefenseBonus int    `json:"defense_bonus" yaml:"defense_bonus" validate:"gte=0"`
	Slot         Slot   `json:"slot" yaml:"slot" validate:"required,oneof=weapon armor"`
	Equipped     bool   `json:"equipped" yaml:"-"`
}

// Copy returns an unequipped value copy, the form a purchase places in an inventory
func (i *Item) Copy() *Item {
	if i == nil {
		return nil
	}
	c := *i
	c.Equipped = false
	return &c
}

// Clone returns an exact copy including the equipped flag
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// StatLine renders the non-zero bonuses, e.g. "Attack +15 | Defense +5"
func (i *Item) StatLine() string {
	switch {
	case i.AttackBonus > 0 && i.DefenseBonus > 0:
		return fmt.Sprintf("Attack +%d | Defense +%d", i.AttackBonus, i.DefenseBonus)
	case i.AttackBonus > 0:
		return fmt.Sprintf("Attack +%d", i.AttackBonus)
	case i.DefenseBonus > 0:
		return fmt.Sprintf("Defense +%d", i.DefenseBonus)
	default:
		return "No bonus"
	}
}

func (i *Item) String() string {
	return fmt.Sprintf("%s | %s | %s", i.Name, i.StatLine(), i.Description)
}

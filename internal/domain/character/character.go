package character

import (
	"github.com/KirkDiggler/txt-rpg/internal/domain/item"
)

const (
	// MaxHealth caps Health for every character
	MaxHealth = 100

	DefaultName    = "Chad"
	DefaultJob     = "Warrior"
	DefaultAttack  = 10
	DefaultDefense = 5
	DefaultGold    = 1500
)

// Character is the player record. Inventory order is the order items were acquired.
type Character struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Job               string       `json:"job"`
	Level             int          `json:"level" validate:"gte=1"`
	BaseAttack        int          `json:"base_attack" validate:"gte=0"`
	BaseDefense       int          `json:"base_defense" validate:"gte=0"`
	Health            int          `json:"health" validate:"gte=0,lte=100"`
	Gold              int          `json:"gold" validate:"gte=0"`
	DungeonClearCount int          `json:"dungeon_clear_count" validate:"gte=0"`
	Inventory         []*item.Item `json:"inventory" validate:"dive,required"`
}

// NewDefault creates the starting character
func NewDefault(id string) *Character {
	return &Character{
		ID:          id,
		Name:        DefaultName,
		Job:         DefaultJob,
		Level:       1,
		BaseAttack:  DefaultAttack,
		BaseDefense: DefaultDefense,
		Health:      MaxHealth,
		Gold:        DefaultGold,
		Inventory:   []*item.Item{},
	}
}

// TotalAttack is base attack plus the attack bonus of every equipped item
func (c *Character) TotalAttack() int {
	total := c.BaseAttack
	for _, it := range c.Inventory {
		if it.Equipped {
			total += it.AttackBonus
		}
	}
	return total
}

// TotalDefense is base defense plus the defense bonus of every equipped item
func (c *Character) TotalDefense() int {
	total := c.BaseDefense
	for _, it := range c.Inventory {
		if it.Equipped {
			total += it.DefenseBonus
		}
	}
	return total
}

// EquippedBonus returns the attack and defense contributed by equipment alone
func (c *Character) EquippedBonus() (attack, defense int) {
	return c.TotalAttack() - c.BaseAttack, c.TotalDefense() - c.BaseDefense
}

// Heal raises health by amount, never above MaxHealth. Returns the amount actually restored.
func (c *Character) Heal(amount int) int {
	before := c.Health
	c.Health += amount
	if c.Health > MaxHealth {
		c.Health = MaxHealth
	}
	return c.Health - before
}

// TakeDamage lowers health by amount, never below zero. Returns the amount actually lost.
func (c *Character) TakeDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	before := c.Health
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
	return before - c.Health
}

// CheckLevelUp advances one level when the clear count has caught up with the level.
// Base attack does not grow on level up.
func (c *Character) CheckLevelUp() bool {
	if c.DungeonClearCount != c.Level {
		return false
	}

	c.Level++
	c.BaseDefense++
	return true
}

// Clone returns a deep copy, inventory included
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Inventory = CloneItems(c.Inventory)
	return &clone
}

// CloneItems deep copies an item list, preserving equipped flags
func CloneItems(items []*item.Item) []*item.Item {
	if items == nil {
		return nil
	}

	out := make([]*item.Item, 0, len(items))
	for _, it := range items {
		out = append(out, it.Clone())
	}
	return out
}

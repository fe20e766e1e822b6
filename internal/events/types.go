package events

import (
	"github.com/KirkDiggler/txt-rpg/internal/domain/dungeon"
	"github.com/KirkDiggler/txt-rpg/internal/domain/item"
)

// EventType represents the type of game event
type EventType string

// Event is the base interface for all game events
type Event interface {
	GetType() EventType
	GetCharacterID() string
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type        EventType
	CharacterID string
	Cancelled   bool
}

func (e *BaseEvent) GetType() EventType     { return e.Type }
func (e *BaseEvent) GetCharacterID() string { return e.CharacterID }
func (e *BaseEvent) IsCancelled() bool      { return e.Cancelled }
func (e *BaseEvent) Cancel()                { e.Cancelled = true }

// DungeonRunEvent is emitted after every dungeon resolution
type DungeonRunEvent struct {
	BaseEvent
	Dungeon   *dungeon.Dungeon
	Outcome   string
	Reward    int
	LeveledUp bool
	Level     int
}

// ItemPurchasedEvent is emitted after gold changed hands for a new item
type ItemPurchasedEvent struct {
	BaseEvent
	Item  *item.Item
	Price int
}

// ItemSoldEvent is emitted after an item left the inventory for gold
type ItemSoldEvent struct {
	BaseEvent
	Item  *item.Item
	Price int
}

// RestedEvent is emitted after a paid rest
type RestedEvent struct {
	BaseEvent
	Cost   int
	Healed int
}

// GameResetEvent is emitted after the character was replaced by a new one
type GameResetEvent struct {
	BaseEvent
	PreviousCharacterID string
}

// NewDungeonRunEvent builds a dungeon run event
func NewDungeonRunEvent(characterID string, d *dungeon.Dungeon, outcome string, reward int, leveledUp bool, level int) *DungeonRunEvent {
	return &DungeonRunEvent{
		BaseEvent: BaseEvent{Type: EventTypeDungeonRun, CharacterID: characterID},
		Dungeon:   d,
		Outcome:   outcome,
		Reward:    reward,
		LeveledUp: leveledUp,
		Level:     level,
	}
}

// NewItemPurchasedEvent builds a purchase event
func NewItemPurchasedEvent(characterID string, it *item.Item, price int) *ItemPurchasedEvent {
	return &ItemPurchasedEvent{
		BaseEvent: BaseEvent{Type: EventTypeItemPurchased, CharacterID: characterID},
		Item:      it,
		Price:     price,
	}
}

// NewItemSoldEvent builds a sale event
func NewItemSoldEvent(characterID string, it *item.Item, price int) *ItemSoldEvent {
	return &ItemSoldEvent{
		BaseEvent: BaseEvent{Type: EventTypeItemSold, CharacterID: characterID},
		Item:      it,
		Price:     price,
	}
}

// NewRestedEvent builds a rest event
func NewRestedEvent(characterID string, cost, healed int) *RestedEvent {
	return &RestedEvent{
		BaseEvent: BaseEvent{Type: EventTypeRested, CharacterID: characterID},
		Cost:      cost,
		Healed:    healed,
	}
}

// NewGameResetEvent builds a reset event for the new character
func NewGameResetEvent(characterID, previousID string) *GameResetEvent {
	return &GameResetEvent{
		BaseEvent:           BaseEvent{Type: EventTypeGameReset, CharacterID: characterID},
		PreviousCharacterID: previousID,
	}
}

package events

// Event type constants
const (
	EventTypeDungeonRun    EventType = "dungeon_run"
	EventTypeItemPurchased EventType = "item_purchased"
	EventTypeItemSold      EventType = "item_sold"
	EventTypeRested        EventType = "rested"
	EventTypeGameReset     EventType = "game_reset"
)

// AllEventTypes lists every event the session emits
var AllEventTypes = []EventType{
	EventTypeDungeonRun,
	EventTypeItemPurchased,
	EventTypeItemSold,
	EventTypeRested,
	EventTypeGameReset,
}

// Priority levels for listener order, lowest first
const (
	PriorityRecording = 100 // Metrics and other bookkeeping
	PriorityJournal   = 200 // Log lines describing what happened
)

package events

import "log/slog"

// Journal writes one log line per game event
type Journal struct {
	logger *slog.Logger
}

// NewJournal creates a journal listener; a nil logger means the slog default
func NewJournal(logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Journal{logger: logger}
}

func (j *Journal) ID() string    { return "journal" }
func (j *Journal) Priority() int { return PriorityJournal }

// HandleEvent logs the event fields that matter for replaying a session
func (j *Journal) HandleEvent(event Event) error {
	log := j.logger.With("event", event.GetType(), "character_id", event.GetCharacterID())

	switch e := event.(type) {
	case *DungeonRunEvent:
		log.Debug("game event",
			"dungeon", e.Dungeon.Name,
			"outcome", e.Outcome,
			"reward", e.Reward,
			"level", e.Level)
	case *ItemPurchasedEvent:
		log.Debug("game event", "item", e.Item.Name, "price", e.Price)
	case *ItemSoldEvent:
		log.Debug("game event", "item", e.Item.Name, "price", e.Price)
	case *RestedEvent:
		log.Debug("game event", "cost", e.Cost, "healed", e.Healed)
	case *GameResetEvent:
		log.Debug("game event", "previous_character_id", e.PreviousCharacterID)
	default:
		log.Debug("game event")
	}
	return nil
}

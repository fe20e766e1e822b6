package metrics

import "github.com/KirkDiggler/txt-rpg/internal/events"

// listener feeds game events into a Recorder
type listener struct {
	recorder *Recorder
}

// Listener returns an event listener that records every game event on r
func (r *Recorder) Listener() events.EventListener {
	return &listener{recorder: r}
}

func (l *listener) ID() string    { return "metrics" }
func (l *listener) Priority() int { return events.PriorityRecording }

func (l *listener) HandleEvent(event events.Event) error {
	switch e := event.(type) {
	case *events.DungeonRunEvent:
		l.recorder.DungeonRun(e.Dungeon.Name, e.Outcome, e.Reward)
		if e.LeveledUp {
			l.recorder.LevelUp()
		}
	case *events.ItemPurchasedEvent:
		l.recorder.ItemBought(e.Item.Name, e.Price)
	case *events.ItemSoldEvent:
		l.recorder.ItemSold(e.Item.Name, e.Price)
	case *events.RestedEvent:
		l.recorder.Rest(e.Cost)
	}
	return nil
}

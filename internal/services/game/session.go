// Package game holds the play session: the one mutable game context that every menu
// action goes through. A Session is not safe for concurrent use; the shell drives it
// one action at a time.
package game

import (
	"context"
	"time"

	"github.com/KirkDiggler/txt-rpg/internal/catalog"
	"github.com/KirkDiggler/txt-rpg/internal/dice"
	"github.com/KirkDiggler/txt-rpg/internal/domain/character"
	dungeondomain "github.com/KirkDiggler/txt-rpg/internal/domain/dungeon"
	"github.com/KirkDiggler/txt-rpg/internal/domain/item"
	shopdomain "github.com/KirkDiggler/txt-rpg/internal/domain/shop"
	gameerr "github.com/KirkDiggler/txt-rpg/internal/errors"
	"github.com/KirkDiggler/txt-rpg/internal/events"
	"github.com/KirkDiggler/txt-rpg/internal/logger"
	"github.com/KirkDiggler/txt-rpg/internal/metrics"
	"github.com/KirkDiggler/txt-rpg/internal/repositories/saves"
	"github.com/KirkDiggler/txt-rpg/internal/services/dungeon"
	"github.com/KirkDiggler/txt-rpg/internal/services/shop"
	"github.com/KirkDiggler/txt-rpg/internal/uuid"
)

const (
	RestCost   = 500
	RestHealth = 100
)

// Origin records where the session's starting state came from
type Origin string

const (
	OriginSave      Origin = "save"
	OriginNew       Origin = "new"
	OriginRecovered Origin = "recovered"
)

// Session is the live game state plus the services that act on it
type Session struct {
	id     string
	origin Origin

	char   *character.Character
	record shopdomain.PurchaseRecord

	catalog        *catalog.Catalog
	shopService    shop.Service
	dungeonService dungeon.Service
	repository     saves.Repository
	metrics        *metrics.Recorder
	eventBus       *events.Bus
	uuidGenerator  uuid.Generator
	now            func() time.Time
}

// SessionConfig holds configuration for a session
type SessionConfig struct {
	Repository     saves.Repository  // Required
	Catalog        *catalog.Catalog  // Optional (embedded catalog if nil)
	ShopService    shop.Service      // Optional
	DungeonService dungeon.Service   // Optional
	Roller         dice.Roller       // Optional, used only when DungeonService is nil
	Metrics        *metrics.Recorder // Optional, subscribed to the event bus
	EventBus       *events.Bus       // Optional
	UUIDGenerator  uuid.Generator    // Optional
	Clock          func() time.Time  // Optional
}

// Status is a read-only snapshot for the status screen
type Status struct {
	Name         string
	Job          string
	Level        int
	Attack       int
	AttackBonus  int
	Defense      int
	DefenseBonus int
	Health       int
	MaxHealth    int
	Gold         int
	ClearCount   int
}

// EquipResult describes an equip toggle
type EquipResult struct {
	Item     *item.Item
	Equipped bool
	Replaced *item.Item
}

// RestResult describes a paid rest
type RestResult struct {
	Cost         int
	HealthBefore int
	HealthAfter  int
	GoldBefore   int
	GoldAfter    int
}

// SellListing is one row of the sell screen
type SellListing struct {
	Item      *item.Item
	SellPrice int
}

// NewSession builds a session from the stored save, or from the default character when
// there is none. A save that cannot be read is logged and replaced by a new game.
func NewSession(ctx context.Context, cfg *SessionConfig) *Session {
	if cfg == nil || cfg.Repository == nil {
		panic("repository is required")
	}

	s := &Session{
		catalog:        cfg.Catalog,
		shopService:    cfg.ShopService,
		dungeonService: cfg.DungeonService,
		repository:     cfg.Repository,
		metrics:        cfg.Metrics,
		eventBus:       cfg.EventBus,
		uuidGenerator:  cfg.UUIDGenerator,
		now:            cfg.Clock,
	}
	if s.catalog == nil {
		s.catalog = catalog.MustLoad()
	}
	if s.shopService == nil {
		s.shopService = shop.NewService(&shop.ServiceConfig{Catalog: s.catalog})
	}
	if s.dungeonService == nil {
		s.dungeonService = dungeon.NewService(&dungeon.ServiceConfig{Roller: cfg.Roller})
	}
	if s.uuidGenerator == nil {
		s.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.eventBus == nil {
		s.eventBus = events.NewBus()
	}
	if s.metrics != nil {
		s.eventBus.SubscribeAll(s.metrics.Listener())
	}
	s.eventBus.SubscribeAll(events.NewJournal(logger.FromContext(ctx)))

	s.id = s.uuidGenerator.New()
	s.load(ctx)
	return s
}

func (s *Session) load(ctx context.Context) {
	log := logger.FromContext(ctx)

	data, err := s.repository.Load(ctx)
	switch {
	case err == nil:
		s.char = data.Player
		s.char.Inventory = character.CloneItems(data.ResolvedInventory())
		if s.char.Inventory == nil {
			s.char.Inventory = []*item.Item{}
		}
		if s.char.ID == "" {
			s.char.ID = s.uuidGenerator.New()
		}
		s.record = data.PurchasedItems
		if s.record == nil {
			s.record = shopdomain.NewPurchaseRecord()
		}
		s.origin = OriginSave
		log.Info("save loaded", "character_id", s.char.ID, "saved_at", data.SavedAt)
		return

	case gameerr.IsNotFound(err):
		s.origin = OriginNew
		log.Info("no save found, starting a new game")

	default:
		s.origin = OriginRecovered
		log.Warn("save unreadable, starting a new game",
			"error", err,
			"code", gameerr.GetCode(err))
	}

	s.char = character.NewDefault(s.uuidGenerator.New())
	s.record = shopdomain.NewPurchaseRecord()
}

// ID identifies this session in logs
func (s *Session) ID() string {
	return s.id
}

// Origin reports whether the session came from a save, a new game or a recovered one
func (s *Session) Origin() Origin {
	return s.origin
}

// Metrics returns the session's recorder, which may be nil
func (s *Session) Metrics() *metrics.Recorder {
	return s.metrics
}

// Character returns a deep copy of the current character
func (s *Session) Character() *character.Character {
	return s.char.Clone()
}

// PurchaseRecord returns a copy of the purchase record
func (s *Session) PurchaseRecord() shopdomain.PurchaseRecord {
	return s.record.Clone()
}

// Status returns the numbers shown on the status screen
func (s *Session) Status() *Status {
	atkBonus, defBonus := s.char.EquippedBonus()
	return &Status{
		Name:         s.char.Name,
		Job:          s.char.Job,
		Level:        s.char.Level,
		Attack:       s.char.TotalAttack(),
		AttackBonus:  atkBonus,
		Defense:      s.char.TotalDefense(),
		DefenseBonus: defBonus,
		Health:       s.char.Health,
		MaxHealth:    character.MaxHealth,
		Gold:         s.char.Gold,
		ClearCount:   s.char.DungeonClearCount,
	}
}

// Inventory returns copies of the owned items in order
func (s *Session) Inventory() []*item.Item {
	return character.CloneItems(s.char.Inventory)
}

// ToggleEquip equips or unequips the inventory item at a 0-based index
func (s *Session) ToggleEquip(ctx context.Context, index int) (*EquipResult, error) {
	it, err := s.char.ItemAt(index)
	if err != nil {
		return nil, err
	}

	replaced, err := s.char.ToggleEquip(it)
	if err != nil {
		return nil, gameerr.Wrap(err, "failed to toggle equipment")
	}

	result := &EquipResult{
		Item:     it.Clone(),
		Equipped: it.Equipped,
		Replaced: replaced.Clone(),
	}

	logger.FromContext(ctx).Info("equipment toggled",
		"item", it.Name,
		"equipped", it.Equipped,
		"attack", s.char.TotalAttack(),
		"defense", s.char.TotalDefense())

	return result, nil
}

// ShopListings returns the buy screen rows
func (s *Session) ShopListings() []*shop.Listing {
	return s.shopService.Listings(s.record)
}

// SellListings returns the sell screen rows in inventory order
func (s *Session) SellListings() []*SellListing {
	listings := make([]*SellListing, 0, len(s.char.Inventory))
	for _, it := range s.char.Inventory {
		listings = append(listings, &SellListing{
			Item:      it.Clone(),
			SellPrice: shop.SellPrice(it),
		})
	}
	return listings
}

// Purchase buys the shop item at a 0-based index
func (s *Session) Purchase(ctx context.Context, index int) (*shop.PurchaseResult, error) {
	it, err := s.catalog.ItemAt(index)
	if err != nil {
		return nil, err
	}

	result, err := s.shopService.Purchase(ctx, s.char, s.record, it.Name)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.NewItemPurchasedEvent(s.char.ID, result.Item, result.Price))
	return result, nil
}

// Sell sells the inventory item at a 0-based index
func (s *Session) Sell(ctx context.Context, index int) (*shop.SaleResult, error) {
	result, err := s.shopService.Sell(ctx, s.char, index)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.NewItemSoldEvent(s.char.ID, result.Item, result.Price))
	return result, nil
}

// Dungeons returns the dungeon tiers, easiest first
func (s *Session) Dungeons() []*dungeondomain.Dungeon {
	return s.catalog.Dungeons()
}

// EnterDungeon runs the dungeon at a 0-based index
func (s *Session) EnterDungeon(ctx context.Context, index int) (*dungeon.Result, error) {
	d, err := s.catalog.DungeonAt(index)
	if err != nil {
		return nil, err
	}

	result, err := s.dungeonService.Resolve(ctx, s.char, d)
	if err != nil {
		return nil, gameerr.Wrapf(err, "failed to resolve %s", d.Name)
	}

	s.emit(ctx, events.NewDungeonRunEvent(s.char.ID, d, string(result.Outcome), result.Reward, result.LeveledUp, result.Level))
	return result, nil
}

// Rest spends RestCost gold to restore up to RestHealth health
func (s *Session) Rest(ctx context.Context) (*RestResult, error) {
	if s.char.Gold < RestCost {
		return nil, gameerr.InsufficientGoldf("resting costs %d G, you have %d G", RestCost, s.char.Gold).
			WithMeta("price", RestCost).
			WithMeta("gold", s.char.Gold)
	}

	result := &RestResult{
		Cost:         RestCost,
		HealthBefore: s.char.Health,
		GoldBefore:   s.char.Gold,
	}

	s.char.Gold -= RestCost
	s.char.Heal(RestHealth)

	result.HealthAfter = s.char.Health
	result.GoldAfter = s.char.Gold

	s.emit(ctx, events.NewRestedEvent(s.char.ID, RestCost, result.HealthAfter-result.HealthBefore))
	logger.FromContext(ctx).Info("rested",
		"health_before", result.HealthBefore,
		"health_after", result.HealthAfter,
		"gold_after", result.GoldAfter)

	return result, nil
}

// Reset starts over with the default character, an empty purchase record and no save.
// The in-memory reset happens even when the stored save cannot be deleted.
func (s *Session) Reset(ctx context.Context) error {
	previousID := s.char.ID
	s.char = character.NewDefault(s.uuidGenerator.New())
	s.record = shopdomain.NewPurchaseRecord()
	s.origin = OriginNew
	s.emit(ctx, events.NewGameResetEvent(s.char.ID, previousID))

	log := logger.FromContext(ctx)
	if err := s.repository.Delete(ctx); err != nil {
		log.Warn("failed to delete save during reset", "error", err)
		return gameerr.Wrap(err, "game reset but the old save could not be deleted")
	}

	log.Info("game reset", "character_id", s.char.ID)
	return nil
}

// emit publishes a game event; listener failures are logged and never undo the action
func (s *Session) emit(ctx context.Context, event events.Event) {
	if err := s.eventBus.Emit(event); err != nil {
		logger.FromContext(ctx).Warn("event listener failed",
			"event", event.GetType(),
			"error", err)
	}
}

// Save writes the current state through the repository
func (s *Session) Save(ctx context.Context) error {
	data := &saves.SaveData{
		Player:         s.char.Clone(),
		Inventory:      character.CloneItems(s.char.Inventory),
		PurchasedItems: s.record.Clone(),
		SavedAt:        s.now().UTC(),
	}

	if err := s.repository.Save(ctx, data); err != nil {
		logger.FromContext(ctx).Warn("failed to save game", "error", err)
		return err
	}

	logger.FromContext(ctx).Info("game saved",
		"character_id", s.char.ID,
		"gold", s.char.Gold,
		"level", s.char.Level)
	return nil
}

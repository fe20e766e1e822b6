package game_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mockdice "github.com/KirkDiggler/txt-rpg/internal/dice/mock"
	"github.com/KirkDiggler/txt-rpg/internal/domain/character"
	"github.com/KirkDiggler/txt-rpg/internal/domain/item"
	gameerr "github.com/KirkDiggler/txt-rpg/internal/errors"
	"github.com/KirkDiggler/txt-rpg/internal/events"
	"github.com/KirkDiggler/txt-rpg/internal/logger"
	"github.com/KirkDiggler/txt-rpg/internal/metrics"
	"github.com/KirkDiggler/txt-rpg/internal/repositories/saves"
	mocksaves "github.com/KirkDiggler/txt-rpg/internal/repositories/saves/mock"
	"github.com/KirkDiggler/txt-rpg/internal/services/dungeon"
	mockdungeon "github.com/KirkDiggler/txt-rpg/internal/services/dungeon/mock"
	"github.com/KirkDiggler/txt-rpg/internal/services/game"
	"github.com/KirkDiggler/txt-rpg/internal/testutils"
	"github.com/KirkDiggler/txt-rpg/internal/uuid"
)

const (
	leatherArmor = 0
	ironArmor    = 1
	oldSword     = 5
	axe          = 6

	easyDungeon = 0
	hellDungeon = 3
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type SessionTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *saves.InMemoryRepository
	roller  *mockdice.ManualMockRoller
	metrics *metrics.Recorder
}

func (s *SessionTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = saves.NewInMemoryRepository()
	s.roller = mockdice.NewManualMockRoller()
	s.metrics = metrics.New()
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) newSession() *game.Session {
	return game.NewSession(s.ctx, &game.SessionConfig{
		Repository:    s.repo,
		Roller:        s.roller,
		Metrics:       s.metrics,
		UUIDGenerator: uuid.StaticGenerator("id-1"),
		Clock:         func() time.Time { return fixedNow },
	})
}

func (s *SessionTestSuite) seed(mutate func(c *character.Character)) {
	c := character.NewDefault("seeded")
	mutate(c)
	s.Require().NoError(s.repo.Save(s.ctx, &saves.SaveData{Player: c}))
}

func (s *SessionTestSuite) TestNewSession_DefaultCharacter() {
	session := s.newSession()

	s.Equal(game.OriginNew, session.Origin())
	s.Equal("id-1", session.ID())

	status := session.Status()
	s.Equal("Chad", status.Name)
	s.Equal("Warrior", status.Job)
	s.Equal(1, status.Level)
	s.Equal(10, status.Attack)
	s.Equal(5, status.Defense)
	s.Equal(100, status.Health)
	s.Equal(100, status.MaxHealth)
	s.Equal(1500, status.Gold)
	s.Equal(0, status.ClearCount)
	s.Empty(session.Inventory())
}

// Scenario: a fresh character buys the cheapest weapon and equips it
func (s *SessionTestSuite) TestScenario_BuyAndEquip() {
	session := s.newSession()

	bought, err := session.Purchase(s.ctx, oldSword)
	s.Require().NoError(err)
	s.Equal("Old Sword", bought.Item.Name)
	s.Equal(750, bought.Price)
	s.Equal(750, session.Status().Gold)

	equip, err := session.ToggleEquip(s.ctx, 0)
	s.Require().NoError(err)
	s.True(equip.Equipped)
	s.Nil(equip.Replaced)

	status := session.Status()
	s.Equal(15, status.Attack)
	s.Equal(5, status.AttackBonus)
}

// Scenario: an under-defended character fails on a high roll
func (s *SessionTestSuite) TestScenario_UnderDefendedFailure() {
	s.seed(func(c *character.Character) {
		c.BaseDefense = 3
	})
	session := s.newSession()
	s.roller.SetNextBetween(1, 70)

	result, err := session.EnterDungeon(s.ctx, easyDungeon)

	s.Require().NoError(err)
	s.Equal(dungeon.OutcomeFailure, result.Outcome)
	s.Equal(50, result.HealthAfter)

	status := session.Status()
	s.Equal(50, status.Health)
	s.Equal(1500, status.Gold)
	s.Equal(0, status.ClearCount)
	s.Equal(1, status.Level)
}

// Scenario: the first clear levels a level 1 character up
func (s *SessionTestSuite) TestScenario_FirstClearLevelsUp() {
	session := s.newSession()
	s.roller.SetNextBetween(20, 20)
	s.roller.SetNextBetween(10, 12)

	result, err := session.EnterDungeon(s.ctx, easyDungeon)

	s.Require().NoError(err)
	s.Equal(dungeon.OutcomeSuccess, result.Outcome)
	s.True(result.LeveledUp)
	s.Equal(1120, result.Reward)

	status := session.Status()
	s.Equal(1, status.ClearCount)
	s.Equal(2, status.Level)
	s.Equal(6, status.Defense)
	s.Equal(10, status.Attack)
	s.Equal(80, status.Health)
	s.Equal(2620, status.Gold)

	summary, err := s.metrics.Summary()
	s.Require().NoError(err)
	s.Equal(1, summary.DungeonSuccesses)
	s.Equal(1, summary.LevelUps)
	s.Equal(1120, summary.GoldEarned)
}

func (s *SessionTestSuite) TestToggleEquip_ReplacesAndUnequips() {
	s.seed(func(c *character.Character) {
		c.Gold = 100000
	})
	session := s.newSession()
	_, err := session.Purchase(s.ctx, oldSword)
	s.Require().NoError(err)
	_, err = session.Purchase(s.ctx, axe)
	s.Require().NoError(err)

	_, err = session.ToggleEquip(s.ctx, 0)
	s.Require().NoError(err)
	swap, err := session.ToggleEquip(s.ctx, 1)
	s.Require().NoError(err)

	s.Require().NotNil(swap.Replaced)
	s.Equal("Old Sword", swap.Replaced.Name)
	s.Equal(25, session.Status().Attack)

	off, err := session.ToggleEquip(s.ctx, 1)
	s.Require().NoError(err)
	s.False(off.Equipped)
	s.Equal(10, session.Status().Attack)
}

func (s *SessionTestSuite) TestInvalidSelections() {
	session := s.newSession()

	_, err := session.ToggleEquip(s.ctx, 0)
	s.True(gameerr.IsInvalidSelection(err))

	_, err = session.Purchase(s.ctx, 10)
	s.True(gameerr.IsInvalidSelection(err))

	_, err = session.Sell(s.ctx, 0)
	s.True(gameerr.IsInvalidSelection(err))

	_, err = session.EnterDungeon(s.ctx, 4)
	s.True(gameerr.IsInvalidSelection(err))

	s.Equal(1500, session.Status().Gold)
	s.Equal(0, s.roller.Remaining())
}

func (s *SessionTestSuite) TestSellBlocksRepurchase() {
	session := s.newSession()
	_, err := session.Purchase(s.ctx, ironArmor)
	s.Require().NoError(err)

	listings := session.SellListings()
	s.Require().Len(listings, 1)
	s.Equal(1275, listings[0].SellPrice)

	sale, err := session.Sell(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal(1275, sale.Price)
	s.Equal(1275, session.Status().Gold)

	_, err = session.Purchase(s.ctx, ironArmor)
	s.True(gameerr.IsAlreadyPurchased(err))
	s.True(session.ShopListings()[ironArmor].Purchased)
}

func (s *SessionTestSuite) TestPurchase_InsufficientGold() {
	session := s.newSession()

	_, err := session.Purchase(s.ctx, axe)

	s.True(gameerr.IsInsufficientGold(err))
	s.Equal(1500, session.Status().Gold)
	s.Empty(session.Inventory())
	s.False(session.PurchaseRecord().Has("Axe"))
}

func (s *SessionTestSuite) TestRest() {
	s.seed(func(c *character.Character) {
		c.Health = 30
	})
	session := s.newSession()

	result, err := session.Rest(s.ctx)

	s.Require().NoError(err)
	s.Equal(500, result.Cost)
	s.Equal(30, result.HealthBefore)
	s.Equal(100, result.HealthAfter)
	s.Equal(1000, result.GoldAfter)
}

func (s *SessionTestSuite) TestRest_InsufficientGold() {
	s.seed(func(c *character.Character) {
		c.Gold = 499
		c.Health = 10
	})
	session := s.newSession()

	_, err := session.Rest(s.ctx)

	s.True(gameerr.IsInsufficientGold(err))
	s.Equal(10, session.Status().Health)
	s.Equal(499, session.Status().Gold)
}

func (s *SessionTestSuite) TestSaveAndReload() {
	session := s.newSession()
	_, err := session.Purchase(s.ctx, leatherArmor)
	s.Require().NoError(err)
	_, err = session.ToggleEquip(s.ctx, 0)
	s.Require().NoError(err)

	s.Require().NoError(session.Save(s.ctx))

	stored, err := s.repo.Load(s.ctx)
	s.Require().NoError(err)
	s.True(stored.SavedAt.Equal(fixedNow))
	s.Len(stored.Inventory, 1)
	s.True(stored.PurchasedItems.Has("Leather Armor"))

	reloaded := s.newSession()
	s.Equal(game.OriginSave, reloaded.Origin())
	s.Equal(session.Status(), reloaded.Status())
	s.Equal(session.Inventory(), reloaded.Inventory())
	s.Equal(session.PurchaseRecord(), reloaded.PurchaseRecord())
	s.Equal(10, reloaded.Status().Defense)
}

func (s *SessionTestSuite) TestReset() {
	session := s.newSession()
	_, err := session.Purchase(s.ctx, oldSword)
	s.Require().NoError(err)
	s.Require().NoError(session.Save(s.ctx))

	s.Require().NoError(session.Reset(s.ctx))

	s.Equal(1500, session.Status().Gold)
	s.Empty(session.Inventory())
	s.Empty(session.PurchaseRecord().Names())

	_, err = s.repo.Load(s.ctx)
	s.True(gameerr.IsNotFound(err))

	_, err = session.Purchase(s.ctx, oldSword)
	s.NoError(err, "reset reopens every purchase")
}

func TestNewSession_UnreadableSaveFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocksaves.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(nil, gameerr.PersistenceRead(errors.New("bad json"), "failed to decode save"))

	session := game.NewSession(context.Background(), &game.SessionConfig{Repository: repo})

	assert.Equal(t, game.OriginRecovered, session.Origin())
	assert.Equal(t, 1500, session.Status().Gold)
	assert.NotEmpty(t, session.Character().ID)
}

func TestNewSession_UsesPlayerInventoryWhenTopLevelMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocksaves.NewMockRepository(ctrl)
	c := testutils.CreateTestCharacter("")
	repo.EXPECT().Load(gomock.Any()).Return(&saves.SaveData{Player: c}, nil)

	session := game.NewSession(context.Background(), &game.SessionConfig{
		Repository:    repo,
		UUIDGenerator: uuid.StaticGenerator("fresh"),
	})

	assert.Equal(t, game.OriginSave, session.Origin())
	assert.Len(t, session.Inventory(), 3)
	assert.Equal(t, 25, session.Status().Attack)
	assert.Equal(t, 22, session.Status().Defense)
	assert.Equal(t, "fresh", session.Character().ID)
	assert.NotNil(t, session.PurchaseRecord())
}

func TestSession_SaveFailureKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocksaves.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(nil, gameerr.NotFound("no save"))
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(gameerr.PersistenceWrite(errors.New("disk full"), "failed to write save file"))

	session := game.NewSession(context.Background(), &game.SessionConfig{Repository: repo})
	_, err := session.Purchase(context.Background(), oldSword)
	require.NoError(t, err)

	err = session.Save(context.Background())

	assert.True(t, gameerr.IsPersistenceWrite(err))
	assert.Equal(t, 750, session.Status().Gold)
}

func TestSession_ResetDeleteFailureStillResets(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocksaves.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(&saves.SaveData{Player: testutils.CreateTestCharacter("c")}, nil)
	repo.EXPECT().Delete(gomock.Any()).Return(gameerr.PersistenceWrite(errors.New("read-only"), "failed to delete save file"))

	session := game.NewSession(context.Background(), &game.SessionConfig{Repository: repo})

	err := session.Reset(context.Background())

	assert.True(t, gameerr.IsPersistenceWrite(err))
	assert.Equal(t, 1, session.Status().Level)
	assert.Empty(t, session.Inventory())
}

func TestSession_DungeonErrorLeavesStateAlone(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mockdungeon.NewMockService(ctrl)
	svc.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("dice jammed"))

	m := metrics.New()
	session := game.NewSession(context.Background(), &game.SessionConfig{
		Repository:     saves.NewInMemoryRepository(),
		DungeonService: svc,
		Metrics:        m,
	})

	_, err := session.EnterDungeon(context.Background(), hellDungeon)

	assert.EqualError(t, err, "failed to resolve Hell Dungeon: dice jammed")
	summary, sErr := m.Summary()
	require.NoError(t, sErr)
	assert.Equal(t, 0, summary.DungeonFailures+summary.DungeonSuccesses)
}

func TestSession_FileRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := saves.NewFile(filepath.Join(t.TempDir(), "game_save.json"))
	roller := mockdice.NewManualMockRoller()

	first := game.NewSession(ctx, &game.SessionConfig{Repository: repo, Roller: roller})
	_, err := first.Purchase(ctx, oldSword)
	require.NoError(t, err)
	_, err = first.Purchase(ctx, leatherArmor)
	require.NoError(t, err)
	_, err = first.ToggleEquip(ctx, 1)
	require.NoError(t, err)
	roller.SetNextBetween(20, 30)
	roller.SetNextBetween(10, 20)
	_, err = first.EnterDungeon(ctx, easyDungeon)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx))

	second := game.NewSession(ctx, &game.SessionConfig{Repository: repo})

	assert.Equal(t, game.OriginSave, second.Origin())
	assert.Equal(t, first.Character(), second.Character())
	assert.Equal(t, first.PurchaseRecord(), second.PurchaseRecord())

	inv := second.Inventory()
	require.Len(t, inv, 2)
	assert.Equal(t, item.SlotWeapon, inv[0].Slot)
	assert.False(t, inv[0].Equipped)
	assert.True(t, inv[1].Equipped)
}

type recordingListener struct {
	types []events.EventType
	err   error
}

func (l *recordingListener) ID() string    { return "recording" }
func (l *recordingListener) Priority() int { return events.PriorityRecording }
func (l *recordingListener) HandleEvent(e events.Event) error {
	l.types = append(l.types, e.GetType())
	return l.err
}

func TestSession_EmitsEvents(t *testing.T) {
	ctx := context.Background()
	roller := mockdice.NewManualMockRoller()
	roller.SetNextBetween(20, 20)
	roller.SetNextBetween(10, 10)

	bus := events.NewBus()
	listener := &recordingListener{}
	bus.SubscribeAll(listener)

	session := game.NewSession(ctx, &game.SessionConfig{
		Repository: saves.NewInMemoryRepository(),
		Roller:     roller,
		EventBus:   bus,
	})

	_, err := session.Purchase(ctx, oldSword)
	require.NoError(t, err)
	_, err = session.EnterDungeon(ctx, easyDungeon)
	require.NoError(t, err)
	_, err = session.Rest(ctx)
	require.NoError(t, err)
	_, err = session.Sell(ctx, 0)
	require.NoError(t, err)
	require.NoError(t, session.Reset(ctx))

	assert.Equal(t, []events.EventType{
		events.EventTypeItemPurchased,
		events.EventTypeDungeonRun,
		events.EventTypeRested,
		events.EventTypeItemSold,
		events.EventTypeGameReset,
	}, listener.types)
}

func TestSession_ListenerFailureKeepsAction(t *testing.T) {
	ctx := context.Background()

	bus := events.NewBus()
	bus.SubscribeAll(&recordingListener{err: errors.New("listener down")})

	session := game.NewSession(ctx, &game.SessionConfig{
		Repository: saves.NewInMemoryRepository(),
		EventBus:   bus,
	})

	result, err := session.Purchase(ctx, leatherArmor)

	require.NoError(t, err)
	assert.Equal(t, "Leather Armor", result.Item.Name)
	assert.Equal(t, 1000, session.Status().Gold)
	assert.Len(t, session.Inventory(), 1)
}

func TestNewSession_InvalidSaveFallsBack(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "game_save.json")
	content := `{"player": {"id": "c1", "name": "Chad", "job": "Warrior", "level": 0, "base_attack": 10,
		"base_defense": 5, "health": 250, "gold": -40, "dungeon_clear_count": -3},
		"inventory": [
			{"name": "Axe", "attack_bonus": -5, "slot": "weapon", "equipped": true},
			{"name": "Buckler", "defense_bonus": 3, "slot": "shield"},
			{"name": "Spear", "attack_bonus": 30, "slot": "weapon", "equipped": true}
		]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	session := game.NewSession(ctx, &game.SessionConfig{Repository: saves.NewFile(path)})

	assert.Equal(t, game.OriginRecovered, session.Origin())
	status := session.Status()
	assert.Equal(t, 1, status.Level)
	assert.Equal(t, 100, status.Health)
	assert.Equal(t, 1500, status.Gold)
	assert.Equal(t, 0, status.ClearCount)
	assert.Empty(t, session.Inventory())
}

func TestSession_JournalCarriesSessionID(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	ctx := logger.WithSessionID(context.Background(), "sess-42")
	session := game.NewSession(ctx, &game.SessionConfig{Repository: saves.NewInMemoryRepository()})

	_, err := session.Purchase(ctx, leatherArmor)
	require.NoError(t, err)

	var journal string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "msg=\"game event\"") {
			journal = line
		}
	}
	require.NotEmpty(t, journal)
	assert.Contains(t, journal, "session_id=sess-42")
	assert.Contains(t, journal, "event=item_purchased")
}

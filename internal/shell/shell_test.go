package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	mockdice "github.com/KirkDiggler/txt-rpg/internal/dice/mock"
	"github.com/KirkDiggler/txt-rpg/internal/domain/character"
	"github.com/KirkDiggler/txt-rpg/internal/metrics"
	"github.com/KirkDiggler/txt-rpg/internal/repositories/saves"
	"github.com/KirkDiggler/txt-rpg/internal/services/game"
	"github.com/KirkDiggler/txt-rpg/internal/shell"
	"github.com/KirkDiggler/txt-rpg/internal/uuid"
)

type ShellTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *saves.InMemoryRepository
	roller  *mockdice.ManualMockRoller
	metrics *metrics.Recorder
}

func (s *ShellTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = saves.NewInMemoryRepository()
	s.roller = mockdice.NewManualMockRoller()
	s.metrics = metrics.New()
}

func TestShellTestSuite(t *testing.T) {
	suite.Run(t, new(ShellTestSuite))
}

// play feeds the lines to a fresh session and returns everything printed
func (s *ShellTestSuite) play(lines ...string) string {
	session := game.NewSession(s.ctx, &game.SessionConfig{
		Repository:    s.repo,
		Roller:        s.roller,
		Metrics:       s.metrics,
		UUIDGenerator: uuid.StaticGenerator("shell-1"),
		Clock:         func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) },
	})

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	s.Require().NoError(shell.New(session, in, &out).Run(s.ctx))
	return out.String()
}

func (s *ShellTestSuite) saved() *character.Character {
	data, err := s.repo.Load(s.ctx)
	s.Require().NoError(err)
	return data.Player
}

func (s *ShellTestSuite) TestStatus() {
	out := s.play("1", "0", "0")

	s.Contains(out, "Lv. 01")
	s.Contains(out, "Chad ( Warrior )")
	s.Contains(out, "Attack : 10\n")
	s.Contains(out, "Defense : 5\n")
	s.Contains(out, "Health : 100 / 100")
	s.Contains(out, "Gold : 1500 G")
	s.Contains(out, "Game saved.")
}

func (s *ShellTestSuite) TestInvalidInputReprompts() {
	out := s.play("9", "abc", "", "1", "x", "0", "0")

	s.Equal(4, strings.Count(out, "Invalid input."))
	s.Contains(out, "Game saved.")
}

func (s *ShellTestSuite) TestEndOfInputSaves() {
	out := s.play("3")

	s.Contains(out, "[Shop]")
	s.Contains(out, "Game saved.")
	s.Equal(1500, s.saved().Gold)
}

func (s *ShellTestSuite) TestBuyEquipAndStatus() {
	out := s.play(
		"3", "1", "6", "6", "0", "0", // buy Old Sword twice
		"2", "1", "1", "0", "0", // equip it
		"1", "0", // status
		"0",
	)

	s.Contains(out, "Bought Old Sword for 750 G.")
	s.Contains(out, "You already bought that item.")
	s.Contains(out, "Equipped Old Sword.")
	s.Contains(out, "[E]Old Sword")
	s.Contains(out, "Weapon")
	s.Contains(out, "Attack : 15 (+5)")
	s.Contains(out, "Purchased")

	char := s.saved()
	s.Equal(750, char.Gold)
	s.Require().Len(char.Inventory, 1)
	s.True(char.Inventory[0].Equipped)
}

func (s *ShellTestSuite) TestSell() {
	out := s.play(
		"3", "1", "6", "0", // buy Old Sword
		"2", "1", // sell it, the empty inventory returns to the shop
		"0", "0",
	)

	s.Contains(out, "Sold Old Sword for 637 G.")
	s.Contains(out, "You have no items to sell.")
	s.Equal(1387, s.saved().Gold)
}

func (s *ShellTestSuite) TestBuyInsufficientGold() {
	out := s.play("3", "1", "10", "0", "0", "0")

	s.Contains(out, "Not enough gold.")
	s.Equal(1500, s.saved().Gold)
}

func (s *ShellTestSuite) TestDungeonClear() {
	s.roller.SetNextBetween(20, 20) // health loss
	s.roller.SetNextBetween(10, 15) // attack percent

	out := s.play("4", "1", "0")

	s.Contains(out, "Hell Dungeon")
	s.Contains(out, "Recommended defense ?+")
	s.Contains(out, "Dungeon cleared!")
	s.Contains(out, "Health 100 -> 80")
	s.Contains(out, "Gold 1500 G -> 2650 G")
	s.Contains(out, "Level up! You are now level 2.")
	s.Contains(out, "1 cleared, 0 failed, 1150 G earned")

	char := s.saved()
	s.Equal(2, char.Level)
	s.Equal(1, char.DungeonClearCount)
}

func (s *ShellTestSuite) TestDungeonFailure() {
	s.roller.SetNextBetween(1, 80) // fail check

	out := s.play("4", "2", "0")

	s.Contains(out, "Dungeon failed!")
	s.Contains(out, "Lost 50 health. Health: 50")
	s.Equal(50, s.saved().Health)
}

func (s *ShellTestSuite) TestDungeonOutOfRange() {
	out := s.play("4", "5", "0", "0")

	s.Contains(out, "Invalid input.")
	s.Equal(0, s.roller.Remaining())
}

func (s *ShellTestSuite) TestRest() {
	c := character.NewDefault("resting")
	c.Health = 30
	s.Require().NoError(s.repo.Save(s.ctx, &saves.SaveData{Player: c}))

	out := s.play("5", "1", "0")

	s.Contains(out, "You rested. Health 30 -> 100")
	s.Contains(out, "1 rests")
	s.Equal(1000, s.saved().Gold)
}

func (s *ShellTestSuite) TestRestInsufficientGold() {
	c := character.NewDefault("broke")
	c.Gold = 100
	s.Require().NoError(s.repo.Save(s.ctx, &saves.SaveData{Player: c}))

	out := s.play("5", "1", "0")

	s.Contains(out, "Not enough gold.")
	s.Equal(100, s.saved().Gold)
}

func (s *ShellTestSuite) TestResetNeedsConfirmation() {
	c := character.NewDefault("veteran")
	c.Gold = 9999
	s.Require().NoError(s.repo.Save(s.ctx, &saves.SaveData{Player: c}))

	out := s.play("6", "n", "0")
	s.Contains(out, "Reset cancelled.")
	s.Equal(9999, s.saved().Gold)

	out = s.play("6", "Y", "0")
	s.Contains(out, "The game has been reset.")
	s.Equal(1500, s.saved().Gold)
}

func TestRun_UnreadableSaveStartsNewGame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	ctx := context.Background()
	session := game.NewSession(ctx, &game.SessionConfig{Repository: saves.NewFile(path)})

	var out bytes.Buffer
	err := shell.New(session, strings.NewReader("0\n"), &out).Run(ctx)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Your save could not be read. Starting a new game.")
	assert.Contains(t, out.String(), "Game saved.")

	data, err := saves.NewFile(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1500, data.Player.Gold)
}

func TestRun_NoSummaryWithoutMetrics(t *testing.T) {
	ctx := context.Background()
	session := game.NewSession(ctx, &game.SessionConfig{Repository: saves.NewInMemoryRepository()})

	var out bytes.Buffer
	require.NoError(t, shell.New(session, strings.NewReader("0\n"), &out).Run(ctx))

	assert.Contains(t, out.String(), "Game saved.")
	assert.NotContains(t, out.String(), "This session:")
}

func TestNew_PanicsWithoutSession(t *testing.T) {
	assert.Panics(t, func() {
		shell.New(nil, strings.NewReader(""), &bytes.Buffer{})
	})
}

// Package shell is the line-based text menu. It reads one token per prompt, calls into the
// game session and prints what came back; it holds no game state of its own.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/txt-rpg/internal/domain/item"
	gameerr "github.com/KirkDiggler/txt-rpg/internal/errors"
	"github.com/KirkDiggler/txt-rpg/internal/services/dungeon"
	"github.com/KirkDiggler/txt-rpg/internal/services/game"
)

const invalidInput = "Invalid input."

// Shell drives a session from a reader and renders to a writer
type Shell struct {
	session *game.Session
	in      *bufio.Scanner
	out     io.Writer
	title   cases.Caser
}

// New creates a shell for a session
func New(session *game.Session, in io.Reader, out io.Writer) *Shell {
	if session == nil {
		panic("session is required")
	}

	return &Shell{
		session: session,
		in:      bufio.NewScanner(in),
		out:     out,
		title:   cases.Title(language.English),
	}
}

// Run shows the main menu until the player saves and exits or input ends.
// Either way the game is saved; the save error, if any, is returned.
func (s *Shell) Run(ctx context.Context) error {
	if s.session.Origin() == game.OriginRecovered {
		s.println("Your save could not be read. Starting a new game.")
	}

	for {
		s.println("")
		s.println("Welcome to the village of Sparta.")
		s.println("You can act here before entering the dungeon.")
		s.println("")
		s.println("1. Status")
		s.println("2. Inventory")
		s.println("3. Shop")
		s.println("4. Enter dungeon")
		s.println("5. Rest")
		s.println("6. Reset game")
		s.println("0. Save and exit")

		input, ok := s.prompt()
		if !ok {
			return s.exit(ctx)
		}

		switch input {
		case "1":
			s.status()
		case "2":
			s.inventory(ctx)
		case "3":
			s.shop(ctx)
		case "4":
			s.dungeon(ctx)
		case "5":
			s.rest(ctx)
		case "6":
			s.reset(ctx)
		case "0":
			return s.exit(ctx)
		default:
			s.println(invalidInput)
		}
	}
}

func (s *Shell) exit(ctx context.Context) error {
	if err := s.session.Save(ctx); err != nil {
		s.printf("\nCould not save the game: %s\n", describe(err))
		return err
	}
	s.println("\nGame saved.")

	recorder := s.session.Metrics()
	if recorder == nil {
		return nil
	}

	summary, err := recorder.Summary()
	if err == nil {
		s.printf("This session: %d cleared, %d failed, %d G earned, %d G spent, %d bought, %d sold, %d rests.\n",
			summary.DungeonSuccesses, summary.DungeonFailures, summary.GoldEarned, summary.GoldSpent,
			summary.ItemsBought, summary.ItemsSold, summary.Rests)
	}
	return nil
}

func (s *Shell) status() {
	st := s.session.Status()

	s.println("\n[Status]")
	s.println("Your character's information.")
	s.println("")
	s.printf("Lv. %02d\n", st.Level)
	s.printf("%s ( %s )\n", st.Name, st.Job)
	s.printf("Attack : %d%s\n", st.Attack, bonusSuffix(st.AttackBonus))
	s.printf("Defense : %d%s\n", st.Defense, bonusSuffix(st.DefenseBonus))
	s.printf("Health : %d / %d\n", st.Health, st.MaxHealth)
	s.printf("Gold : %d G\n", st.Gold)
	s.printf("Dungeon clears : %d\n", st.ClearCount)

	s.waitForBack()
}

func (s *Shell) inventory(ctx context.Context) {
	for {
		s.println("\n[Inventory]")
		s.println("Manage the items you own.")
		s.println("\n[Items]")
		s.listItems(false)
		s.println("")
		s.println("1. Manage equipment")
		s.println("0. Back")

		input, ok := s.prompt()
		if !ok {
			return
		}

		switch input {
		case "1":
			s.equipment(ctx)
		case "0":
			return
		default:
			s.println(invalidInput)
		}
	}
}

func (s *Shell) equipment(ctx context.Context) {
	for {
		s.println("\n[Inventory - Manage equipment]")
		s.println("\n[Items]")
		s.listItems(true)
		s.println("")
		s.println("0. Back")

		input, ok := s.prompt()
		if !ok || input == "0" {
			return
		}

		index, valid := parseChoice(input)
		if !valid {
			s.println(invalidInput)
			continue
		}

		result, err := s.session.ToggleEquip(ctx, index)
		if err != nil {
			s.println(describe(err))
			continue
		}

		switch {
		case result.Equipped && result.Replaced != nil:
			s.printf("Equipped %s in place of %s.\n", result.Item.Name, result.Replaced.Name)
		case result.Equipped:
			s.printf("Equipped %s.\n", result.Item.Name)
		default:
			s.printf("Unequipped %s.\n", result.Item.Name)
		}
	}
}

func (s *Shell) listItems(numbered bool) {
	items := s.session.Inventory()
	if len(items) == 0 {
		s.println("You have no items.")
		return
	}

	for i, it := range items {
		s.printf("- %s%s\n", s.marker(i, numbered, it), s.itemLine(it))
	}
}

func (s *Shell) marker(i int, numbered bool, it *item.Item) string {
	var b strings.Builder
	if numbered {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(" ")
	}
	if it.Equipped {
		b.WriteString("[E]")
	}
	return b.String()
}

func (s *Shell) itemLine(it *item.Item) string {
	return fmt.Sprintf("%-24s | %-7s | %-22s | %s", it.Name, s.title.String(string(it.Slot)), it.StatLine(), it.Description)
}

func (s *Shell) shop(ctx context.Context) {
	for {
		s.println("\n[Shop]")
		s.println("A shop where you can buy the items you need.")
		s.printf("\n[Gold]\n%d G\n", s.session.Status().Gold)
		s.println("\n[Items for sale]")
		for _, l := range s.session.ShopListings() {
			s.printf("- %s | %s\n", s.itemLine(l.Item), priceLabel(l.Price, l.Purchased))
		}
		s.println("")
		s.println("1. Buy an item")
		s.println("2. Sell an item")
		s.println("0. Back")

		input, ok := s.prompt()
		if !ok {
			return
		}

		switch input {
		case "1":
			s.buy(ctx)
		case "2":
			s.sell(ctx)
		case "0":
			return
		default:
			s.println(invalidInput)
		}
	}
}

func (s *Shell) buy(ctx context.Context) {
	for {
		s.println("\n[Shop - Buy]")
		s.printf("\n[Gold]\n%d G\n", s.session.Status().Gold)
		s.println("\n[Items for sale]")
		for i, l := range s.session.ShopListings() {
			s.printf("- %d %s | %s\n", i+1, s.itemLine(l.Item), priceLabel(l.Price, l.Purchased))
		}
		s.println("")
		s.println("0. Back")

		input, ok := s.prompt()
		if !ok || input == "0" {
			return
		}

		index, valid := parseChoice(input)
		if !valid {
			s.println(invalidInput)
			continue
		}

		result, err := s.session.Purchase(ctx, index)
		if err != nil {
			s.println(describe(err))
			continue
		}
		s.printf("Bought %s for %d G.\n", result.Item.Name, result.Price)
	}
}

func (s *Shell) sell(ctx context.Context) {
	for {
		s.println("\n[Shop - Sell]")
		s.printf("\n[Gold]\n%d G\n", s.session.Status().Gold)

		listings := s.session.SellListings()
		if len(listings) == 0 {
			s.println("\nYou have no items to sell.")
			return
		}

		s.println("\n[Items]")
		for i, l := range listings {
			s.printf("- %d %s%s | %d G\n", i+1, equippedTag(l.Item), s.itemLine(l.Item), l.SellPrice)
		}
		s.println("")
		s.println("0. Back")

		input, ok := s.prompt()
		if !ok || input == "0" {
			return
		}

		index, valid := parseChoice(input)
		if !valid {
			s.println(invalidInput)
			continue
		}

		result, err := s.session.Sell(ctx, index)
		if err != nil {
			s.println(describe(err))
			continue
		}
		s.printf("Sold %s for %d G.\n", result.Item.Name, result.Price)
	}
}

func (s *Shell) dungeon(ctx context.Context) {
	dungeons := s.session.Dungeons()

	for {
		s.println("\n[Enter dungeon]")
		s.println("Choose a dungeon to explore.")
		s.println("")
		for i, d := range dungeons {
			s.printf("%d. %-16s | Recommended defense %s+\n", i+1, d.Name, d.RecommendationLabel())
		}
		s.println("0. Back")

		input, ok := s.prompt()
		if !ok || input == "0" {
			return
		}

		index, valid := parseChoice(input)
		if !valid || index >= len(dungeons) {
			s.println(invalidInput)
			continue
		}

		result, err := s.session.EnterDungeon(ctx, index)
		if err != nil {
			s.println(describe(err))
			return
		}
		s.renderRun(result)
		return
	}
}

func (s *Shell) renderRun(r *dungeon.Result) {
	s.printf("\nYou enter the %s.\n", r.Dungeon.Name)

	if r.Outcome == dungeon.OutcomeFailure {
		s.println("\nDungeon failed!")
		s.printf("Lost %d health. Health: %d\n", r.HealthBefore-r.HealthAfter, r.HealthAfter)
		return
	}

	s.println("\nDungeon cleared!")
	s.println("\n[Results]")
	s.printf("Health %d -> %d\n", r.HealthBefore, r.HealthAfter)
	s.printf("Gold %d G -> %d G\n", r.GoldBefore, r.GoldAfter)
	if r.LeveledUp {
		s.printf("\nLevel up! You are now level %d.\n", r.Level)
	}
}

func (s *Shell) rest(ctx context.Context) {
	for {
		s.println("\n[Rest]")
		s.printf("Pay %d G to recover health. (Gold: %d G)\n", game.RestCost, s.session.Status().Gold)
		s.println("")
		s.println("1. Rest")
		s.println("0. Back")

		input, ok := s.prompt()
		if !ok {
			return
		}

		switch input {
		case "1":
			result, err := s.session.Rest(ctx)
			if err != nil {
				s.println(describe(err))
				return
			}
			s.printf("You rested. Health %d -> %d\n", result.HealthBefore, result.HealthAfter)
			return
		case "0":
			return
		default:
			s.println(invalidInput)
		}
	}
}

func (s *Shell) reset(ctx context.Context) {
	s.println("\nReally reset the game? (y/n)")
	input, ok := s.prompt()
	if !ok || !strings.EqualFold(input, "y") {
		s.println("Reset cancelled.")
		return
	}

	if err := s.session.Reset(ctx); err != nil {
		s.println(describe(err))
	}
	s.println("The game has been reset.")
}

func (s *Shell) waitForBack() {
	for {
		s.println("\n0. Back")
		input, ok := s.prompt()
		if !ok || input == "0" {
			return
		}
		s.println(invalidInput)
	}
}

// prompt reads one trimmed token; false means input is exhausted
func (s *Shell) prompt() (string, bool) {
	s.printf("Choose an action.\n>> ")
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// parseChoice turns a 1-based menu number into a 0-based index
func parseChoice(input string) (int, bool) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

func describe(err error) string {
	switch gameerr.GetCode(err) {
	case gameerr.CodeInsufficientGold:
		return "Not enough gold."
	case gameerr.CodeAlreadyPurchased:
		return "You already bought that item."
	case gameerr.CodeInvalidSelection:
		return invalidInput
	case gameerr.CodePersistenceWrite:
		return "The save could not be written: " + err.Error()
	default:
		return err.Error()
	}
}

func priceLabel(price int, purchased bool) string {
	if purchased {
		return "Purchased"
	}
	return fmt.Sprintf("%d G", price)
}

func equippedTag(it *item.Item) string {
	if it.Equipped {
		return "[E]"
	}
	return ""
}

func bonusSuffix(bonus int) string {
	if bonus == 0 {
		return ""
	}
	return fmt.Sprintf(" (+%d)", bonus)
}

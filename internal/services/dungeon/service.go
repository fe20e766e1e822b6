package dungeon

//go:generate mockgen -destination=mock/mock_service.go -package=mockdungeon -source=service.go

import (
	"context"

	"github.com/KirkDiggler/txt-rpg/internal/dice"
	"github.com/KirkDiggler/txt-rpg/internal/domain/character"
	dungeondomain "github.com/KirkDiggler/txt-rpg/internal/domain/dungeon"
	gameerr "github.com/KirkDiggler/txt-rpg/internal/errors"
	"github.com/KirkDiggler/txt-rpg/internal/logger"
)

// Outcome is how a dungeon run ended
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

const (
	// failThreshold: an under-defended run fails when the percent roll exceeds it
	failThreshold = 60

	minBaseLoss = 20
	maxBaseLoss = 35
)

// Service defines the dungeon outcome engine
type Service interface {
	// Resolve runs the character through a dungeon and applies the outcome to it
	Resolve(ctx context.Context, char *character.Character, d *dungeondomain.Dungeon) (*Result, error)
}

// Result describes what a run did to the character
type Result struct {
	Outcome      Outcome
	Dungeon      *dungeondomain.Dungeon
	HealthBefore int
	HealthAfter  int
	GoldBefore   int
	GoldAfter    int
	Reward       int
	LeveledUp    bool
	Level        int
}

type service struct {
	roller dice.Roller
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Roller dice.Roller // Optional (random if nil)
}

// NewService creates a new dungeon service
func NewService(cfg *ServiceConfig) Service {
	svc := &service{}
	if cfg != nil && cfg.Roller != nil {
		svc.roller = cfg.Roller
	} else {
		svc.roller = dice.NewRandomRoller()
	}
	return svc
}

// Resolve consumes rolls in a fixed order: the fail check (only when under-defended),
// the base health loss, then the attack percent for the reward.
func (s *service) Resolve(ctx context.Context, char *character.Character, d *dungeondomain.Dungeon) (*Result, error) {
	if char == nil {
		return nil, gameerr.InvalidArgument("character is required")
	}
	if d == nil {
		return nil, gameerr.InvalidArgument("dungeon is required")
	}

	log := logger.FromContext(ctx).With("dungeon", d.Name)
	result := &Result{
		Dungeon:      d,
		HealthBefore: char.Health,
		GoldBefore:   char.Gold,
		Level:        char.Level,
	}

	if char.TotalDefense() < d.RecommendedDefense {
		roll, err := dice.Between(s.roller, 1, 100)
		if err != nil {
			return nil, gameerr.Wrap(err, "failed to roll dungeon fail check")
		}

		if roll > failThreshold {
			char.TakeDamage(char.Health / 2)

			result.Outcome = OutcomeFailure
			result.HealthAfter = char.Health
			result.GoldAfter = char.Gold

			log.Info("dungeon failed",
				"roll", roll,
				"health_before", result.HealthBefore,
				"health_after", result.HealthAfter)
			return result, nil
		}
	}

	base, err := dice.Between(s.roller, minBaseLoss, maxBaseLoss)
	if err != nil {
		return nil, gameerr.Wrap(err, "failed to roll health loss")
	}
	change := char.TotalDefense() - d.RecommendedDefense
	char.TakeDamage(max(0, base+change))

	attack := char.TotalAttack()
	attackPercent, err := dice.Between(s.roller, attack, 2*attack)
	if err != nil {
		return nil, gameerr.Wrap(err, "failed to roll reward bonus")
	}
	reward := d.BaseReward + d.BaseReward*attackPercent/100

	char.Gold += reward
	char.DungeonClearCount++

	result.Outcome = OutcomeSuccess
	result.HealthAfter = char.Health
	result.GoldAfter = char.Gold
	result.Reward = reward
	result.LeveledUp = char.CheckLevelUp()
	result.Level = char.Level

	log.Info("dungeon cleared",
		"health_before", result.HealthBefore,
		"health_after", result.HealthAfter,
		"reward", reward,
		"clear_count", char.DungeonClearCount,
		"leveled_up", result.LeveledUp)

	return result, nil
}

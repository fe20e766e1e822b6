package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// Between rolls a single die mapped onto the inclusive range [lo, hi].
// A range of one value still consumes a roll.
func Between(r Roller, lo, hi int) (int, error) {
	if hi < lo {
		return 0, ErrInvalidRange
	}

	result, err := r.Roll(1, hi-lo+1, lo-1)
	if err != nil {
		return 0, err
	}

	return result.Total, nil
}

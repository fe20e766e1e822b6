package dungeon

import "strconv"

// Dungeon is a static difficulty tier. Dungeons are catalog data and never persisted.
type Dungeon struct {
	Name               string `yaml:"name" validate:"required"`
	RecommendedDefense int    `yaml:"recommended_defense" validate:"gte=0"`
	BaseReward         int    `yaml:"base_reward" validate:"gte=0"`

	// HideRecommendation shows "?" in place of the recommended defense
	HideRecommendation bool `yaml:"hide_recommendation"`
}

// RecommendationLabel is the recommended defense as shown to the player
func (d *Dungeon) RecommendationLabel() string {
	if d.HideRecommendation {
		return "?"
	}
	return strconv.Itoa(d.RecommendedDefense)
}

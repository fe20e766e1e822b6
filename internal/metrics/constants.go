package metrics

// Metric names
const (
	MetricNameDungeonRuns = "txtrpg_dungeon_runs_total"
	MetricNameGoldEarned  = "txtrpg_gold_earned_total"
	MetricNameGoldSpent   = "txtrpg_gold_spent_total"
	MetricNameItemsBought = "txtrpg_items_bought_total"
	MetricNameItemsSold   = "txtrpg_items_sold_total"
	MetricNameRests       = "txtrpg_rests_total"
	MetricNameLevelUps    = "txtrpg_level_ups_total"
)

// Help text
const (
	HelpTextDungeonRuns = "Dungeon runs by dungeon and outcome"
	HelpTextGoldEarned  = "Gold credited by source"
	HelpTextGoldSpent   = "Gold debited by sink"
	HelpTextItemsBought = "Items bought from the shop"
	HelpTextItemsSold   = "Items sold back to the shop"
	HelpTextRests       = "Paid rests taken"
	HelpTextLevelUps    = "Levels gained"
)

// Labels
const (
	LabelDungeon = "dungeon"
	LabelOutcome = "outcome"
	LabelItem    = "item"
	LabelSource  = "source"
	LabelSink    = "sink"
)

// Label values
const (
	SourceDungeon = "dungeon"
	SourceSale    = "sale"
	SinkShop      = "shop"
	SinkRest      = "rest"
)

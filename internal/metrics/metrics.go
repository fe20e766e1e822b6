// Package metrics counts what happens during a play session. Counters live in a private
// registry; there is no scrape endpoint, the registry is summarised on exit and can be
// written out in the prometheus text format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Recorder holds the session counters. A nil *Recorder ignores every call.
type Recorder struct {
	registry *prometheus.Registry

	dungeonRuns *prometheus.CounterVec
	goldEarned  *prometheus.CounterVec
	goldSpent   *prometheus.CounterVec
	itemsBought *prometheus.CounterVec
	itemsSold   *prometheus.CounterVec
	rests       prometheus.Counter
	levelUps    prometheus.Counter
}

// Summary is the end-of-session rollup shown to the player
type Summary struct {
	DungeonSuccesses int
	DungeonFailures  int
	GoldEarned       int
	GoldSpent        int
	ItemsBought      int
	ItemsSold        int
	Rests            int
	LevelUps         int
}

// New creates a recorder backed by its own registry
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		dungeonRuns: factory.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameDungeonRuns, Help: HelpTextDungeonRuns},
			[]string{LabelDungeon, LabelOutcome},
		),
		goldEarned: factory.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameGoldEarned, Help: HelpTextGoldEarned},
			[]string{LabelSource},
		),
		goldSpent: factory.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameGoldSpent, Help: HelpTextGoldSpent},
			[]string{LabelSink},
		),
		itemsBought: factory.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameItemsBought, Help: HelpTextItemsBought},
			[]string{LabelItem},
		),
		itemsSold: factory.NewCounterVec(
			prometheus.CounterOpts{Name: MetricNameItemsSold, Help: HelpTextItemsSold},
			[]string{LabelItem},
		),
		rests: factory.NewCounter(
			prometheus.CounterOpts{Name: MetricNameRests, Help: HelpTextRests},
		),
		levelUps: factory.NewCounter(
			prometheus.CounterOpts{Name: MetricNameLevelUps, Help: HelpTextLevelUps},
		),
	}
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// DungeonRun records one resolution and its reward
func (r *Recorder) DungeonRun(dungeon, outcome string, reward int) {
	if r == nil {
		return
	}
	r.dungeonRuns.WithLabelValues(dungeon, outcome).Inc()
	if reward > 0 {
		r.goldEarned.WithLabelValues(SourceDungeon).Add(float64(reward))
	}
}

// LevelUp records a gained level
func (r *Recorder) LevelUp() {
	if r == nil {
		return
	}
	r.levelUps.Inc()
}

// ItemBought records a purchase and the gold it cost
func (r *Recorder) ItemBought(name string, price int) {
	if r == nil {
		return
	}
	r.itemsBought.WithLabelValues(name).Inc()
	r.goldSpent.WithLabelValues(SinkShop).Add(float64(price))
}

// ItemSold records a sale and the gold it returned
func (r *Recorder) ItemSold(name string, price int) {
	if r == nil {
		return
	}
	r.itemsSold.WithLabelValues(name).Inc()
	r.goldEarned.WithLabelValues(SourceSale).Add(float64(price))
}

// Rest records a paid rest
func (r *Recorder) Rest(cost int) {
	if r == nil {
		return
	}
	r.rests.Inc()
	r.goldSpent.WithLabelValues(SinkRest).Add(float64(cost))
}

// Summary gathers the registry into totals
func (r *Recorder) Summary() (*Summary, error) {
	s := &Summary{}
	if r == nil {
		return s, nil
	}

	families, err := r.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			value := int(m.GetCounter().GetValue())
			switch mf.GetName() {
			case MetricNameDungeonRuns:
				if labelValue(m, LabelOutcome) == "success" {
					s.DungeonSuccesses += value
				} else {
					s.DungeonFailures += value
				}
			case MetricNameGoldEarned:
				s.GoldEarned += value
			case MetricNameGoldSpent:
				s.GoldSpent += value
			case MetricNameItemsBought:
				s.ItemsBought += value
			case MetricNameItemsSold:
				s.ItemsSold += value
			case MetricNameRests:
				s.Rests += value
			case MetricNameLevelUps:
				s.LevelUps += value
			}
		}
	}

	return s, nil
}

// WriteTextfile writes the registry in the prometheus text exposition format
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

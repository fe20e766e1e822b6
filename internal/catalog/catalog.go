// Package catalog holds the static shop inventory and dungeon tiers bundled with the game.
package catalog

import (
	"embed"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/txt-rpg/internal/domain/dungeon"
	"github.com/KirkDiggler/txt-rpg/internal/domain/item"
	gameerr "github.com/KirkDiggler/txt-rpg/internal/errors"
)

//go:embed data/*.yaml
var embedded embed.FS

var (
	ErrDuplicateItem = errors.New("duplicate item name")
	ErrNoItems       = errors.New("catalog has no items")
	ErrNoDungeons    = errors.New("catalog has no dungeons")
)

type itemsFile struct {
	Items []*item.Item `yaml:"items" validate:"required,dive,required"`
}

type dungeonsFile struct {
	Dungeons []*dungeon.Dungeon `yaml:"dungeons" validate:"required,dive,required"`
}

// Catalog is the read-only shop and dungeon data. Lookups hand out copies so callers
// can never equip or mutate a catalog entry.
type Catalog struct {
	items    []*item.Item
	byName   map[string]*item.Item
	dungeons []*dungeon.Dungeon
}

// Load parses the embedded catalog files
func Load() (*Catalog, error) {
	itemsData, err := embedded.ReadFile("data/items.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read items catalog: %w", err)
	}
	dungeonsData, err := embedded.ReadFile("data/dungeons.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read dungeons catalog: %w", err)
	}

	return Parse(itemsData, dungeonsData)
}

// MustLoad is Load for program start-up, where a broken embedded catalog is a build defect
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a catalog from raw YAML documents and validates every entry
func Parse(itemsData, dungeonsData []byte) (*Catalog, error) {
	var itemsDoc itemsFile
	if err := yaml.Unmarshal(itemsData, &itemsDoc); err != nil {
		return nil, gameerr.WrapWithCode(err, gameerr.CodeValidation, "failed to parse items catalog")
	}

	var dungeonsDoc dungeonsFile
	if err := yaml.Unmarshal(dungeonsData, &dungeonsDoc); err != nil {
		return nil, gameerr.WrapWithCode(err, gameerr.CodeValidation, "failed to parse dungeons catalog")
	}

	if len(itemsDoc.Items) == 0 {
		return nil, gameerr.WrapWithCode(ErrNoItems, gameerr.CodeValidation, "invalid items catalog")
	}
	if len(dungeonsDoc.Dungeons) == 0 {
		return nil, gameerr.WrapWithCode(ErrNoDungeons, gameerr.CodeValidation, "invalid dungeons catalog")
	}

	v := validator.New()
	if err := v.Struct(&itemsDoc); err != nil {
		return nil, gameerr.WrapWithCode(err, gameerr.CodeValidation, "invalid items catalog")
	}
	if err := v.Struct(&dungeonsDoc); err != nil {
		return nil, gameerr.WrapWithCode(err, gameerr.CodeValidation, "invalid dungeons catalog")
	}

	c := &Catalog{
		items:    make([]*item.Item, 0, len(itemsDoc.Items)),
		byName:   make(map[string]*item.Item, len(itemsDoc.Items)),
		dungeons: dungeonsDoc.Dungeons,
	}
	for _, it := range itemsDoc.Items {
		if _, exists := c.byName[it.Name]; exists {
			return nil, gameerr.WrapWithCode(ErrDuplicateItem, gameerr.CodeValidation, "invalid items catalog").
				WithMeta("item", it.Name)
		}
		it.Equipped = false
		c.items = append(c.items, it)
		c.byName[it.Name] = it
	}

	return c, nil
}

// Items returns copies of every catalog item in display order
func (c *Catalog) Items() []*item.Item {
	out := make([]*item.Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it.Copy())
	}
	return out
}

// Item looks up an item by exact name and returns a fresh copy
func (c *Catalog) Item(name string) (*item.Item, bool) {
	it, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return it.Copy(), true
}

// ItemAt returns a copy of the item at a 0-based display position
func (c *Catalog) ItemAt(index int) (*item.Item, error) {
	if index < 0 || index >= len(c.items) {
		return nil, gameerr.InvalidSelectionf("no shop item at position %d", index+1).
			WithMeta("index", index)
	}
	return c.items[index].Copy(), nil
}

// Dungeons returns copies of every dungeon tier, easiest first
func (c *Catalog) Dungeons() []*dungeon.Dungeon {
	out := make([]*dungeon.Dungeon, 0, len(c.dungeons))
	for _, d := range c.dungeons {
		dc := *d
		out = append(out, &dc)
	}
	return out
}

// DungeonAt returns a copy of the dungeon at a 0-based position
func (c *Catalog) DungeonAt(index int) (*dungeon.Dungeon, error) {
	if index < 0 || index >= len(c.dungeons) {
		return nil, gameerr.InvalidSelectionf("no dungeon at position %d", index+1).
			WithMeta("index", index)
	}
	dc := *c.dungeons[index]
	return &dc, nil
}

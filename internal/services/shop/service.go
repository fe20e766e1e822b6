package shop

import (
	"context"

	"github.com/KirkDiggler/txt-rpg/internal/catalog"
	"github.com/KirkDiggler/txt-rpg/internal/domain/character"
	"github.com/KirkDiggler/txt-rpg/internal/domain/item"
	shopdomain "github.com/KirkDiggler/txt-rpg/internal/domain/shop"
	gameerr "github.com/KirkDiggler/txt-rpg/internal/errors"
	"github.com/KirkDiggler/txt-rpg/internal/logger"
)

const (
	attackPrice  = 150
	defensePrice = 100

	// sellPercent is the share of the purchase price refunded on sale
	sellPercent = 85
)

// Price is what the shop charges for an item
func Price(it *item.Item) int {
	return it.AttackBonus*attackPrice + it.DefenseBonus*defensePrice
}

// SellPrice is what the shop pays for an owned item, rounded down
func SellPrice(it *item.Item) int {
	return Price(it) * sellPercent / 100
}

// Service defines the shop operations
type Service interface {
	// Listings returns every catalog item with its prices and purchase state
	Listings(record shopdomain.PurchaseRecord) []*Listing

	// Purchase buys a catalog item by name into the character's inventory
	Purchase(ctx context.Context, char *character.Character, record shopdomain.PurchaseRecord, itemName string) (*PurchaseResult, error)

	// Sell sells the inventory item at a 0-based index
	Sell(ctx context.Context, char *character.Character, index int) (*SaleResult, error)
}

// Listing is one row of the shop screen
type Listing struct {
	Item      *item.Item
	Price     int
	SellPrice int
	Purchased bool
}

// PurchaseResult describes a completed purchase
type PurchaseResult struct {
	Item       *item.Item
	Price      int
	GoldBefore int
	GoldAfter  int
}

// SaleResult describes a completed sale
type SaleResult struct {
	Item       *item.Item
	Price      int
	GoldBefore int
	GoldAfter  int
}

type service struct {
	catalog *catalog.Catalog
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Catalog *catalog.Catalog // Required
}

// NewService creates a new shop service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Catalog == nil {
		panic("catalog is required")
	}

	return &service{catalog: cfg.Catalog}
}

func (s *service) Listings(record shopdomain.PurchaseRecord) []*Listing {
	items := s.catalog.Items()
	listings := make([]*Listing, 0, len(items))
	for _, it := range items {
		listings = append(listings, &Listing{
			Item:      it,
			Price:     Price(it),
			SellPrice: SellPrice(it),
			Purchased: record.Has(it.Name),
		})
	}
	return listings
}

// Purchase checks the record before the gold so a bought-then-sold item reports
// already_purchased even when the character is broke.
func (s *service) Purchase(ctx context.Context, char *character.Character, record shopdomain.PurchaseRecord, itemName string) (*PurchaseResult, error) {
	if char == nil {
		return nil, gameerr.InvalidArgument("character is required")
	}
	if record == nil {
		return nil, gameerr.InvalidArgument("purchase record is required")
	}

	it, ok := s.catalog.Item(itemName)
	if !ok {
		return nil, gameerr.NotFoundf("%s is not sold here", itemName).
			WithMeta("item", itemName)
	}

	if record.Has(it.Name) {
		return nil, gameerr.AlreadyPurchasedf("%s was already purchased", it.Name).
			WithMeta("item", it.Name)
	}

	price := Price(it)
	if char.Gold < price {
		return nil, gameerr.InsufficientGoldf("%s costs %d G, you have %d G", it.Name, price, char.Gold).
			WithMeta("item", it.Name).
			WithMeta("price", price).
			WithMeta("gold", char.Gold)
	}

	before := char.Gold
	char.Gold -= price
	char.AddItem(it)
	record.Add(it.Name)

	logger.FromContext(ctx).Info("item purchased",
		"item", it.Name,
		"price", price,
		"gold_after", char.Gold)

	return &PurchaseResult{
		Item:       it,
		Price:      price,
		GoldBefore: before,
		GoldAfter:  char.Gold,
	}, nil
}

// Sell leaves the purchase record untouched, so a sold item cannot be bought again
func (s *service) Sell(ctx context.Context, char *character.Character, index int) (*SaleResult, error) {
	if char == nil {
		return nil, gameerr.InvalidArgument("character is required")
	}

	it, err := char.RemoveAt(index)
	if err != nil {
		return nil, err
	}

	price := SellPrice(it)
	before := char.Gold
	char.Gold += price

	logger.FromContext(ctx).Info("item sold",
		"item", it.Name,
		"price", price,
		"gold_after", char.Gold)

	return &SaleResult{
		Item:       it,
		Price:      price,
		GoldBefore: before,
		GoldAfter:  char.Gold,
	}, nil
}

package services

import (
	"github.com/KirkDiggler/txt-rpg/internal/catalog"
	"github.com/KirkDiggler/txt-rpg/internal/dice"
	dungeonService "github.com/KirkDiggler/txt-rpg/internal/services/dungeon"
	shopService "github.com/KirkDiggler/txt-rpg/internal/services/shop"
)

// Provider holds all service instances
type Provider struct {
	Catalog        *catalog.Catalog
	ShopService    shopService.Service
	DungeonService dungeonService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Catalog *catalog.Catalog // Optional (embedded catalog if nil)
	Roller  dice.Roller      // Optional (random if nil)
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	// Use the embedded catalog if none provided
	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.MustLoad()
	}

	return &Provider{
		Catalog: cat,
		ShopService: shopService.NewService(&shopService.ServiceConfig{
			Catalog: cat,
		}),
		DungeonService: dungeonService.NewService(&dungeonService.ServiceConfig{
			Roller: cfg.Roller,
		}),
	}
}

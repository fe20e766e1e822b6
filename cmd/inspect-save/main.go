package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/txt-rpg/internal/config"
	gameerr "github.com/KirkDiggler/txt-rpg/internal/errors"
	"github.com/KirkDiggler/txt-rpg/internal/repositories/saves"
	"github.com/KirkDiggler/txt-rpg/internal/services/shop"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	raw := flag.Bool("raw", false, "print the save as JSON")
	path := flag.String("file", "", "read this save file instead of the configured store")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	var repo saves.Repository
	switch {
	case *path != "":
		repo = saves.NewFile(*path)
		fmt.Printf("Reading save file %s\n", *path)

	case cfg.Redis.URL != "":
		opts, parseErr := redis.ParseURL(cfg.Redis.URL)
		if parseErr != nil {
			log.Fatalf("Failed to parse Redis URL: %v", parseErr)
		}

		client := redis.NewClient(opts)
		defer client.Close()

		// Test connection
		if pingErr := client.Ping(ctx).Err(); pingErr != nil {
			log.Fatalf("Failed to connect to Redis: %v", pingErr)
		}

		repo = saves.NewRedis(client, cfg.Save.Slot)
		fmt.Printf("Reading Redis key %s\n", saves.SaveKey(cfg.Save.Slot))

	default:
		repo = saves.NewFile(cfg.Save.Path)
		fmt.Printf("Reading save file %s\n", cfg.Save.Path)
	}

	data, err := repo.Load(ctx)
	if err != nil {
		if gameerr.IsNotFound(err) {
			fmt.Println("No save found.")
			return
		}
		log.Fatalf("Failed to load save: %v", err)
	}

	if *raw {
		out, marshalErr := json.MarshalIndent(data, "", "  ")
		if marshalErr != nil {
			log.Fatalf("Failed to marshal save: %v", marshalErr)
		}
		fmt.Println(string(out))
		return
	}

	printSave(data)
}

func printSave(data *saves.SaveData) {
	p := data.Player.Clone()
	p.Inventory = data.ResolvedInventory()
	atk, def := p.EquippedBonus()

	fmt.Printf("\nSaved at: %s\n", data.SavedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Character: %s (%s) id=%s\n", p.Name, p.Job, p.ID)
	fmt.Printf("  Level %d, clears %d\n", p.Level, p.DungeonClearCount)
	fmt.Printf("  Attack %d (+%d), Defense %d (+%d)\n", p.TotalAttack(), atk, p.TotalDefense(), def)
	fmt.Printf("  Health %d, Gold %d\n", p.Health, p.Gold)

	fmt.Printf("\nInventory (%d items):\n", len(p.Inventory))
	for i, it := range p.Inventory {
		marker := "   "
		if it.Equipped {
			marker = "[E]"
		}
		fmt.Printf("  %d. %s %s | %s | sells for %d G\n", i+1, marker, it.Name, it.StatLine(), shop.SellPrice(it))
	}

	names := data.PurchasedItems.Names()
	fmt.Printf("\nPurchased (%d): %s\n", len(names), strings.Join(names, ", "))
}

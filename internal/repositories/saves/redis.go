package saves

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/txt-rpg/internal/domain/shop"
	gameerr "github.com/KirkDiggler/txt-rpg/internal/errors"
)

// DefaultSlot is the save slot used when none is configured
const DefaultSlot = "default"

// redisRepo keeps the save as a JSON blob and the purchase record as a set
type redisRepo struct {
	client redis.UniversalClient
	slot   string
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient // Required
	Slot   string                // Optional (DefaultSlot if empty)
}

// NewRedisRepository creates a Redis-backed save repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	slot := cfg.Slot
	if slot == "" {
		slot = DefaultSlot
	}

	return &redisRepo{
		client: cfg.Client,
		slot:   slot,
	}
}

// NewRedis creates a Redis-backed save repository for a slot
func NewRedis(client redis.UniversalClient, slot string) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client: client,
		Slot:   slot,
	})
}

// SaveKey is the key of the save blob for a slot
func SaveKey(slot string) string {
	return fmt.Sprintf("save:%s", slot)
}

// PurchasedKey is the key of the purchase record set for a slot
func PurchasedKey(slot string) string {
	return fmt.Sprintf("save:%s:purchased", slot)
}

// Load reads the blob and the purchase set concurrently
func (r *redisRepo) Load(ctx context.Context) (*SaveData, error) {
	var (
		blob      string
		purchased []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		val, err := r.client.Get(gctx, SaveKey(r.slot)).Result()
		if errors.Is(err, redis.Nil) {
			return gameerr.NotFoundf("no save in slot '%s'", r.slot).
				WithMeta("slot", r.slot)
		}
		if err != nil {
			return gameerr.PersistenceRead(err, "failed to get save").
				WithMeta("slot", r.slot)
		}
		blob = val
		return nil
	})
	g.Go(func() error {
		members, err := r.client.SMembers(gctx, PurchasedKey(r.slot)).Result()
		if err != nil {
			return gameerr.PersistenceRead(err, "failed to get purchase record").
				WithMeta("slot", r.slot)
		}
		purchased = members
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var data SaveData
	if err := json.Unmarshal([]byte(blob), &data); err != nil {
		return nil, gameerr.PersistenceRead(err, "failed to decode save").
			WithMeta("slot", r.slot)
	}
	if err := validateLoaded(&data); err != nil {
		return nil, err
	}

	data.PurchasedItems = shop.NewPurchaseRecord()
	for _, name := range purchased {
		data.PurchasedItems.Add(name)
	}

	return &data, nil
}

// Save writes the blob and rebuilds the purchase set in one MULTI/EXEC
func (r *redisRepo) Save(ctx context.Context, data *SaveData) error {
	if err := validateForSave(data); err != nil {
		return err
	}

	blob := *data
	blob.PurchasedItems = nil

	jsonData, err := json.Marshal(&blob)
	if err != nil {
		return gameerr.PersistenceWrite(err, "failed to encode save")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, SaveKey(r.slot), string(jsonData), 0)
	pipe.Del(ctx, PurchasedKey(r.slot))
	if names := data.PurchasedItems.Names(); len(names) > 0 {
		members := make([]interface{}, len(names))
		for i, name := range names {
			members[i] = name
		}
		pipe.SAdd(ctx, PurchasedKey(r.slot), members...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return gameerr.PersistenceWrite(err, "failed to store save").
			WithMeta("slot", r.slot)
	}

	return nil
}

func (r *redisRepo) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, SaveKey(r.slot), PurchasedKey(r.slot)).Err(); err != nil {
		return gameerr.PersistenceWrite(err, "failed to delete save").
			WithMeta("slot", r.slot)
	}
	return nil
}

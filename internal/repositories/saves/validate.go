package saves

import (
	"github.com/go-playground/validator/v10"

	"github.com/KirkDiggler/txt-rpg/internal/domain/item"
	gameerr "github.com/KirkDiggler/txt-rpg/internal/errors"
)

var validate = validator.New()

func validateForSave(data *SaveData) error {
	if data == nil {
		return gameerr.InvalidArgument("save data cannot be nil")
	}
	if data.Player == nil {
		return gameerr.InvalidArgument("save data has no player")
	}
	return nil
}

// validateLoaded rejects records that decode but break the character invariants
func validateLoaded(data *SaveData) error {
	if data.Player == nil {
		return gameerr.PersistenceRead(nil, "save has no player record")
	}

	inventory := data.ResolvedInventory()
	for i, it := range inventory {
		if it == nil {
			return gameerr.PersistenceRead(nil, "save has an empty inventory entry").
				WithMeta("index", i)
		}
	}

	player := *data.Player
	player.Inventory = inventory
	if err := validate.Struct(&player); err != nil {
		return gameerr.PersistenceRead(err, "save record is invalid")
	}

	equipped := make(map[item.Slot]string, 2)
	for _, it := range inventory {
		if !it.Equipped {
			continue
		}
		if other, ok := equipped[it.Slot]; ok {
			return gameerr.PersistenceRead(nil, "save has two equipped items in one slot").
				WithMeta("slot", string(it.Slot)).
				WithMeta("items", []string{other, it.Name})
		}
		equipped[it.Slot] = it.Name
	}

	return nil
}

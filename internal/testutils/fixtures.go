package testutils

import (
	"time"

	"github.com/KirkDiggler/txt-rpg/internal/domain/character"
	"github.com/KirkDiggler/txt-rpg/internal/domain/item"
	"github.com/KirkDiggler/txt-rpg/internal/domain/shop"
	"github.com/KirkDiggler/txt-rpg/internal/repositories/saves"
)

// CreateTestItem creates an unequipped item with a single bonus matching its slot
func CreateTestItem(name string, slot item.Slot, bonus int) *item.Item {
	it := &item.Item{
		Name:        name,
		Description: "test " + string(slot),
		Slot:        slot,
	}
	if slot == item.SlotWeapon {
		it.AttackBonus = bonus
	} else {
		it.DefenseBonus = bonus
	}
	return it
}

// CreateTestCharacter creates a mid-game character with one equipped weapon, one
// equipped armor and one spare weapon
func CreateTestCharacter(id string) *character.Character {
	c := character.NewDefault(id)
	c.Level = 3
	c.BaseDefense = 7
	c.Health = 64
	c.Gold = 4321
	c.DungeonClearCount = 2

	axe := CreateTestItem("Axe", item.SlotWeapon, 15)
	axe.Equipped = true
	armor := CreateTestItem("Iron Armor", item.SlotArmor, 15)
	armor.Equipped = true

	c.AddItem(axe)
	c.AddItem(armor)
	c.AddItem(CreateTestItem("Old Sword", item.SlotWeapon, 5))
	return c
}

// CreateTestSave wraps a test character in a save record. The purchase record includes
// an item that is no longer owned.
func CreateTestSave(id string) *saves.SaveData {
	c := CreateTestCharacter(id)

	record := shop.NewPurchaseRecord()
	record.Add("Axe")
	record.Add("Iron Armor")
	record.Add("Old Sword")
	record.Add("Spear")

	return &saves.SaveData{
		Player:         c,
		Inventory:      character.CloneItems(c.Inventory),
		PurchasedItems: record,
		SavedAt:        time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

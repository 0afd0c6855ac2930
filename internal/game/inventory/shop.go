package inventory

import (
	"errors"
	"fmt"

	"github.com/LinLovee/quest-bot-webapp/internal/game/catalog"
	"github.com/LinLovee/quest-bot-webapp/internal/game/character"
)

// Equipment slot identifiers. At most one item occupies a slot.
const (
	SlotWeapon    = "weapon"
	SlotArmor     = "armor"
	SlotAccessory = "accessory"
)

// ErrItemNotFound is returned when an item ID is not in the catalog.
var ErrItemNotFound = errors.New("item not found")

// ErrInsufficientGold is returned when a purchase exceeds the character's gold.
var ErrInsufficientGold = errors.New("not enough gold")

// ErrNotOwned is returned when equipping an item the character does not own.
var ErrNotOwned = errors.New("item not owned")

// ErrNotEquippable is returned when equipping a consumable item.
var ErrNotEquippable = errors.New("item cannot be equipped")

// LevelTooLowError is returned when the character does not meet an item's
// minimum level requirement.
type LevelTooLowError struct {
	Required int
}

func (e LevelTooLowError) Error() string {
	return fmt.Sprintf("requires level %d", e.Required)
}

// Purchase buys one unit of the given item for the character.
//
// Precondition: c and cat must be non-nil; c's maps must be initialised.
// Postcondition: On success, gold decreases by exactly the item price and the
// inventory count increases by exactly 1. On any failure, the character is
// unchanged.
func Purchase(c *character.Character, cat *catalog.Catalog, itemID string) (*catalog.ItemDefinition, error) {
	def, ok := cat.Item(itemID)
	if !ok {
		return nil, ErrItemNotFound
	}
	if c.Level < def.MinLevel {
		return nil, LevelTooLowError{Required: def.MinLevel}
	}
	if c.Gold < def.Price {
		return nil, ErrInsufficientGold
	}

	c.Gold -= def.Price
	c.Inventory[itemID]++
	return def, nil
}

// SlotFor determines the equipment slot for an item from its bonus shape: an
// attack bonus without a defense bonus makes a weapon, any defense bonus makes
// armor, anything else is an accessory. Potions occupy no slot.
//
// Postcondition: Returns one of SlotWeapon, SlotArmor, SlotAccessory, or ""
// for unequippable items.
func SlotFor(def *catalog.ItemDefinition) string {
	if def.Category == catalog.CategoryPotion {
		return ""
	}
	switch {
	case def.Bonuses.Attack > 0 && def.Bonuses.Defense == 0:
		return SlotWeapon
	case def.Bonuses.Defense > 0:
		return SlotArmor
	default:
		return SlotAccessory
	}
}

// Equip places the given owned item into its slot, replacing whatever occupied
// the slot before. Equipping does not consume the inventory count.
//
// Precondition: c and cat must be non-nil; c's maps must be initialised.
// Postcondition: On success, exactly the returned slot maps to itemID. On any
// failure, the character is unchanged.
func Equip(c *character.Character, cat *catalog.Catalog, itemID string) (string, error) {
	def, ok := cat.Item(itemID)
	if !ok {
		return "", ErrItemNotFound
	}
	if c.Inventory[itemID] <= 0 {
		return "", ErrNotOwned
	}
	slot := SlotFor(def)
	if slot == "" {
		return "", ErrNotEquippable
	}

	c.Equipment[slot] = itemID
	return slot, nil
}

// Package entity provides the combatants of the game: the player's
// adventurer and the enemies they fight.
package entity

import (
	"fmt"
	"strings"

	"github.com/samdwyer/dungeonquest/internal/gamedata"
	"github.com/samdwyer/dungeonquest/internal/stats"
)

// Player is the player-controlled combatant. Classes differ only in
// their starting loadout (stats, skills, items), so there is a single
// Player type built from a ClassDef rather than one type per class.
type Player struct {
	Name      string
	ClassName string
	Stats     *stats.Stats
	Skills    []gamedata.SkillDef // Fixed per class after creation
	Inventory []gamedata.ItemDef  // Ordered consumable instances
	Gold      int
}

// NewPlayer creates a player from a class definition, resolving the
// class's skill and starting-item IDs through the registries. Skill IDs
// missing from the registry are skipped, matching registry lookup
// semantics elsewhere.
func NewPlayer(name string, class *gamedata.ClassDef, skills *gamedata.SkillRegistry, items *gamedata.ItemRegistry) *Player {
	p := &Player{
		Name:      name,
		ClassName: class.Name,
		Stats:     stats.New(class.HP, class.MP, class.Attack, class.Speed),
	}
	for _, def := range skills.GetMultiple(class.Skills) {
		p.Skills = append(p.Skills, *def)
	}
	for _, id := range class.StartingItems {
		if def := items.GetByID(id); def != nil {
			p.AddItem(*def)
		}
	}
	return p
}

// GetName returns the player's name.
func (p *Player) GetName() string { return p.Name }

// GetStats returns the player's stat container.
func (p *Player) GetStats() *stats.Stats { return p.Stats }

// IsAlive reports whether the player has HP remaining.
func (p *Player) IsAlive() bool { return p.Stats.IsAlive() }

// AddItem appends one item instance to the inventory.
func (p *Player) AddItem(item gamedata.ItemDef) {
	p.Inventory = append(p.Inventory, item)
}

// UseItem consumes the inventory item at the given index, applying its
// effect once, and returns a description of what happened. Returns
// ok=false without mutating anything when the index is out of range.
func (p *Player) UseItem(index int) (message string, ok bool) {
	if index < 0 || index >= len(p.Inventory) {
		return "", false
	}
	item := p.Inventory[index]
	p.Inventory = append(p.Inventory[:index], p.Inventory[index+1:]...)

	var restored []string
	if hp, found := item.Effect["hp"]; found {
		p.Stats.Heal(hp)
		restored = append(restored, fmt.Sprintf("%d HP", hp))
	}
	if mp, found := item.Effect["mp"]; found {
		p.Stats.RestoreMP(mp)
		restored = append(restored, fmt.Sprintf("%d MP", mp))
	}
	if len(restored) == 0 {
		return fmt.Sprintf("Used %s.", item.Name), true
	}
	return fmt.Sprintf("Used %s! Restored %s.", item.Name, strings.Join(restored, " and ")), true
}

// GainExp grants experience, which may trigger a level-up.
func (p *Player) GainExp(amount int) {
	p.Stats.GainExp(amount)
}

package entity

import (
	"github.com/samdwyer/dungeonquest/internal/gamedata"
	"github.com/samdwyer/dungeonquest/internal/stats"
)

// Enemy is a hostile combatant. Defeating it grants the rewards fixed
// at spawn time.
type Enemy struct {
	Def        *gamedata.EnemyDef // Reference to the enemy definition
	Name       string
	Glyph      rune
	Stats      *stats.Stats
	ExpReward  int
	GoldReward int
}

// NewEnemyFromDef spawns a fresh enemy from a definition. Each encounter
// gets its own Stats so damage never leaks between encounters.
func NewEnemyFromDef(def *gamedata.EnemyDef) *Enemy {
	s := stats.New(def.HP, def.MP, def.Attack, def.Speed)
	if def.Level > 1 {
		s.Level = def.Level
	}
	return &Enemy{
		Def:        def,
		Name:       def.Name,
		Glyph:      def.GlyphRune(),
		Stats:      s,
		ExpReward:  def.ExpReward,
		GoldReward: def.GoldReward,
	}
}

// GetName returns the enemy's name.
func (e *Enemy) GetName() string { return e.Name }

// GetStats returns the enemy's stat container.
func (e *Enemy) GetStats() *stats.Stats { return e.Stats }

// IsAlive reports whether the enemy has HP remaining.
func (e *Enemy) IsAlive() bool { return e.Stats.IsAlive() }

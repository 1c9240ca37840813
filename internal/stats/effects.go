package stats

import (
	"fmt"
	"strings"
)

// EffectType represents the kind of status effect.
type EffectType string

const (
	EffectStatModifier   EffectType = "stat_mod"
	EffectDamageOverTime EffectType = "damage_over_time"
	EffectStun           EffectType = "stun"
)

// StatusEffect is a temporary modifier attached to a Stats container.
// Effects are keyed by Name: a container never holds two effects with
// the same name (see AddEffect).
type StatusEffect struct {
	Name         string     // Identity key, e.g. "Poison", "Battle Cry"
	Type         EffectType // What the effect does each turn
	StatAffected string     // For stat_mod: "attack" or "speed"
	Power        int        // Signed: positive buff, negative debuff, DOT tick damage
	Duration     int        // Turns remaining, >0 while active
}

// TickEvent describes what happened to one effect during a tick pass.
// Message formatting is left to the caller.
type TickEvent struct {
	Name    string
	Type    EffectType
	Damage  int  // Actual DOT damage dealt, 0 for other effect types
	Expired bool // True if the effect wore off this tick
}

// AddEffect applies an effect to the container, merging by name.
// An existing effect with the same name has its duration refreshed to the
// longer of the two; damage-over-time effects additionally accumulate
// power, so stacking poisons stack in damage rather than in count.
func (s *Stats) AddEffect(effect StatusEffect) {
	for i := range s.effects {
		if s.effects[i].Name == effect.Name {
			if effect.Duration > s.effects[i].Duration {
				s.effects[i].Duration = effect.Duration
			}
			if effect.Type == EffectDamageOverTime {
				s.effects[i].Power += effect.Power
			}
			return
		}
	}
	s.effects = append(s.effects, effect)
}

// RemoveEffect deletes the effect with the given name. No-op if absent.
func (s *Stats) RemoveEffect(name string) {
	for i := range s.effects {
		if s.effects[i].Name == name {
			s.effects = append(s.effects[:i], s.effects[i+1:]...)
			return
		}
	}
}

// Effects returns the active status effects.
func (s *Stats) Effects() []StatusEffect {
	return s.effects
}

// IsStunned reports whether any active effect is a stun.
func (s *Stats) IsStunned() bool {
	for _, e := range s.effects {
		if e.Type == EffectStun {
			return true
		}
	}
	return false
}

// ModifierTotal sums the power of all stat_mod effects affecting the
// given stat.
func (s *Stats) ModifierTotal(stat string) int {
	total := 0
	for _, e := range s.effects {
		if e.Type == EffectStatModifier && e.StatAffected == stat {
			total += e.Power
		}
	}
	return total
}

// Tick processes all active effects for one turn: DOT effects deal their
// damage, every effect ages by one turn, and expired effects are removed.
// Removal happens after the full pass so each effect present at the start
// of the tick fires exactly once.
func (s *Stats) Tick() []TickEvent {
	var events []TickEvent
	var expired []string

	for i := range s.effects {
		event := TickEvent{Name: s.effects[i].Name, Type: s.effects[i].Type}

		if s.effects[i].Type == EffectDamageOverTime {
			event.Damage = s.TakeDamage(s.effects[i].Power)
		}

		s.effects[i].Duration--
		if s.effects[i].Duration <= 0 {
			event.Expired = true
			expired = append(expired, s.effects[i].Name)
		}
		events = append(events, event)
	}

	for _, name := range expired {
		s.RemoveEffect(name)
	}

	return events
}

// EffectsText returns a one-line summary of active effects for display,
// e.g. "Battle Cry +5 (3t), Poison 7/turn (2t)".
func (s *Stats) EffectsText() string {
	if len(s.effects) == 0 {
		return "None"
	}

	parts := make([]string, 0, len(s.effects))
	for _, e := range s.effects {
		switch e.Type {
		case EffectStatModifier:
			sign := ""
			if e.Power > 0 {
				sign = "+"
			}
			parts = append(parts, fmt.Sprintf("%s %s%d (%dt)", e.Name, sign, e.Power, e.Duration))
		case EffectDamageOverTime:
			parts = append(parts, fmt.Sprintf("%s %d/turn (%dt)", e.Name, e.Power, e.Duration))
		case EffectStun:
			parts = append(parts, fmt.Sprintf("%s (%dt)", e.Name, e.Duration))
		}
	}
	return strings.Join(parts, ", ")
}

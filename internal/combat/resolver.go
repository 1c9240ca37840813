// Package combat provides the turn-based combat engine: skill
// resolution and the encounter state machine.
package combat

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/samdwyer/dungeonquest/internal/gamedata"
	"github.com/samdwyer/dungeonquest/internal/stats"
)

// Combatant is either side of a combat encounter. Both the player and
// enemies implement this interface; each exclusively owns its Stats.
type Combatant interface {
	GetName() string
	GetStats() *stats.Stats
	IsAlive() bool
}

// AttackResult is the outcome of a basic attack.
type AttackResult struct {
	Damage  int
	Message string
}

// SkillResult is the outcome of resolving a skill. OK is false when the
// caster lacked the MP: nothing was mutated and the action must not
// consume a turn.
type SkillResult struct {
	OK      bool
	Damage  int
	Message string
}

// Resolver applies basic attacks and skills to combatants. All variance
// comes from the injected random source, so seeded resolvers produce
// reproducible outcomes.
type Resolver struct {
	rng *rand.Rand
}

// NewResolver creates a resolver backed by the given random source.
func NewResolver(rng *rand.Rand) *Resolver {
	return &Resolver{rng: rng}
}

// BasicAttack performs a plain attack: effective attack scaled by a
// random factor in [0.8, 1.2]. It has no MP cost and cannot fail.
func (r *Resolver) BasicAttack(attacker, target Combatant) AttackResult {
	damage := int(math.Round(float64(attacker.GetStats().EffectiveAttack()) * r.uniform(0.8, 1.2)))
	actual := target.GetStats().TakeDamage(damage)
	return AttackResult{
		Damage:  actual,
		Message: fmt.Sprintf("%s attacks %s for %d damage!", attacker.GetName(), target.GetName(), actual),
	}
}

// ResolveSkill applies a skill from the caster to the target. The MP
// cost is checked first; on a shortage the resolution aborts with no
// state change. Heal skills pass the caster as target for self-heals;
// buffs always apply to the caster, everything else to the target.
//
// Skill types are validated against the closed set at content load, so
// an unknown type here is a programming defect, not a player-facing
// condition.
func (r *Resolver) ResolveSkill(caster, target Combatant, skill *gamedata.SkillDef) SkillResult {
	if !caster.GetStats().UseMP(skill.MPCost) {
		return SkillResult{
			Message: fmt.Sprintf("Not enough MP! Need %d MP.", skill.MPCost),
		}
	}

	effectAmount := int(float64(caster.GetStats().EffectiveAttack()) * skill.Power)

	switch skill.Type {
	case gamedata.SkillDamage:
		damage := int(math.Round(float64(effectAmount) * r.uniform(0.9, 1.1)))
		actual := target.GetStats().TakeDamage(damage)
		return SkillResult{
			OK:      true,
			Damage:  actual,
			Message: fmt.Sprintf("%s uses %s! Deals %d damage!", caster.GetName(), skill.Name, actual),
		}

	case gamedata.SkillHeal:
		target.GetStats().Heal(effectAmount)
		return SkillResult{
			OK:      true,
			Message: fmt.Sprintf("%s uses %s! Restored %d HP!", caster.GetName(), skill.Name, effectAmount),
		}

	case gamedata.SkillBuff:
		power := atLeastOne(effectAmount)
		caster.GetStats().AddEffect(stats.StatusEffect{
			Name:         skill.Name,
			Type:         stats.EffectStatModifier,
			StatAffected: "attack",
			Power:        power,
			Duration:     skill.Duration,
		})
		return SkillResult{
			OK:      true,
			Message: fmt.Sprintf("%s uses %s! Attack +%d for %d turns!", caster.GetName(), skill.Name, power, skill.Duration),
		}

	case gamedata.SkillDebuff:
		power := atLeastOne(effectAmount)
		target.GetStats().AddEffect(stats.StatusEffect{
			Name:         skill.Name,
			Type:         stats.EffectStatModifier,
			StatAffected: "attack",
			Power:        -power,
			Duration:     skill.Duration,
		})
		return SkillResult{
			OK:      true,
			Message: fmt.Sprintf("%s uses %s! %s's attack -%d for %d turns!", caster.GetName(), skill.Name, target.GetName(), power, skill.Duration),
		}

	case gamedata.SkillDOT:
		name := skill.StatusEffect
		if name == "" {
			name = skill.Name
		}
		target.GetStats().AddEffect(stats.StatusEffect{
			Name:     name,
			Type:     stats.EffectDamageOverTime,
			Power:    atLeastOne(effectAmount),
			Duration: skill.Duration,
		})
		return SkillResult{
			OK:      true,
			Message: fmt.Sprintf("%s uses %s! %s is afflicted with %s!", caster.GetName(), skill.Name, target.GetName(), name),
		}

	case gamedata.SkillStun:
		target.GetStats().AddEffect(stats.StatusEffect{
			Name:     "Stunned",
			Type:     stats.EffectStun,
			Duration: skill.Duration,
		})
		return SkillResult{
			OK:      true,
			Message: fmt.Sprintf("%s uses %s! %s is stunned for %d turns!", caster.GetName(), skill.Name, target.GetName(), skill.Duration),
		}

	default:
		panic(fmt.Sprintf("skill %q has unvalidated type %q", skill.ID, skill.Type))
	}
}

// uniform returns a random float64 in [lo, hi).
func (r *Resolver) uniform(lo, hi float64) float64 {
	return lo + r.rng.Float64()*(hi-lo)
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

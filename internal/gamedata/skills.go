package gamedata

import "fmt"

// SkillType represents what a skill does when resolved.
type SkillType string

const (
	SkillDamage SkillType = "damage"
	SkillHeal   SkillType = "heal"
	SkillBuff   SkillType = "buff"
	SkillDebuff SkillType = "debuff"
	SkillDOT    SkillType = "dot"
	SkillStun   SkillType = "stun"
)

// SkillDef defines a skill loaded from JSON. Definitions are immutable
// static content; combat never creates or mutates them.
type SkillDef struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	MPCost       int       `json:"mpCost"`
	Type         SkillType `json:"type"`
	Power        float64   `json:"power"`                  // Multiplier on the caster's effective attack
	Duration     int       `json:"duration,omitempty"`     // Turns, for non-instant types
	StatusEffect string    `json:"statusEffect,omitempty"` // Override label for DOT effects (e.g. "Poison")
}

// Validate checks the definition against the closed skill-type set and
// basic field constraints. A skill that fails validation is malformed
// content and must be rejected at load time, never mid-combat.
func (s *SkillDef) Validate() error {
	switch s.Type {
	case SkillDamage, SkillHeal, SkillBuff, SkillDebuff, SkillDOT, SkillStun:
	default:
		return fmt.Errorf("skill %q has unknown type %q", s.ID, s.Type)
	}
	if s.MPCost < 0 {
		return fmt.Errorf("skill %q has negative mpCost %d", s.ID, s.MPCost)
	}
	if s.Power < 0 {
		return fmt.Errorf("skill %q has negative power %v", s.ID, s.Power)
	}
	switch s.Type {
	case SkillBuff, SkillDebuff, SkillDOT, SkillStun:
		if s.Duration <= 0 {
			return fmt.Errorf("skill %q (type %s) requires a positive duration", s.ID, s.Type)
		}
	}
	return nil
}

// SkillsFile represents the structure of skills.json.
type SkillsFile struct {
	Skills []SkillDef `json:"skills"`
}

// LoadSkills loads and validates skill definitions from the embedded
// skills.json file.
func LoadSkills() ([]SkillDef, error) {
	file, err := Load[SkillsFile]("skills.json")
	if err != nil {
		return nil, err
	}
	for i := range file.Skills {
		if err := file.Skills[i].Validate(); err != nil {
			return nil, err
		}
	}
	return file.Skills, nil
}

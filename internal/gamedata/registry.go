package gamedata

import (
	"errors"
	"math/rand"
)

// SkillRegistry holds loaded skill definitions and provides lookup
// utilities.
type SkillRegistry struct {
	skills map[string]*SkillDef
	all    []SkillDef
}

// NewSkillRegistry creates a registry from loaded skill definitions.
func NewSkillRegistry(skills []SkillDef) *SkillRegistry {
	registry := &SkillRegistry{
		skills: make(map[string]*SkillDef),
		all:    skills,
	}
	for i := range skills {
		registry.skills[skills[i].ID] = &skills[i]
	}
	return registry
}

// LoadSkillRegistry loads and creates a registry from the embedded
// skills.json. Definitions failing validation abort the load.
func LoadSkillRegistry() (*SkillRegistry, error) {
	skills, err := LoadSkills()
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		return nil, errors.New("no skills loaded from skills.json")
	}
	return NewSkillRegistry(skills), nil
}

// MustLoadSkillRegistry loads a registry, panicking on error.
func MustLoadSkillRegistry() *SkillRegistry {
	registry, err := LoadSkillRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the skill definition with the given ID, or nil if not
// found.
func (r *SkillRegistry) GetByID(id string) *SkillDef {
	return r.skills[id]
}

// GetMultiple returns skill definitions for a list of IDs.
// Missing IDs are silently skipped.
func (r *SkillRegistry) GetMultiple(ids []string) []*SkillDef {
	result := make([]*SkillDef, 0, len(ids))
	for _, id := range ids {
		if skill := r.skills[id]; skill != nil {
			result = append(result, skill)
		}
	}
	return result
}

// All returns all skill definitions.
func (r *SkillRegistry) All() []SkillDef {
	return r.all
}

// Count returns the number of skills in the registry.
func (r *SkillRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// ItemRegistry
// =============================================================================

// ItemRegistry holds loaded item definitions.
type ItemRegistry struct {
	items map[string]*ItemDef
	all   []ItemDef
}

// NewItemRegistry creates a registry from loaded item definitions.
func NewItemRegistry(items []ItemDef) *ItemRegistry {
	registry := &ItemRegistry{
		items: make(map[string]*ItemDef),
		all:   items,
	}
	for i := range items {
		registry.items[items[i].ID] = &items[i]
	}
	return registry
}

// LoadItemRegistry loads and creates a registry from the embedded
// items.json.
func LoadItemRegistry() (*ItemRegistry, error) {
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}
	return NewItemRegistry(items), nil
}

// MustLoadItemRegistry loads a registry, panicking on error.
func MustLoadItemRegistry() *ItemRegistry {
	registry, err := LoadItemRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the item definition with the given ID, or nil if not
// found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	return r.items[id]
}

// All returns all item definitions.
func (r *ItemRegistry) All() []ItemDef {
	return r.all
}

// =============================================================================
// EnemyRegistry
// =============================================================================

// EnemyRegistry holds loaded enemy definitions and provides spawning
// utilities.
type EnemyRegistry struct {
	enemies     []EnemyDef
	totalWeight int
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	totalWeight := 0
	for _, e := range enemies {
		totalWeight += e.SpawnWeight
	}
	return &EnemyRegistry{
		enemies:     enemies,
		totalWeight: totalWeight,
	}
}

// LoadEnemyRegistry loads and creates a registry from the embedded
// enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies), nil
}

// MustLoadEnemyRegistry loads a registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random enemy definition using weighted
// probability. Enemies with higher spawnWeight are more likely to be
// selected.
func (r *EnemyRegistry) SpawnRandom(rng *rand.Rand) *EnemyDef {
	if r.totalWeight <= 0 || len(r.enemies) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.enemies {
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}

	// Fallback (shouldn't happen)
	return &r.enemies[0]
}

// GetByID returns the enemy definition with the given ID, or nil if not
// found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}

// Package game provides the main game loop and state management.
package game

// State represents the current top-level game state.
type State int

const (
	// StateMenu is the title screen.
	StateMenu State = iota
	// StateCreation is character creation (name and class choice).
	StateCreation
	// StateExplore is the dungeon exploration menu.
	StateExplore
	// StateCombat is an active combat encounter.
	StateCombat
	// StateGameOver is shown after the player is defeated.
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateCreation:
		return "creation"
	case StateExplore:
		return "explore"
	case StateCombat:
		return "combat"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

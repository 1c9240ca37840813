package game

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonquest/internal/combat"
	"github.com/samdwyer/dungeonquest/internal/entity"
	"github.com/samdwyer/dungeonquest/internal/ui"
)

// combatDriver holds the per-encounter presentation state: the session
// plus which submenu is open. All combat rules live in the session.
type combatDriver struct {
	session *combat.Session
	menu    ui.CombatMenu
}

// startCombat spawns a fresh enemy and opens a combat session.
func (g *Game) startCombat(ctx context.Context) {
	def := g.enemies.SpawnRandom(g.rng)
	if def == nil {
		g.story = "The dungeon is strangely quiet."
		return
	}
	enemy := entity.NewEnemyFromDef(def)

	session, err := combat.NewSession(ctx, g.player, enemy, g.rng)
	if err != nil {
		// Player in no state to fight; shouldn't happen from exploration.
		g.story = err.Error()
		return
	}

	g.encounter = &combatDriver{session: session, menu: ui.MenuActions}
	g.state = StateCombat
}

// renderCombat builds a view of the current encounter and draws it.
func (g *Game) renderCombat() {
	s := g.encounter.session
	g.renderer.RenderCombat(ui.CombatView{
		Player:   s.Player(),
		Enemy:    s.Enemy(),
		Messages: s.Messages(),
		Menu:     g.encounter.menu,
		Stunned:  s.PlayerStunned(),
		Over:     s.State() != combat.StateActive,
	})
}

// handleCombatKey processes combat input, mapping keys to session
// actions. Submenu cancels and declined actions leave the turn
// unconsumed; the session enforces that.
func (g *Game) handleCombatKey(ctx context.Context, ev *tcell.EventKey) {
	s := g.encounter.session

	if s.State() != combat.StateActive {
		if ev.Key() == tcell.KeyEnter {
			g.finishCombat()
		}
		return
	}

	if s.PlayerStunned() {
		if ev.Key() == tcell.KeyEnter {
			// The action is ignored; the turn runs without a player phase.
			g.submitAction(ctx, combat.Action{})
		}
		return
	}

	if ev.Key() == tcell.KeyEscape && g.encounter.menu != ui.MenuActions {
		g.encounter.menu = ui.MenuActions
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}

	switch g.encounter.menu {
	case ui.MenuActions:
		switch ev.Rune() {
		case '1':
			g.submitAction(ctx, combat.Action{Kind: combat.ActionAttack})
		case '2':
			if len(g.player.Skills) > 0 {
				g.encounter.menu = ui.MenuSkills
			}
		case '3':
			if len(g.player.Inventory) > 0 {
				g.encounter.menu = ui.MenuItems
			}
		case '4':
			g.submitAction(ctx, combat.Action{Kind: combat.ActionFlee})
		}

	case ui.MenuSkills:
		if ev.Rune() == '0' {
			g.encounter.menu = ui.MenuActions
			return
		}
		index := int(ev.Rune() - '1')
		if index >= 0 && index < len(g.player.Skills) {
			g.submitAction(ctx, combat.Action{Kind: combat.ActionUseSkill, Index: index})
		}

	case ui.MenuItems:
		if ev.Rune() == '0' {
			g.encounter.menu = ui.MenuActions
			return
		}
		index := int(ev.Rune() - '1')
		if index >= 0 && index < len(g.player.Inventory) {
			g.submitAction(ctx, combat.Action{Kind: combat.ActionUseItem, Index: index})
		}
	}
}

// submitAction runs one turn through the session and returns the menu
// to the action list.
func (g *Game) submitAction(ctx context.Context, action combat.Action) {
	g.encounter.session.SubmitAction(ctx, action)
	g.encounter.menu = ui.MenuActions
}

// finishCombat leaves the encounter based on how it ended.
func (g *Game) finishCombat() {
	switch g.encounter.session.State() {
	case combat.StatePlayerVictory:
		g.story = fmt.Sprintf("You defeated the %s and continue exploring.", g.encounter.session.Enemy().Name)
		g.state = StateExplore
	case combat.StatePlayerFled:
		g.story = "You slip back into the shadows, heart pounding."
		g.state = StateExplore
	case combat.StatePlayerDefeat:
		g.state = StateGameOver
	}
	g.encounter = nil
}

func describeGoldFind(gold int) string {
	return fmt.Sprintf("You found %d gold hidden in a dusty chest!", gold)
}

func describeRest(heal, mp int) string {
	return fmt.Sprintf("You rest by the campfire. Recovered %d HP and %d MP.", heal, mp)
}

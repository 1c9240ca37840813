package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonquest/internal/entity"
	"github.com/samdwyer/dungeonquest/internal/gamedata"
)

// CombatMenu identifies which choice list the combat screen shows.
type CombatMenu int

const (
	// MenuActions shows the four top-level combat actions.
	MenuActions CombatMenu = iota
	// MenuSkills shows the player's skill list.
	MenuSkills
	// MenuItems shows the player's inventory.
	MenuItems
)

// CombatView is the snapshot of an encounter the renderer draws. It is
// produced by the game loop; the renderer holds no combat rules.
type CombatView struct {
	Player   *entity.Player
	Enemy    *entity.Enemy
	Messages []string
	Menu     CombatMenu
	Stunned  bool // Player must skip: show a continue prompt instead of the menu
	Over     bool // Encounter ended: show a continue prompt
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

var (
	styleDefault = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHP      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleMP      = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleDanger  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// RenderTitle draws the title screen.
func (r *Renderer) RenderTitle() {
	r.screen.Clear()
	w, _ := r.screen.Size()
	r.drawCentered(2, w, "DUNGEON QUEST", styleTitle)
	r.drawCentered(3, w, "a terminal adventure", styleDim)
	r.drawCentered(6, w, "[1] New Game", styleDefault)
	r.drawCentered(7, w, "[2] Quit", styleDefault)
	r.screen.Show()
}

// RenderNamePrompt draws the name entry step of character creation.
func (r *Renderer) RenderNamePrompt(name string) {
	r.screen.Clear()
	r.drawText(2, 2, "CHARACTER CREATION", styleTitle)
	r.drawText(2, 4, "Enter your hero's name:", styleDefault)
	r.drawText(2, 5, "> "+name+"_", styleDefault)
	r.drawText(2, 7, "Press Enter to confirm", styleDim)
	r.screen.Show()
}

// RenderClassPicker draws the class choice step of character creation.
func (r *Renderer) RenderClassPicker(name string, classes []gamedata.ClassDef) {
	r.screen.Clear()
	r.drawText(2, 2, "CHARACTER CREATION", styleTitle)
	r.drawText(2, 4, fmt.Sprintf("Choose a class for %s:", name), styleDefault)
	for i, class := range classes {
		line := fmt.Sprintf("[%d] %-8s - %s", i+1, class.Name, class.Description)
		r.drawText(2, 6+i, line, styleDefault)
	}
	r.screen.Show()
}

// RenderExploration draws the exploration menu.
func (r *Renderer) RenderExploration(player *entity.Player, story string) {
	r.screen.Clear()
	w, _ := r.screen.Size()

	r.drawText(2, 1, fmt.Sprintf("%s the %s", player.Name, player.ClassName), styleTitle)
	r.drawStatLine(2, 2, player)
	r.drawText(2, 3, fmt.Sprintf("Gold: %d  EXP: %d/%d", player.Gold, player.Stats.Exp, player.Stats.Level*100), styleDim)

	r.drawWrapped(2, 5, w-4, story, styleDefault)

	r.drawText(2, 9, "[1] Explore deeper", styleDefault)
	r.drawText(2, 10, "[2] Search for treasure", styleDefault)
	r.drawText(2, 11, "[3] Rest at campfire", styleDefault)
	r.drawText(2, 12, "[4] Exit dungeon", styleDefault)
	r.screen.Show()
}

// RenderCombat draws the combat screen for the given view.
func (r *Renderer) RenderCombat(view CombatView) {
	r.screen.Clear()
	w, h := r.screen.Size()

	enemyStyle := styleDanger
	if view.Enemy.Def != nil {
		enemyStyle = tcell.StyleDefault.Foreground(view.Enemy.Def.TCellColor()).Bold(true)
	}
	r.drawText(2, 1, fmt.Sprintf("%c %s (Lv %d)", view.Enemy.Glyph, view.Enemy.Name, view.Enemy.Stats.Level), enemyStyle)
	r.drawBar(2, 2, 20, view.Enemy.Stats.HP, view.Enemy.Stats.MaxHP, "HP", styleHP)
	r.drawText(2, 3, "Status: "+view.Enemy.Stats.EffectsText(), styleDim)

	r.drawText(2, 5, fmt.Sprintf("%s the %s (Lv %d)", view.Player.Name, view.Player.ClassName, view.Player.Stats.Level), styleTitle)
	r.drawBar(2, 6, 20, view.Player.Stats.HP, view.Player.Stats.MaxHP, "HP", styleHP)
	r.drawBar(2, 7, 20, view.Player.Stats.MP, view.Player.Stats.MaxMP, "MP", styleMP)
	r.drawText(2, 8, "Status: "+view.Player.Stats.EffectsText(), styleDim)

	// Most recent messages, bottom-aligned above the menu
	menuTop := h - 8
	logTop := 10
	logLines := menuTop - logTop - 1
	messages := view.Messages
	if logLines > 0 && len(messages) > logLines {
		messages = messages[len(messages)-logLines:]
	}
	for i, msg := range messages {
		r.drawWrapped(2, logTop+i, w-4, msg, styleDefault)
	}

	switch {
	case view.Over, view.Stunned:
		r.drawText(2, menuTop, "Press Enter to continue...", styleDim)
	case view.Menu == MenuActions:
		r.drawText(2, menuTop, "[1] Attack", styleDefault)
		r.drawText(2, menuTop+1, "[2] Skills", styleDefault)
		r.drawText(2, menuTop+2, "[3] Items", styleDefault)
		r.drawText(2, menuTop+3, "[4] Run", styleDefault)
	case view.Menu == MenuSkills:
		for i, skill := range view.Player.Skills {
			line := fmt.Sprintf("[%d] %s (%d MP) - %s", i+1, skill.Name, skill.MPCost, skill.Description)
			r.drawText(2, menuTop+i, line, styleDefault)
		}
		r.drawText(2, menuTop+len(view.Player.Skills), "[0] Back", styleDim)
	case view.Menu == MenuItems:
		for i, item := range view.Player.Inventory {
			line := fmt.Sprintf("[%d] %s - %s", i+1, item.Name, item.Description)
			r.drawText(2, menuTop+i, line, styleDefault)
		}
		r.drawText(2, menuTop+len(view.Player.Inventory), "[0] Back", styleDim)
	}
	r.screen.Show()
}

// RenderGameOver draws the defeat screen.
func (r *Renderer) RenderGameOver() {
	r.screen.Clear()
	w, h := r.screen.Size()
	r.drawCentered(h/2-1, w, "GAME OVER", styleDanger)
	r.drawCentered(h/2+1, w, "Press Enter to return to the menu", styleDim)
	r.screen.Show()
}

// drawText draws a string starting at (x, y).
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, style)
		col++
	}
}

// drawCentered draws a string horizontally centered on row y.
func (r *Renderer) drawCentered(y, width int, text string, style tcell.Style) {
	x := (width - len(text)) / 2
	if x < 0 {
		x = 0
	}
	r.drawText(x, y, text, style)
}

// drawWrapped draws text, truncated to the given width.
func (r *Renderer) drawWrapped(x, y, width int, text string, style tcell.Style) {
	if width > 0 && len(text) > width {
		text = text[:width]
	}
	r.drawText(x, y, text, style)
}

// drawBar draws a labeled resource bar, e.g. "HP [########--]  40/50".
func (r *Renderer) drawBar(x, y, width, value, max int, label string, style tcell.Style) {
	filled := 0
	if max > 0 {
		filled = value * width / max
	}
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '#'
		} else {
			bar[i] = '-'
		}
	}
	r.drawText(x, y, fmt.Sprintf("%s [%s] %d/%d", label, string(bar), value, max), style)
}

// drawStatLine draws a compact HP/MP summary for exploration screens.
func (r *Renderer) drawStatLine(x, y int, player *entity.Player) {
	s := player.Stats
	r.drawText(x, y, fmt.Sprintf("HP %d/%d  MP %d/%d  ATK %d  SPD %d",
		s.HP, s.MaxHP, s.MP, s.MaxMP, s.EffectiveAttack(), s.EffectiveSpeed()), styleDefault)
}

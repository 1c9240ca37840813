package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeonquest/internal/entity"
	"github.com/samdwyer/dungeonquest/internal/gamedata"
	"github.com/samdwyer/dungeonquest/internal/telemetry"
	"github.com/samdwyer/dungeonquest/internal/ui"
)

// Game holds the entire game state: the screen, the loaded content
// registries, the current player, and the active combat session if any.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	cfg      Config
	rng      *rand.Rand

	skills  *gamedata.SkillRegistry
	items   *gamedata.ItemRegistry
	enemies *gamedata.EnemyRegistry
	classes []gamedata.ClassDef

	state     State
	player    *entity.Player
	encounter *combatDriver
	story     string
	running   bool

	// Character creation
	nameInput    string
	pickingClass bool
}

// New creates a new game instance, loading all static content up front
// so malformed content fails at startup rather than mid-combat.
func New(cfg Config) (*Game, error) {
	skills, err := gamedata.LoadSkillRegistry()
	if err != nil {
		return nil, err
	}
	items, err := gamedata.LoadItemRegistry()
	if err != nil {
		return nil, err
	}
	enemies, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		return nil, err
	}
	classes, err := gamedata.LoadClasses()
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		skills:   skills,
		items:    items,
		enemies:  enemies,
		classes:  classes,
		state:    StateMenu,
		running:  true,
	}, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	_, initSpan := tracer.Start(ctx, "game.init")
	initSpan.SetAttributes(
		attribute.Int("content.skills", g.skills.Count()),
		attribute.Int("content.enemies", g.enemies.Count()),
		attribute.Int("content.classes", len(g.classes)),
		attribute.Int64("seed", g.cfg.Seed),
	)
	initSpan.End()

	for g.running {
		g.render()
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}

// render draws the screen for the current state.
func (g *Game) render() {
	switch g.state {
	case StateMenu:
		g.renderer.RenderTitle()
	case StateCreation:
		if g.pickingClass {
			g.renderer.RenderClassPicker(g.nameInput, g.classes)
		} else {
			g.renderer.RenderNamePrompt(g.nameInput)
		}
	case StateExplore:
		g.renderer.RenderExploration(g.player, g.story)
	case StateCombat:
		g.renderCombat()
	case StateGameOver:
		g.renderer.RenderGameOver()
	}
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent dispatches keyboard input by game state.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		g.running = false
		return
	}

	switch g.state {
	case StateMenu:
		g.handleMenuKey(ev)
	case StateCreation:
		g.handleCreationKey(ctx, ev)
	case StateExplore:
		g.handleExploreKey(ctx, ev)
	case StateCombat:
		g.handleCombatKey(ctx, ev)
	case StateGameOver:
		if ev.Key() == tcell.KeyEnter {
			g.player = nil
			g.state = StateMenu
		}
	}
}

// handleMenuKey processes title screen input.
func (g *Game) handleMenuKey(ev *tcell.EventKey) {
	switch {
	case ev.Key() == tcell.KeyEscape:
		g.running = false
	case ev.Key() == tcell.KeyRune && ev.Rune() == '1':
		g.nameInput = ""
		g.pickingClass = false
		g.state = StateCreation
	case ev.Key() == tcell.KeyRune && (ev.Rune() == '2' || ev.Rune() == 'q'):
		g.running = false
	}
}

// handleCreationKey processes character creation input: first the hero
// name, then the class choice.
func (g *Game) handleCreationKey(ctx context.Context, ev *tcell.EventKey) {
	if g.pickingClass {
		if ev.Key() == tcell.KeyEscape {
			g.pickingClass = false
			return
		}
		if ev.Key() != tcell.KeyRune {
			return
		}
		choice := int(ev.Rune() - '1')
		if choice < 0 || choice >= len(g.classes) {
			return
		}
		g.createPlayer(ctx, &g.classes[choice])
		return
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		g.state = StateMenu
	case tcell.KeyEnter:
		if g.nameInput == "" {
			g.nameInput = "Hero"
		}
		g.pickingClass = true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(g.nameInput) > 0 {
			g.nameInput = g.nameInput[:len(g.nameInput)-1]
		}
	case tcell.KeyRune:
		if len(g.nameInput) < 16 {
			g.nameInput += string(ev.Rune())
		}
	}
}

// createPlayer builds the player from the chosen class and enters the
// dungeon.
func (g *Game) createPlayer(ctx context.Context, class *gamedata.ClassDef) {
	g.player = entity.NewPlayer(g.nameInput, class, g.skills, g.items)

	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.new_character")
	span.SetAttributes(
		attribute.String("player", g.player.Name),
		attribute.String("class", class.ID),
	)
	span.End()

	g.story = "You enter the dark dungeon. The air is thick with the smell of decay. " +
		"Torch light flickers on ancient stone walls. What will you do?"
	g.state = StateExplore
}

// handleExploreKey processes the exploration menu.
func (g *Game) handleExploreKey(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		g.state = StateMenu
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}

	switch ev.Rune() {
	case '1': // Explore deeper: chance of a random encounter
		if g.rng.Float64() < g.cfg.EncounterChance {
			g.startCombat(ctx)
		} else {
			g.story = "You find an empty chamber. The silence is eerie."
		}
	case '2': // Search for treasure
		if g.rng.Float64() < g.cfg.SearchChance {
			gold := g.cfg.SearchGoldMin + g.rng.Intn(g.cfg.SearchGoldMax-g.cfg.SearchGoldMin+1)
			g.player.Gold += gold
			g.story = describeGoldFind(gold)
		} else {
			g.story = "You search thoroughly but find nothing of value."
		}
	case '3': // Rest at campfire
		heal := g.player.Stats.MaxHP / 3
		mpRestore := g.player.Stats.MaxMP / 2
		g.player.Stats.Heal(heal)
		g.player.Stats.RestoreMP(mpRestore)
		g.story = describeRest(heal, mpRestore)
	case '4':
		g.state = StateMenu
	case 'q':
		g.running = false
	}
}

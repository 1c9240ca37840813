package combat

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeonquest/internal/entity"
	"github.com/samdwyer/dungeonquest/internal/gamedata"
	"github.com/samdwyer/dungeonquest/internal/stats"
	"github.com/samdwyer/dungeonquest/internal/telemetry"
)

// State represents where an encounter stands. Transitions only happen
// while the session is active; the three other states are terminal.
type State int

const (
	StateActive State = iota
	StatePlayerVictory
	StatePlayerDefeat
	StatePlayerFled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StatePlayerVictory:
		return "player_victory"
	case StatePlayerDefeat:
		return "player_defeat"
	case StatePlayerFled:
		return "player_fled"
	default:
		return "unknown"
	}
}

// ActionKind identifies the player decision for one turn.
type ActionKind int

const (
	ActionAttack ActionKind = iota
	ActionUseSkill
	ActionUseItem
	ActionFlee
)

// String returns a human-readable action name.
func (k ActionKind) String() string {
	switch k {
	case ActionAttack:
		return "attack"
	case ActionUseSkill:
		return "use_skill"
	case ActionUseItem:
		return "use_item"
	case ActionFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// Action is one player decision. Index selects a skill or inventory
// slot for ActionUseSkill and ActionUseItem; other kinds ignore it.
type Action struct {
	Kind  ActionKind
	Index int
}

// TurnOutcome reports the result of submitting one action: the log
// increment produced, the session state afterwards, and whether the
// action was declined (invalid index, insufficient MP) so the caller
// should re-prompt without the turn having advanced.
type TurnOutcome struct {
	State    State
	Messages []string
	Reprompt bool
}

// Session is one combat encounter between the player and an enemy. It
// owns the append-only message log and the turn state machine; the
// presentation layer drives it one action at a time.
type Session struct {
	ID       uuid.UUID
	player   *entity.Player
	enemy    *entity.Enemy
	resolver *Resolver
	rng      *rand.Rand
	state    State
	log      []string
	turns    int
}

// NewSession starts an encounter. Both combatants must be alive.
func NewSession(ctx context.Context, player *entity.Player, enemy *entity.Enemy, rng *rand.Rand) (*Session, error) {
	if player == nil || enemy == nil {
		return nil, errors.New("combat requires both a player and an enemy")
	}
	if !player.IsAlive() {
		return nil, fmt.Errorf("%s is in no state to fight", player.Name)
	}
	if !enemy.IsAlive() {
		return nil, fmt.Errorf("%s is already dead", enemy.Name)
	}

	s := &Session{
		ID:       uuid.New(),
		player:   player,
		enemy:    enemy,
		resolver: NewResolver(rng),
		rng:      rng,
		state:    StateActive,
		log:      []string{fmt.Sprintf("A wild %s appears!", enemy.Name)},
	}

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "session.start")
	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.String("player", player.Name),
		attribute.String("player.class", player.ClassName),
		attribute.String("enemy", enemy.Name),
	)
	span.End()

	return s, nil
}

// State returns the current session state.
func (s *Session) State() State { return s.state }

// Messages returns the full ordered message log.
func (s *Session) Messages() []string { return s.log }

// Turns returns the number of turns consumed so far.
func (s *Session) Turns() int { return s.turns }

// Player returns the player-side combatant.
func (s *Session) Player() *entity.Player { return s.player }

// Enemy returns the enemy-side combatant.
func (s *Session) Enemy() *entity.Enemy { return s.enemy }

// PlayerStunned reports whether the player must skip the coming action
// phase. The driver uses this to avoid prompting for a decision that
// would be ignored.
func (s *Session) PlayerStunned() bool {
	return s.state == StateActive && s.player.Stats.IsStunned()
}

// SubmitAction consumes exactly one player decision and runs the turn:
// player action, enemy retaliation, end-of-turn status effect tick,
// terminal detection. When the player is stunned the given action is
// ignored and the turn runs without a player phase. Declined actions
// (invalid index, insufficient MP, empty inventory) return with
// Reprompt set and consume nothing.
func (s *Session) SubmitAction(ctx context.Context, action Action) TurnOutcome {
	if s.state != StateActive {
		return TurnOutcome{State: s.state}
	}

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "session.turn")
	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.String("action", action.Kind.String()),
		attribute.Int("turn", s.turns),
	)
	defer span.End()

	mark := len(s.log)

	if s.player.Stats.IsStunned() {
		s.logf("%s is stunned and cannot act!", s.player.Name)
		s.enemyPhase()
		s.endOfTurn()
		s.turns++
		return s.finish(span, mark)
	}

	switch action.Kind {
	case ActionAttack:
		result := s.resolver.BasicAttack(s.player, s.enemy)
		s.log = append(s.log, result.Message)
		span.SetAttributes(attribute.Int("damage", result.Damage))
		if !s.enemy.IsAlive() {
			s.handleVictory()
			s.turns++
			return s.finish(span, mark)
		}

	case ActionUseSkill:
		if action.Index < 0 || action.Index >= len(s.player.Skills) {
			return s.declined(span, mark)
		}
		skill := &s.player.Skills[action.Index]
		target := Combatant(s.enemy)
		if skill.Type == gamedata.SkillHeal {
			target = s.player
		}
		result := s.resolver.ResolveSkill(s.player, target, skill)
		s.log = append(s.log, result.Message)
		if !result.OK {
			return s.declined(span, mark)
		}
		span.SetAttributes(
			attribute.String("skill", skill.ID),
			attribute.Int("damage", result.Damage),
		)
		if !s.enemy.IsAlive() {
			s.handleVictory()
			s.turns++
			return s.finish(span, mark)
		}

	case ActionUseItem:
		message, ok := s.player.UseItem(action.Index)
		if !ok {
			return s.declined(span, mark)
		}
		s.log = append(s.log, message)

	case ActionFlee:
		if s.rng.Float64() < 0.5 {
			s.state = StatePlayerFled
			s.logf("%s successfully fled!", s.player.Name)
			return s.finish(span, mark)
		}
		s.logf("%s couldn't escape!", s.player.Name)

	default:
		return s.declined(span, mark)
	}

	s.enemyPhase()
	s.endOfTurn()
	s.turns++
	return s.finish(span, mark)
}

// enemyPhase runs the enemy's retaliation: a basic attack unless the
// enemy is stunned. Reducing the player to 0 HP ends the encounter
// immediately, skipping the end-of-turn tick.
func (s *Session) enemyPhase() {
	if s.state != StateActive {
		return
	}
	if s.enemy.Stats.IsStunned() {
		s.logf("%s is stunned and cannot act!", s.enemy.Name)
		return
	}

	result := s.resolver.BasicAttack(s.enemy, s.player)
	s.log = append(s.log, result.Message)

	if !s.player.IsAlive() {
		s.state = StatePlayerDefeat
		s.logf("%s has been defeated...", s.player.Name)
	}
}

// endOfTurn ticks status effects on the player then the enemy and
// re-evaluates both sides. DOT damage during the tick can end the
// encounter; defeat is checked before victory since the player side
// ticks first.
func (s *Session) endOfTurn() {
	if s.state != StateActive {
		return
	}

	s.logTick(s.player.Stats.Tick())
	s.logTick(s.enemy.Stats.Tick())

	if !s.player.IsAlive() {
		s.state = StatePlayerDefeat
		s.logf("%s has been defeated...", s.player.Name)
		return
	}
	if !s.enemy.IsAlive() {
		s.handleVictory()
	}
}

// handleVictory transitions to victory and grants the enemy's rewards.
// The level-up message comes from comparing the level before and after
// the experience grant.
func (s *Session) handleVictory() {
	s.state = StatePlayerVictory
	s.logf("%s defeated!", s.enemy.Name)

	oldLevel := s.player.Stats.Level
	s.player.GainExp(s.enemy.ExpReward)
	s.player.Gold += s.enemy.GoldReward
	s.logf("Gained %d EXP and %d gold!", s.enemy.ExpReward, s.enemy.GoldReward)

	if s.player.Stats.Level > oldLevel {
		s.logf("[LEVEL UP!] Now level %d!", s.player.Stats.Level)
	}
}

// logTick appends messages for a tick pass.
func (s *Session) logTick(events []stats.TickEvent) {
	for _, ev := range events {
		if ev.Type == stats.EffectDamageOverTime {
			s.logf("[DOT] %s deals %d damage!", ev.Name, ev.Damage)
		}
		if ev.Expired {
			s.logf("[*] %s wore off!", ev.Name)
		}
	}
}

func (s *Session) logf(format string, args ...any) {
	s.log = append(s.log, fmt.Sprintf(format, args...))
}

func (s *Session) declined(span trace.Span, mark int) TurnOutcome {
	span.SetAttributes(attribute.Bool("declined", true))
	return TurnOutcome{State: s.state, Messages: s.log[mark:], Reprompt: true}
}

func (s *Session) finish(span trace.Span, mark int) TurnOutcome {
	if s.state != StateActive {
		span.SetAttributes(attribute.String("outcome", s.state.String()))
	}
	return TurnOutcome{State: s.state, Messages: s.log[mark:]}
}

package combat

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeonquest/internal/entity"
	"github.com/samdwyer/dungeonquest/internal/gamedata"
	"github.com/samdwyer/dungeonquest/internal/stats"
)

func testPlayer(hp, mp, attack int) *entity.Player {
	return &entity.Player{
		Name:      "Hero",
		ClassName: "Warrior",
		Stats:     stats.New(hp, mp, attack, 8),
		Skills: []gamedata.SkillDef{
			{ID: "power_strike", Name: "Power Strike", MPCost: 10, Type: gamedata.SkillDamage, Power: 1.5},
			{ID: "heal", Name: "Heal", MPCost: 15, Type: gamedata.SkillHeal, Power: 0.8},
		},
	}
}

func testEnemy(hp, attack int) *entity.Enemy {
	return &entity.Enemy{
		Name:       "Goblin Scout",
		Stats:      stats.New(hp, 10, attack, 8),
		ExpReward:  30,
		GoldReward: 15,
	}
}

func newTestSession(t *testing.T, player *entity.Player, enemy *entity.Enemy, src rand.Source) *Session {
	t.Helper()
	session, err := NewSession(context.Background(), player, enemy, rand.New(src))
	require.NoError(t, err)
	return session
}

func TestNewSessionValidatesCombatants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	dead := testEnemy(40, 10)
	dead.Stats.HP = 0
	_, err := NewSession(context.Background(), testPlayer(100, 30, 10), dead, rng)
	assert.Error(t, err)

	ghost := testPlayer(100, 30, 10)
	ghost.Stats.HP = 0
	_, err = NewSession(context.Background(), ghost, testEnemy(40, 10), rng)
	assert.Error(t, err)

	_, err = NewSession(context.Background(), nil, testEnemy(40, 10), rng)
	assert.Error(t, err)
}

func TestSessionSeedsEncounterMessage(t *testing.T) {
	session := newTestSession(t, testPlayer(100, 30, 10), testEnemy(40, 10), rand.NewSource(1))

	require.Len(t, session.Messages(), 1)
	assert.Equal(t, "A wild Goblin Scout appears!", session.Messages()[0])
	assert.Equal(t, StateActive, session.State())
}

func TestAttackTurnFullCycle(t *testing.T) {
	// Midpoint variance: player deals 10, enemy retaliates for 5.
	player := testPlayer(100, 30, 10)
	enemy := testEnemy(40, 5)
	session := newTestSession(t, player, enemy, fixedSource{v: 1 << 62})

	outcome := session.SubmitAction(context.Background(), Action{Kind: ActionAttack})

	assert.Equal(t, StateActive, outcome.State)
	assert.False(t, outcome.Reprompt)
	assert.Equal(t, 30, enemy.Stats.HP)
	assert.Equal(t, 95, player.Stats.HP)
	assert.Equal(t, 1, session.Turns())
	require.Len(t, outcome.Messages, 2)
	assert.Contains(t, outcome.Messages[0], "Hero attacks Goblin Scout")
	assert.Contains(t, outcome.Messages[1], "Goblin Scout attacks Hero")
}

func TestVictoryEndsTurnImmediately(t *testing.T) {
	// Player one-shots the enemy: no retaliation, no tick, rewards
	// granted with a level-up message from the before/after compare.
	player := testPlayer(100, 30, 200)
	player.Stats.Exp = 90
	enemy := testEnemy(10, 5)
	enemy.ExpReward = 30
	session := newTestSession(t, player, enemy, fixedSource{v: 1 << 62})

	outcome := session.SubmitAction(context.Background(), Action{Kind: ActionAttack})

	assert.Equal(t, StatePlayerVictory, outcome.State)
	assert.Equal(t, 15, player.Gold)
	assert.Equal(t, 2, player.Stats.Level)
	// Level-up fully restores, so an untouched player proves the enemy
	// never retaliated.
	assert.Equal(t, player.Stats.MaxHP, player.Stats.HP)

	log := session.Messages()
	assert.Contains(t, log, "Goblin Scout defeated!")
	assert.Contains(t, log, "Gained 30 EXP and 15 gold!")
	assert.Contains(t, log, "[LEVEL UP!] Now level 2!")
}

func TestStunSkipsPlayerForExactDuration(t *testing.T) {
	player := testPlayer(1000, 30, 10)
	enemy := testEnemy(400, 1)
	session := newTestSession(t, player, enemy, fixedSource{v: 1 << 62})

	player.Stats.AddEffect(stats.StatusEffect{Name: "Stunned", Type: stats.EffectStun, Duration: 2})

	// Two turns skipped: the submitted action is ignored and the enemy
	// takes no damage.
	for turn := 0; turn < 2; turn++ {
		require.True(t, session.PlayerStunned())
		outcome := session.SubmitAction(context.Background(), Action{Kind: ActionAttack})
		assert.False(t, outcome.Reprompt)
		assert.Contains(t, outcome.Messages[0], "Hero is stunned")
		assert.Equal(t, 400, enemy.Stats.HP)
	}

	// Stun has expired: the player acts again.
	require.False(t, session.PlayerStunned())
	session.SubmitAction(context.Background(), Action{Kind: ActionAttack})
	assert.Equal(t, 390, enemy.Stats.HP)
}

func TestStunnedEnemySkipsRetaliation(t *testing.T) {
	player := testPlayer(100, 30, 10)
	enemy := testEnemy(400, 50)
	session := newTestSession(t, player, enemy, fixedSource{v: 1 << 62})

	enemy.Stats.AddEffect(stats.StatusEffect{Name: "Stunned", Type: stats.EffectStun, Duration: 1})

	outcome := session.SubmitAction(context.Background(), Action{Kind: ActionAttack})

	assert.Equal(t, 100, player.Stats.HP)
	assert.Contains(t, outcome.Messages[1], "Goblin Scout is stunned")
}

func TestDeclinedSkillDoesNotConsumeTurn(t *testing.T) {
	player := testPlayer(100, 5, 10) // Not enough MP for any skill
	enemy := testEnemy(40, 5)
	session := newTestSession(t, player, enemy, fixedSource{v: 1 << 62})

	outcome := session.SubmitAction(context.Background(), Action{Kind: ActionUseSkill, Index: 0})

	assert.True(t, outcome.Reprompt)
	assert.Equal(t, StateActive, outcome.State)
	assert.Equal(t, 0, session.Turns())
	// The enemy must not have retaliated and nothing was spent.
	assert.Equal(t, 100, player.Stats.HP)
	assert.Equal(t, 5, player.Stats.MP)
	assert.Equal(t, 40, enemy.Stats.HP)
	require.Len(t, outcome.Messages, 1)
	assert.Contains(t, outcome.Messages[0], "Not enough MP")
}

func TestInvalidIndexDoesNotConsumeTurn(t *testing.T) {
	player := testPlayer(100, 30, 10)
	enemy := testEnemy(40, 5)
	session := newTestSession(t, player, enemy, fixedSource{v: 1 << 62})

	for _, action := range []Action{
		{Kind: ActionUseSkill, Index: 99},
		{Kind: ActionUseSkill, Index: -1},
		{Kind: ActionUseItem, Index: 0}, // Empty inventory
	} {
		outcome := session.SubmitAction(context.Background(), action)
		assert.True(t, outcome.Reprompt, "action %+v should be declined", action)
		assert.Empty(t, outcome.Messages)
	}
	assert.Equal(t, 0, session.Turns())
	assert.Equal(t, 100, player.Stats.HP)
}

func TestHealSkillTargetsSelf(t *testing.T) {
	player := testPlayer(100, 30, 10)
	player.Stats.HP = 50
	enemy := testEnemy(40, 5)
	session := newTestSession(t, player, enemy, fixedSource{v: 1 << 62})

	session.SubmitAction(context.Background(), Action{Kind: ActionUseSkill, Index: 1})

	// Heal power 0.8 on attack 10 restores 8, then the enemy hits for 5.
	assert.Equal(t, 53, player.Stats.HP)
	assert.Equal(t, 40, enemy.Stats.HP)
}

func TestUseItemConsumesTurn(t *testing.T) {
	player := testPlayer(100, 30, 10)
	player.Stats.HP = 40
	player.Inventory = []gamedata.ItemDef{
		{ID: "health_potion", Name: "Health Potion", Effect: map[string]int{"hp": 40}},
	}
	enemy := testEnemy(40, 5)
	session := newTestSession(t, player, enemy, fixedSource{v: 1 << 62})

	outcome := session.SubmitAction(context.Background(), Action{Kind: ActionUseItem, Index: 0})

	assert.False(t, outcome.Reprompt)
	assert.Equal(t, 1, session.Turns())
	assert.Empty(t, player.Inventory)
	// Healed to 80, then the enemy hits for 5.
	assert.Equal(t, 75, player.Stats.HP)
}

func TestFleeBoundary(t *testing.T) {
	// Float64 returning exactly the 0.5 threshold is a failure: the
	// check is strictly less-than.
	player := testPlayer(100, 30, 10)
	enemy := testEnemy(40, 5)
	session := newTestSession(t, player, enemy, fixedSource{v: 1 << 62})

	outcome := session.SubmitAction(context.Background(), Action{Kind: ActionFlee})

	assert.Equal(t, StateActive, outcome.State)
	assert.Contains(t, outcome.Messages[0], "couldn't escape")
	// Failed flight: the enemy retaliates.
	assert.Equal(t, 95, player.Stats.HP)
}

func TestFleeSuccess(t *testing.T) {
	player := testPlayer(100, 30, 10)
	player.Stats.AddEffect(stats.StatusEffect{Name: "Poison", Type: stats.EffectDamageOverTime, Power: 5, Duration: 3})
	enemy := testEnemy(40, 5)
	session := newTestSession(t, player, enemy, fixedSource{v: 0})

	outcome := session.SubmitAction(context.Background(), Action{Kind: ActionFlee})

	assert.Equal(t, StatePlayerFled, outcome.State)
	// Terminal without enemy action or tick: HP and effect untouched.
	assert.Equal(t, 100, player.Stats.HP)
	assert.Equal(t, 3, player.Stats.Effects()[0].Duration)

	// Further actions are no-ops on a finished session.
	again := session.SubmitAction(context.Background(), Action{Kind: ActionAttack})
	assert.Equal(t, StatePlayerFled, again.State)
	assert.Empty(t, again.Messages)
}

func TestDefeatSkipsEndOfTurnTick(t *testing.T) {
	player := testPlayer(3, 30, 10)
	enemy := testEnemy(400, 100)
	session := newTestSession(t, player, enemy, fixedSource{v: 1 << 62})

	enemy.Stats.AddEffect(stats.StatusEffect{Name: "Poison", Type: stats.EffectDamageOverTime, Power: 5, Duration: 3})

	outcome := session.SubmitAction(context.Background(), Action{Kind: ActionAttack})

	assert.Equal(t, StatePlayerDefeat, outcome.State)
	assert.Contains(t, session.Messages()[len(session.Messages())-1], "has been defeated")
	// Tick skipped: the enemy's poison neither fired nor aged.
	require.Len(t, enemy.Stats.Effects(), 1)
	assert.Equal(t, 3, enemy.Stats.Effects()[0].Duration)
}

func TestDOTKillDetectedAfterTick(t *testing.T) {
	player := testPlayer(100, 30, 10)
	player.Inventory = []gamedata.ItemDef{
		{ID: "health_potion", Name: "Health Potion", Effect: map[string]int{"hp": 40}},
	}
	enemy := testEnemy(400, 5)
	enemy.Stats.HP = 3
	session := newTestSession(t, player, enemy, fixedSource{v: 1 << 62})

	enemy.Stats.AddEffect(stats.StatusEffect{Name: "Poison", Type: stats.EffectDamageOverTime, Power: 5, Duration: 3})

	// Using an item leaves the enemy alive through the action phase;
	// the poison tick finishes it and the loop's re-evaluation catches it.
	outcome := session.SubmitAction(context.Background(), Action{Kind: ActionUseItem, Index: 0})

	assert.Equal(t, StatePlayerVictory, outcome.State)
	assert.Equal(t, 0, enemy.Stats.HP)
	assert.Equal(t, 15, player.Gold)
	// TakeDamage reports the full floored amount even when HP bottomed out.
	assert.Contains(t, session.Messages(), "[DOT] Poison deals 5 damage!")
}

func TestMessagesAreAppendOnly(t *testing.T) {
	player := testPlayer(100, 30, 10)
	enemy := testEnemy(400, 5)
	session := newTestSession(t, player, enemy, fixedSource{v: 1 << 62})

	before := len(session.Messages())
	session.SubmitAction(context.Background(), Action{Kind: ActionAttack})
	after := len(session.Messages())

	assert.Greater(t, after, before)
	assert.Equal(t, "A wild Goblin Scout appears!", session.Messages()[0])
}

package stats

import "testing"

func poison(power, duration int) StatusEffect {
	return StatusEffect{
		Name:     "Poison",
		Type:     EffectDamageOverTime,
		Power:    power,
		Duration: duration,
	}
}

func TestAddEffectMergesByName(t *testing.T) {
	s := New(100, 20, 10, 5)

	// Two poisons with the same name: one entry, powers summed,
	// duration refreshed to the longer of the two.
	s.AddEffect(poison(5, 3))
	s.AddEffect(poison(7, 2))

	effects := s.Effects()
	if len(effects) != 1 {
		t.Fatalf("expected 1 effect entry, got %d", len(effects))
	}
	if effects[0].Power != 12 {
		t.Errorf("Power = %d, want 12", effects[0].Power)
	}
	if effects[0].Duration != 3 {
		t.Errorf("Duration = %d, want 3", effects[0].Duration)
	}
}

func TestAddEffectRefreshesStatModifierDuration(t *testing.T) {
	s := New(100, 20, 10, 5)
	buff := StatusEffect{
		Name:         "Battle Cry",
		Type:         EffectStatModifier,
		StatAffected: "attack",
		Power:        5,
		Duration:     2,
	}

	s.AddEffect(buff)
	buff.Duration = 4
	s.AddEffect(buff)

	effects := s.Effects()
	if len(effects) != 1 {
		t.Fatalf("expected 1 effect entry, got %d", len(effects))
	}
	// Stat modifiers refresh duration but never stack power.
	if effects[0].Power != 5 {
		t.Errorf("Power = %d, want 5", effects[0].Power)
	}
	if effects[0].Duration != 4 {
		t.Errorf("Duration = %d, want 4", effects[0].Duration)
	}
}

func TestAddEffectDistinctNames(t *testing.T) {
	s := New(100, 20, 10, 5)
	s.AddEffect(poison(5, 3))
	burn := poison(4, 2)
	burn.Name = "Burn"
	s.AddEffect(burn)

	if len(s.Effects()) != 2 {
		t.Errorf("expected 2 effect entries, got %d", len(s.Effects()))
	}
}

func TestRemoveEffect(t *testing.T) {
	s := New(100, 20, 10, 5)
	s.AddEffect(poison(5, 3))

	s.RemoveEffect("Poison")
	if len(s.Effects()) != 0 {
		t.Errorf("expected 0 effects after removal, got %d", len(s.Effects()))
	}

	// Removing an absent effect is a no-op.
	s.RemoveEffect("Poison")
}

func TestIsStunned(t *testing.T) {
	s := New(100, 20, 10, 5)
	if s.IsStunned() {
		t.Error("IsStunned() = true with no effects")
	}

	s.AddEffect(StatusEffect{Name: "Stunned", Type: EffectStun, Duration: 1})
	if !s.IsStunned() {
		t.Error("IsStunned() = false with an active stun")
	}
}

func TestModifierTotal(t *testing.T) {
	s := New(100, 20, 10, 5)
	s.AddEffect(StatusEffect{Name: "Battle Cry", Type: EffectStatModifier, StatAffected: "attack", Power: 5, Duration: 3})
	s.AddEffect(StatusEffect{Name: "Curse", Type: EffectStatModifier, StatAffected: "attack", Power: -2, Duration: 3})
	s.AddEffect(StatusEffect{Name: "Haste", Type: EffectStatModifier, StatAffected: "speed", Power: 4, Duration: 3})
	s.AddEffect(poison(5, 3)) // DOT power must not count as a modifier

	if got := s.ModifierTotal("attack"); got != 3 {
		t.Errorf("ModifierTotal(attack) = %d, want 3", got)
	}
	if got := s.ModifierTotal("speed"); got != 4 {
		t.Errorf("ModifierTotal(speed) = %d, want 4", got)
	}
}

func TestTickAppliesDOTAndExpires(t *testing.T) {
	s := New(100, 20, 10, 5)
	s.AddEffect(poison(7, 2))

	events := s.Tick()
	if len(events) != 1 {
		t.Fatalf("expected 1 tick event, got %d", len(events))
	}
	if events[0].Damage != 7 {
		t.Errorf("Damage = %d, want 7", events[0].Damage)
	}
	if events[0].Expired {
		t.Error("effect expired after first tick, want 1 turn remaining")
	}
	if s.HP != 93 {
		t.Errorf("HP = %d, want 93", s.HP)
	}

	events = s.Tick()
	if !events[0].Expired {
		t.Error("effect did not expire on its final tick")
	}
	if len(s.Effects()) != 0 {
		t.Errorf("expected 0 effects after expiry, got %d", len(s.Effects()))
	}
	if s.HP != 86 {
		t.Errorf("HP = %d, want 86: the final tick still deals damage", s.HP)
	}
}

func TestTickEveryEffectFiresOncePerPass(t *testing.T) {
	// Removal is applied after the full pass, so an effect expiring
	// mid-pass never prevents later effects from firing.
	s := New(100, 20, 10, 5)
	s.AddEffect(poison(3, 1))
	burn := poison(4, 1)
	burn.Name = "Burn"
	s.AddEffect(burn)

	events := s.Tick()
	if len(events) != 2 {
		t.Fatalf("expected 2 tick events, got %d", len(events))
	}
	if s.HP != 93 {
		t.Errorf("HP = %d, want 93: both DOTs must fire", s.HP)
	}
	if len(s.Effects()) != 0 {
		t.Errorf("expected both effects removed, got %d", len(s.Effects()))
	}
}

func TestTickStunCountsDown(t *testing.T) {
	s := New(100, 20, 10, 5)
	s.AddEffect(StatusEffect{Name: "Stunned", Type: EffectStun, Duration: 2})

	s.Tick()
	if !s.IsStunned() {
		t.Error("stun expired a turn early")
	}
	s.Tick()
	if s.IsStunned() {
		t.Error("stun still active after its duration elapsed")
	}
}

func TestEffectsText(t *testing.T) {
	s := New(100, 20, 10, 5)
	if got := s.EffectsText(); got != "None" {
		t.Errorf("EffectsText() = %q, want \"None\"", got)
	}

	s.AddEffect(StatusEffect{Name: "Battle Cry", Type: EffectStatModifier, StatAffected: "attack", Power: 5, Duration: 3})
	s.AddEffect(poison(7, 2))
	s.AddEffect(StatusEffect{Name: "Stunned", Type: EffectStun, Duration: 1})

	want := "Battle Cry +5 (3t), Poison 7/turn (2t), Stunned (1t)"
	if got := s.EffectsText(); got != want {
		t.Errorf("EffectsText() = %q, want %q", got, want)
	}
}

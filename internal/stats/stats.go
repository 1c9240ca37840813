// Package stats provides character statistics, resource pools, status
// effects and level progression for combatants.
package stats

// Stats holds a combatant's resource pools, base combat stats and level
// progression. Each combatant owns exactly one Stats value; status effects
// live inside it and are managed through the AddEffect/Tick lifecycle.
type Stats struct {
	HP     int
	MaxHP  int
	MP     int
	MaxMP  int
	Attack int
	Speed  int
	Level  int
	Exp    int

	effects []StatusEffect
}

// New creates a Stats container with full pools at level 1.
func New(hp, mp, attack, speed int) *Stats {
	return &Stats{
		HP:     hp,
		MaxHP:  hp,
		MP:     mp,
		MaxMP:  mp,
		Attack: attack,
		Speed:  speed,
		Level:  1,
	}
}

// EffectiveAttack returns attack with all modifiers applied, floored at 1.
func (s *Stats) EffectiveAttack() int {
	return clampStat(s.Attack + s.ModifierTotal("attack"))
}

// EffectiveSpeed returns speed with all modifiers applied, floored at 1.
func (s *Stats) EffectiveSpeed() int {
	return clampStat(s.Speed + s.ModifierTotal("speed"))
}

// TakeDamage applies damage to HP and returns the actual amount dealt.
// Damage is always at least 1, even when the computed amount is zero or
// negative; HP never drops below 0.
func (s *Stats) TakeDamage(amount int) int {
	actual := amount
	if actual < 1 {
		actual = 1
	}
	s.HP -= actual
	if s.HP < 0 {
		s.HP = 0
	}
	return actual
}

// Heal restores HP up to MaxHP and returns the reported amount restored.
// The reported amount is floored at 1 but not clamped against MaxHP, so
// near full health it can overstate the true recovery. Kept as-is for
// message compatibility.
func (s *Stats) Heal(amount int) int {
	actual := amount
	if actual < 1 {
		actual = 1
	}
	s.HP += amount
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	return actual
}

// UseMP deducts MP if the pool is sufficient. Returns false and leaves
// the pool unchanged otherwise.
func (s *Stats) UseMP(amount int) bool {
	if s.MP < amount {
		return false
	}
	s.MP -= amount
	return true
}

// RestoreMP restores MP up to MaxMP.
func (s *Stats) RestoreMP(amount int) {
	s.MP += amount
	if s.MP > s.MaxMP {
		s.MP = s.MaxMP
	}
}

// IsAlive reports whether HP is above zero.
func (s *Stats) IsAlive() bool {
	return s.HP > 0
}

// GainExp adds experience and performs at most one level-up when the
// threshold (level * 100) is reached. A single grant crossing two
// thresholds still levels once; the surplus counts toward the next
// threshold on the following grant.
func (s *Stats) GainExp(amount int) {
	s.Exp += amount
	if s.Exp >= s.Level*100 {
		s.levelUp()
	}
}

// levelUp raises the level, grows pools and attack by 10%, bumps speed,
// and fully restores HP and MP.
func (s *Stats) levelUp() {
	s.Level++
	s.MaxHP += s.MaxHP / 10
	s.MaxMP += s.MaxMP / 10
	s.HP = s.MaxHP
	s.MP = s.MaxMP
	s.Attack += s.Attack / 10
	s.Speed++
}

func clampStat(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

package domain

// Hero - герой фракции: носитель армии и очков движения.
// Инвариант: 0 <= MovementPoints <= MaxMovementPoints;
// сбрасываются до максимума в начале хода владельца.
type Hero struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Level            int `json:"level"`
	Experience       int `json:"experience"`
	ExperienceToNext int `json:"experienceToNext"`

	Pos               Position `json:"pos"`
	MovementPoints    float64  `json:"movementPoints"`
	MaxMovementPoints float64  `json:"maxMovementPoints"`

	// Армия - упорядоченный список стеков
	Army []*Unit `json:"army"`

	// Аддитивные боевые бонусы (растут с уровнями)
	AttackBonus   int `json:"attackBonus"`
	DefenseBonus  int `json:"defenseBonus"`
	MovementBonus int `json:"movementBonus"`
	MoraleBonus   int `json:"moraleBonus"`

	FactionID string `json:"factionId"`
}

// ResetMovement восстанавливает очки движения на начало хода.
func (h *Hero) ResetMovement() {
	h.MovementPoints = h.MaxMovementPoints
}

// SpendMovement списывает стоимость, не давая уйти в минус.
func (h *Hero) SpendMovement(cost float64) {
	h.MovementPoints -= cost
	if h.MovementPoints < 0 {
		h.MovementPoints = 0
	}
}

// AddStack вливает стек в армию: либо растит существующий стек того же
// типа, либо добавляет новый в конец.
func (h *Hero) AddStack(u *Unit) {
	for _, existing := range h.Army {
		if existing.Type == u.Type {
			existing.Count += u.Count
			return
		}
	}
	h.Army = append(h.Army, u)
}

// PruneArmy выкидывает пустые стеки (Count <= 0).
func (h *Hero) PruneArmy() {
	alive := h.Army[:0]
	for _, u := range h.Army {
		if u.Count > 0 {
			alive = append(alive, u)
		}
	}
	h.Army = alive
}

// ArmyPower - суммарная оценка силы армии.
func (h *Hero) ArmyPower() float64 {
	total := 0.0
	for _, u := range h.Army {
		total += u.Power()
	}
	return total
}

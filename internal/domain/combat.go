package domain

// Размер боевой сетки
const (
	CombatGridWidth  = 8
	CombatGridHeight = 6
)

// Стороны боя
const (
	SideAttacker = "attacker"
	SideDefender = "defender"
)

// CombatUnit - проекция стека в бой. Статы копируются по значению
// при старте боя и пишутся назад в армию героя только при победе атакующего.
type CombatUnit struct {
	Unit

	GridPos     Position `json:"gridPos"` // позиция на боевой сетке, не мировая
	Side        string   `json:"side"`
	HasActed    bool     `json:"hasActed"`
	IsDefending bool     `json:"isDefending"`

	// Статусные эффекты. Базовыми правилами не используются,
	// но тип присутствует для расширений.
	StatusEffects []string `json:"statusEffects,omitempty"`
}

// EffectiveDefense - защита с учетом стойки обороны (x1.5, пока
// юнит обороняется; флаг снимается при смене раунда).
func (cu *CombatUnit) EffectiveDefense() int {
	if cu.IsDefending {
		return cu.Defense * 3 / 2
	}
	return cu.Defense
}

// CombatLogEntry - одна запись журнала боя (только добавление).
type CombatLogEntry struct {
	Round int    `json:"round"`
	Text  string `json:"text"`
}

// CombatState существует только пока gamePhase == combat.
// Создается startCombat, уничтожается endCombat.
type CombatState struct {
	AttackerHeroID string `json:"attackerHeroId"`
	DefenderHeroID string `json:"defenderHeroId,omitempty"`
	DefenderPOIID  string `json:"defenderPoiId,omitempty"`

	Attackers []*CombatUnit `json:"attackers"`
	Defenders []*CombatUnit `json:"defenders"`

	// Очередь ходов: отсортирована по убыванию скорости,
	// при равенстве - порядок ростера (stable sort).
	TurnQueue []*CombatUnit `json:"turnQueue"`
	TurnIndex int           `json:"turnIndex"`
	Round     int           `json:"round"`

	ActiveSide string `json:"activeSide"` // чья сторона ходит сейчас

	Log []CombatLogEntry `json:"log"`

	GridWidth  int `json:"gridWidth"`
	GridHeight int `json:"gridHeight"`

	// Награда опыта за полную победу. Считается на старте боя,
	// пока ростер защитников еще цел.
	ExperienceReward int `json:"experienceReward"`
}

// Current возвращает юнита, чей ход сейчас (nil, если очередь пуста).
func (cs *CombatState) Current() *CombatUnit {
	if len(cs.TurnQueue) == 0 || cs.TurnIndex < 0 || cs.TurnIndex >= len(cs.TurnQueue) {
		return nil
	}
	return cs.TurnQueue[cs.TurnIndex]
}

// AppendLog дописывает строку в журнал боя.
func (cs *CombatState) AppendLog(text string) {
	cs.Log = append(cs.Log, CombatLogEntry{Round: cs.Round, Text: text})
}

// AliveOn возвращает живые юниты стороны.
func (cs *CombatState) AliveOn(side string) []*CombatUnit {
	roster := cs.Attackers
	if side == SideDefender {
		roster = cs.Defenders
	}
	var alive []*CombatUnit
	for _, cu := range roster {
		if cu.Alive() {
			alive = append(alive, cu)
		}
	}
	return alive
}

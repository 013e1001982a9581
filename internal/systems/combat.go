package systems

import (
	"crownfall-server/internal/domain"
	"crownfall-server/pkg/logger"
	"crownfall-server/pkg/rng"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Потолок раундов автобоя
const autoBattleMaxRounds = 20

// NewCombat проецирует армии в боевое состояние.
// Статы копируются по значению; бонусы героя добавляются к его юнитам
// на время боя. Атакующие встают на левый край сетки, защитники на правый.
func NewCombat(attacker *domain.Hero, defenderHero *domain.Hero, defenderPOI *domain.PointOfInterest) *domain.CombatState {
	cs := &domain.CombatState{
		AttackerHeroID: attacker.ID,
		GridWidth:      domain.CombatGridWidth,
		GridHeight:     domain.CombatGridHeight,
		Round:          1,
	}

	cs.Attackers = projectArmy(attacker.Army, attacker, domain.SideAttacker, 0)

	var defenderArmy []*domain.Unit
	switch {
	case defenderHero != nil:
		cs.DefenderHeroID = defenderHero.ID
		defenderArmy = defenderHero.Army
	case defenderPOI != nil:
		cs.DefenderPOIID = defenderPOI.ID
		defenderArmy = defenderPOI.Garrison
	}
	cs.Defenders = projectArmy(defenderArmy, defenderHero, domain.SideDefender, domain.CombatGridWidth-1)

	// Награда опыта фиксируется на старте: потом ростер защиты уже пуст
	for _, cu := range cs.Defenders {
		cs.ExperienceReward += cu.MaxHP * cu.Count / 2
	}

	buildTurnQueue(cs)
	if cur := cs.Current(); cur != nil {
		cs.ActiveSide = cur.Side
	}

	cs.AppendLog("Бой начинается.")
	return cs
}

// projectArmy копирует стеки в боевые юниты колонкой на краю сетки.
// hero может быть nil (гарнизон без героя) - тогда бонусов нет.
func projectArmy(army []*domain.Unit, hero *domain.Hero, side string, column int) []*domain.CombatUnit {
	var roster []*domain.CombatUnit
	for i, u := range army {
		if u.Count <= 0 {
			continue
		}
		cu := &domain.CombatUnit{
			Unit:    *u.Clone(),
			Side:    side,
			GridPos: domain.Position{X: column, Y: i % domain.CombatGridHeight},
		}
		if hero != nil {
			cu.Attack += hero.AttackBonus
			cu.Defense += hero.DefenseBonus
		}
		roster = append(roster, cu)
	}
	return roster
}

// buildTurnQueue сортирует очередь по убыванию скорости.
// Tie-break детерминированный: stable sort сохраняет порядок ростера
// (сначала атакующие, потом защитники).
func buildTurnQueue(cs *domain.CombatState) {
	queue := make([]*domain.CombatUnit, 0, len(cs.Attackers)+len(cs.Defenders))
	queue = append(queue, cs.Attackers...)
	queue = append(queue, cs.Defenders...)

	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].Speed > queue[j].Speed
	})

	cs.TurnQueue = queue
	cs.TurnIndex = 0
}

// AdvanceTurn сдвигает индекс очереди после хода. Когда отходили все,
// начинается новый раунд: флаги hasActed и isDefending сбрасываются
// (стойка обороны действует до конца раунда, см. EffectiveDefense).
func AdvanceTurn(cs *domain.CombatState) {
	if len(cs.TurnQueue) == 0 {
		return
	}

	allActed := true
	for _, cu := range cs.TurnQueue {
		if !cu.HasActed {
			allActed = false
			break
		}
	}

	if allActed {
		for _, cu := range cs.TurnQueue {
			cu.HasActed = false
			cu.IsDefending = false
		}
		cs.Round++
		cs.TurnIndex = 0
	} else {
		// Ищем следующего не ходившего по кругу
		for i := 1; i <= len(cs.TurnQueue); i++ {
			idx := (cs.TurnIndex + i) % len(cs.TurnQueue)
			if !cs.TurnQueue[idx].HasActed {
				cs.TurnIndex = idx
				break
			}
		}
	}

	if cur := cs.Current(); cur != nil {
		cs.ActiveSide = cur.Side
	}
}

// ApplyMove переставляет юнита на сетке. Легальность клетки
// (дальность, занятость) - забота вызывающего слоя.
func ApplyMove(cs *domain.CombatState, cu *domain.CombatUnit, to domain.Position) {
	cu.GridPos = to
	cu.HasActed = true
}

// ApplyAttack разрешает атаку и возвращает строку для журнала.
// Урон = max(1, атака * количество - эффективная защита цели).
// Потери = floor(урон / maxHP одного существа).
func ApplyAttack(cs *domain.CombatState, attacker, target *domain.CombatUnit) string {
	damage := attacker.Attack*attacker.Count - target.EffectiveDefense()
	if damage < 1 {
		damage = 1
	}

	countBefore := target.Count

	target.HP -= damage
	unitsLost := damage / target.MaxHP
	target.Count -= unitsLost
	if target.Count < 0 {
		target.Count = 0
	}

	logger.Log.WithFields(logrus.Fields{
		"component":  "combat_system",
		"attacker":   attacker.ID,
		"target":     target.ID,
		"damage":     damage,
		"units_lost": unitsLost,
		"count":      fmt.Sprintf("%d->%d", countBefore, target.Count),
	}).Debug("Attack resolved.")

	msg := fmt.Sprintf("%s наносит %d урона по %s", attacker.Name, damage, target.Name)
	if unitsLost > 0 {
		msg += fmt.Sprintf(" (потери: %d)", unitsLost)
	}

	if target.Count <= 0 || target.HP <= 0 {
		removeFromCombat(cs, target)
		msg += fmt.Sprintf(". Отряд %s уничтожен", target.Name)
	}

	attacker.HasActed = true
	cs.AppendLog(msg)
	return msg
}

// ApplyDefend переводит юнита в стойку обороны до конца раунда.
func ApplyDefend(cs *domain.CombatState, cu *domain.CombatUnit) {
	cu.IsDefending = true
	cu.HasActed = true
	cs.AppendLog(fmt.Sprintf("%s занимает оборону", cu.Name))
}

// ApplyWait - пропуск хода. Очередь НЕ переупорядочивается.
func ApplyWait(cs *domain.CombatState, cu *domain.CombatUnit) {
	cu.HasActed = true
	cs.AppendLog(fmt.Sprintf("%s выжидает", cu.Name))
}

// removeFromCombat выкидывает юнита из ростера и очереди ровно один раз.
func removeFromCombat(cs *domain.CombatState, cu *domain.CombatUnit) {
	remove := func(roster []*domain.CombatUnit) []*domain.CombatUnit {
		for i, other := range roster {
			if other == cu {
				return append(roster[:i], roster[i+1:]...)
			}
		}
		return roster
	}

	if cu.Side == domain.SideAttacker {
		cs.Attackers = remove(cs.Attackers)
	} else {
		cs.Defenders = remove(cs.Defenders)
	}

	for i, other := range cs.TurnQueue {
		if other == cu {
			cs.TurnQueue = append(cs.TurnQueue[:i], cs.TurnQueue[i+1:]...)
			if cs.TurnIndex >= len(cs.TurnQueue) {
				cs.TurnIndex = 0
			} else if i < cs.TurnIndex {
				cs.TurnIndex--
			}
			break
		}
	}
}

// CombatWinner возвращает сторону-победителя, когда один из ростеров
// опустел, иначе пустую строку. Движок сам не завершает бой -
// вызывающий наблюдает пустой ростер и финализирует.
func CombatWinner(cs *domain.CombatState) string {
	if len(cs.AliveOn(domain.SideDefender)) == 0 {
		return domain.SideAttacker
	}
	if len(cs.AliveOn(domain.SideAttacker)) == 0 {
		return domain.SideDefender
	}
	return ""
}

// AutoResolve - быстрая headless-прокрутка боя без поштучного реплея.
// До autoBattleMaxRounds раундов: каждый атакующий бьет случайного
// живого защитника, затем выжившие защитники отвечают.
// Возвращает победителя ("" - ничья по лимиту раундов).
func AutoResolve(cs *domain.CombatState, r *rng.Stream) string {
	for round := 0; round < autoBattleMaxRounds; round++ {
		for _, att := range append([]*domain.CombatUnit(nil), cs.Attackers...) {
			if !att.Alive() {
				continue
			}
			defenders := cs.AliveOn(domain.SideDefender)
			if len(defenders) == 0 {
				return domain.SideAttacker
			}
			ApplyAttack(cs, att, rng.Pick(r, defenders))
		}

		for _, def := range append([]*domain.CombatUnit(nil), cs.Defenders...) {
			if !def.Alive() {
				continue
			}
			attackers := cs.AliveOn(domain.SideAttacker)
			if len(attackers) == 0 {
				return domain.SideDefender
			}
			ApplyAttack(cs, def, rng.Pick(r, attackers))
		}

		if winner := CombatWinner(cs); winner != "" {
			return winner
		}
	}
	return CombatWinner(cs)
}

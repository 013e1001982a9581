package systems

import (
	"crownfall-server/internal/domain"
	"sort"
)

// Настроечные веса эвристики. Подобраны руками.
const (
	aiNearRadius = 3 // "рядом" = манхэттен до клетки-кандидата

	scoreNearNode     = 20
	scoreNearTown     = 40
	scoreCloseToEnemy = 15
	scoreFarFromHome  = -10
	homeLeashDistance = 20

	attackWinFloor    = 0.4
	attackPriorityMin = 50
	attackPriorityMax = 50 // сверх базы, пропорционально уверенности
)

// Виды запланированных действий
const (
	PlanMove   = "move"
	PlanAttack = "attack"
	PlanWait   = "wait"
)

// PlannedAction - одно действие-кандидат с приоритетом.
type PlannedAction struct {
	Kind         string
	HeroID       string
	MoveTo       domain.Position
	TargetHeroID string
	Priority     float64
}

// Plan - чистая функция (фракция, мир, все фракции) -> ранжированный
// список кандидатов. Никакого скрытого состояния между вызовами.
// Нулевой по приоритету "wait" есть всегда.
func Plan(f *domain.Faction, w *domain.World, factions []*domain.Faction) []PlannedAction {
	actions := []PlannedAction{{Kind: PlanWait, Priority: 0}}

	enemies := enemyHeroes(f, factions)

	for _, hero := range f.Heroes {
		if hero.MovementPoints <= 0 {
			continue
		}

		reach := MovementRange(w, hero.Pos, hero.MovementPoints)

		// Ходы по достижимым клеткам
		for _, pos := range SortedRange(reach) {
			score := scoreTile(f, w, hero, pos, enemies)
			if score <= 0 {
				continue
			}
			actions = append(actions, PlannedAction{
				Kind:     PlanMove,
				HeroID:   hero.ID,
				MoveTo:   pos,
				Priority: score,
			})
		}

		// Прямые атаки по достижимым вражеским героям
		for _, enemy := range enemies {
			_, reachable := reach[enemy.Pos]
			if !reachable && hero.Pos.ManhattanTo(enemy.Pos) > 1 {
				continue
			}

			winProb := estimateWinProbability(hero, enemy)
			if winProb <= attackWinFloor {
				continue
			}
			actions = append(actions, PlannedAction{
				Kind:         PlanAttack,
				HeroID:       hero.ID,
				TargetHeroID: enemy.ID,
				Priority:     attackPriorityMin + attackPriorityMax*winProb,
			})
		}
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Priority > actions[j].Priority
	})
	return actions
}

// BestAction возвращает действие с максимальным приоритетом.
func BestAction(f *domain.Faction, w *domain.World, factions []*domain.Faction) PlannedAction {
	return Plan(f, w, factions)[0]
}

// scoreTile - аддитивная оценка клетки-кандидата, обрезается нулем снизу.
func scoreTile(f *domain.Faction, w *domain.World, hero *domain.Hero, pos domain.Position, enemies []*domain.Hero) float64 {
	score := 0.0

	// Чужие и ничейные точки добычи рядом: заход на клетку
	// перекрашивает любую, поэтому вражеские тоже цель
	for _, node := range w.Nodes {
		if node.FactionID != f.ID && pos.ManhattanTo(node.Pos) <= aiNearRadius {
			score += scoreNearNode
		}
	}

	// Чужие и ничейные города рядом
	for _, poi := range w.POIs {
		if poi.Type == domain.POITown && poi.FactionID != f.ID && pos.ManhattanTo(poi.Pos) <= aiNearRadius {
			score += scoreNearTown
		}
	}

	// Сближение с каждым видимым вражеским героем
	for _, enemy := range enemies {
		if pos.ManhattanTo(enemy.Pos) < hero.Pos.ManhattanTo(enemy.Pos) {
			score += scoreCloseToEnemy
		}
	}

	// Не убредать слишком далеко от своих городов
	if leash := minTownDistance(f, w, pos); leash > homeLeashDistance {
		score += scoreFarFromHome
	}

	if score < 0 {
		score = 0
	}
	return score
}

// minTownDistance - манхэттен до ближайшего своего города.
// Если городов нет, поводок не действует (возвращаем 0).
func minTownDistance(f *domain.Faction, w *domain.World, pos domain.Position) int {
	min := -1
	for _, townID := range f.TownIDs {
		town := w.GetPOI(townID)
		if town == nil {
			continue
		}
		d := pos.ManhattanTo(town.Pos)
		if min < 0 || d < min {
			min = d
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

// estimateWinProbability - оценка шанса победы по соотношению сил:
// сила = сумма (атака + защита) * количество * доля HP по армии.
func estimateWinProbability(attacker, defender *domain.Hero) float64 {
	atk := attacker.ArmyPower()
	def := defender.ArmyPower()
	if atk+def == 0 {
		return 0
	}
	return atk / (atk + def)
}

func enemyHeroes(f *domain.Faction, factions []*domain.Faction) []*domain.Hero {
	var enemies []*domain.Hero
	for _, other := range factions {
		if other.ID == f.ID || other.ID == domain.FactionNeutral {
			continue
		}
		enemies = append(enemies, other.Heroes...)
	}
	return enemies
}

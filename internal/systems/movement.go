package systems

import (
	"crownfall-server/internal/domain"
	"sort"
)

// MovementRange - поиск достижимых клеток с ограничением по стоимости.
// Волна от позиции героя по 4-связным соседям, только через проходимые
// клетки, с накоплением дробной стоимости (дорога = 0.5, без округлений).
// Пути дороже остатка очков отсекаются. Возвращает стоимость лучшего
// пути для каждой достижимой клетки, БЕЗ стартовой.
func MovementRange(w *domain.World, from domain.Position, points float64) map[domain.Position]float64 {
	best := map[domain.Position]float64{from: 0}
	queue := []domain.Position{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curCost := best[cur]

		for _, step := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
			next := cur.Shift(step[0], step[1])
			tile := w.TileAt(next)
			if tile == nil || !tile.Passable {
				continue
			}

			cost := curCost + tile.MoveCost
			if cost > points {
				continue
			}
			if prev, seen := best[next]; seen && prev <= cost {
				continue
			}
			best[next] = cost
			queue = append(queue, next)
		}
	}

	delete(best, from)
	return best
}

// CanReach проверяет достижимость одной клетки за текущие очки движения.
func CanReach(w *domain.World, from, to domain.Position, points float64) bool {
	_, ok := MovementRange(w, from, points)[to]
	return ok
}

// SortedRange возвращает достижимые позиции в детерминированном порядке
// (построчно). Нужен AI: обход map в Go недетерминирован.
func SortedRange(reach map[domain.Position]float64) []domain.Position {
	positions := make([]domain.Position, 0, len(reach))
	for p := range reach {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Y != positions[j].Y {
			return positions[i].Y < positions[j].Y
		}
		return positions[i].X < positions[j].X
	})
	return positions
}

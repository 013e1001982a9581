package systems

import (
	"crownfall-server/internal/domain"
	"testing"
)

func TestMovementRangeCosts(t *testing.T) {
	w := grassWorld(10, 10)
	setTerrain(w, 6, 5, domain.TerrainRoad)   // стоимость 0.5
	setTerrain(w, 4, 5, domain.TerrainForest) // стоимость 2

	from := domain.Position{X: 5, Y: 5}
	reach := MovementRange(w, from, 10)

	road := domain.Position{X: 6, Y: 5}
	forest := domain.Position{X: 4, Y: 5}

	if cost, ok := reach[road]; !ok || cost != 0.5 {
		t.Errorf("road tile: cost=%v ok=%v, want 0.5", cost, ok)
	}
	if cost, ok := reach[forest]; !ok || cost != 2 {
		t.Errorf("forest tile: cost=%v ok=%v, want 2", cost, ok)
	}

	// Клетка дороже остатка очков недостижима
	far := domain.Position{X: 5, Y: 5 - 11}
	if _, ok := reach[far]; ok {
		t.Error("tile beyond movement budget must not be reachable")
	}
}

func TestMovementRangeExcludesOrigin(t *testing.T) {
	w := grassWorld(5, 5)
	from := domain.Position{X: 2, Y: 2}

	if _, ok := MovementRange(w, from, 3)[from]; ok {
		t.Error("origin must not be part of the movement range")
	}
}

func TestMovementRangeImpassable(t *testing.T) {
	w := grassWorld(5, 5)
	setTerrain(w, 3, 2, domain.TerrainWater)
	setTerrain(w, 2, 3, domain.TerrainMountain)

	reach := MovementRange(w, domain.Position{X: 2, Y: 2}, 5)

	if _, ok := reach[domain.Position{X: 3, Y: 2}]; ok {
		t.Error("water must be unreachable")
	}
	if _, ok := reach[domain.Position{X: 2, Y: 3}]; ok {
		t.Error("mountain must be unreachable")
	}
}

// Вода перегораживает прямой путь: стоимость должна идти в обход
func TestMovementRangeGoesAround(t *testing.T) {
	w := grassWorld(7, 3)
	setTerrain(w, 3, 0, domain.TerrainWater)
	setTerrain(w, 3, 1, domain.TerrainWater)

	from := domain.Position{X: 1, Y: 1}
	reach := MovementRange(w, from, 10)

	behind := domain.Position{X: 5, Y: 1}
	cost, ok := reach[behind]
	if !ok {
		t.Fatal("tile behind the lake should be reachable around it")
	}
	if cost <= 4 {
		t.Errorf("detour cost %v should exceed straight-line cost 4", cost)
	}
}

// Свойство легальности: каждая достижимая клетка проходима,
// а стоимость пути не больше очков движения
func TestMovementLegalityProperty(t *testing.T) {
	w := grassWorld(12, 12)
	setTerrain(w, 4, 4, domain.TerrainWater)
	setTerrain(w, 5, 4, domain.TerrainForest)
	setTerrain(w, 6, 4, domain.TerrainDesert)
	setTerrain(w, 7, 4, domain.TerrainRoad)

	points := 6.5
	reach := MovementRange(w, domain.Position{X: 6, Y: 6}, points)

	for pos, cost := range reach {
		tile := w.TileAt(pos)
		if tile == nil || !tile.Passable {
			t.Errorf("reachable position %+v is not passable", pos)
		}
		if cost > points {
			t.Errorf("path cost %v to %+v exceeds budget %v", cost, pos, points)
		}
	}
}

func TestCanReach(t *testing.T) {
	w := grassWorld(6, 6)

	from := domain.Position{X: 0, Y: 0}
	if !CanReach(w, from, domain.Position{X: 2, Y: 0}, 2) {
		t.Error("adjacent-by-two grass tile should be reachable with 2 points")
	}
	if CanReach(w, from, domain.Position{X: 5, Y: 5}, 2) {
		t.Error("far corner should not be reachable with 2 points")
	}
}

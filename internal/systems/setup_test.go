package systems

import (
	"crownfall-server/internal/domain"
	"crownfall-server/pkg/logger"
	"testing"
)

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

// grassWorld строит карту из травы для тестов
func grassWorld(width, height int) *domain.World {
	w := &domain.World{Width: width, Height: height, Seed: "test"}
	w.Tiles = make([][]domain.Tile, height)
	for y := 0; y < height; y++ {
		row := make([]domain.Tile, width)
		for x := 0; x < width; x++ {
			row[x] = domain.Tile{
				X: x, Y: y,
				Terrain:  domain.TerrainGrass,
				MoveCost: domain.TerrainCost(domain.TerrainGrass),
				Passable: true,
			}
		}
		w.Tiles[y] = row
	}
	return w
}

func setTerrain(w *domain.World, x, y int, terrain string) {
	t := &w.Tiles[y][x]
	t.Terrain = terrain
	t.MoveCost = domain.TerrainCost(terrain)
	t.Passable = domain.TerrainPassable(terrain)
}

package worldgen

import (
	"crownfall-server/internal/domain"
	"crownfall-server/pkg/noise"
	"crownfall-server/pkg/rng"
)

// Константы генерации
const (
	noiseScale       = 0.06
	noiseOctaves     = 4
	noisePersistence = 0.5

	townMinSpacing     = 8 // манхэттен между городами
	campTownSpacing    = 5
	campCampSpacing    = 4
	nodeSpacing        = 3
	encounterSpacing   = 3
	roadAxisBias       = 0.6 // вероятность шага по главной оси
)

// Config - входные параметры генератора мира.
type Config struct {
	Width  int
	Height int
	Seed   string

	Towns      int
	Camps      int
	Resources  int
	Encounters int
}

// DefaultConfig возвращает стандартный набор параметров под сид.
func DefaultConfig(seed string) Config {
	return Config{
		Width:      64,
		Height:     64,
		Seed:       seed,
		Towns:      5,
		Camps:      8,
		Resources:  12,
		Encounters: 6,
	}
}

// Generate создает неизменяемый мир. Одинаковый конфиг всегда дает
// байт-в-байт одинаковый результат - весь рандом идет из одного потока.
// Если валидных клеток меньше, чем запрошено, размещаем сколько влезло
// и не считаем это ошибкой.
func Generate(cfg Config) *domain.World {
	r := rng.New(cfg.Seed)

	// Два независимых шумовых поля: рельеф и влажность.
	// Оба потребляют перестановки из одного потока - порядок важен.
	elevField := noise.NewField(r)
	moistField := noise.NewField(r)

	world := &domain.World{
		Width:  cfg.Width,
		Height: cfg.Height,
		Seed:   cfg.Seed,
		Tiles:  make([][]domain.Tile, cfg.Height),
	}

	// 1-2. Рельеф, влажность, классификация террейна
	for y := 0; y < cfg.Height; y++ {
		row := make([]domain.Tile, cfg.Width)
		for x := 0; x < cfg.Width; x++ {
			fx := float64(x) * noiseScale
			fy := float64(y) * noiseScale

			elevation := (elevField.FBM(fx, fy, noiseOctaves, noisePersistence) + 1) / 2
			moisture := (moistField.FBM(fx, fy, noiseOctaves, noisePersistence) + 1) / 2

			terrain := classifyTerrain(elevation, moisture)
			row[x] = domain.Tile{
				X:         x,
				Y:         y,
				Terrain:   terrain,
				Elevation: elevation,
				MoveCost:  domain.TerrainCost(terrain),
				Passable:  domain.TerrainPassable(terrain),
			}
		}
		world.Tiles[y] = row
	}

	// 3-6. Расстановка объектов. Порядок задает приоритет минимальных
	// дистанций: каждая следующая категория обходит все предыдущие.
	towns := placeTowns(r, world, cfg.Towns)
	camps := placeCamps(r, world, cfg.Camps, towns)
	placeResourceNodes(r, world, cfg.Resources, towns, camps)
	placeEncounters(r, world, cfg.Encounters)

	// 7. Дороги между последовательными парами городов
	carveRoads(r, world, towns)

	return world
}

// classifyTerrain - фиксированные пороги классификации.
func classifyTerrain(elevation, moisture float64) string {
	switch {
	case elevation < 0.3:
		return domain.TerrainWater
	case elevation > 0.75:
		return domain.TerrainMountain
	case moisture < 0.3 && elevation > 0.35:
		return domain.TerrainDesert
	case moisture > 0.6 && elevation < 0.65:
		return domain.TerrainForest
	default:
		return domain.TerrainGrass
	}
}

// collectCells возвращает все проходимые клетки перечисленных террейнов.
// Обход строго построчный, чтобы порядок кандидатов был детерминирован.
func collectCells(w *domain.World, terrains map[string]bool, requirePassable bool) []domain.Position {
	var cells []domain.Position
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			t := &w.Tiles[y][x]
			if !terrains[t.Terrain] {
				continue
			}
			if requirePassable && !t.Passable {
				continue
			}
			cells = append(cells, domain.Position{X: x, Y: y})
		}
	}
	return cells
}

func farEnough(p domain.Position, placed []domain.Position, minDist int) bool {
	for _, other := range placed {
		if p.ManhattanTo(other) < minDist {
			return false
		}
	}
	return true
}

// placeTowns жадно расставляет города по перемешанным кандидатам.
// Первый принятый город принадлежит игроку и открыт с самого начала.
func placeTowns(r *rng.Stream, w *domain.World, count int) []domain.Position {
	candidates := collectCells(w, map[string]bool{
		domain.TerrainGrass:  true,
		domain.TerrainDesert: true,
	}, true)
	shuffled := rng.Shuffle(r, candidates)

	var placed []domain.Position
	for _, pos := range shuffled {
		if len(placed) >= count {
			break
		}
		if !farEnough(pos, placed, townMinSpacing) {
			continue
		}

		town := &domain.PointOfInterest{
			ID:   "town_" + r.ID(8),
			Type: domain.POITown,
			Name: rng.Pick(r, townNames),
			Pos:  pos,
			Town: &domain.TownData{
				Pool: NewRecruitPool(),
				Treasury: domain.Resources{
					Gold:     r.IntRange(200, 600),
					Wood:     r.IntRange(5, 20),
					Stone:    r.IntRange(5, 15),
					Crystals: r.IntRange(0, 5),
				},
			},
		}

		if len(placed) == 0 {
			// Стартовый город игрока
			town.FactionID = domain.FactionPlayer
			town.Discovered = true
		} else {
			town.FactionID = domain.FactionNeutral
			town.Garrison = []*domain.Unit{
				NewUnit(r, domain.UnitWarrior, r.IntRange(3, 8)),
				NewUnit(r, domain.UnitArcher, r.IntRange(2, 6)),
			}
		}

		w.RegisterPOI(town)
		placed = append(placed, pos)
	}
	return placed
}

func placeCamps(r *rng.Stream, w *domain.World, count int, towns []domain.Position) []domain.Position {
	candidates := collectCells(w, map[string]bool{
		domain.TerrainGrass:  true,
		domain.TerrainForest: true,
		domain.TerrainDesert: true,
	}, true)
	shuffled := rng.Shuffle(r, candidates)

	var placed []domain.Position
	for _, pos := range shuffled {
		if len(placed) >= count {
			break
		}
		if !farEnough(pos, towns, campTownSpacing) || !farEnough(pos, placed, campCampSpacing) {
			continue
		}

		tier := r.IntRange(1, 6)
		loot, experience := CampLoot(r, tier)

		camp := &domain.PointOfInterest{
			ID:        "camp_" + r.ID(8),
			Type:      domain.POIEnemyCamp,
			Name:      rng.Pick(r, campNames),
			Pos:       pos,
			FactionID: domain.FactionNeutral,
			Garrison:  CampGarrison(r, tier),
			Camp: &domain.CampData{
				Tier:       tier,
				Loot:       loot,
				Experience: experience,
			},
		}

		w.RegisterPOI(camp)
		placed = append(placed, pos)
	}
	return placed
}

func placeResourceNodes(r *rng.Stream, w *domain.World, count int, towns, camps []domain.Position) []domain.Position {
	// Горы непроходимы, но узлы на них стоят (каменоломни);
	// остальные террейны берем только проходимые.
	candidates := collectCells(w, map[string]bool{
		domain.TerrainGrass:  true,
		domain.TerrainForest: true,
		domain.TerrainDesert: true,
	}, true)
	candidates = append(candidates, collectCells(w, map[string]bool{
		domain.TerrainMountain: true,
	}, false)...)
	shuffled := rng.Shuffle(r, candidates)

	var placed []domain.Position
	for _, pos := range shuffled {
		if len(placed) >= count {
			break
		}
		if !farEnough(pos, towns, nodeSpacing) ||
			!farEnough(pos, camps, nodeSpacing) ||
			!farEnough(pos, placed, nodeSpacing) {
			continue
		}

		terrain := w.TileAt(pos).Terrain
		resource := pickResourceKind(r, terrain)

		yield := r.IntRange(1, 5)
		if resource == domain.ResourceGold {
			yield = r.IntRange(30, 70)
		}

		w.RegisterNode(&domain.ResourceNode{
			ID:        "node_" + r.ID(8),
			Resource:  resource,
			Pos:       pos,
			Yield:     yield,
			FactionID: domain.FactionNeutral,
		})
		placed = append(placed, pos)
	}
	return placed
}

// pickResourceKind - вид ресурса с уклоном по террейну:
// 70% дерева в лесу, 70% камня в горах, иначе равномерно.
func pickResourceKind(r *rng.Stream, terrain string) string {
	kinds := []string{domain.ResourceGold, domain.ResourceWood, domain.ResourceStone, domain.ResourceCrystals}

	switch terrain {
	case domain.TerrainForest:
		if r.Chance(0.7) {
			return domain.ResourceWood
		}
	case domain.TerrainMountain:
		if r.Chance(0.7) {
			return domain.ResourceStone
		}
	}
	return rng.Pick(r, kinds)
}

func placeEncounters(r *rng.Stream, w *domain.World, count int) {
	candidates := collectCells(w, map[string]bool{
		domain.TerrainGrass:  true,
		domain.TerrainForest: true,
	}, true)
	shuffled := rng.Shuffle(r, candidates)

	// Обходим ВСЕ ранее размещенные объекты
	var occupied []domain.Position
	for _, poi := range w.POIs {
		occupied = append(occupied, poi.Pos)
	}
	for _, node := range w.Nodes {
		occupied = append(occupied, node.Pos)
	}

	placedCount := 0
	for _, pos := range shuffled {
		if placedCount >= count {
			break
		}
		if !farEnough(pos, occupied, encounterSpacing) {
			continue
		}

		w.RegisterPOI(&domain.PointOfInterest{
			ID:        "enc_" + r.ID(8),
			Type:      domain.POINeutralEncounter,
			Name:      rng.Pick(r, encounterNames),
			Pos:       pos,
			FactionID: domain.FactionNeutral,
		})
		occupied = append(occupied, pos)
		placedCount++
	}
}

// carveRoads прокладывает дорогу между каждой последовательной парой
// городов: смещенное случайное блуждание с вероятностью 0.6 шагнуть
// по оси с большей оставшейся дельтой.
func carveRoads(r *rng.Stream, w *domain.World, towns []domain.Position) {
	for i := 0; i+1 < len(towns); i++ {
		walkRoad(r, w, towns[i], towns[i+1])
	}
}

func walkRoad(r *rng.Stream, w *domain.World, from, to domain.Position) {
	cur := from
	carveTile(w, cur)

	for cur != to {
		dx := to.X - cur.X
		dy := to.Y - cur.Y

		// Главная ось - та, где дельта больше
		stepPrimaryX := abs(dx) >= abs(dy)

		usePrimary := r.Chance(roadAxisBias)
		stepX := stepPrimaryX
		if !usePrimary {
			stepX = !stepPrimaryX
		}

		// Если по выбранной оси уже выровнялись, откатываемся на главную
		if stepX && dx == 0 {
			stepX = false
		} else if !stepX && dy == 0 {
			stepX = true
		}

		if stepX {
			cur.X += sign(dx)
		} else {
			cur.Y += sign(dy)
		}

		cur = clampPos(cur, w.Width, w.Height)
		carveTile(w, cur)
	}
}

// carveTile переводит проходимую не-водную клетку в дорогу.
func carveTile(w *domain.World, p domain.Position) {
	t := w.TileAt(p)
	if t == nil || !t.Passable || t.Terrain == domain.TerrainWater {
		return
	}
	t.CarveRoad()
}

func clampPos(p domain.Position, width, height int) domain.Position {
	if p.X < 0 {
		p.X = 0
	}
	if p.X >= width {
		p.X = width - 1
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y >= height {
		p.Y = height - 1
	}
	return p
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

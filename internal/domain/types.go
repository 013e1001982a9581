package domain

import "math"

// Типы террейна
const (
	TerrainGrass    = "grass"
	TerrainWater    = "water"
	TerrainMountain = "mountain"
	TerrainForest   = "forest"
	TerrainDesert   = "desert"
	TerrainRoad     = "road"
)

// Виды ресурсов
const (
	ResourceGold     = "gold"
	ResourceWood     = "wood"
	ResourceStone    = "stone"
	ResourceCrystals = "crystals"
)

// Типы юнитов
const (
	UnitWarrior = "warrior"
	UnitArcher  = "archer"
	UnitCavalry = "cavalry"
	UnitMage    = "mage"
	UnitHealer  = "healer"
)

// Варианты точек интереса
const (
	POITown             = "town"
	POIEnemyCamp        = "enemy_camp"
	POINeutralEncounter = "neutral_encounter"
)

// Фазы игры
const (
	PhaseMenu     = "menu"
	PhaseWorldMap = "world_map"
	PhaseCombat   = "combat"
	PhaseTown     = "town"
)

// Зарезервированные ID фракций
const (
	FactionPlayer  = "player"
	FactionNeutral = "neutral"
)

// Экономика городов
const (
	// TownGoldIncome - базовый доход золота с каждого своего города за ход
	TownGoldIncome = 100
	// RestockInterval - каждый седьмой ход города восполняют пулы найма
	RestockInterval = 7
)

// terrainCosts - фиксированная таблица стоимости движения.
// Дорога перекрывает природный террейн при прокладке.
var terrainCosts = map[string]float64{
	TerrainGrass:    1,
	TerrainRoad:     0.5,
	TerrainForest:   2,
	TerrainDesert:   1.5,
	TerrainMountain: 3,
	TerrainWater:    math.Inf(1),
}

// terrainImpassable - только вода и горы непроходимы
var terrainImpassable = map[string]bool{
	TerrainWater:    true,
	TerrainMountain: true,
}

// TerrainCost возвращает стоимость движения по террейну.
func TerrainCost(terrain string) float64 {
	if cost, ok := terrainCosts[terrain]; ok {
		return cost
	}
	return 1
}

// TerrainPassable возвращает true, если по террейну можно ходить.
func TerrainPassable(terrain string) bool {
	return !terrainImpassable[terrain]
}

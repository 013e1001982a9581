package domain

import "math"

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ManhattanTo возвращает манхэттенское расстояние до другой точки.
// Им меряются все минимальные дистанции при расстановке объектов.
func (p Position) ManhattanTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// DistanceTo возвращает точное расстояние до другой точки (float)
func (p Position) DistanceTo(other Position) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Shift возвращает новую позицию со смещением, не меняя текущую
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Tile - одна клетка карты. Создается один раз при генерации;
// единственное, что может поменяться позже - террейн при прокладке дороги.
type Tile struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Terrain   string  `json:"terrain"`
	Elevation float64 `json:"elevation"` // [0, 1]
	MoveCost  float64 `json:"moveCost"`
	Passable  bool    `json:"passable"`

	// Ссылки на объекты, стоящие на клетке (пусто, если нет)
	POIID  string `json:"poiId,omitempty"`
	NodeID string `json:"nodeId,omitempty"`
}

// CarveRoad превращает клетку в дорогу с фиксированной стоимостью.
func (t *Tile) CarveRoad() {
	t.Terrain = TerrainRoad
	t.MoveCost = TerrainCost(TerrainRoad)
	t.Passable = true
}

// World - неизменяемая (после генерации) карта сессии.
type World struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   string `json:"seed"`

	Tiles [][]Tile           `json:"tiles"` // [y][x]
	POIs  []*PointOfInterest `json:"pois"`
	Nodes []*ResourceNode    `json:"nodes"`

	// Индексы по ID. Не сериализуем - восстанавливаются из срезов.
	poiIndex  map[string]*PointOfInterest
	nodeIndex map[string]*ResourceNode
}

// InBounds проверяет, что позиция лежит внутри карты.
func (w *World) InBounds(p Position) bool {
	return p.X >= 0 && p.X < w.Width && p.Y >= 0 && p.Y < w.Height
}

// TileAt возвращает клетку по позиции или nil за границей.
func (w *World) TileAt(p Position) *Tile {
	if !w.InBounds(p) {
		return nil
	}
	return &w.Tiles[p.Y][p.X]
}

// RegisterPOI добавляет точку интереса в мир и индекс.
func (w *World) RegisterPOI(poi *PointOfInterest) {
	if w.poiIndex == nil {
		w.poiIndex = make(map[string]*PointOfInterest)
	}
	w.POIs = append(w.POIs, poi)
	w.poiIndex[poi.ID] = poi
	if t := w.TileAt(poi.Pos); t != nil {
		t.POIID = poi.ID
	}
}

// RegisterNode добавляет ресурсную точку в мир и индекс.
func (w *World) RegisterNode(node *ResourceNode) {
	if w.nodeIndex == nil {
		w.nodeIndex = make(map[string]*ResourceNode)
	}
	w.Nodes = append(w.Nodes, node)
	w.nodeIndex[node.ID] = node
	if t := w.TileAt(node.Pos); t != nil {
		t.NodeID = node.ID
	}
}

// GetPOI ищет точку интереса по ID. nil, если такой нет.
func (w *World) GetPOI(id string) *PointOfInterest {
	if w.poiIndex == nil {
		return nil
	}
	return w.poiIndex[id]
}

// GetNode ищет ресурсную точку по ID. nil, если такой нет.
func (w *World) GetNode(id string) *ResourceNode {
	if w.nodeIndex == nil {
		return nil
	}
	return w.nodeIndex[id]
}

// POIAt возвращает точку интереса на клетке (или nil).
func (w *World) POIAt(p Position) *PointOfInterest {
	t := w.TileAt(p)
	if t == nil || t.POIID == "" {
		return nil
	}
	return w.GetPOI(t.POIID)
}

// NodeAt возвращает ресурсную точку на клетке (или nil).
func (w *World) NodeAt(p Position) *ResourceNode {
	t := w.TileAt(p)
	if t == nil || t.NodeID == "" {
		return nil
	}
	return w.GetNode(t.NodeID)
}

// Towns возвращает все города в порядке размещения.
func (w *World) Towns() []*PointOfInterest {
	var towns []*PointOfInterest
	for _, poi := range w.POIs {
		if poi.Type == POITown {
			towns = append(towns, poi)
		}
	}
	return towns
}

package worldgen

import (
	"crownfall-server/internal/domain"
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig("reproducible-seed")

	a := Generate(cfg)
	b := Generate(cfg)

	if a.Seed != "reproducible-seed" || b.Seed != "reproducible-seed" {
		t.Fatalf("world seed not preserved: %q / %q", a.Seed, b.Seed)
	}

	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			ta, tb := a.Tiles[y][x], b.Tiles[y][x]
			if ta.Terrain != tb.Terrain {
				t.Fatalf("terrain differs at (%d,%d): %s vs %s", x, y, ta.Terrain, tb.Terrain)
			}
			if ta.Elevation != tb.Elevation {
				t.Fatalf("elevation differs at (%d,%d)", x, y)
			}
		}
	}

	if len(a.POIs) != len(b.POIs) {
		t.Fatalf("POI count differs: %d vs %d", len(a.POIs), len(b.POIs))
	}
	for i := range a.POIs {
		pa, pb := a.POIs[i], b.POIs[i]
		if pa.Pos != pb.Pos || pa.Type != pb.Type || pa.ID != pb.ID {
			t.Fatalf("POI %d differs: %+v vs %+v", i, pa, pb)
		}
	}

	if len(a.Nodes) != len(b.Nodes) {
		t.Fatalf("node count differs: %d vs %d", len(a.Nodes), len(b.Nodes))
	}
	for i := range a.Nodes {
		if a.Nodes[i].Pos != b.Nodes[i].Pos || a.Nodes[i].Resource != b.Nodes[i].Resource {
			t.Fatalf("node %d differs", i)
		}
	}
}

func TestSeedSensitivity(t *testing.T) {
	a := Generate(DefaultConfig("seed-a"))
	b := Generate(DefaultConfig("seed-b"))

	differs := false
	for y := 0; y < a.Height && !differs; y++ {
		for x := 0; x < a.Width; x++ {
			if a.Tiles[y][x].Terrain != b.Tiles[y][x].Terrain {
				differs = true
				break
			}
		}
	}
	if !differs {
		t.Error("expected different seeds to produce different terrain")
	}
}

func TestTownSpacing(t *testing.T) {
	w := Generate(DefaultConfig("spacing-check"))

	towns := w.Towns()
	for i := 0; i < len(towns); i++ {
		for j := i + 1; j < len(towns); j++ {
			d := towns[i].Pos.ManhattanTo(towns[j].Pos)
			if d < townMinSpacing {
				t.Errorf("towns %s and %s too close: manhattan %d", towns[i].ID, towns[j].ID, d)
			}
		}
	}
}

func TestFirstTownBelongsToPlayer(t *testing.T) {
	w := Generate(DefaultConfig("town-test"))

	playerTowns := 0
	for _, town := range w.Towns() {
		if town.FactionID == domain.FactionPlayer {
			playerTowns++
			if !town.Discovered {
				t.Error("player town must start discovered")
			}
		} else {
			if town.FactionID != domain.FactionNeutral {
				t.Errorf("unexpected town owner %q", town.FactionID)
			}
			if len(town.Garrison) == 0 {
				t.Errorf("neutral town %s has no garrison", town.ID)
			}
		}
		if town.Town == nil {
			t.Fatalf("town %s missing town data", town.ID)
		}
		if len(town.Town.Pool) != 5 {
			t.Errorf("town %s pool has %d entries, want 5", town.ID, len(town.Town.Pool))
		}
	}

	if playerTowns != 1 {
		t.Errorf("expected exactly one player town, got %d", playerTowns)
	}
}

func TestTerrainTables(t *testing.T) {
	w := Generate(DefaultConfig("tables"))

	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			tile := w.Tiles[y][x]

			switch tile.Terrain {
			case domain.TerrainWater, domain.TerrainMountain:
				if tile.Passable {
					t.Fatalf("%s at (%d,%d) must be impassable", tile.Terrain, x, y)
				}
			default:
				if !tile.Passable {
					t.Fatalf("%s at (%d,%d) must be passable", tile.Terrain, x, y)
				}
			}

			if tile.Terrain == domain.TerrainRoad && tile.MoveCost != 0.5 {
				t.Fatalf("road cost = %v, want 0.5", tile.MoveCost)
			}
			if tile.Elevation < 0 || tile.Elevation > 1 {
				t.Fatalf("elevation out of [0,1]: %v", tile.Elevation)
			}
		}
	}
}

func TestPOIsAttachedToTiles(t *testing.T) {
	w := Generate(DefaultConfig("attach"))

	for _, poi := range w.POIs {
		tile := w.TileAt(poi.Pos)
		if tile == nil || tile.POIID != poi.ID {
			t.Errorf("POI %s not attached to its tile", poi.ID)
		}
		if w.GetPOI(poi.ID) != poi {
			t.Errorf("POI %s not indexed", poi.ID)
		}
	}
	for _, node := range w.Nodes {
		tile := w.TileAt(node.Pos)
		if tile == nil || tile.NodeID != node.ID {
			t.Errorf("node %s not attached to its tile", node.ID)
		}
	}
}

func TestCampTiersAndSpacing(t *testing.T) {
	w := Generate(DefaultConfig("camps"))

	towns := w.Towns()
	var camps []*domain.PointOfInterest
	for _, poi := range w.POIs {
		if poi.Type == domain.POIEnemyCamp {
			camps = append(camps, poi)
		}
	}

	for i, camp := range camps {
		if camp.Camp == nil {
			t.Fatalf("camp %s missing camp data", camp.ID)
		}
		if camp.Camp.Tier < 1 || camp.Camp.Tier > 5 {
			t.Errorf("camp tier out of 1..5: %d", camp.Camp.Tier)
		}
		if len(camp.Garrison) == 0 {
			t.Errorf("camp %s has no garrison", camp.ID)
		}
		for _, town := range towns {
			if camp.Pos.ManhattanTo(town.Pos) < campTownSpacing {
				t.Errorf("camp %s too close to town %s", camp.ID, town.ID)
			}
		}
		for j := i + 1; j < len(camps); j++ {
			if camp.Pos.ManhattanTo(camps[j].Pos) < campCampSpacing {
				t.Errorf("camps %s and %s too close", camp.ID, camps[j].ID)
			}
		}
	}
}

// Запрошенное число может не поместиться на крошечной карте:
// генерация ставит сколько влезло и не падает.
func TestDegenerateCountsDoNotFail(t *testing.T) {
	cfg := Config{
		Width: 10, Height: 10, Seed: "tiny",
		Towns: 50, Camps: 50, Resources: 50, Encounters: 50,
	}
	w := Generate(cfg)

	if len(w.Towns()) > 50 {
		t.Error("placed more towns than requested")
	}
	// Главное - мы дошли сюда без паники и мир валиден
	if w.Width != 10 || w.Height != 10 {
		t.Errorf("unexpected world size %dx%d", w.Width, w.Height)
	}
}

func TestRoadsCarved(t *testing.T) {
	w := Generate(DefaultConfig("roads"))
	if len(w.Towns()) < 2 {
		t.Skip("map has fewer than two towns")
	}

	roadTiles := 0
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			if w.Tiles[y][x].Terrain == domain.TerrainRoad {
				roadTiles++
			}
		}
	}
	if roadTiles == 0 {
		t.Error("expected at least one road tile between towns")
	}
}

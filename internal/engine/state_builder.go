package engine

import (
	"crownfall-server/internal/domain"
	"crownfall-server/pkg/api"
)

// buildState создает слепок сессии для наблюдателя-фракции.
// Чужие казны, армии и очки движения в слепок не попадают.
func (s *Session) buildState(observerID string) *api.ServerResponse {
	state := s.State

	resp := &api.ServerResponse{
		Type:            "UPDATE",
		Turn:            state.Turn,
		Phase:           state.Phase,
		ActiveFactionID: state.ActiveFactionID,
		SelectedHeroID:  state.SelectedHeroID,
		Grid:            &api.GridMeta{Width: state.World.Width, Height: state.World.Height},
		GameOver:        state.GameOver,
		WinnerID:        state.WinnerID,
	}

	resp.Map = buildMapDTO(state.World)

	for _, f := range state.Factions {
		resp.Factions = append(resp.Factions, toFactionView(f, observerID))
		for _, h := range f.Heroes {
			resp.Heroes = append(resp.Heroes, toHeroView(h, observerID))
		}
	}

	for _, poi := range state.World.POIs {
		if !poi.Discovered {
			continue
		}
		resp.POIs = append(resp.POIs, toPOIView(poi, observerID))
	}

	for _, node := range state.World.Nodes {
		resp.Nodes = append(resp.Nodes, toNodeView(node))
	}

	if state.Combat != nil {
		resp.Combat = toCombatView(state.Combat)
	}

	logsCopy := make([]api.LogEntry, len(s.logs))
	copy(logsCopy, s.logs)
	resp.Logs = logsCopy

	return resp
}

func buildMapDTO(w *domain.World) []api.TileView {
	tiles := make([]api.TileView, 0, w.Width*w.Height)
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			t := w.Tiles[y][x]
			tiles = append(tiles, api.TileView{
				X: x, Y: y,
				Terrain:  t.Terrain,
				MoveCost: t.MoveCost,
				Passable: t.Passable,
			})
		}
	}
	return tiles
}

func toFactionView(f *domain.Faction, observerID string) api.FactionView {
	view := api.FactionView{
		ID:    f.ID,
		Name:  f.Name,
		Color: f.Color,
		IsAI:  f.IsAI,
	}

	// Казну видит только владелец
	if f.ID == observerID {
		view.Treasury = &api.ResourcesView{
			Gold:     f.Resources.Gold,
			Wood:     f.Resources.Wood,
			Stone:    f.Resources.Stone,
			Crystals: f.Resources.Crystals,
		}
	}
	return view
}

func toHeroView(h *domain.Hero, observerID string) api.HeroView {
	view := api.HeroView{
		ID:        h.ID,
		Name:      h.Name,
		FactionID: h.FactionID,
		Level:     h.Level,
	}
	view.Pos.X = h.Pos.X
	view.Pos.Y = h.Pos.Y

	// Чужаки видят только позицию и уровень
	if h.FactionID != observerID {
		return view
	}

	view.MovementPoints = h.MovementPoints
	view.MaxMovementPoints = h.MaxMovementPoints
	for _, u := range h.Army {
		view.Army = append(view.Army, toUnitView(u))
	}
	return view
}

func toUnitView(u *domain.Unit) api.UnitView {
	return api.UnitView{
		ID:      u.ID,
		Type:    u.Type,
		Name:    u.Name,
		Count:   u.Count,
		HP:      u.HP,
		MaxHP:   u.MaxHP,
		Attack:  u.Attack,
		Defense: u.Defense,
		Speed:   u.Speed,
	}
}

func toPOIView(poi *domain.PointOfInterest, observerID string) api.POIView {
	view := api.POIView{
		ID:        poi.ID,
		Type:      poi.Type,
		Name:      poi.Name,
		FactionID: poi.FactionID,
	}
	view.Pos.X = poi.Pos.X
	view.Pos.Y = poi.Pos.Y

	// Пул найма отдается только владельцу города
	if poi.Town != nil && poi.FactionID == observerID {
		for _, slot := range poi.Town.Pool {
			view.Pool = append(view.Pool, api.RecruitSlotView{
				UnitType:  slot.UnitType,
				Available: slot.Available,
				Cost: api.ResourcesView{
					Gold:     slot.Cost.Gold,
					Wood:     slot.Cost.Wood,
					Stone:    slot.Cost.Stone,
					Crystals: slot.Cost.Crystals,
				},
			})
		}
	}
	return view
}

func toNodeView(node *domain.ResourceNode) api.NodeView {
	view := api.NodeView{
		ID:        node.ID,
		Resource:  node.Resource,
		Yield:     node.Yield,
		FactionID: node.FactionID,
	}
	view.Pos.X = node.Pos.X
	view.Pos.Y = node.Pos.Y
	return view
}

func toCombatView(cs *domain.CombatState) *api.CombatView {
	view := &api.CombatView{
		Round:      cs.Round,
		ActiveSide: cs.ActiveSide,
		GridWidth:  cs.GridWidth,
		GridHeight: cs.GridHeight,
	}

	for _, cu := range cs.Attackers {
		view.Attackers = append(view.Attackers, toCombatUnitView(cu))
	}
	for _, cu := range cs.Defenders {
		view.Defenders = append(view.Defenders, toCombatUnitView(cu))
	}

	if cur := cs.Current(); cur != nil {
		view.CurrentUnitID = cur.ID
	}

	for _, entry := range cs.Log {
		view.Log = append(view.Log, entry.Text)
	}
	return view
}

func toCombatUnitView(cu *domain.CombatUnit) api.CombatUnitView {
	view := api.CombatUnitView{
		UnitView:    toUnitView(&cu.Unit),
		Side:        cu.Side,
		HasActed:    cu.HasActed,
		IsDefending: cu.IsDefending,
	}
	view.GridPos.X = cu.GridPos.X
	view.GridPos.Y = cu.GridPos.Y
	return view
}

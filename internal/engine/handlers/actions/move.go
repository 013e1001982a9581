package actions

import (
	"crownfall-server/internal/domain"
	"crownfall-server/internal/engine/handlers"
	"crownfall-server/internal/systems"
	"crownfall-server/pkg/api"
	"fmt"
)

// Радиус открытия тумана войны вокруг героя
const discoverRadius = 4

func HandleMove(ctx handlers.Context, p api.MovePayload) (handlers.Result, error) {
	state := ctx.State
	if state.Phase != domain.PhaseWorldMap {
		return handlers.EmptyResult(), fmt.Errorf("movement is only allowed on the world map")
	}

	hero := ctx.SelectedHero()
	if hero == nil {
		return handlers.EmptyResult(), fmt.Errorf("no hero selected")
	}
	if hero.FactionID != state.ActiveFactionID {
		return handlers.EmptyResult(), fmt.Errorf("hero %s is not controlled by the active faction", hero.ID)
	}

	dest := domain.Position{X: p.X, Y: p.Y}
	world := state.World

	tile := world.TileAt(dest)
	if tile == nil {
		return handlers.EmptyResult(), fmt.Errorf("destination is out of the map")
	}
	if !tile.Passable {
		return handlers.EmptyResult(), fmt.Errorf("destination is impassable")
	}
	if other := state.HeroAt(dest); other != nil {
		// Бой с чужим героем идет через START_COMBAT, а не через MOVE
		return handlers.EmptyResult(), fmt.Errorf("tile is occupied by another hero")
	}

	reach := systems.MovementRange(world, hero.Pos, hero.MovementPoints)
	if _, ok := reach[dest]; !ok {
		return handlers.EmptyResult(), fmt.Errorf("not enough movement points")
	}

	// Списывается стоимость целевой клетки. Дальность при этом
	// считалась по суммарной стоимости пути - дешевые дороги выгодны
	// и тут, и там.
	hero.SpendMovement(tile.MoveCost)
	hero.Pos = dest

	discoverAround(world, dest)

	faction := ctx.ActiveFaction()
	msg := ""

	// Захват точки добычи простым заходом на клетку
	if node := world.NodeAt(dest); node != nil && node.FactionID != faction.ID {
		node.FactionID = faction.ID
		msg = fmt.Sprintf("%s захватывает точку добычи (%s)", hero.Name, node.Resource)
	}

	if poi := world.POIAt(dest); poi != nil {
		if r := visitPOI(ctx, hero, faction, poi); r != "" {
			msg = r
		}
	}

	if msg == "" {
		return handlers.EmptyResult(), nil
	}
	return handlers.Result{Msg: msg, MsgType: "INFO"}, nil
}

// visitPOI обрабатывает заход героя на клетку точки интереса.
func visitPOI(ctx handlers.Context, hero *domain.Hero, faction *domain.Faction, poi *domain.PointOfInterest) string {
	switch poi.Type {
	case domain.POITown:
		if poi.FactionID == faction.ID {
			// Заход на клетку своего города открывает городской экран
			ctx.State.Phase = domain.PhaseTown
			return fmt.Sprintf("%s входит в город %s", hero.Name, poi.Name)
		}
		if len(poi.Garrison) > 0 {
			return fmt.Sprintf("Город %s защищен гарнизоном", poi.Name)
		}
		// Безгарнизонный чужой город переходит из рук в руки
		if prev := ctx.State.GetFaction(poi.FactionID); prev != nil {
			prev.RemoveTown(poi.ID)
		}
		poi.FactionID = faction.ID
		faction.AddTown(poi.ID)
		ctx.State.Phase = domain.PhaseTown
		return fmt.Sprintf("%s захватывает город %s", hero.Name, poi.Name)

	case domain.POIEnemyCamp:
		if len(poi.Garrison) > 0 {
			return fmt.Sprintf("Лагерь %s занят врагом", poi.Name)
		}

	case domain.POINeutralEncounter:
		// Одноразовая находка: первая посетившая фракция забирает награду
		if poi.FactionID != domain.FactionNeutral {
			return ""
		}
		gold := ctx.Rand.IntRange(25, 76)
		faction.Resources.AddKind(domain.ResourceGold, gold)
		systems.GrantExperience(hero, 20)
		poi.FactionID = faction.ID
		return fmt.Sprintf("%s: %s находит %d золота", poi.Name, hero.Name, gold)
	}
	return ""
}

// discoverAround снимает туман войны с точек интереса рядом с клеткой.
func discoverAround(w *domain.World, pos domain.Position) {
	for _, poi := range w.POIs {
		if !poi.Discovered && pos.ManhattanTo(poi.Pos) <= discoverRadius {
			poi.Discovered = true
		}
	}
}

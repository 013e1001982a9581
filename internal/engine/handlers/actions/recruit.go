package actions

import (
	"crownfall-server/internal/domain"
	"crownfall-server/internal/engine/handlers"
	"crownfall-server/pkg/api"
	"crownfall-server/pkg/worldgen"
	"fmt"
)

func HandleRecruit(ctx handlers.Context, p api.RecruitPayload) (handlers.Result, error) {
	state := ctx.State
	if state.Phase != domain.PhaseTown {
		return handlers.EmptyResult(), fmt.Errorf("recruiting requires entering a town first")
	}

	town := state.World.GetPOI(p.TownID)
	if town == nil || town.Type != domain.POITown || town.Town == nil {
		return handlers.EmptyResult(), fmt.Errorf("town %s not found", p.TownID)
	}

	faction := ctx.ActiveFaction()
	if faction == nil || town.FactionID != faction.ID {
		return handlers.EmptyResult(), fmt.Errorf("town %s belongs to another faction", town.Name)
	}

	hero := ctx.SelectedHero()
	if hero == nil || hero.Pos != town.Pos {
		return handlers.EmptyResult(), fmt.Errorf("no hero in the town to take the recruits")
	}

	slot := town.Town.FindSlot(p.UnitType)
	if slot == nil {
		return handlers.EmptyResult(), fmt.Errorf("town %s does not recruit %s", town.Name, p.UnitType)
	}
	if p.Count > slot.Available {
		return handlers.EmptyResult(), fmt.Errorf("only %d %s available this week", slot.Available, p.UnitType)
	}

	cost := slot.Cost.Scale(p.Count)
	if !faction.Resources.Spend(cost) {
		return handlers.EmptyResult(), fmt.Errorf("not enough resources")
	}

	slot.Available -= p.Count
	hero.AddStack(worldgen.NewUnit(ctx.Rand, p.UnitType, p.Count))

	return handlers.Result{
		Msg:     fmt.Sprintf("%s нанимает %d x %s", hero.Name, p.Count, p.UnitType),
		MsgType: "INFO",
	}, nil
}

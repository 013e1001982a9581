package actions

import (
	"crownfall-server/internal/domain"
	"crownfall-server/internal/engine/handlers"
	"crownfall-server/pkg/api"
	"fmt"
)

func HandleEnterTown(ctx handlers.Context, p api.TownPayload) (handlers.Result, error) {
	state := ctx.State
	if state.Phase != domain.PhaseWorldMap {
		return handlers.EmptyResult(), fmt.Errorf("towns can only be entered from the world map")
	}

	hero := ctx.SelectedHero()
	if hero == nil {
		return handlers.EmptyResult(), fmt.Errorf("no hero selected")
	}

	town := state.World.GetPOI(p.TownID)
	if town == nil || town.Type != domain.POITown {
		return handlers.EmptyResult(), fmt.Errorf("town %s not found", p.TownID)
	}
	if town.FactionID != state.ActiveFactionID {
		return handlers.EmptyResult(), fmt.Errorf("town %s belongs to another faction", town.Name)
	}
	if hero.Pos != town.Pos {
		return handlers.EmptyResult(), fmt.Errorf("hero must stand at the town gates")
	}

	state.Phase = domain.PhaseTown
	return handlers.Result{
		Msg:     fmt.Sprintf("%s входит в город %s", hero.Name, town.Name),
		MsgType: "INFO",
	}, nil
}

func HandleLeaveTown(ctx handlers.Context) (handlers.Result, error) {
	if ctx.State.Phase != domain.PhaseTown {
		return handlers.EmptyResult(), fmt.Errorf("not in a town")
	}
	ctx.State.Phase = domain.PhaseWorldMap
	return handlers.EmptyResult(), nil
}

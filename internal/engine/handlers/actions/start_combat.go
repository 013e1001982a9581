package actions

import (
	"crownfall-server/internal/domain"
	"crownfall-server/internal/engine/handlers"
	"crownfall-server/internal/systems"
	"crownfall-server/pkg/api"
	"fmt"
)

func HandleStartCombat(ctx handlers.Context, p api.StartCombatPayload) (handlers.Result, error) {
	state := ctx.State
	if state.Phase != domain.PhaseWorldMap {
		return handlers.EmptyResult(), fmt.Errorf("combat can only start from the world map")
	}

	attacker := ctx.SelectedHero()
	if attacker == nil {
		return handlers.EmptyResult(), fmt.Errorf("no hero selected")
	}
	if attacker.FactionID != state.ActiveFactionID {
		return handlers.EmptyResult(), fmt.Errorf("hero %s is not controlled by the active faction", attacker.ID)
	}

	var cs *domain.CombatState
	var against string

	switch {
	case p.TargetHeroID != "":
		target := state.GetHero(p.TargetHeroID)
		if target == nil {
			return handlers.EmptyResult(), fmt.Errorf("target hero %s not found", p.TargetHeroID)
		}
		if target.FactionID == attacker.FactionID {
			return handlers.EmptyResult(), fmt.Errorf("cannot attack an allied hero")
		}
		if attacker.Pos.ManhattanTo(target.Pos) > 1 {
			return handlers.EmptyResult(), fmt.Errorf("target is out of reach")
		}
		cs = systems.NewCombat(attacker, target, nil)
		against = target.Name

	default:
		poi := state.World.GetPOI(p.TargetPOIID)
		if poi == nil {
			return handlers.EmptyResult(), fmt.Errorf("target %s not found", p.TargetPOIID)
		}
		if len(poi.Garrison) == 0 {
			return handlers.EmptyResult(), fmt.Errorf("%s is not defended", poi.Name)
		}
		if attacker.Pos.ManhattanTo(poi.Pos) > 1 {
			return handlers.EmptyResult(), fmt.Errorf("target is out of reach")
		}
		cs = systems.NewCombat(attacker, nil, poi)
		against = poi.Name
	}

	state.Combat = cs
	state.Phase = domain.PhaseCombat

	return handlers.Result{
		Msg:     fmt.Sprintf("%s атакует: %s", attacker.Name, against),
		MsgType: "COMBAT",
	}, nil
}

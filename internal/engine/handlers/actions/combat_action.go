package actions

import (
	"crownfall-server/internal/domain"
	"crownfall-server/internal/engine/handlers"
	"crownfall-server/internal/systems"
	"crownfall-server/pkg/api"
	"fmt"
)

func HandleCombatAction(ctx handlers.Context, p api.CombatActionPayload) (handlers.Result, error) {
	state := ctx.State
	if state.Phase != domain.PhaseCombat || state.Combat == nil {
		return handlers.EmptyResult(), fmt.Errorf("no active combat")
	}

	cs := state.Combat
	cu := cs.Current()
	if cu == nil {
		return handlers.EmptyResult(), fmt.Errorf("combat is already decided")
	}

	msg := ""

	switch p.Action {
	case domain.CombatActionMove:
		dest := domain.Position{X: p.X, Y: p.Y}
		if dest.X >= cs.GridWidth || dest.Y >= cs.GridHeight {
			return handlers.EmptyResult(), fmt.Errorf("grid cell out of bounds")
		}
		if cu.GridPos.ManhattanTo(dest) > cu.Speed {
			return handlers.EmptyResult(), fmt.Errorf("cell is beyond the unit's speed")
		}
		if occupantAt(cs, dest) != nil {
			return handlers.EmptyResult(), fmt.Errorf("cell is occupied")
		}
		systems.ApplyMove(cs, cu, dest)

	case domain.CombatActionAttack:
		target := findCombatUnit(cs, p.TargetUnitID)
		if target == nil || !target.Alive() {
			return handlers.EmptyResult(), fmt.Errorf("target %s is not on the field", p.TargetUnitID)
		}
		if target.Side == cu.Side {
			return handlers.EmptyResult(), fmt.Errorf("cannot attack an allied stack")
		}
		if cu.GridPos.ManhattanTo(target.GridPos) > attackReach(cu) {
			return handlers.EmptyResult(), fmt.Errorf("target is out of reach")
		}
		msg = systems.ApplyAttack(cs, cu, target)

	case domain.CombatActionDefend:
		systems.ApplyDefend(cs, cu)
		msg = fmt.Sprintf("%s занимает оборону", cu.Name)

	case domain.CombatActionWait:
		systems.ApplyWait(cs, cu)

	default:
		return handlers.EmptyResult(), fmt.Errorf("unknown combat action %q", p.Action)
	}

	systems.AdvanceTurn(cs)

	if msg == "" {
		return handlers.EmptyResult(), nil
	}
	return handlers.Result{Msg: msg, MsgType: "COMBAT"}, nil
}

// attackReach - дальность атаки стека. Ближний бой бьет соседнюю клетку.
func attackReach(cu *domain.CombatUnit) int {
	if cu.Range > 1 {
		return cu.Range
	}
	return 1
}

func findCombatUnit(cs *domain.CombatState, id string) *domain.CombatUnit {
	for _, cu := range cs.TurnQueue {
		if cu.ID == id {
			return cu
		}
	}
	return nil
}

func occupantAt(cs *domain.CombatState, pos domain.Position) *domain.CombatUnit {
	for _, cu := range cs.TurnQueue {
		if cu.GridPos == pos {
			return cu
		}
	}
	return nil
}

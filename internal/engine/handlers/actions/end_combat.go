package actions

import (
	"crownfall-server/internal/domain"
	"crownfall-server/internal/engine/handlers"
	"crownfall-server/internal/systems"
	"fmt"
)

func HandleEndCombat(ctx handlers.Context) (handlers.Result, error) {
	state := ctx.State
	if state.Phase != domain.PhaseCombat || state.Combat == nil {
		return handlers.EmptyResult(), fmt.Errorf("no active combat")
	}
	if systems.CombatWinner(state.Combat) == "" {
		return handlers.EmptyResult(), fmt.Errorf("combat is not finished")
	}
	return FinalizeCombat(ctx)
}

// FinalizeCombat применяет исход боя к миру: выжившие стеки пишутся
// назад в армии, победивший атакующий получает опыт и трофеи,
// проигравший герой исчезает с карты. Ничья по лимиту раундов
// трактуется как отступление атакующего: обе армии выживают, наград нет.
func FinalizeCombat(ctx handlers.Context) (handlers.Result, error) {
	state := ctx.State
	cs := state.Combat
	winner := systems.CombatWinner(cs)

	attacker := state.GetHero(cs.AttackerHeroID)
	defender := state.GetHero(cs.DefenderHeroID)

	msg := "Бой окончен: ничья, атакующий отступает"

	switch winner {
	case domain.SideAttacker:
		if attacker != nil {
			writeBackArmy(attacker, cs.Attackers)
			systems.GrantExperience(attacker, cs.ExperienceReward)
			msg = fmt.Sprintf("%s побеждает (+%d опыта)", attacker.Name, cs.ExperienceReward)
			if loot := collectSpoils(ctx, attacker, cs); loot != "" {
				msg += ", " + loot
			}
		}

	case domain.SideDefender:
		if attacker != nil {
			if f := state.GetFaction(attacker.FactionID); f != nil {
				f.RemoveHero(attacker.ID)
			}
			msg = fmt.Sprintf("%s разбит, армия уничтожена", attacker.Name)
		}
		if defender != nil {
			writeBackArmy(defender, cs.Defenders)
		} else if poi := state.World.GetPOI(cs.DefenderPOIID); poi != nil {
			poi.Garrison = survivingStacks(cs.Defenders)
		}

	default:
		// Ничья: стороны расходятся с тем, что осталось
		if attacker != nil {
			writeBackArmy(attacker, cs.Attackers)
		}
		if defender != nil {
			writeBackArmy(defender, cs.Defenders)
		} else if poi := state.World.GetPOI(cs.DefenderPOIID); poi != nil {
			poi.Garrison = survivingStacks(cs.Defenders)
		}
	}

	state.Combat = nil
	state.Phase = domain.PhaseWorldMap
	checkVictory(state)

	return handlers.Result{Msg: msg, MsgType: "COMBAT"}, nil
}

// collectSpoils раздает трофеи победившему атакующему.
// Возвращает строку для журнала (пустую, если трофеев не было).
func collectSpoils(ctx handlers.Context, attacker *domain.Hero, cs *domain.CombatState) string {
	state := ctx.State
	faction := state.GetFaction(attacker.FactionID)

	// Разбитый вражеский герой убирается с карты
	if defender := state.GetHero(cs.DefenderHeroID); defender != nil {
		if f := state.GetFaction(defender.FactionID); f != nil {
			f.RemoveHero(defender.ID)
		}
		return fmt.Sprintf("герой %s разбит", defender.Name)
	}

	poi := state.World.GetPOI(cs.DefenderPOIID)
	if poi == nil || faction == nil {
		return ""
	}

	poi.Garrison = nil

	switch poi.Type {
	case domain.POITown:
		if prev := state.GetFaction(poi.FactionID); prev != nil {
			prev.RemoveTown(poi.ID)
		}
		poi.FactionID = faction.ID
		faction.AddTown(poi.ID)
		return fmt.Sprintf("город %s захвачен", poi.Name)

	case domain.POIEnemyCamp:
		if poi.Camp == nil {
			return ""
		}
		faction.Resources.Add(poi.Camp.Loot)
		systems.GrantExperience(attacker, poi.Camp.Experience)
		poi.FactionID = faction.ID
		return fmt.Sprintf("лагерь %s разорен (+%d золота)", poi.Name, poi.Camp.Loot.Gold)
	}
	return ""
}

// writeBackArmy синхронизирует армию героя с выжившими боевыми стеками.
// Стек, которого нет среди выживших, погиб и вычищается.
func writeBackArmy(h *domain.Hero, survivors []*domain.CombatUnit) {
	byID := make(map[string]*domain.CombatUnit, len(survivors))
	for _, cu := range survivors {
		byID[cu.ID] = cu
	}

	for _, u := range h.Army {
		cu, ok := byID[u.ID]
		if !ok {
			u.Count = 0
			continue
		}
		u.Count = cu.Count
		u.HP = cu.HP
	}
	h.PruneArmy()
}

// survivingStacks возвращает выживших как обычные стеки (для гарнизонов).
func survivingStacks(survivors []*domain.CombatUnit) []*domain.Unit {
	var out []*domain.Unit
	for _, cu := range survivors {
		if !cu.Alive() {
			continue
		}
		u := cu.Unit
		out = append(out, &u)
	}
	return out
}

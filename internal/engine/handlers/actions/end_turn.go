package actions

import (
	"crownfall-server/internal/domain"
	"crownfall-server/internal/engine/handlers"
	"crownfall-server/pkg/logger"
	"fmt"

	"github.com/sirupsen/logrus"
)

func HandleEndTurn(ctx handlers.Context) (handlers.Result, error) {
	state := ctx.State
	if state.Phase != domain.PhaseWorldMap {
		return handlers.EmptyResult(), fmt.Errorf("turn can only end on the world map")
	}
	if state.GameOver {
		return handlers.EmptyResult(), fmt.Errorf("game is over")
	}

	ended := state.ActiveFactionID
	advanceFaction(state)

	// Пропускаем выбитые фракции, но не больше одного полного круга
	for i := 0; i < len(state.Factions); i++ {
		f := state.ActiveFaction()
		if f != nil && !f.Eliminated() {
			break
		}
		advanceFaction(state)
	}

	next := state.ActiveFaction()
	if next != nil {
		for _, h := range next.Heroes {
			h.ResetMovement()
		}
		state.SelectedHeroID = ""
		if len(next.Heroes) > 0 {
			state.SelectedHeroID = next.Heroes[0].ID
		}
	}

	checkVictory(state)

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"ended":     ended,
		"active":    state.ActiveFactionID,
		"turn":      state.Turn,
	}).Debug("Turn passed.")

	return handlers.Result{
		Msg:     fmt.Sprintf("Ход переходит к фракции %s", state.ActiveFactionID),
		MsgType: "INFO",
	}, nil
}

// advanceFaction передает ход следующей фракции по ростеру.
// На завороте круга начинается новый день: доход, восполнение пулов.
func advanceFaction(state *domain.GameState) {
	next := state.NextFactionID()
	wrapped := len(state.Factions) > 0 && next == state.Factions[0].ID

	state.ActiveFactionID = next

	if wrapped {
		state.Turn++
		applyYields(state)
		if state.Turn%domain.RestockInterval == 0 {
			restockTowns(state)
		}
	}
}

// applyYields начисляет доход со всех захваченных точек добычи и городов.
func applyYields(state *domain.GameState) {
	for _, f := range state.Factions {
		if f.ID == domain.FactionNeutral {
			continue
		}
		for _, node := range state.World.Nodes {
			if node.FactionID == f.ID {
				f.Resources.AddKind(node.Resource, node.Yield)
			}
		}
		f.Resources.AddKind(domain.ResourceGold, domain.TownGoldIncome*len(f.TownIDs))
	}
}

func restockTowns(state *domain.GameState) {
	for _, town := range state.World.Towns() {
		if town.Town != nil {
			town.Town.Restock()
		}
	}
}

// checkVictory выставляет GameOver, когда осталась одна живая фракция.
func checkVictory(state *domain.GameState) {
	if state.GameOver {
		return
	}

	var alive []*domain.Faction
	for _, f := range state.Factions {
		if f.ID == domain.FactionNeutral {
			continue
		}
		if !f.Eliminated() {
			alive = append(alive, f)
		}
	}

	if len(alive) == 1 {
		state.GameOver = true
		state.WinnerID = alive[0].ID
		logger.Log.WithFields(logrus.Fields{
			"component": "engine",
			"winner":    state.WinnerID,
		}).Info("Game over.")
	}
}

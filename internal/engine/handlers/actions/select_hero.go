package actions

import (
	"crownfall-server/internal/engine/handlers"
	"crownfall-server/pkg/api"
	"fmt"
)

func HandleSelectHero(ctx handlers.Context, p api.SelectHeroPayload) (handlers.Result, error) {
	faction := ctx.ActiveFaction()
	if faction == nil {
		return handlers.EmptyResult(), fmt.Errorf("no active faction")
	}

	hero := faction.GetHero(p.HeroID)
	if hero == nil {
		return handlers.EmptyResult(), fmt.Errorf("hero %s does not belong to the active faction", p.HeroID)
	}

	ctx.State.SelectedHeroID = hero.ID
	return handlers.EmptyResult(), nil
}

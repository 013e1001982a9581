package actions

import (
	"crownfall-server/internal/domain"
	"crownfall-server/internal/engine/handlers"
	"crownfall-server/pkg/api"
	"fmt"
)

func toResources(p api.ResourcesPayload) domain.Resources {
	return domain.Resources{
		Gold:     p.Gold,
		Wood:     p.Wood,
		Stone:    p.Stone,
		Crystals: p.Crystals,
	}
}

func HandleAddResources(ctx handlers.Context, p api.ResourcesPayload) (handlers.Result, error) {
	faction := ctx.ActiveFaction()
	if faction == nil {
		return handlers.EmptyResult(), fmt.Errorf("no active faction")
	}
	faction.Resources.Add(toResources(p))
	return handlers.EmptyResult(), nil
}

// HandleSpendResources списывает по принципу "все или ничего":
// при нехватке хотя бы одного ресурса казна не меняется.
func HandleSpendResources(ctx handlers.Context, p api.ResourcesPayload) (handlers.Result, error) {
	faction := ctx.ActiveFaction()
	if faction == nil {
		return handlers.EmptyResult(), fmt.Errorf("no active faction")
	}
	if !faction.Resources.Spend(toResources(p)) {
		return handlers.EmptyResult(), fmt.Errorf("not enough resources")
	}
	return handlers.EmptyResult(), nil
}

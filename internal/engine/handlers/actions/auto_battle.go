package actions

import (
	"crownfall-server/internal/domain"
	"crownfall-server/internal/engine/handlers"
	"crownfall-server/internal/systems"
	"fmt"
)

// HandleAutoBattle прокручивает активный бой без поштучных команд
// и сразу применяет исход.
func HandleAutoBattle(ctx handlers.Context) (handlers.Result, error) {
	state := ctx.State
	if state.Phase != domain.PhaseCombat || state.Combat == nil {
		return handlers.EmptyResult(), fmt.Errorf("no active combat")
	}

	systems.AutoResolve(state.Combat, ctx.Rand)
	return FinalizeCombat(ctx)
}

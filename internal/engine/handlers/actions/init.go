package actions

import (
	"crownfall-server/internal/engine/handlers"
)

// HandleInit не меняет состояние: сессия рассылает снимок после
// каждой команды, так что клиенту достаточно прислать INIT.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.EmptyResult(), nil
}

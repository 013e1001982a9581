package handlers

import (
	"crownfall-server/internal/domain"
	"crownfall-server/pkg/rng"
	"encoding/json"
)

// Context передает хендлеру состояние сессии.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	State *domain.GameState

	// Rand - единственный источник случайности сессии.
	// Хендлеры не создают своих потоков.
	Rand *rng.Stream
}

// ActiveFaction - фракция, от имени которой выполняется команда.
func (ctx Context) ActiveFaction() *domain.Faction {
	return ctx.State.ActiveFaction()
}

// SelectedHero - герой, выбранный для приема команд (может быть nil).
func (ctx Context) SelectedHero() *domain.Hero {
	if ctx.State.SelectedHeroID == "" {
		return nil
	}
	return ctx.State.GetHero(ctx.State.SelectedHeroID)
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сессии напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, COMBAT, ERROR)
}

// HandlerFunc - это контракт для любой команды (MOVE, RECRUIT, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

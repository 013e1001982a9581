package engine

import (
	"crownfall-server/internal/domain"
	"crownfall-server/pkg/rng"
)

// Config хранит параметры запуска сессии
type Config struct {
	// Seed - мастер-зерно. Вся генерация мира и весь игровой рандом
	// детерминированы относительно него.
	Seed string

	MapWidth  int
	MapHeight int

	Towns      int
	Camps      int
	Resources  int
	Encounters int

	// AIFactions - сколько AI-фракций сажается по нейтральным городам.
	AIFactions int

	// StartingFactionID - кому принадлежит первый ход.
	StartingFactionID string

	// Difficulty - тег сложности. Зарезервирован под балансные
	// таблицы, симуляция на него пока не смотрит.
	Difficulty string

	// FogOfWar - флаг тумана войны. Принимается и сохраняется,
	// отключение разведки пока не реализовано.
	FogOfWar bool

	// PacingHook вызывается между действиями AI (пауза для зрителей).
	// nil - AI отыгрывает ход мгновенно.
	PacingHook func()
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:              rng.FreshSeed(),
		MapWidth:          64,
		MapHeight:         64,
		Towns:             5,
		Camps:             8,
		Resources:         12,
		Encounters:        6,
		AIFactions:        1,
		StartingFactionID: domain.FactionPlayer,
		Difficulty:        "normal",
		FogOfWar:          true,
	}
}

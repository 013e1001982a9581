package systems

import (
	"crownfall-server/internal/domain"
	"crownfall-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Плоские бонусы за уровень
const (
	levelAttackGain  = 1
	levelDefenseGain = 1
)

// GrantExperience начисляет герою опыт и применяет повышения уровня.
// Каждый уровень умножает следующий порог на 1.5 и дает плоские
// бонусы атаки/защиты. Возвращает число полученных уровней.
func GrantExperience(h *domain.Hero, amount int) int {
	if amount <= 0 {
		return 0
	}
	h.Experience += amount

	levels := 0
	for h.ExperienceToNext > 0 && h.Experience >= h.ExperienceToNext {
		h.Experience -= h.ExperienceToNext
		h.Level++
		h.ExperienceToNext = h.ExperienceToNext * 3 / 2
		h.AttackBonus += levelAttackGain
		h.DefenseBonus += levelDefenseGain
		levels++
	}

	if levels > 0 {
		logger.Log.WithFields(logrus.Fields{
			"hero":  h.ID,
			"level": h.Level,
		}).Info("Hero leveled up.")
	}
	return levels
}

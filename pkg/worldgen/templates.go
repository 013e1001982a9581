package worldgen

import (
	"crownfall-server/internal/domain"
	"crownfall-server/pkg/rng"
)

// UnitTemplate определяет базовые статы типа юнита
type UnitTemplate struct {
	Type    string
	Name    string
	MaxHP   int
	Attack  int
	Defense int
	Speed   int
	Range   int
}

// Базовые статы пяти типов юнитов. Контракт статических данных:
// клиенты и балансные таблицы рассчитывают ровно на эти числа.
var UnitTemplates = map[string]UnitTemplate{
	domain.UnitWarrior: {Type: domain.UnitWarrior, Name: "Мечник", MaxHP: 50, Attack: 12, Defense: 8, Speed: 4, Range: 1},
	domain.UnitArcher:  {Type: domain.UnitArcher, Name: "Лучник", MaxHP: 30, Attack: 10, Defense: 4, Speed: 5, Range: 4},
	domain.UnitCavalry: {Type: domain.UnitCavalry, Name: "Всадник", MaxHP: 60, Attack: 14, Defense: 6, Speed: 7, Range: 1},
	domain.UnitMage:    {Type: domain.UnitMage, Name: "Маг", MaxHP: 25, Attack: 18, Defense: 3, Speed: 4, Range: 3},
	domain.UnitHealer:  {Type: domain.UnitHealer, Name: "Целитель", MaxHP: 20, Attack: 5, Defense: 5, Speed: 5, Range: 2},
}

// NewUnit создает стек юнитов из шаблона.
// ID детерминированный - берется из потока генерации.
func NewUnit(r *rng.Stream, unitType string, count int) *domain.Unit {
	t, ok := UnitTemplates[unitType]
	if !ok {
		return nil
	}
	return &domain.Unit{
		ID:      "u_" + r.ID(8),
		Type:    t.Type,
		Name:    t.Name,
		MaxHP:   t.MaxHP,
		HP:      t.MaxHP,
		Attack:  t.Attack,
		Defense: t.Defense,
		Speed:   t.Speed,
		Range:   t.Range,
		Count:   count,
	}
}

// NewRecruitPool возвращает стандартный пул найма города:
// пять строк со стоимостью за юнита и недельным лимитом.
func NewRecruitPool() []domain.RecruitSlot {
	return []domain.RecruitSlot{
		{UnitType: domain.UnitWarrior, Cost: domain.Resources{Gold: 60, Wood: 5}, Available: 14, WeeklyCap: 14},
		{UnitType: domain.UnitArcher, Cost: domain.Resources{Gold: 90, Wood: 10}, Available: 9, WeeklyCap: 9},
		{UnitType: domain.UnitCavalry, Cost: domain.Resources{Gold: 180, Wood: 15}, Available: 4, WeeklyCap: 4},
		{UnitType: domain.UnitMage, Cost: domain.Resources{Gold: 220, Crystals: 2}, Available: 3, WeeklyCap: 3},
		{UnitType: domain.UnitHealer, Cost: domain.Resources{Gold: 130, Crystals: 1}, Available: 4, WeeklyCap: 4},
	}
}

// --- Имена ---

var townNames = []string{
	"Заречье", "Каменный Брод", "Златоград", "Вороний Утес", "Тихая Гавань",
	"Старый Вал", "Белые Башни", "Перекресток", "Громовая Застава", "Ивовый Дол",
}

var encounterNames = []string{
	"Заброшенный алтарь", "Странствующий торговец", "Разрушенная башня",
	"Лагерь беженцев", "Древний обелиск", "Забытое святилище",
	"Покинутая мельница", "Курган предков",
}

var campNames = []string{
	"Логово разбойников", "Стоянка орков", "Гнездо гарпий",
	"Форт мародеров", "Пещера троллей", "Укрытие дезертиров",
}

// CampGarrison собирает гарнизон лагеря: число и состав стеков
// масштабируются от тира сложности.
func CampGarrison(r *rng.Stream, tier int) []*domain.Unit {
	types := []string{domain.UnitWarrior, domain.UnitArcher, domain.UnitCavalry, domain.UnitMage, domain.UnitHealer}

	var garrison []*domain.Unit
	for i := 0; i < tier; i++ {
		unitType := rng.Pick(r, types)
		count := r.IntRange(tier*2, tier*5+1)
		garrison = append(garrison, NewUnit(r, unitType, count))
	}
	return garrison
}

// CampLoot возвращает трофеи лагеря, масштабированные от тира.
func CampLoot(r *rng.Stream, tier int) (domain.Resources, int) {
	loot := domain.Resources{
		Gold:     tier*100 + r.IntRange(0, tier*100),
		Wood:     r.IntRange(0, tier*4),
		Stone:    r.IntRange(0, tier*3),
		Crystals: r.IntRange(0, tier+1),
	}
	experience := tier * 50
	return loot, experience
}

package domain

// PointOfInterest - именованный объект на карте, с которым может
// взаимодействовать герой. Вместо наследования - дискриминант Type
// плюс опциональные данные варианта (Town/Camp). Если указатель nil,
// значит вариант не тот.
type PointOfInterest struct {
	ID   string   `json:"id"`
	Type string   `json:"type"` // town, enemy_camp, neutral_encounter
	Name string   `json:"name"`
	Pos  Position `json:"pos"`

	FactionID  string `json:"factionId"` // владелец ("neutral" для ничьих)
	Discovered bool   `json:"discovered"`

	// Гарнизон - армия, стоящая в точке без героя
	Garrison []*Unit `json:"garrison,omitempty"`

	Town *TownData `json:"town,omitempty"`
	Camp *CampData `json:"camp,omitempty"`
}

// TownData - данные варианта "город"
type TownData struct {
	Pool     []RecruitSlot `json:"pool"`
	Treasury Resources     `json:"treasury"`
}

// RecruitSlot - одна строка пула найма города
type RecruitSlot struct {
	UnitType  string    `json:"unitType"`
	Cost      Resources `json:"cost"` // за одного
	Available int       `json:"available"`
	WeeklyCap int       `json:"weeklyCap"`
}

// FindSlot ищет строку пула по типу юнита. nil, если город не нанимает таких.
func (t *TownData) FindSlot(unitType string) *RecruitSlot {
	for i := range t.Pool {
		if t.Pool[i].UnitType == unitType {
			return &t.Pool[i]
		}
	}
	return nil
}

// Restock восстанавливает доступность пула до недельного лимита.
func (t *TownData) Restock() {
	for i := range t.Pool {
		t.Pool[i].Available = t.Pool[i].WeeklyCap
	}
}

// CampData - данные варианта "вражеский лагерь"
type CampData struct {
	Tier       int       `json:"tier"` // сложность 1..5
	Loot       Resources `json:"loot"`
	Experience int       `json:"experience"`
}

// ResourceNode - точка добычи ресурса. Приносит доход владельцу каждый ход.
type ResourceNode struct {
	ID        string   `json:"id"`
	Resource  string   `json:"resource"` // gold, wood, stone, crystals
	Pos       Position `json:"pos"`
	Yield     int      `json:"yield"`
	FactionID string   `json:"factionId"` // "neutral" = ничья
}

// Owned возвращает true, если точка захвачена какой-то фракцией.
func (n *ResourceNode) Owned() bool {
	return n.FactionID != "" && n.FactionID != FactionNeutral
}

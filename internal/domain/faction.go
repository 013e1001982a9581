package domain

// Faction - игрок, AI или нейтралы. Герои принадлежат ровно одной фракции.
type Faction struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`

	Resources Resources `json:"resources"`
	Heroes    []*Hero   `json:"heroes"`
	TownIDs   []string  `json:"townIds"`

	IsAI bool `json:"isAi"`
}

// GetHero ищет героя фракции по ID. nil, если не нашли.
func (f *Faction) GetHero(id string) *Hero {
	for _, h := range f.Heroes {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// RemoveHero удаляет героя (смерть в бою).
func (f *Faction) RemoveHero(id string) {
	for i, h := range f.Heroes {
		if h.ID == id {
			f.Heroes = append(f.Heroes[:i], f.Heroes[i+1:]...)
			return
		}
	}
}

// OwnsTown проверяет владение городом.
func (f *Faction) OwnsTown(townID string) bool {
	for _, id := range f.TownIDs {
		if id == townID {
			return true
		}
	}
	return false
}

// AddTown приписывает город фракции (без дублей).
func (f *Faction) AddTown(townID string) {
	if !f.OwnsTown(townID) {
		f.TownIDs = append(f.TownIDs, townID)
	}
}

// RemoveTown отбирает город у фракции.
func (f *Faction) RemoveTown(townID string) {
	for i, id := range f.TownIDs {
		if id == townID {
			f.TownIDs = append(f.TownIDs[:i], f.TownIDs[i+1:]...)
			return
		}
	}
}

// Eliminated - фракция выбита, если у нее нет ни героев, ни городов.
// Нейтралы не считаются.
func (f *Faction) Eliminated() bool {
	if f.ID == FactionNeutral {
		return false
	}
	return len(f.Heroes) == 0 && len(f.TownIDs) == 0
}

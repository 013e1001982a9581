package domain

// GameState - единственный изменяемый корень сессии.
// Каждая команда работает с ним как с одной атомарной единицей:
// либо полностью применилась, либо ничего не тронула.
type GameState struct {
	Turn            int    `json:"turn"`
	ActiveFactionID string `json:"activeFactionId"`

	World    *World     `json:"world"`
	Factions []*Faction `json:"factions"`

	Combat *CombatState `json:"combat,omitempty"`

	SelectedHeroID string `json:"selectedHeroId,omitempty"`
	Phase          string `json:"phase"` // menu, world_map, combat, town

	VictoryCondition string `json:"victoryCondition"`
	GameOver         bool   `json:"gameOver"`
	WinnerID         string `json:"winnerId,omitempty"`
}

// GetFaction ищет фракцию по ID. nil, если такой нет.
func (gs *GameState) GetFaction(id string) *Faction {
	for _, f := range gs.Factions {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// ActiveFaction возвращает фракцию, которая сейчас ходит.
func (gs *GameState) ActiveFaction() *Faction {
	return gs.GetFaction(gs.ActiveFactionID)
}

// GetHero ищет героя по ID среди всех фракций.
func (gs *GameState) GetHero(id string) *Hero {
	for _, f := range gs.Factions {
		if h := f.GetHero(id); h != nil {
			return h
		}
	}
	return nil
}

// HeroAt возвращает героя, стоящего на клетке (или nil).
func (gs *GameState) HeroAt(p Position) *Hero {
	for _, f := range gs.Factions {
		for _, h := range f.Heroes {
			if h.Pos == p {
				return h
			}
		}
	}
	return nil
}

// NextFactionID возвращает следующую фракцию по порядку ростера
// (с заворотом на первую).
func (gs *GameState) NextFactionID() string {
	for i, f := range gs.Factions {
		if f.ID == gs.ActiveFactionID {
			return gs.Factions[(i+1)%len(gs.Factions)].ID
		}
	}
	if len(gs.Factions) > 0 {
		return gs.Factions[0].ID
	}
	return ""
}

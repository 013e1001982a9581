package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Полный "снимок" сессии: мир, фракции, герои, активный бой.
// Отправляется после каждой обработанной команды.
type ServerResponse struct {
	// Type тип сообщения. На данный момент всегда "UPDATE".
	Type string `json:"type"`

	// Turn номер глобального хода (день). Увеличивается, когда
	// отходили все фракции.
	Turn int `json:"turn"`

	// Phase текущая фаза: menu, world_map, town, combat.
	Phase string `json:"phase"`

	// ActiveFactionID фракция, чей ход сейчас.
	// КЛИЕНТ ДОЛЖЕН СРАВНИВАТЬ ЭТО ПОЛЕ СО СВОЕЙ ФРАКЦИЕЙ. Если они
	// совпадают, значит, можно принимать ввод от игрока.
	ActiveFactionID string `json:"activeFactionId,omitempty"`

	// SelectedHeroID герой, выбранный для приема команд MOVE.
	SelectedHeroID string `json:"selectedHeroId,omitempty"`

	// Grid метаданные о размере карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез открытых тайлов (туман войны скрывает остальные).
	Map []TileView `json:"map,omitempty"`

	// Heroes все герои всех фракций на карте.
	Heroes []HeroView `json:"heroes,omitempty"`

	// POIs открытые точки интереса.
	POIs []POIView `json:"pois,omitempty"`

	// Nodes открытые точки добычи ресурсов.
	Nodes []NodeView `json:"nodes,omitempty"`

	// Factions сводка по фракциям (казна видна только своей).
	Factions []FactionView `json:"factions,omitempty"`

	// Combat состояние активного боя. nil вне фазы combat.
	Combat *CombatView `json:"combat,omitempty"`

	// GameOver и WinnerID выставляются после проверки победы.
	GameOver bool   `json:"gameOver,omitempty"`
	WinnerID string `json:"winnerId,omitempty"`

	// Logs срез новых сообщений с прошлой рассылки.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO одного тайла мировой карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Terrain тип поверхности: grass, water, mountain, forest, desert, road.
	Terrain string `json:"terrain"`

	// MoveCost стоимость входа на тайл в очках движения.
	MoveCost float64 `json:"moveCost"`

	// Passable false для воды и гор.
	Passable bool `json:"passable"`
}

// HeroView это DTO героя на мировой карте.
type HeroView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FactionID string `json:"factionId"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	Level int `json:"level"`

	// MovementPoints видны только владельцу (omitempty для чужих).
	MovementPoints    float64 `json:"movementPoints,omitempty"`
	MaxMovementPoints float64 `json:"maxMovementPoints,omitempty"`

	// Army видна только владельцу.
	Army []UnitView `json:"army,omitempty"`
}

// UnitView это DTO одного стека армии.
type UnitView struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
	HP      int    `json:"hp"`
	MaxHP   int    `json:"maxHp"`
	Attack  int    `json:"attack"`
	Defense int    `json:"defense"`
	Speed   int    `json:"speed"`
}

// POIView это DTO точки интереса. Пул найма отдается только
// когда наблюдатель владеет городом.
type POIView struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // town, enemy_camp, neutral_encounter
	Name      string `json:"name"`
	FactionID string `json:"factionId"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	Pool []RecruitSlotView `json:"pool,omitempty"`
}

// RecruitSlotView - строка пула найма города.
type RecruitSlotView struct {
	UnitType  string        `json:"unitType"`
	Available int           `json:"available"`
	Cost      ResourcesView `json:"cost"`
}

// NodeView это DTO точки добычи ресурса.
type NodeView struct {
	ID        string `json:"id"`
	Resource  string `json:"resource"`
	Yield     int    `json:"yield"`
	FactionID string `json:"factionId"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`
}

// FactionView это DTO фракции. Treasury присутствует только
// в снимке для ее владельца.
type FactionView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	IsAI  bool   `json:"isAi"`

	Treasury *ResourcesView `json:"treasury,omitempty"`
}

// ResourcesView - четверка ресурсов.
type ResourcesView struct {
	Gold     int `json:"gold"`
	Wood     int `json:"wood"`
	Stone    int `json:"stone"`
	Crystals int `json:"crystals"`
}

// CombatView это DTO активного боя.
type CombatView struct {
	Round      int    `json:"round"`
	ActiveSide string `json:"activeSide"`

	GridWidth  int `json:"gridWidth"`
	GridHeight int `json:"gridHeight"`

	Attackers []CombatUnitView `json:"attackers"`
	Defenders []CombatUnitView `json:"defenders"`

	// CurrentUnitID юнит, чей ход сейчас.
	CurrentUnitID string `json:"currentUnitId,omitempty"`

	Log []string `json:"log,omitempty"`
}

// CombatUnitView - стек на боевой сетке.
type CombatUnitView struct {
	UnitView

	GridPos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"gridPos"`

	Side        string `json:"side"`
	HasActed    bool   `json:"hasActed"`
	IsDefending bool   `json:"isDefending"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// SelectHeroPayload выбирает героя для последующих команд MOVE.
type SelectHeroPayload struct {
	HeroID string `json:"heroId"`
}

// MovePayload - целевая клетка мировой карты для выбранного героя.
type MovePayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TownPayload используется для ENTER_TOWN.
type TownPayload struct {
	TownID string `json:"townId"`
}

// RecruitPayload - найм юнитов в городе.
type RecruitPayload struct {
	TownID   string `json:"townId"`
	UnitType string `json:"unitType"`
	Count    int    `json:"count"`
}

// StartCombatPayload - инициация боя против героя ИЛИ точки с гарнизоном.
// Ровно одно из полей должно быть заполнено.
type StartCombatPayload struct {
	TargetHeroID string `json:"targetHeroId,omitempty"`
	TargetPOIID  string `json:"targetPoiId,omitempty"`
}

// CombatActionPayload - действие текущего юнита в бою.
type CombatActionPayload struct {
	Action string `json:"action"` // move, attack, defend, wait

	// Для move - целевая клетка боевой сетки.
	X int `json:"x,omitempty"`
	Y int `json:"y,omitempty"`

	// Для attack - ID цели.
	TargetUnitID string `json:"targetUnitId,omitempty"`
}

// ResourcesPayload используется для ADD_RESOURCES и SPEND_RESOURCES.
type ResourcesPayload struct {
	Gold     int `json:"gold,omitempty"`
	Wood     int `json:"wood,omitempty"`
	Stone    int `json:"stone,omitempty"`
	Crystals int `json:"crystals,omitempty"`
}

package domain

import "strings"

// ActionType - внутренний числовой идентификатор команды
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionSelectHero
	ActionMove
	ActionEndTurn
	ActionEnterTown
	ActionLeaveTown
	ActionRecruit
	ActionStartCombat
	ActionCombatAction
	ActionAutoBattle
	ActionEndCombat
	ActionAddResources
	ActionSpendResources
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":            ActionInit,
	"SELECT_HERO":     ActionSelectHero,
	"MOVE":            ActionMove,
	"END_TURN":        ActionEndTurn,
	"ENTER_TOWN":      ActionEnterTown,
	"LEAVE_TOWN":      ActionLeaveTown,
	"RECRUIT":         ActionRecruit,
	"START_COMBAT":    ActionStartCombat,
	"COMBAT_ACTION":   ActionCombatAction,
	"AUTO_BATTLE":     ActionAutoBattle,
	"END_COMBAT":      ActionEndCombat,
	"ADD_RESOURCES":   ActionAddResources,
	"SPEND_RESOURCES": ActionSpendResources,
}

// Маппинг для логов Domain -> String
var actionCmdToString = func() map[ActionType]string {
	m := make(map[ActionType]string, len(actionStringToCmd))
	for s, a := range actionStringToCmd {
		m[a] = s
	}
	return m
}()

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Нечувствительно к регистру для надежности
	if val, ok := actionStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// Виды действий в бою
const (
	CombatActionMove   = "move"
	CombatActionAttack = "attack"
	CombatActionDefend = "defend"
	CombatActionWait   = "wait"
)

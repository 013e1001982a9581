package engine

import (
	"crownfall-server/internal/domain"
	"crownfall-server/internal/engine/handlers"
	"crownfall-server/internal/engine/handlers/actions"
	"crownfall-server/internal/network"
	"crownfall-server/internal/systems"
	"crownfall-server/pkg/api"
	"crownfall-server/pkg/logger"
	"crownfall-server/pkg/rng"
	"crownfall-server/pkg/worldgen"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Стартовая казна и армия каждой играющей фракции
var startingResources = domain.Resources{Gold: 500, Wood: 20, Stone: 10}

// Потолок действий AI-фракции за один ход
const aiActionBudget = 12

// Session - одна игровая партия. Все команды проходят через мьютекс:
// состояние мутирует строго последовательно.
type Session struct {
	mu sync.Mutex

	State *domain.GameState

	// Rand - игровой рандом ПОСЛЕ генерации мира (бои, найм, находки).
	// Отдельный от потока генератора, чтобы реплей команд был
	// воспроизводим независимо от порядка чтения карты.
	Rand *rng.Stream

	Hub *network.Broadcaster

	cfg  Config
	logs []api.LogEntry

	handlers map[domain.ActionType]handlers.HandlerFunc
}

// NewSession генерирует мир и рассаживает фракции.
func NewSession(cfg Config) *Session {
	world := worldgen.Generate(worldgen.Config{
		Width:      cfg.MapWidth,
		Height:     cfg.MapHeight,
		Seed:       cfg.Seed,
		Towns:      cfg.Towns,
		Camps:      cfg.Camps,
		Resources:  cfg.Resources,
		Encounters: cfg.Encounters,
	})

	s := &Session{
		State: &domain.GameState{
			Turn:             1,
			Phase:            domain.PhaseWorldMap,
			World:            world,
			VictoryCondition: "conquest",
		},
		Rand:     rng.New(cfg.Seed + ":session"),
		Hub:      network.NewBroadcaster(),
		cfg:      cfg,
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
	}

	s.seatFactions()
	s.registerHandlers()

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"seed":      cfg.Seed,
		"factions":  len(s.State.Factions),
	}).Info("Session created.")

	return s
}

// seatFactions создает играющие фракции по городам, которые раздал
// генератор: первый город принадлежит игроку, AI-фракции занимают
// нейтральные города по порядку.
func (s *Session) seatFactions() {
	state := s.State
	towns := state.World.Towns()

	player := &domain.Faction{
		ID:        domain.FactionPlayer,
		Name:      "Игрок",
		Color:     "#22D3EE",
		Resources: startingResources,
	}
	state.Factions = append(state.Factions, player)

	aiSeated := 0
	for _, town := range towns {
		switch {
		case town.FactionID == domain.FactionPlayer:
			player.AddTown(town.ID)
			s.spawnHero(player, town.Pos)

		case aiSeated < s.cfg.AIFactions:
			aiSeated++
			ai := &domain.Faction{
				ID:        fmt.Sprintf("ai_%d", aiSeated),
				Name:      fmt.Sprintf("Властитель %d", aiSeated),
				Color:     "#F87171",
				IsAI:      true,
				Resources: startingResources,
			}
			town.FactionID = ai.ID
			ai.AddTown(town.ID)
			s.spawnHero(ai, town.Pos)
			state.Factions = append(state.Factions, ai)
		}
	}

	state.ActiveFactionID = player.ID
	if first := state.GetFaction(s.cfg.StartingFactionID); first != nil {
		state.ActiveFactionID = first.ID
	}

	if active := state.ActiveFaction(); active != nil && len(active.Heroes) > 0 {
		state.SelectedHeroID = active.Heroes[0].ID
	}
}

// spawnHero создает героя фракции со стартовой армией у города.
func (s *Session) spawnHero(f *domain.Faction, pos domain.Position) {
	hero := &domain.Hero{
		ID:                "hero_" + s.Rand.ID(8),
		Name:              rng.Pick(s.Rand, heroNames),
		FactionID:         f.ID,
		Level:             1,
		ExperienceToNext:  100,
		Pos:               pos,
		MaxMovementPoints: 10,
		MovementPoints:    10,
	}
	hero.AddStack(worldgen.NewUnit(s.Rand, domain.UnitWarrior, 10))
	hero.AddStack(worldgen.NewUnit(s.Rand, domain.UnitArcher, 5))
	f.Heroes = append(f.Heroes, hero)
}

var heroNames = []string{
	"Ратибор", "Велеслава", "Добрыня", "Милана",
	"Святогор", "Забава", "Ярополк", "Огнеслав",
}

func (s *Session) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionSelectHero] = handlers.WithPayload(actions.HandleSelectHero)
	s.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.ActionEndTurn] = handlers.WithEmptyPayload(actions.HandleEndTurn)
	s.handlers[domain.ActionEnterTown] = handlers.WithPayload(actions.HandleEnterTown)
	s.handlers[domain.ActionLeaveTown] = handlers.WithEmptyPayload(actions.HandleLeaveTown)
	s.handlers[domain.ActionRecruit] = handlers.WithPayload(actions.HandleRecruit)
	s.handlers[domain.ActionStartCombat] = handlers.WithPayload(actions.HandleStartCombat)
	s.handlers[domain.ActionCombatAction] = handlers.WithPayload(actions.HandleCombatAction)
	s.handlers[domain.ActionAutoBattle] = handlers.WithEmptyPayload(actions.HandleAutoBattle)
	s.handlers[domain.ActionEndCombat] = handlers.WithEmptyPayload(actions.HandleEndCombat)
	s.handlers[domain.ActionAddResources] = handlers.WithPayload(actions.HandleAddResources)
	s.handlers[domain.ActionSpendResources] = handlers.WithPayload(actions.HandleSpendResources)
}

// Execute принимает команду от внешнего мира (WebSocket или headless-раннер),
// применяет ее и рассылает свежий снимок подписчикам.
func (s *Session) Execute(cmd api.ClientCommand) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	action := domain.ParseAction(cmd.Action)
	if action == domain.ActionUnknown {
		return fmt.Errorf("unknown action %q", cmd.Action)
	}

	err := s.dispatch(action, cmd.Payload)
	if err != nil {
		s.addLog(err.Error(), "ERROR")
	}

	// Ответные ходы противника идут сразу, синхронно:
	// клиент получает снимок уже после реакции AI.
	if err == nil {
		if s.State.Phase == domain.PhaseCombat {
			s.runCombatDefenders()
		}
		if action == domain.ActionEndTurn {
			s.runAITurns()
		}
	}

	s.broadcast()
	return err
}

// dispatch выполняет хендлер и пишет результат в лог.
func (s *Session) dispatch(action domain.ActionType, payload json.RawMessage) error {
	handler, ok := s.handlers[action]
	if !ok {
		return fmt.Errorf("no handler for %s", action)
	}

	ctx := handlers.Context{State: s.State, Rand: s.Rand}
	result, err := handler(ctx, payload)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "engine",
			"action":    action.String(),
		}).WithError(err).Warn("Command rejected.")
		return err
	}

	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = "INFO"
		}
		s.addLog(result.Msg, msgType)
	}
	return nil
}

// --- AI SCHEDULING ---

// runAITurns синхронно отыгрывает все AI-фракции до возврата хода
// человеку. Никаких таймеров: пауза между действиями - это PacingHook.
func (s *Session) runAITurns() {
	for i := 0; i < len(s.State.Factions); i++ {
		f := s.State.ActiveFaction()
		if f == nil || !f.IsAI || s.State.GameOver {
			return
		}

		s.playAITurn(f)

		if err := s.dispatch(domain.ActionEndTurn, nil); err != nil {
			logger.Log.WithError(err).Error("AI failed to end its turn.")
			return
		}
	}
}

// playAITurn исполняет ранжированные намерения фракции, пока у героев
// есть очки движения или не исчерпан бюджет действий.
func (s *Session) playAITurn(f *domain.Faction) {
	for i := 0; i < aiActionBudget; i++ {
		if s.State.GameOver {
			return
		}

		act := systems.BestAction(f, s.State.World, s.State.Factions)
		if act.Kind == systems.PlanWait || act.Priority <= 0 {
			return
		}

		if s.cfg.PacingHook != nil {
			s.cfg.PacingHook()
		}

		switch act.Kind {
		case systems.PlanMove:
			s.State.SelectedHeroID = act.HeroID
			payload, _ := json.Marshal(api.MovePayload{X: act.MoveTo.X, Y: act.MoveTo.Y})
			if s.dispatch(domain.ActionMove, payload) != nil {
				return
			}
			s.leaveTownIfEntered()

		case systems.PlanAttack:
			if !s.executeAIAttack(f, act) {
				return
			}
		}
	}
}

// leaveTownIfEntered возвращает AI на карту, если его ход завел героя
// в городской экран: заход на клетку города переключает фазу.
func (s *Session) leaveTownIfEntered() {
	if s.State.Phase == domain.PhaseTown {
		s.dispatch(domain.ActionLeaveTown, nil)
	}
}

// executeAIAttack подводит героя к цели и прокручивает бой автобоем.
// false - намерение неисполнимо, ход фракции на этом заканчивается.
func (s *Session) executeAIAttack(f *domain.Faction, act systems.PlannedAction) bool {
	hero := f.GetHero(act.HeroID)
	target := s.State.GetHero(act.TargetHeroID)
	if hero == nil || target == nil {
		return false
	}

	s.State.SelectedHeroID = hero.ID

	if hero.Pos.ManhattanTo(target.Pos) > 1 {
		dest, ok := s.approachTile(hero, target.Pos)
		if !ok {
			return false
		}
		payload, _ := json.Marshal(api.MovePayload{X: dest.X, Y: dest.Y})
		if s.dispatch(domain.ActionMove, payload) != nil {
			return false
		}
		s.leaveTownIfEntered()
	}
	if hero.Pos.ManhattanTo(target.Pos) > 1 {
		return false
	}

	payload, _ := json.Marshal(api.StartCombatPayload{TargetHeroID: target.ID})
	if s.dispatch(domain.ActionStartCombat, payload) != nil {
		return false
	}
	return s.dispatch(domain.ActionAutoBattle, nil) == nil
}

// approachTile ищет достижимую свободную клетку вплотную к цели.
func (s *Session) approachTile(hero *domain.Hero, target domain.Position) (domain.Position, bool) {
	reach := systems.MovementRange(s.State.World, hero.Pos, hero.MovementPoints)
	for _, pos := range systems.SortedRange(reach) {
		if pos.ManhattanTo(target) != 1 {
			continue
		}
		if s.State.HeroAt(pos) != nil {
			continue
		}
		return pos, true
	}
	return domain.Position{}, false
}

// --- COMBAT AI (защищающаяся сторона) ---

// runCombatDefenders отыгрывает юниты защиты, пока ход не вернется
// атакующему или бой не решится. Человек командует только атакующими.
func (s *Session) runCombatDefenders() {
	cs := s.State.Combat
	if cs == nil || !s.defenderIsAI(cs) {
		return
	}

	for guard := 0; guard < 1024; guard++ {
		if systems.CombatWinner(cs) != "" {
			return
		}
		cu := cs.Current()
		if cu == nil || cu.Side != domain.SideDefender {
			return
		}
		s.actCombatUnit(cs, cu)
		systems.AdvanceTurn(cs)
	}
}

func (s *Session) defenderIsAI(cs *domain.CombatState) bool {
	if cs.DefenderPOIID != "" {
		return true
	}
	defender := s.State.GetHero(cs.DefenderHeroID)
	if defender == nil {
		return true
	}
	f := s.State.GetFaction(defender.FactionID)
	return f == nil || f.IsAI
}

// actCombatUnit - примитивная боевая логика юнита: бей ближайшего,
// иначе сближайся, иначе обороняйся.
func (s *Session) actCombatUnit(cs *domain.CombatState, cu *domain.CombatUnit) {
	targets := cs.AliveOn(domain.SideAttacker)
	if len(targets) == 0 {
		systems.ApplyWait(cs, cu)
		return
	}

	// Ближайшая цель; при равной дистанции - первая по ростеру
	var target *domain.CombatUnit
	best := -1
	for _, t := range targets {
		d := cu.GridPos.ManhattanTo(t.GridPos)
		if best < 0 || d < best {
			best = d
			target = t
		}
	}

	reach := 1
	if cu.Range > 1 {
		reach = cu.Range
	}
	if best <= reach {
		systems.ApplyAttack(cs, cu, target)
		return
	}

	if dest, moved := stepToward(cs, cu, target.GridPos); moved {
		systems.ApplyMove(cs, cu, dest)
		return
	}
	systems.ApplyDefend(cs, cu)
}

// stepToward жадно шагает по сетке к цели, не дальше скорости юнита
// и не в занятые клетки.
func stepToward(cs *domain.CombatState, cu *domain.CombatUnit, target domain.Position) (domain.Position, bool) {
	dest := cu.GridPos
	for i := 0; i < cu.Speed; i++ {
		next := dest
		switch {
		case next.X != target.X:
			if target.X > next.X {
				next.X++
			} else {
				next.X--
			}
		case next.Y != target.Y:
			if target.Y > next.Y {
				next.Y++
			} else {
				next.Y--
			}
		}
		if next == dest || gridOccupied(cs, next) {
			break
		}
		dest = next
	}
	return dest, dest != cu.GridPos
}

func gridOccupied(cs *domain.CombatState, pos domain.Position) bool {
	for _, other := range cs.TurnQueue {
		if other.GridPos == pos {
			return true
		}
	}
	return false
}

// RunHeadless прокручивает партию без клиента: фракцию игрока тоже
// ведет планировщик. Останавливается после turns ходов или победы.
// Возвращает финальный снимок.
func (s *Session) RunHeadless(turns int) *api.ServerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < turns && !s.State.GameOver; i++ {
		if f := s.State.ActiveFaction(); f != nil && !f.IsAI {
			s.playAITurn(f)
		}
		if err := s.dispatch(domain.ActionEndTurn, nil); err != nil {
			break
		}
		s.runAITurns()
	}
	return s.buildState(domain.FactionPlayer)
}

// --- SNAPSHOT / LOGS ---

// Snapshot возвращает снимок сессии глазами фракции игрока.
func (s *Session) Snapshot() *api.ServerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildState(domain.FactionPlayer)
}

func (s *Session) broadcast() {
	if s.Hub.SubscriberCount() == 0 {
		s.logs = s.logs[:0]
		return
	}
	s.Hub.Broadcast(*s.buildState(domain.FactionPlayer))
	// Логи уходят ровно один раз
	s.logs = s.logs[:0]
}

func (s *Session) addLog(text, logType string) {
	s.logs = append(s.logs, api.LogEntry{
		ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
}

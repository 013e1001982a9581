package engine

import (
	"crownfall-server/internal/domain"
	"crownfall-server/pkg/api"
	"crownfall-server/pkg/logger"
	"encoding/json"
	"testing"
)

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

func testConfig(seed string) Config {
	cfg := NewConfig()
	cfg.Seed = seed
	return cfg
}

func command(action string, payload any) api.ClientCommand {
	raw, _ := json.Marshal(payload)
	return api.ClientCommand{Action: action, Payload: raw}
}

// freeNeighbor освобождает клетку рядом с героем под нужды теста:
// трава, без других героев и без привязанных к тайлу объектов.
func freeNeighbor(s *Session, hero *domain.Hero) domain.Position {
	pos := domain.Position{X: hero.Pos.X + 1, Y: hero.Pos.Y}
	if !s.State.World.InBounds(pos) {
		pos = domain.Position{X: hero.Pos.X - 1, Y: hero.Pos.Y}
	}

	t := s.State.World.TileAt(pos)
	t.Terrain = domain.TerrainGrass
	t.MoveCost = domain.TerrainCost(domain.TerrainGrass)
	t.Passable = true
	t.POIID = ""
	t.NodeID = ""

	if other := s.State.HeroAt(pos); other != nil && other != hero {
		other.Pos = domain.Position{X: 0, Y: 0}
	}
	return pos
}

// fortify делает армию героя заведомо непобедимой, чтобы AI-фракция
// не планировала на него нападение во время теста.
func fortify(hero *domain.Hero) {
	hero.AddStack(&domain.Unit{
		ID: "u_fort", Type: domain.UnitCavalry, Name: "Гвардия",
		MaxHP: 60, HP: 60, Attack: 50, Defense: 50, Speed: 7,
		Count: 1000,
	})
}

func TestNewSessionInitialState(t *testing.T) {
	s := NewSession(testConfig("session-init"))
	state := s.State

	if state.Phase != domain.PhaseWorldMap {
		t.Errorf("phase = %s, want world_map", state.Phase)
	}
	if state.Turn != 1 {
		t.Errorf("turn = %d, want 1", state.Turn)
	}
	if state.ActiveFactionID != domain.FactionPlayer {
		t.Errorf("active faction = %s, want player", state.ActiveFactionID)
	}

	player := state.GetFaction(domain.FactionPlayer)
	if player == nil {
		t.Fatal("player faction missing")
	}
	if player.Resources != startingResources {
		t.Errorf("player treasury = %+v, want %+v", player.Resources, startingResources)
	}
	if len(player.Heroes) != 1 {
		t.Fatalf("player heroes = %d, want 1", len(player.Heroes))
	}
	if state.SelectedHeroID != player.Heroes[0].ID {
		t.Error("player hero must be pre-selected")
	}
	if len(player.TownIDs) != 1 {
		t.Errorf("player towns = %d, want 1", len(player.TownIDs))
	}

	// Герой стоит у своего города со стартовой армией
	hero := player.Heroes[0]
	town := state.World.GetPOI(player.TownIDs[0])
	if town == nil || hero.Pos != town.Pos {
		t.Error("player hero must start at the faction town")
	}
	if len(hero.Army) != 2 {
		t.Errorf("starter army stacks = %d, want 2", len(hero.Army))
	}

	// AI-фракция села в нейтральный город
	ai := state.GetFaction("ai_1")
	if ai == nil {
		t.Fatal("ai faction missing")
	}
	if !ai.IsAI || len(ai.Heroes) != 1 || len(ai.TownIDs) != 1 {
		t.Errorf("ai faction misconfigured: %+v", ai)
	}
}

func TestSessionDeterminism(t *testing.T) {
	a := NewSession(testConfig("same"))
	b := NewSession(testConfig("same"))

	ha := a.State.GetFaction(domain.FactionPlayer).Heroes[0]
	hb := b.State.GetFaction(domain.FactionPlayer).Heroes[0]

	if ha.ID != hb.ID || ha.Name != hb.Name || ha.Pos != hb.Pos {
		t.Errorf("same seed produced different player heroes: %+v vs %+v", ha, hb)
	}
	if len(a.State.World.POIs) != len(b.State.World.POIs) {
		t.Error("same seed produced different worlds")
	}
}

func TestEndTurnReturnsToPlayer(t *testing.T) {
	s := NewSession(testConfig("turn-cycle"))
	fortify(s.State.GetFaction(domain.FactionPlayer).Heroes[0])

	if err := s.Execute(command("END_TURN", nil)); err != nil {
		t.Fatalf("END_TURN failed: %v", err)
	}

	// AI отыграл синхронно, ход опять у человека, день сменился
	if s.State.ActiveFactionID != domain.FactionPlayer {
		t.Errorf("active faction = %s, want player", s.State.ActiveFactionID)
	}
	if s.State.Turn != 2 {
		t.Errorf("turn = %d, want 2", s.State.Turn)
	}

	hero := s.State.GetFaction(domain.FactionPlayer).Heroes[0]
	if hero.MovementPoints != hero.MaxMovementPoints {
		t.Error("movement points must reset at the start of the owner's turn")
	}
}

func TestMoveDeductsCostAndClaimsNode(t *testing.T) {
	s := NewSession(testConfig("node-claim"))
	hero := s.State.GetFaction(domain.FactionPlayer).Heroes[0]
	dest := freeNeighbor(s, hero)

	node := &domain.ResourceNode{
		ID:        "n_test",
		Resource:  domain.ResourceWood,
		Pos:       dest,
		Yield:     3,
		FactionID: domain.FactionNeutral,
	}
	s.State.World.RegisterNode(node)

	before := hero.MovementPoints
	if err := s.Execute(command("MOVE", api.MovePayload{X: dest.X, Y: dest.Y})); err != nil {
		t.Fatalf("MOVE failed: %v", err)
	}

	if hero.Pos != dest {
		t.Errorf("hero pos = %v, want %v", hero.Pos, dest)
	}
	if hero.MovementPoints != before-1 {
		t.Errorf("movement points = %f, want %f", hero.MovementPoints, before-1)
	}
	if node.FactionID != domain.FactionPlayer {
		t.Errorf("node owner = %s, want player", node.FactionID)
	}
}

func TestNodeYieldAppliedOnNewDay(t *testing.T) {
	s := NewSession(testConfig("yield"))
	player := s.State.GetFaction(domain.FactionPlayer)
	fortify(player.Heroes[0])

	s.State.World.RegisterNode(&domain.ResourceNode{
		ID:        "n_yield",
		Resource:  domain.ResourceCrystals,
		Pos:       domain.Position{X: 0, Y: 0},
		Yield:     2,
		FactionID: player.ID,
	})

	before := player.Resources
	if err := s.Execute(command("END_TURN", nil)); err != nil {
		t.Fatalf("END_TURN failed: %v", err)
	}

	if player.Resources.Crystals != before.Crystals+2 {
		t.Errorf("crystals = %d, want %d", player.Resources.Crystals, before.Crystals+2)
	}
	// Город тоже приносит золото
	if player.Resources.Gold < before.Gold+domain.TownGoldIncome {
		t.Errorf("gold = %d, want at least %d", player.Resources.Gold, before.Gold+domain.TownGoldIncome)
	}
}

func TestRecruitFlow(t *testing.T) {
	s := NewSession(testConfig("recruit"))
	player := s.State.GetFaction(domain.FactionPlayer)
	hero := player.Heroes[0]
	town := s.State.World.GetPOI(player.TownIDs[0])

	if err := s.Execute(command("ENTER_TOWN", api.TownPayload{TownID: town.ID})); err != nil {
		t.Fatalf("ENTER_TOWN failed: %v", err)
	}
	if s.State.Phase != domain.PhaseTown {
		t.Fatalf("phase = %s, want town", s.State.Phase)
	}

	warriors := 0
	for _, u := range hero.Army {
		if u.Type == domain.UnitWarrior {
			warriors = u.Count
		}
	}

	goldBefore := player.Resources.Gold
	woodBefore := player.Resources.Wood

	err := s.Execute(command("RECRUIT", api.RecruitPayload{
		TownID: town.ID, UnitType: domain.UnitWarrior, Count: 2,
	}))
	if err != nil {
		t.Fatalf("RECRUIT failed: %v", err)
	}

	// Воин стоит 60 золота и 5 дерева
	if player.Resources.Gold != goldBefore-120 {
		t.Errorf("gold = %d, want %d", player.Resources.Gold, goldBefore-120)
	}
	if player.Resources.Wood != woodBefore-10 {
		t.Errorf("wood = %d, want %d", player.Resources.Wood, woodBefore-10)
	}

	for _, u := range hero.Army {
		if u.Type == domain.UnitWarrior && u.Count != warriors+2 {
			t.Errorf("warrior count = %d, want %d", u.Count, warriors+2)
		}
	}

	slot := town.Town.FindSlot(domain.UnitWarrior)
	if slot.Available != slot.WeeklyCap-2 {
		t.Errorf("slot available = %d, want %d", slot.Available, slot.WeeklyCap-2)
	}

	if err := s.Execute(command("LEAVE_TOWN", nil)); err != nil {
		t.Fatalf("LEAVE_TOWN failed: %v", err)
	}
	if s.State.Phase != domain.PhaseWorldMap {
		t.Errorf("phase = %s, want world_map", s.State.Phase)
	}
}

func TestRecruitRejectsOverCap(t *testing.T) {
	s := NewSession(testConfig("recruit-cap"))
	player := s.State.GetFaction(domain.FactionPlayer)
	town := s.State.World.GetPOI(player.TownIDs[0])

	if err := s.Execute(command("ENTER_TOWN", api.TownPayload{TownID: town.ID})); err != nil {
		t.Fatalf("ENTER_TOWN failed: %v", err)
	}

	before := player.Resources
	err := s.Execute(command("RECRUIT", api.RecruitPayload{
		TownID: town.ID, UnitType: domain.UnitWarrior, Count: 999,
	}))
	if err == nil {
		t.Fatal("recruiting over the weekly cap must fail")
	}
	if player.Resources != before {
		t.Error("failed recruit must not touch the treasury")
	}
}

func TestSpendResourcesAtomic(t *testing.T) {
	s := NewSession(testConfig("spend"))
	player := s.State.GetFaction(domain.FactionPlayer)
	before := player.Resources

	err := s.Execute(command("SPEND_RESOURCES", api.ResourcesPayload{
		Gold: 1, Crystals: before.Crystals + 100,
	}))
	if err == nil {
		t.Fatal("overspending must fail")
	}
	if player.Resources != before {
		t.Error("failed spend must not touch the treasury")
	}

	if err := s.Execute(command("ADD_RESOURCES", api.ResourcesPayload{Gold: 50})); err != nil {
		t.Fatalf("ADD_RESOURCES failed: %v", err)
	}
	if player.Resources.Gold != before.Gold+50 {
		t.Errorf("gold = %d, want %d", player.Resources.Gold, before.Gold+50)
	}
}

func TestCampAssaultAutoBattle(t *testing.T) {
	s := NewSession(testConfig("camp-assault"))
	player := s.State.GetFaction(domain.FactionPlayer)
	hero := player.Heroes[0]
	dest := freeNeighbor(s, hero)

	camp := &domain.PointOfInterest{
		ID:        "camp_test",
		Type:      domain.POIEnemyCamp,
		Name:      "Логово",
		Pos:       dest,
		FactionID: domain.FactionNeutral,
		Garrison: []*domain.Unit{
			{ID: "g_1", Type: domain.UnitWarrior, Name: "Воин", MaxHP: 50, HP: 50, Attack: 12, Defense: 8, Speed: 4, Count: 1},
		},
		Camp: &domain.CampData{Tier: 1, Loot: domain.Resources{Gold: 100}, Experience: 40},
	}
	s.State.World.RegisterPOI(camp)

	goldBefore := player.Resources.Gold
	expBefore := hero.Experience + hero.Level*1000

	err := s.Execute(command("START_COMBAT", api.StartCombatPayload{TargetPOIID: camp.ID}))
	if err != nil {
		t.Fatalf("START_COMBAT failed: %v", err)
	}
	if s.State.Phase != domain.PhaseCombat {
		t.Fatalf("phase = %s, want combat", s.State.Phase)
	}

	if err := s.Execute(command("AUTO_BATTLE", nil)); err != nil {
		t.Fatalf("AUTO_BATTLE failed: %v", err)
	}

	if s.State.Phase != domain.PhaseWorldMap || s.State.Combat != nil {
		t.Error("combat must be finalized after auto battle")
	}
	if len(camp.Garrison) != 0 {
		t.Error("camp garrison must be wiped out")
	}
	if camp.FactionID != player.ID {
		t.Errorf("camp owner = %s, want player", camp.FactionID)
	}
	if player.Resources.Gold != goldBefore+100 {
		t.Errorf("gold = %d, want %d", player.Resources.Gold, goldBefore+100)
	}
	if hero.Experience+hero.Level*1000 <= expBefore {
		t.Error("hero must gain experience for the victory")
	}
}

func TestVictoryWhenLastFactionStands(t *testing.T) {
	s := NewSession(testConfig("victory"))
	ai := s.State.GetFaction("ai_1")
	if ai == nil {
		t.Fatal("ai faction missing")
	}

	// Сносим AI-фракцию: ни героев, ни городов
	for _, townID := range append([]string(nil), ai.TownIDs...) {
		if town := s.State.World.GetPOI(townID); town != nil {
			town.FactionID = domain.FactionNeutral
		}
		ai.RemoveTown(townID)
	}
	ai.Heroes = nil

	if err := s.Execute(command("END_TURN", nil)); err != nil {
		t.Fatalf("END_TURN failed: %v", err)
	}

	if !s.State.GameOver {
		t.Fatal("game must be over when a single faction remains")
	}
	if s.State.WinnerID != domain.FactionPlayer {
		t.Errorf("winner = %s, want player", s.State.WinnerID)
	}
}

func TestHeadlessRunStops(t *testing.T) {
	s := NewSession(testConfig("headless"))
	snap := s.RunHeadless(3)

	if snap == nil {
		t.Fatal("headless run must return a snapshot")
	}
	if !snap.GameOver && snap.Turn < 4 {
		t.Errorf("turn = %d, want at least 4 after 3 simulated turns", snap.Turn)
	}
}

func TestExecuteRejectsUnknownAction(t *testing.T) {
	s := NewSession(testConfig("unknown"))
	if err := s.Execute(api.ClientCommand{Action: "FLY"}); err == nil {
		t.Fatal("unknown action must be rejected")
	}
}

func TestMoveOntoOwnTownEntersTownPhase(t *testing.T) {
	s := NewSession(testConfig("town-gates"))
	player := s.State.GetFaction(domain.FactionPlayer)
	hero := player.Heroes[0]
	town := s.State.World.GetPOI(player.TownIDs[0])

	step := freeNeighbor(s, hero)
	if err := s.Execute(command("MOVE", api.MovePayload{X: step.X, Y: step.Y})); err != nil {
		t.Fatalf("MOVE off the town failed: %v", err)
	}
	if s.State.Phase != domain.PhaseWorldMap {
		t.Fatalf("phase = %s, want world_map away from the gates", s.State.Phase)
	}

	// Заход обратно на клетку своего города открывает городской экран
	if err := s.Execute(command("MOVE", api.MovePayload{X: town.Pos.X, Y: town.Pos.Y})); err != nil {
		t.Fatalf("MOVE onto the town failed: %v", err)
	}
	if s.State.Phase != domain.PhaseTown {
		t.Fatalf("phase = %s, want town", s.State.Phase)
	}

	if err := s.Execute(command("LEAVE_TOWN", nil)); err != nil {
		t.Fatalf("LEAVE_TOWN failed: %v", err)
	}
	if s.State.Phase != domain.PhaseWorldMap {
		t.Errorf("phase = %s, want world_map", s.State.Phase)
	}
}

func TestWalkOnCaptureOpensTown(t *testing.T) {
	s := NewSession(testConfig("capture-walk"))
	player := s.State.GetFaction(domain.FactionPlayer)
	hero := player.Heroes[0]
	ai := s.State.GetFaction("ai_1")
	town := s.State.World.GetPOI(ai.TownIDs[0])

	// Безгарнизонный город, защитник уведен в сторону
	town.Garrison = nil
	ai.Heroes[0].Pos = domain.Position{X: 0, Y: 0}

	// Герой ставится вплотную к воротам
	gate := domain.Position{X: town.Pos.X + 1, Y: town.Pos.Y}
	if !s.State.World.InBounds(gate) {
		gate = domain.Position{X: town.Pos.X - 1, Y: town.Pos.Y}
	}
	gt := s.State.World.TileAt(gate)
	gt.Terrain = domain.TerrainGrass
	gt.MoveCost = domain.TerrainCost(domain.TerrainGrass)
	gt.Passable = true
	gt.POIID = ""
	gt.NodeID = ""
	hero.Pos = gate
	hero.MovementPoints = hero.MaxMovementPoints

	if err := s.Execute(command("MOVE", api.MovePayload{X: town.Pos.X, Y: town.Pos.Y})); err != nil {
		t.Fatalf("MOVE onto the enemy town failed: %v", err)
	}

	if town.FactionID != player.ID {
		t.Errorf("town owner = %s, want player", town.FactionID)
	}
	if len(ai.TownIDs) != 0 {
		t.Errorf("ai towns = %d, want 0 after losing the town", len(ai.TownIDs))
	}
	if s.State.Phase != domain.PhaseTown {
		t.Errorf("phase = %s, want town after capture", s.State.Phase)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Seed == "" {
		t.Error("seed must be generated")
	}
	if cfg.StartingFactionID != domain.FactionPlayer {
		t.Errorf("starting faction = %q, want %q", cfg.StartingFactionID, domain.FactionPlayer)
	}
	if cfg.Difficulty != "normal" {
		t.Errorf("difficulty = %q, want normal", cfg.Difficulty)
	}
	if !cfg.FogOfWar {
		t.Error("fog of war must default to on")
	}
}

func TestStartingFactionConfig(t *testing.T) {
	cfg := testConfig("first-move")
	cfg.StartingFactionID = "ai_1"
	s := NewSession(cfg)

	if s.State.ActiveFactionID != "ai_1" {
		t.Errorf("active faction = %s, want ai_1", s.State.ActiveFactionID)
	}
	ai := s.State.GetFaction("ai_1")
	if len(ai.Heroes) == 0 || s.State.SelectedHeroID != ai.Heroes[0].ID {
		t.Error("first hero of the starting faction must be pre-selected")
	}
}

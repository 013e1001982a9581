package systems

import (
	"crownfall-server/internal/domain"
	"testing"
)

func aiFaction(id string, heroes ...*domain.Hero) *domain.Faction {
	return &domain.Faction{ID: id, Name: id, IsAI: true, Heroes: heroes}
}

func TestPlanWaitFallback(t *testing.T) {
	h := hero("ai_hero", "ai_1")
	h.MovementPoints = 0

	f := aiFaction("ai_1", h)
	w := grassWorld(10, 10)

	actions := Plan(f, w, []*domain.Faction{f})
	if len(actions) != 1 {
		t.Fatalf("expected only the wait fallback, got %d actions", len(actions))
	}
	if actions[0].Kind != PlanWait || actions[0].Priority != 0 {
		t.Errorf("fallback = %+v, want wait with priority 0", actions[0])
	}
}

func TestPlanAttractedToNode(t *testing.T) {
	h := hero("ai_hero", "ai_1", stack(domain.UnitWarrior, 5, 50, 12, 8, 4))
	h.Pos = domain.Position{X: 0, Y: 0}
	h.MovementPoints = 3

	f := aiFaction("ai_1", h)
	w := grassWorld(12, 12)
	w.RegisterNode(&domain.ResourceNode{
		ID: "n_1", Resource: domain.ResourceWood,
		Pos: domain.Position{X: 4, Y: 0}, Yield: 2,
		FactionID: domain.FactionNeutral,
	})

	best := BestAction(f, w, []*domain.Faction{f})
	if best.Kind != PlanMove {
		t.Fatalf("best action = %s, want move", best.Kind)
	}
	if best.MoveTo.ManhattanTo(w.GetNode("n_1").Pos) > aiNearRadius {
		t.Errorf("best move %v is not near the node", best.MoveTo)
	}
}

func TestPlanPrefersTownOverNode(t *testing.T) {
	h := hero("ai_hero", "ai_1", stack(domain.UnitWarrior, 5, 50, 12, 8, 4))
	h.Pos = domain.Position{X: 5, Y: 5}
	h.MovementPoints = 2

	f := aiFaction("ai_1", h)
	w := grassWorld(20, 20)

	// Точка добычи слева, ничейный город справа. Веса должны тянуть к городу.
	w.RegisterNode(&domain.ResourceNode{
		ID: "n_1", Resource: domain.ResourceGold,
		Pos: domain.Position{X: 1, Y: 5}, Yield: 50,
		FactionID: domain.FactionNeutral,
	})
	w.RegisterPOI(&domain.PointOfInterest{
		ID: "town_1", Type: domain.POITown, Name: "Город",
		Pos:       domain.Position{X: 9, Y: 5},
		FactionID: domain.FactionNeutral,
	})

	best := BestAction(f, w, []*domain.Faction{f})
	if best.Kind != PlanMove {
		t.Fatalf("best action = %s, want move", best.Kind)
	}
	if best.MoveTo.X <= h.Pos.X {
		t.Errorf("best move %v heads away from the town", best.MoveTo)
	}
}

func TestPlanAttackRequiresWinProbability(t *testing.T) {
	weak := hero("ai_hero", "ai_1", stack(domain.UnitHealer, 1, 20, 5, 5, 5))
	weak.Pos = domain.Position{X: 3, Y: 3}
	weak.MovementPoints = 5

	giant := hero("player_hero", "player", stack(domain.UnitCavalry, 50, 60, 14, 6, 7))
	giant.Pos = domain.Position{X: 4, Y: 3}

	f := aiFaction("ai_1", weak)
	enemy := &domain.Faction{ID: "player", Heroes: []*domain.Hero{giant}}
	w := grassWorld(10, 10)

	for _, a := range Plan(f, w, []*domain.Faction{f, enemy}) {
		if a.Kind == PlanAttack {
			t.Fatalf("hopeless attack planned: %+v", a)
		}
	}
}

func TestPlanAttackOnWeakerEnemy(t *testing.T) {
	strong := hero("ai_hero", "ai_1", stack(domain.UnitCavalry, 20, 60, 14, 6, 7))
	strong.Pos = domain.Position{X: 3, Y: 3}
	strong.MovementPoints = 5

	weak := hero("player_hero", "player", stack(domain.UnitHealer, 1, 20, 5, 5, 5))
	weak.Pos = domain.Position{X: 4, Y: 3}

	f := aiFaction("ai_1", strong)
	enemy := &domain.Faction{ID: "player", Heroes: []*domain.Hero{weak}}
	w := grassWorld(10, 10)

	best := BestAction(f, w, []*domain.Faction{f, enemy})
	if best.Kind != PlanAttack {
		t.Fatalf("best action = %s, want attack", best.Kind)
	}
	if best.TargetHeroID != "player_hero" {
		t.Errorf("attack target = %s, want player_hero", best.TargetHeroID)
	}
	if best.Priority <= attackPriorityMin {
		t.Errorf("attack priority = %f, want above the base %d", best.Priority, attackPriorityMin)
	}
}

func TestPlanDeterministic(t *testing.T) {
	build := func() (*domain.Faction, *domain.World, []*domain.Faction) {
		h := hero("ai_hero", "ai_1", stack(domain.UnitWarrior, 5, 50, 12, 8, 4))
		h.Pos = domain.Position{X: 2, Y: 2}
		h.MovementPoints = 4
		f := aiFaction("ai_1", h)
		w := grassWorld(15, 15)
		w.RegisterNode(&domain.ResourceNode{
			ID: "n_1", Resource: domain.ResourceStone,
			Pos: domain.Position{X: 6, Y: 2}, Yield: 2,
			FactionID: domain.FactionNeutral,
		})
		return f, w, []*domain.Faction{f}
	}

	f1, w1, fs1 := build()
	f2, w2, fs2 := build()
	a := Plan(f1, w1, fs1)
	b := Plan(f2, w2, fs2)

	if len(a) != len(b) {
		t.Fatalf("plan lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("plan diverges at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

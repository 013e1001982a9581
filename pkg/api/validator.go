package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p SelectHeroPayload) Validate() error {
	if p.HeroID == "" {
		return errors.New("heroId is required")
	}
	return nil
}

func (p MovePayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("destination out of map")
	}
	return nil
}

func (p TownPayload) Validate() error {
	if p.TownID == "" {
		return errors.New("townId is required")
	}
	return nil
}

func (p RecruitPayload) Validate() error {
	if p.UnitType == "" {
		return errors.New("unitType is required")
	}
	if p.Count <= 0 {
		return errors.New("count must be positive")
	}
	return nil
}

func (p StartCombatPayload) Validate() error {
	if p.TargetHeroID == "" && p.TargetPOIID == "" {
		return errors.New("combat target is required")
	}
	if p.TargetHeroID != "" && p.TargetPOIID != "" {
		return errors.New("combat target is ambiguous")
	}
	return nil
}

func (p CombatActionPayload) Validate() error {
	switch p.Action {
	case "move":
		if p.X < 0 || p.Y < 0 {
			return errors.New("grid cell out of bounds")
		}
	case "attack":
		if p.TargetUnitID == "" {
			return errors.New("targetUnitId is required")
		}
	case "defend", "wait":
		// данных не требуется
	default:
		return errors.New("unknown combat action")
	}
	return nil
}

func (p ResourcesPayload) Validate() error {
	if p.Gold < 0 || p.Wood < 0 || p.Stone < 0 || p.Crystals < 0 {
		return errors.New("resource amounts cannot be negative")
	}
	return nil
}

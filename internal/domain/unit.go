package domain

// Unit - стек одинаковых существ, учитываемый как одна сущность.
// Count - сколько существ в стеке; стек с Count 0 удаляется у владельца.
type Unit struct {
	ID   string `json:"id"`
	Type string `json:"type"` // warrior, archer, cavalry, mage, healer
	Name string `json:"name"`

	MaxHP   int `json:"maxHp"` // за одно существо
	HP      int `json:"hp"`    // текущее HP верхнего существа
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"`
	Range   int `json:"range"`

	Count      int `json:"count"`
	Experience int `json:"experience"`
}

// Alive возвращает true, пока в стеке кто-то остался.
func (u *Unit) Alive() bool {
	return u.Count > 0 && u.HP > 0
}

// Power - грубая оценка силы стека для эвристик AI.
// (атака + защита) * количество * доля здоровья.
func (u *Unit) Power() float64 {
	if u.Count <= 0 || u.MaxHP <= 0 {
		return 0
	}
	hpFrac := float64(u.HP) / float64(u.MaxHP)
	return float64(u.Attack+u.Defense) * float64(u.Count) * hpFrac
}

// Clone возвращает копию стека (для проекции в бой).
func (u *Unit) Clone() *Unit {
	c := *u
	return &c
}

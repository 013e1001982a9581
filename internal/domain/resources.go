package domain

// Resources - казна фракции. Все значения >= 0.
type Resources struct {
	Gold     int `json:"gold"`
	Wood     int `json:"wood"`
	Stone    int `json:"stone"`
	Crystals int `json:"crystals"`
}

// Add прибавляет другую четверку ресурсов.
func (r *Resources) Add(other Resources) {
	r.Gold += other.Gold
	r.Wood += other.Wood
	r.Stone += other.Stone
	r.Crystals += other.Crystals
}

// CanAfford проверяет, хватает ли КАЖДОГО запрошенного ресурса.
func (r *Resources) CanAfford(cost Resources) bool {
	return r.Gold >= cost.Gold &&
		r.Wood >= cost.Wood &&
		r.Stone >= cost.Stone &&
		r.Crystals >= cost.Crystals
}

// Spend списывает стоимость по принципу "все или ничего".
// При нехватке хотя бы одного ресурса не трогает НИЧЕГО и возвращает false.
func (r *Resources) Spend(cost Resources) bool {
	if !r.CanAfford(cost) {
		return false
	}
	r.Gold -= cost.Gold
	r.Wood -= cost.Wood
	r.Stone -= cost.Stone
	r.Crystals -= cost.Crystals
	return true
}

// Scale возвращает стоимость, умноженную на количество.
func (r Resources) Scale(n int) Resources {
	return Resources{
		Gold:     r.Gold * n,
		Wood:     r.Wood * n,
		Stone:    r.Stone * n,
		Crystals: r.Crystals * n,
	}
}

// AddKind прибавляет количество к одному виду ресурса по имени.
func (r *Resources) AddKind(kind string, amount int) {
	switch kind {
	case ResourceGold:
		r.Gold += amount
	case ResourceWood:
		r.Wood += amount
	case ResourceStone:
		r.Stone += amount
	case ResourceCrystals:
		r.Crystals += amount
	}
}

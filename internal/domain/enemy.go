package domain

// Enemy - враг волны. Создаётся Wave Director, удаляется при health <= 0.
type Enemy struct {
	ID        string    `json:"id"`
	Type      EnemyType `json:"type"`
	Position  Position  `json:"position"`
	Radius    float64   `json:"radius"`
	Health    float64   `json:"health"`
	MaxHealth float64   `json:"maxHealth"`
	Damage    float64   `json:"damage"`
	Speed     float64   `json:"speed"`
	ExpValue  float64   `json:"expValue"`
}

// Dead - враг подлежит удалению
func (e *Enemy) Dead() bool { return e.Health <= 0 }

// Key - id для логов, допускает nil
func (e *Enemy) Key() string {
	if e == nil {
		return "<nil>"
	}
	return e.ID
}

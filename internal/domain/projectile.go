package domain

// Projectile - пуля игрока. Летит по прямой, живёт TimeToLive тиков.
type Projectile struct {
	ID         string   `json:"id"`
	OwnerID    string   `json:"ownerId"`
	Position   Position `json:"position"`
	Angle      float64  `json:"angle"`
	Speed      float64  `json:"speed"`
	Damage     float64  `json:"damage"`
	TimeToLive int      `json:"timeToLive"`
}

// Key - id для логов, допускает nil
func (p *Projectile) Key() string {
	if p == nil {
		return "<nil>"
	}
	return p.ID
}

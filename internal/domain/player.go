package domain

import "arena-server/pkg/utils"

// Player - подключенный игрок. Живёт в реестре, пока открыт сокет.
type Player struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Position   Position   `json:"position"`
	Angle      float64    `json:"angle"`
	Health     float64    `json:"health"`
	MaxHealth  float64    `json:"maxHealth"`
	Experience float64    `json:"experience"`
	Level      int        `json:"level"`
	Speed      float64    `json:"speed"`
	Damage     float64    `json:"damage"`
	FireRate   float64    `json:"fireRate"`
	Type       PlayerType `json:"type"`
	WeaponType WeaponType `json:"weaponType"`

	PartyID   string `json:"partyId,omitempty"`
	SessionID string `json:"gameId,omitempty"`

	// DeathReported - playerDied уже разослан для текущей смерти
	DeathReported bool `json:"-"`
}

// NewPlayer создает игрока со стартовыми характеристиками в центре арены.
func NewPlayer(id string, arena Arena) *Player {
	return &Player{
		ID:         id,
		Name:       "Player-" + utils.ShortID(id, 4),
		Position:   arena.Center(),
		Health:     DefaultHealth,
		MaxHealth:  DefaultHealth,
		Level:      1,
		Speed:      DefaultSpeed,
		Damage:     DefaultDamage,
		FireRate:   DefaultFireRate,
		Type:       PlayerBasic,
		WeaponType: WeaponNormal,
	}
}

func (p *Player) Alive() bool { return p.Health > 0 }

func (p *Player) InSession() bool { return p.SessionID != "" }

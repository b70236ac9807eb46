package systems

import (
	"fmt"

	"arena-server/internal/domain"
	"arena-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Upgrade - строка таблицы улучшений
type Upgrade struct {
	Cost    float64
	Allowed func(p *domain.Player) bool
	Apply   func(p *domain.Player)
}

var upgradeTable = map[domain.UpgradeType]Upgrade{
	domain.UpgradeSpeed: {
		Cost:  10,
		Apply: func(p *domain.Player) { p.Speed += 0.5 },
	},
	domain.UpgradeDamage: {
		Cost:  10,
		Apply: func(p *domain.Player) { p.Damage += 2 },
	},
	domain.UpgradeFireRate: {
		Cost:  10,
		Apply: func(p *domain.Player) { p.FireRate += 0.5 },
	},
	domain.UpgradeHealth: {
		Cost: 10,
		Apply: func(p *domain.Player) {
			p.MaxHealth += 10
			p.Heal(10)
		},
	},
	domain.UpgradeEvolve: {
		Cost:    50,
		Allowed: func(p *domain.Player) bool { return p.Type == domain.PlayerBasic },
		Apply: func(p *domain.Player) {
			p.Type = domain.PlayerAdvanced
			p.Damage += 5
			p.MaxHealth += 20
			p.Heal(20)
		},
	},
	domain.UpgradeDualGuns: {
		Cost: 30,
		Apply: func(p *domain.Player) {
			p.WeaponType = domain.WeaponDual
			p.Damage += 3
		},
	},
	domain.UpgradeShotgun: {
		Cost: 40,
		Apply: func(p *domain.Player) {
			p.WeaponType = domain.WeaponShotgun
			p.Damage += 1
		},
	},
}

// UpgradeCost - цена улучшения, false для неизвестного
func UpgradeCost(kind domain.UpgradeType) (float64, bool) {
	u, ok := upgradeTable[kind]
	return u.Cost, ok
}

// ApplyUpgrade покупает улучшение за опыт. При любой ошибке игрок не меняется.
func ApplyUpgrade(p *domain.Player, kind domain.UpgradeType) error {
	u, ok := upgradeTable[kind]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownUpgrade, kind)
	}
	if u.Allowed != nil && !u.Allowed(p) {
		return fmt.Errorf("%w: %s for %s", domain.ErrUpgradeForbidden, kind, p.Type)
	}
	if !p.SpendExperience(u.Cost) {
		return fmt.Errorf("%w: have %.0f, need %.0f", domain.ErrNotEnoughXP, p.Experience, u.Cost)
	}

	u.Apply(p)

	logger.Log.WithFields(logrus.Fields{
		"component": "upgrades",
		"player_id": p.ID,
		"upgrade":   kind,
		"cost":      u.Cost,
		"xp_left":   p.Experience,
	}).Info("Upgrade applied.")
	return nil
}

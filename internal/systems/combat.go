package systems

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ProjectileHit - итог попадания снаряда во врага
type ProjectileHit struct {
	Enemy  *domain.Enemy
	Killed bool
}

// ProjectileCollides: расстояние меньше суммы радиусов плюс допуск на попадание.
func ProjectileCollides(p *domain.Projectile, e *domain.Enemy) bool {
	return p.Position.DistanceTo(e.Position) < e.Radius+domain.ProjectileRadius+domain.HitForgiveness
}

// ResolveProjectile проверяет снаряд против врагов в порядке списка.
// Урон получает только первый задетый враг. nil - промах.
// Убитого врага вызывающий код удаляет сам.
func ResolveProjectile(p *domain.Projectile, enemies []*domain.Enemy) *ProjectileHit {
	for _, e := range enemies {
		if e.Dead() || !ProjectileCollides(p, e) {
			continue
		}

		hpBefore := e.Health
		killed := e.TakeDamage(p.Damage)

		logger.Log.WithFields(logrus.Fields{
			"component":     "combat_system",
			"projectile_id": p.ID,
			"owner_id":      p.OwnerID,
			"enemy_id":      e.ID,
			"enemy_type":    e.Type,
			"damage":        p.Damage,
			"hp_before":     hpBefore,
			"hp_after":      e.Health,
			"killed":        killed,
		}).Debug("Projectile hit resolved.")

		return &ProjectileHit{Enemy: e, Killed: killed}
	}
	return nil
}

// EnemyContacts: враг касается игрока. dist меряется при выборе цели, до шага врага.
func EnemyContacts(dist float64, e *domain.Enemy) bool {
	return dist < domain.PlayerRadius+e.Radius
}

// ApplyContactDamage наносит контактный урон (каждый тик касания).
// died == true только на переходе в смерть, повторно не срабатывает.
func ApplyContactDamage(e *domain.Enemy, p *domain.Player) (died bool) {
	hpBefore := p.Health
	died = p.TakeDamage(e.Damage)

	entry := logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"enemy_id":  e.ID,
		"player_id": p.ID,
		"damage":    e.Damage,
		"hp_before": hpBefore,
		"hp_after":  p.Health,
	})
	if died {
		entry.Info("Player died.")
	} else {
		entry.Debug("Contact damage applied.")
	}
	return died
}

package systems

import (
	"math"

	"arena-server/internal/domain"
)

// Параметры оружия
const (
	dualOffset       = 10.0
	shotgunSpread    = math.Pi / 8
	shotgunSideRatio = 0.6
)

// FireProjectiles создает снаряды выстрела по паттерну оружия игрока.
func FireProjectiles(owner *domain.Player, angle float64, newID func() string) []*domain.Projectile {
	spawn := func(pos domain.Position, a, damage float64) *domain.Projectile {
		return &domain.Projectile{
			ID:         newID(),
			OwnerID:    owner.ID,
			Position:   pos,
			Angle:      a,
			Speed:      domain.ProjectileSpeed,
			Damage:     damage,
			TimeToLive: domain.ProjectileTTL,
		}
	}

	switch owner.WeaponType {
	case domain.WeaponDual:
		// Два ствола, смещённые перпендикулярно направлению
		perp := angle + math.Pi/2
		left := owner.Position.Advance(perp, dualOffset)
		right := owner.Position.Advance(perp, -dualOffset)
		return []*domain.Projectile{
			spawn(left, angle, owner.Damage),
			spawn(right, angle, owner.Damage),
		}

	case domain.WeaponShotgun:
		out := make([]*domain.Projectile, 0, 5)
		for i := -2; i <= 2; i++ {
			damage := owner.Damage
			if i != 0 {
				damage *= shotgunSideRatio
			}
			out = append(out, spawn(owner.Position, angle+float64(i)*shotgunSpread/2, damage))
		}
		return out

	default:
		return []*domain.Projectile{spawn(owner.Position, angle, owner.Damage)}
	}
}

// AdvanceProjectile - шаг по прямой и минус один тик жизни
func AdvanceProjectile(p *domain.Projectile) {
	p.Position = p.Position.Advance(p.Angle, p.Speed)
	p.TimeToLive--
}

// ProjectileExpired: кончился TTL или снаряд улетел за арену
func ProjectileExpired(p *domain.Projectile, arena domain.Arena) bool {
	return p.TimeToLive <= 0 || arena.OutOfBounds(p.Position)
}

package systems

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// WaveStats - базовые характеристики врага волны w
type WaveStats struct {
	Count    int
	Health   float64
	Damage   float64
	Speed    float64
	ExpValue float64
}

// StatsForWave: count 5+2w, health 20+5w, damage 5+w, speed 1+0.1w, exp 5+w
func StatsForWave(wave int) WaveStats {
	w := float64(wave)
	return WaveStats{
		Count:    5 + 2*wave,
		Health:   20 + 5*w,
		Damage:   5 + w,
		Speed:    1 + 0.1*w,
		ExpValue: 5 + w,
	}
}

// enemyProfile - множители к базе волны
type enemyProfile struct {
	health, damage, speed, exp float64
	radius                     float64
}

var enemyProfiles = map[domain.EnemyType]enemyProfile{
	domain.EnemyBasic:    {health: 1, damage: 1, speed: 1, exp: 1, radius: 20},
	domain.EnemyAdvanced: {health: 1.3, damage: 1.3, speed: 1.1, exp: 1.5, radius: 20},
	domain.EnemyFast:     {health: 0.7, damage: 0.7, speed: 1.8, exp: 1.2, radius: 15},
	domain.EnemyTank:     {health: 2, damage: 1.5, speed: 0.6, exp: 2, radius: 25},
	domain.EnemyBoss:     {health: 5, damage: 2, speed: 0.7, exp: 5, radius: 35},
}

// RollEnemyType решает тип врага по одному броску roll in [0,1).
// До третьей волны все враги basic. Пороги проверяются по порядку.
func RollEnemyType(wave int, roll float64) domain.EnemyType {
	if wave < 3 {
		return domain.EnemyBasic
	}
	switch {
	case wave >= 10 && roll < 0.05:
		return domain.EnemyBoss
	case wave >= 5 && roll < 0.20:
		return domain.EnemyTank
	case roll < 0.40:
		return domain.EnemyFast
	case wave >= 5 && roll < 0.70:
		return domain.EnemyAdvanced
	default:
		return domain.EnemyBasic
	}
}

// NewEnemy применяет профиль типа к базе волны
func NewEnemy(id string, kind domain.EnemyType, base WaveStats, pos domain.Position) *domain.Enemy {
	prof, ok := enemyProfiles[kind]
	if !ok {
		kind, prof = domain.EnemyBasic, enemyProfiles[domain.EnemyBasic]
	}
	health := base.Health * prof.health
	return &domain.Enemy{
		ID:        id,
		Type:      kind,
		Position:  pos,
		Radius:    prof.radius,
		Health:    health,
		MaxHealth: health,
		Damage:    base.Damage * prof.damage,
		Speed:     base.Speed * prof.speed,
		ExpValue:  base.ExpValue * prof.exp,
	}
}

// SpawnPoint - точка за краем арены. side: 0 верх, 1 право, 2 низ, 3 лево.
// along in [0,1) - положение вдоль стороны.
func SpawnPoint(arena domain.Arena, side int, along float64) domain.Position {
	switch side {
	case 0:
		return domain.Position{X: along * arena.Width, Y: -domain.SpawnOffset}
	case 1:
		return domain.Position{X: arena.Width + domain.SpawnOffset, Y: along * arena.Height}
	case 2:
		return domain.Position{X: along * arena.Width, Y: arena.Height + domain.SpawnOffset}
	default:
		return domain.Position{X: -domain.SpawnOffset, Y: along * arena.Height}
	}
}

// ComposeWave собирает всех врагов волны. Порядок бросков на врага: сторона, позиция, тип.
func ComposeWave(wave int, arena domain.Arena, rng Rand, newID func() string) []*domain.Enemy {
	base := StatsForWave(wave)
	enemies := make([]*domain.Enemy, 0, base.Count)
	counts := make(map[domain.EnemyType]int)

	for i := 0; i < base.Count; i++ {
		side := rng.Intn(4)
		pos := SpawnPoint(arena, side, rng.Float64())

		kind := domain.EnemyBasic
		if wave >= 3 {
			kind = RollEnemyType(wave, rng.Float64())
		}
		counts[kind]++

		enemies = append(enemies, NewEnemy(newID(), kind, base, pos))
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "wave_director",
		"wave":      wave,
		"count":     base.Count,
		"types":     counts,
	}).Debug("Wave composed.")

	return enemies
}

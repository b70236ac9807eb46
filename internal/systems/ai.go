package systems

import (
	"math"

	"arena-server/internal/domain"
)

// jitterAmplitude - разброс направления врага по каждой оси: [-0.1, 0.1)
const jitterAmplitude = 0.2

// SelectTarget выбирает ближайшего живого игрока.
// Если ближайший не определился (NaN в координатах), берётся случайный живой.
// Возвращает nil, когда живых нет. dist - расстояние до цели на момент выбора.
func SelectTarget(e *domain.Enemy, players []*domain.Player, rng Rand) (target *domain.Player, dist float64) {
	dist = math.Inf(1)
	alive := 0

	for _, p := range players {
		if p == nil || !p.Alive() {
			continue
		}
		alive++
		if d := e.Position.DistanceTo(p.Position); d < dist {
			dist = d
			target = p
		}
	}

	if target == nil && alive > 0 {
		pick := rng.Intn(alive)
		for _, p := range players {
			if p == nil || !p.Alive() {
				continue
			}
			if pick == 0 {
				return p, e.Position.DistanceTo(p.Position)
			}
			pick--
		}
	}
	return target, dist
}

// StepEnemy двигает врага на один тик.
// К цели - с небольшим случайным дрожанием, без цели - ровно к центру арены.
func StepEnemy(e *domain.Enemy, target *domain.Player, arena domain.Arena, rng Rand) {
	if target == nil {
		angle := e.Position.AngleTo(arena.Center())
		e.Position = e.Position.Advance(angle, e.Speed)
		return
	}

	angle := e.Position.AngleTo(target.Position)
	jx := (rng.Float64() - 0.5) * jitterAmplitude
	jy := (rng.Float64() - 0.5) * jitterAmplitude

	e.Position = e.Position.Shift(
		(math.Cos(angle)+jx)*e.Speed,
		(math.Sin(angle)+jy)*e.Speed,
	)
}

package systems

import "arena-server/internal/domain"

// RespawnPosition - случайная точка в центральной зоне арены
func RespawnPosition(arena domain.Arena, rng Rand) domain.Position {
	x, y, w, h := arena.SpawnArea()
	return domain.Position{
		X: x + rng.Float64()*w,
		Y: y + rng.Float64()*h,
	}
}

// RespawnPlayer возвращает мёртвого игрока в бой. false - игрок был жив.
func RespawnPlayer(p *domain.Player, arena domain.Arena, rng Rand) bool {
	if p.Alive() {
		return false
	}
	p.Restore()
	p.Position = RespawnPosition(arena, rng)
	return true
}

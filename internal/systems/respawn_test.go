package systems

import (
	"testing"

	"arena-server/internal/domain"
)

func TestRespawnPlayer(t *testing.T) {
	arena := domain.DefaultArena()
	rng := seeded()

	alive := newTestPlayer(0)
	if RespawnPlayer(alive, arena, rng) {
		t.Error("living player must not be respawned")
	}

	dead := newTestPlayer(0)
	dead.TakeDamage(500)
	if !RespawnPlayer(dead, arena, rng) {
		t.Fatal("dead player should respawn")
	}
	if dead.Health != dead.MaxHealth || dead.DeathReported {
		t.Errorf("respawned player = %+v", dead)
	}
	pos := dead.Position
	if pos.X < 400 || pos.X >= 1200 || pos.Y < 300 || pos.Y >= 700 {
		t.Errorf("respawn position %+v outside spawn area", pos)
	}
}

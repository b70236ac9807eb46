package domain

import (
	"math"
	"testing"
)

func TestPlayer_TakeDamage_ReportsDeathOnce(t *testing.T) {
	p := NewPlayer("abcdef12", DefaultArena())
	if p.Name != "Player-abcd" {
		t.Errorf("Name = %q, want Player-abcd", p.Name)
	}

	if p.TakeDamage(60) {
		t.Fatal("player should survive 60 damage")
	}
	if !p.TakeDamage(60) {
		t.Fatal("expected death transition to be reported")
	}
	if p.TakeDamage(10) {
		t.Error("death must not be reported twice")
	}
	if p.Alive() {
		t.Error("player with negative health is alive")
	}

	p.Restore()
	if p.Health != p.MaxHealth || p.DeathReported {
		t.Errorf("Restore: health=%v reported=%v", p.Health, p.DeathReported)
	}
	p.TakeDamage(200)
	if !p.DeathReported {
		t.Error("second death after restore should be reported")
	}
}

func TestPlayer_HealRevivesDeathReporting(t *testing.T) {
	p := NewPlayer("a", DefaultArena())
	p.TakeDamage(105)

	p.Heal(3)
	if p.Alive() || !p.DeathReported {
		t.Fatalf("still below zero: health=%v reported=%v", p.Health, p.DeathReported)
	}

	p.Heal(10)
	if !p.Alive() || p.DeathReported {
		t.Fatalf("healed above zero: health=%v reported=%v", p.Health, p.DeathReported)
	}
	if !p.TakeDamage(50) {
		t.Error("second death must be reported")
	}

	p.Restore()
	p.Heal(1000)
	if p.Health != p.MaxHealth {
		t.Errorf("heal overflow: %v > %v", p.Health, p.MaxHealth)
	}
}

func TestPlayer_SpendExperience(t *testing.T) {
	p := &Player{Experience: 15}
	if !p.SpendExperience(10) || p.Experience != 5 {
		t.Fatalf("spend 10 from 15: got xp %v", p.Experience)
	}
	if p.SpendExperience(10) {
		t.Error("should not spend more than available")
	}
	if p.SpendExperience(-1) {
		t.Error("negative cost must be rejected")
	}
	if p.Experience != 5 {
		t.Errorf("failed spends mutated xp: %v", p.Experience)
	}
}

func TestArena(t *testing.T) {
	a := DefaultArena()

	if c := a.Center(); c.X != 800 || c.Y != 450 {
		t.Errorf("Center = %+v", c)
	}

	tests := []struct {
		name string
		pos  Position
		out  bool
	}{
		{"inside", Position{X: 10, Y: 10}, false},
		{"inside margin left", Position{X: -100, Y: 0}, false},
		{"past left", Position{X: -100.1, Y: 0}, true},
		{"past right", Position{X: 1700.1, Y: 0}, true},
		{"past top", Position{X: 0, Y: -101}, true},
		{"past bottom", Position{X: 0, Y: 1000.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.OutOfBounds(tt.pos); got != tt.out {
				t.Errorf("OutOfBounds(%+v) = %v, want %v", tt.pos, got, tt.out)
			}
		})
	}

	x, y, w, h := a.SpawnArea()
	if x != 400 || y != 300 || w != 800 || h != 400 {
		t.Errorf("SpawnArea = %v %v %v %v", x, y, w, h)
	}
}

func TestPosition(t *testing.T) {
	p := Position{X: 0, Y: 0}
	if d := p.DistanceTo(Position{X: 3, Y: 4}); d != 5 {
		t.Errorf("DistanceTo = %v, want 5", d)
	}
	next := p.Advance(math.Pi/2, 10)
	if math.Abs(next.X) > 1e-9 || math.Abs(next.Y-10) > 1e-9 {
		t.Errorf("Advance = %+v", next)
	}
	if (Position{X: math.NaN()}).IsFinite() {
		t.Error("NaN position reported finite")
	}
}

func TestParty_Remove(t *testing.T) {
	p := &Party{LeaderID: "a", Members: []string{"a", "b", "c"}}
	p.Remove("a")
	if p.LeaderID != "b" {
		t.Errorf("leader = %q, want b", p.LeaderID)
	}
	if len(p.Members) != 2 || p.Members[0] != "b" || p.Members[1] != "c" {
		t.Errorf("members = %v", p.Members)
	}
	p.Remove("c")
	p.Remove("b")
	if !p.Empty() || p.LeaderID != "" {
		t.Errorf("expected empty party, got %+v", p)
	}
}

func TestSession_RemoveEnemy(t *testing.T) {
	s := &Session{Enemies: []*Enemy{{ID: "1"}, {ID: "2"}, {ID: "3"}}}
	s.RemoveEnemy("2")
	if len(s.Enemies) != 2 || s.Enemies[0].ID != "1" || s.Enemies[1].ID != "3" {
		t.Errorf("enemies after removal: %v", s.Enemies)
	}
}

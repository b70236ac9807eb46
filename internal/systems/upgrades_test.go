package systems

import (
	"errors"
	"testing"

	"arena-server/internal/domain"
)

func newTestPlayer(xp float64) *domain.Player {
	p := domain.NewPlayer("p1", domain.DefaultArena())
	p.Experience = xp
	return p
}

func TestApplyUpgrade_SpeedTwice(t *testing.T) {
	p := newTestPlayer(25)

	for i := 1; i <= 2; i++ {
		if err := ApplyUpgrade(p, domain.UpgradeSpeed); err != nil {
			t.Fatalf("upgrade %d: %v", i, err)
		}
	}
	if p.Speed != 6 || p.Experience != 5 {
		t.Errorf("speed=%v xp=%v, want 6 and 5", p.Speed, p.Experience)
	}

	before := *p
	err := ApplyUpgrade(p, domain.UpgradeSpeed)
	if !errors.Is(err, domain.ErrNotEnoughXP) {
		t.Fatalf("expected ErrNotEnoughXP, got %v", err)
	}
	if *p != before {
		t.Errorf("failed upgrade mutated player: %+v", p)
	}
}

func TestApplyUpgrade_Table(t *testing.T) {
	tests := []struct {
		kind  domain.UpgradeType
		check func(p *domain.Player) bool
	}{
		{domain.UpgradeDamage, func(p *domain.Player) bool { return p.Damage == 12 }},
		{domain.UpgradeFireRate, func(p *domain.Player) bool { return p.FireRate == 5.5 }},
		{domain.UpgradeHealth, func(p *domain.Player) bool { return p.MaxHealth == 110 && p.Health == 110 }},
		{domain.UpgradeEvolve, func(p *domain.Player) bool {
			return p.Type == domain.PlayerAdvanced && p.Damage == 15 && p.MaxHealth == 120 && p.Health == 120
		}},
		{domain.UpgradeDualGuns, func(p *domain.Player) bool { return p.WeaponType == domain.WeaponDual && p.Damage == 13 }},
		{domain.UpgradeShotgun, func(p *domain.Player) bool { return p.WeaponType == domain.WeaponShotgun && p.Damage == 11 }},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			p := newTestPlayer(100)
			cost, _ := UpgradeCost(tt.kind)

			if err := ApplyUpgrade(p, tt.kind); err != nil {
				t.Fatalf("ApplyUpgrade: %v", err)
			}
			if !tt.check(p) {
				t.Errorf("unexpected player after %s: %+v", tt.kind, p)
			}
			if p.Experience != 100-cost {
				t.Errorf("xp = %v, want %v", p.Experience, 100-cost)
			}
		})
	}
}

func TestApplyUpgrade_EvolveOnlyOnce(t *testing.T) {
	p := newTestPlayer(200)
	if err := ApplyUpgrade(p, domain.UpgradeEvolve); err != nil {
		t.Fatal(err)
	}

	before := *p
	err := ApplyUpgrade(p, domain.UpgradeEvolve)
	if !errors.Is(err, domain.ErrUpgradeForbidden) {
		t.Fatalf("expected ErrUpgradeForbidden, got %v", err)
	}
	if *p != before {
		t.Error("second evolve must be a no-op")
	}
}

func TestApplyUpgrade_DualGunsWithoutXP(t *testing.T) {
	p := newTestPlayer(0)
	before := *p
	if err := ApplyUpgrade(p, domain.UpgradeDualGuns); !errors.Is(err, domain.ErrNotEnoughXP) {
		t.Fatalf("expected ErrNotEnoughXP, got %v", err)
	}
	if *p != before {
		t.Error("player changed without enough xp")
	}
}

func TestApplyUpgrade_Unknown(t *testing.T) {
	if err := ApplyUpgrade(newTestPlayer(100), "laser"); !errors.Is(err, domain.ErrUnknownUpgrade) {
		t.Errorf("expected ErrUnknownUpgrade, got %v", err)
	}
}

func TestApplyUpgrade_HealthClampedForDeadPlayer(t *testing.T) {
	p := newTestPlayer(10)
	p.TakeDamage(105)
	if err := ApplyUpgrade(p, domain.UpgradeHealth); err != nil {
		t.Fatal(err)
	}
	if p.Health != 5 || p.MaxHealth != 110 {
		t.Errorf("health=%v max=%v", p.Health, p.MaxHealth)
	}
	if p.DeathReported {
		t.Error("revived player must be able to die again")
	}
}

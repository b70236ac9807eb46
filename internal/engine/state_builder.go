package engine

import (
	"sort"

	"arena-server/internal/domain"
	"arena-server/pkg/api"
)

// Перевод доменных структур в DTO протокола

func vec(p domain.Position) api.Vec {
	return api.Vec{X: p.X, Y: p.Y}
}

func playerView(p *domain.Player) api.PlayerView {
	return api.PlayerView{
		ID:         p.ID,
		Name:       p.Name,
		Position:   vec(p.Position),
		Angle:      p.Angle,
		Health:     p.Health,
		MaxHealth:  p.MaxHealth,
		Experience: p.Experience,
		Level:      p.Level,
		Speed:      p.Speed,
		Damage:     p.Damage,
		FireRate:   p.FireRate,
		Type:       string(p.Type),
		WeaponType: string(p.WeaponType),
		PartyID:    p.PartyID,
		GameID:     p.SessionID,
	}
}

func playerDelta(p *domain.Player, applied domain.UpgradeType) api.PlayerDelta {
	return api.PlayerDelta{
		ID:             p.ID,
		Type:           string(p.Type),
		WeaponType:     string(p.WeaponType),
		Health:         p.Health,
		MaxHealth:      p.MaxHealth,
		Experience:     p.Experience,
		Level:          p.Level,
		Speed:          p.Speed,
		Damage:         p.Damage,
		FireRate:       p.FireRate,
		UpgradeApplied: string(applied),
	}
}

func enemyView(e *domain.Enemy) api.EnemyView {
	return api.EnemyView{
		ID:        e.ID,
		Type:      string(e.Type),
		Position:  vec(e.Position),
		Radius:    e.Radius,
		Health:    e.Health,
		MaxHealth: e.MaxHealth,
		Damage:    e.Damage,
		Speed:     e.Speed,
		ExpValue:  e.ExpValue,
	}
}

func enemyViews(enemies []*domain.Enemy) []api.EnemyView {
	out := make([]api.EnemyView, 0, len(enemies))
	for _, e := range enemies {
		out = append(out, enemyView(e))
	}
	return out
}

func projectileView(p *domain.Projectile) api.ProjectileView {
	return api.ProjectileView{
		ID:         p.ID,
		OwnerID:    p.OwnerID,
		Position:   vec(p.Position),
		Angle:      p.Angle,
		Speed:      p.Speed,
		Damage:     p.Damage,
		TimeToLive: p.TimeToLive,
	}
}

func partyView(p *domain.Party) api.PartyView {
	members := make([]string, len(p.Members))
	copy(members, p.Members)
	return api.PartyView{
		ID:      p.ID,
		Leader:  p.LeaderID,
		Members: members,
		Status:  string(p.Status),
		GameID:  p.GameID,
	}
}

// partyList - только ожидающие партии, отсортированные по id
func partyList(parties map[string]*domain.Party, maxPlayers int) []api.PartyListEntry {
	out := make([]api.PartyListEntry, 0, len(parties))
	for _, p := range parties {
		if p.Status != domain.PartyWaiting {
			continue
		}
		out = append(out, api.PartyListEntry{
			ID:         p.ID,
			Players:    len(p.Members),
			MaxPlayers: maxPlayers,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func healthPayload(id string, health, maxHealth float64) api.HealthPayload {
	return api.HealthPayload{ID: id, Health: health, MaxHealth: maxHealth}
}

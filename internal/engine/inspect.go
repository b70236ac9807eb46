package engine

import (
	"context"
	"sort"
	"time"

	"arena-server/internal/domain"
	"arena-server/pkg/api"
)

// SessionSummary - строка /debug/sessions
type SessionSummary struct {
	ID          string    `json:"id"`
	PartyID     string    `json:"partyId"`
	Status      string    `json:"status"`
	Wave        int       `json:"wave"`
	Players     []string  `json:"players"`
	Enemies     int       `json:"enemies"`
	Projectiles int       `json:"projectiles"`
	Kills       int       `json:"kills"`
	Ticks       uint64    `json:"ticks"`
	Dropped     uint64    `json:"droppedTicks"`
	Armed       bool      `json:"gameOverArmed"`
	StartedAt   time.Time `json:"startedAt"`
}

// SessionDetail - полный дамп сессии (/debug/sessions/{id})
type SessionDetail struct {
	SessionSummary
	Seed         int64                `json:"seed"`
	PlayerStates []api.PlayerView     `json:"playerStates"`
	EnemyStates  []api.EnemyView      `json:"enemyStates"`
	Shots        []api.ProjectileView `json:"projectileStates"`
}

func (i *Instance) summary() SessionSummary {
	s := i.Session
	return SessionSummary{
		ID:          s.ID,
		PartyID:     s.PartyID,
		Status:      string(s.Status),
		Wave:        s.Wave,
		Players:     append([]string{}, s.Players...),
		Enemies:     len(s.Enemies),
		Projectiles: len(s.Projectiles),
		Kills:       s.Kills,
		Ticks:       i.TickCount,
		Dropped:     i.droppedTicks.Load(),
		Armed:       s.GameOverArmed,
		StartedAt:   s.StartedAt,
	}
}

// Sessions - снимок всех сессий, упорядоченный по id
func (s *GameService) Sessions(ctx context.Context) ([]SessionSummary, error) {
	var out []SessionSummary
	err := s.inspect(ctx, func() {
		out = make([]SessionSummary, 0, len(s.sessions))
		for _, inst := range s.sessions {
			out = append(out, inst.summary())
		}
	})
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, err
}

// SessionDetail - дамп одной сессии. domain.ErrSessionNotFound, если её нет.
func (s *GameService) SessionDetail(ctx context.Context, id string) (SessionDetail, error) {
	var (
		out   SessionDetail
		found bool
	)
	err := s.inspect(ctx, func() {
		inst, ok := s.sessions[id]
		if !ok {
			return
		}
		found = true

		out.SessionSummary = inst.summary()
		out.Seed = inst.Seed
		for _, p := range inst.players() {
			out.PlayerStates = append(out.PlayerStates, playerView(p))
		}
		out.EnemyStates = enemyViews(inst.Session.Enemies)
		out.Shots = make([]api.ProjectileView, 0, len(inst.Session.Projectiles))
		for _, p := range inst.Session.Projectiles {
			out.Shots = append(out.Shots, projectileView(p))
		}
	})
	if err != nil {
		return SessionDetail{}, err
	}
	if !found {
		return SessionDetail{}, domain.ErrSessionNotFound
	}
	return out, nil
}

// Players - снимок всех подключённых игроков
func (s *GameService) Players(ctx context.Context) ([]api.PlayerView, error) {
	var out []api.PlayerView
	err := s.inspect(ctx, func() {
		out = make([]api.PlayerView, 0, len(s.players))
		for _, p := range s.players {
			out = append(out, playerView(p))
		}
	})
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, err
}

// Parties - ожидающие партии (то же, что partyList)
func (s *GameService) Parties(ctx context.Context) ([]api.PartyListEntry, error) {
	var out []api.PartyListEntry
	err := s.inspect(ctx, func() {
		out = s.PartyList()
	})
	return out, err
}

package domain

import "time"

// Session - одна запущенная игра партии
type Session struct {
	ID          string
	PartyID     string
	Players     []string // порядок входа
	Wave        int
	Enemies     []*Enemy
	Projectiles []*Projectile
	Status      SessionStatus
	StartedAt   time.Time
	EndedAt     time.Time
	Kills       int
	Result      MatchResult

	// GameOverArmed - таймер поражения уже взведён (и не снимается)
	GameOverArmed bool
}

func (s *Session) Active() bool { return s.Status == SessionActive }

func (s *Session) RemovePlayer(id string) {
	n := 0
	for _, pid := range s.Players {
		if pid != id {
			s.Players[n] = pid
			n++
		}
	}
	s.Players = s.Players[:n]
}

// RemoveEnemy удаляет врага по id (in-place, порядок сохраняется)
func (s *Session) RemoveEnemy(id string) {
	n := 0
	for _, e := range s.Enemies {
		if e.ID != id {
			s.Enemies[n] = e
			n++
		}
	}
	for i := n; i < len(s.Enemies); i++ {
		s.Enemies[i] = nil
	}
	s.Enemies = s.Enemies[:n]
}

package engine

import (
	"context"
	"time"

	"arena-server/internal/domain"
	"arena-server/internal/systems"
	"arena-server/pkg/api"

	"github.com/sirupsen/logrus"
)

// startSession запускает игру партии: сброс участников, волна 1, тикер.
func (s *GameService) startSession(party *domain.Party) *Instance {
	session := &domain.Session{
		ID:        s.newID(),
		PartyID:   party.ID,
		Players:   append([]string(nil), party.Members...),
		Wave:      1,
		Status:    domain.SessionActive,
		StartedAt: time.Now(),
	}

	inst := NewInstance(session, s, s.rng.Int63())
	s.sessions[session.ID] = inst

	party.Status = domain.PartyPlaying
	party.GameID = session.ID

	views := make([]api.PlayerView, 0, len(session.Players))
	for _, id := range session.Players {
		p, ok := s.players[id]
		if !ok {
			continue
		}
		p.SessionID = session.ID
		p.Position = systems.RespawnPosition(s.cfg.Arena, inst.rng)
		p.Restore()
		p.Experience = 0
		inst.enroll(p)
		views = append(views, playerView(p))
	}

	inst.broadcast(api.MsgGameStarted, api.GameStartedPayload{
		ID:      session.ID,
		Wave:    session.Wave,
		Players: views,
	})
	s.partyListChanged()

	inst.spawnWave(session.Wave)
	inst.start(s.cfg.TickInterval())

	s.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"party_id":   party.ID,
		"players":    len(session.Players),
		"seed":       inst.Seed,
	}).Info("Game started")
	return inst
}

// endGame завершает сессию. Повторный вызов для завершённой сессии ничего не делает.
func (s *GameService) endGame(inst *Instance, result domain.MatchResult) {
	session := inst.Session
	if !session.Active() {
		return
	}

	inst.stop()
	session.Status = domain.SessionEnded
	session.Result = result
	session.EndedAt = time.Now()

	inst.broadcast(api.MsgGameOver, api.GameOverPayload{
		Result: string(result),
		Wave:   session.Wave,
	})

	if party, ok := s.parties[session.PartyID]; ok && party.GameID == session.ID {
		party.Status = domain.PartyWaiting
		party.GameID = ""
	}
	for _, id := range session.Players {
		if p, ok := s.players[id]; ok && p.SessionID == session.ID {
			p.SessionID = ""
			p.Restore()
		}
	}
	s.partyListChanged()

	s.recordMatch(inst.matchRecord())

	if linger := s.cfg.SessionLinger; linger > 0 {
		id := session.ID
		time.AfterFunc(linger, func() {
			s.post(timerEvent{sessionID: id, kind: timerRemove})
		})
	} else {
		delete(s.sessions, session.ID)
	}

	s.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"result":     result,
		"wave":       session.Wave,
		"kills":      session.Kills,
		"ticks":      inst.TickCount,
	}).Info("Game over")
}

// leaveGame убирает игрока из сессии. Последний ушедший закрывает её как abandoned.
func (s *GameService) leaveGame(p *domain.Player) {
	inst, ok := s.sessions[p.SessionID]
	p.SessionID = ""
	if !ok {
		return
	}

	session := inst.Session
	inst.refresh(p)
	session.RemovePlayer(p.ID)
	inst.broadcast(api.MsgPlayerLeft, p.ID)

	s.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"player_id":  p.ID,
		"remaining":  len(session.Players),
	}).Info("Player left game")

	if len(session.Players) == 0 {
		s.endGame(inst, domain.ResultAbandoned)
		delete(s.sessions, session.ID)
	}
}

// recordMatch пишет итог матча в фоне: цикл не ждёт хранилище.
func (s *GameService) recordMatch(rec domain.MatchRecord) {
	if s.recorder == nil {
		return
	}

	timeout := s.cfg.RecordTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	s.records.Add(1)
	go func() {
		defer s.records.Done()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := s.recorder.Record(ctx, rec); err != nil {
			s.log.WithField("session_id", rec.SessionID).WithError(err).Error("Failed to record match")
			return
		}
		s.log.WithField("session_id", rec.SessionID).Debug("Match recorded")
	}()
}

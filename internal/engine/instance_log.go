package engine

import (
	"runtime/debug"

	"arena-server/internal/domain"

	"github.com/sirupsen/logrus"
)

// guard изолирует панику в обработке одной сущности: тик продолжается.
// false - сущность сломана и удаляется из мира.
func (i *Instance) guard(kind, id string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			i.log.WithFields(logrus.Fields{
				"entity": kind,
				"id":     id,
				"tick":   i.TickCount,
				"panic":  r,
				"stack":  string(debug.Stack()),
			}).Error("Entity update panicked")
		}
	}()
	fn()
	return true
}

// enroll добавляет игрока в состав матча
func (i *Instance) enroll(p *domain.Player) {
	i.roster = append(i.roster, domain.MatchPlayer{ID: p.ID, Name: p.Name})
}

// refresh запоминает опыт игрока перед уходом из сессии
func (i *Instance) refresh(p *domain.Player) {
	for k := range i.roster {
		if i.roster[k].ID == p.ID {
			i.roster[k].Name = p.Name
			i.roster[k].Experience = p.Experience
		}
	}
}

// matchRecord собирает итог матча для истории
func (i *Instance) matchRecord() domain.MatchRecord {
	for _, p := range i.players() {
		i.refresh(p)
	}

	s := i.Session
	players := make([]domain.MatchPlayer, len(i.roster))
	copy(players, i.roster)

	return domain.MatchRecord{
		SessionID: s.ID,
		PartyID:   s.PartyID,
		Result:    s.Result,
		Wave:      s.Wave,
		Kills:     s.Kills,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
		Players:   players,
	}
}

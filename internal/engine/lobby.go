package engine

import (
	"math"

	"arena-server/internal/domain"
	"arena-server/internal/systems"
	"arena-server/pkg/api"
	"arena-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Реализация handlers.Lobby. Все методы вызываются только из игрового цикла.

func (s *GameService) CreateParty(actor *domain.Player, name string) (api.PartyView, error) {
	if actor.InSession() {
		return api.PartyView{}, domain.ErrAlreadyInGame
	}
	if name != "" {
		actor.Name = name
	}
	if actor.PartyID != "" {
		s.leaveParty(actor)
	}

	party := &domain.Party{
		ID:       s.newID(),
		LeaderID: actor.ID,
		Members:  []string{actor.ID},
		Status:   domain.PartyWaiting,
	}
	s.parties[party.ID] = party
	actor.PartyID = party.ID

	s.partyListChanged()

	s.log.WithFields(logrus.Fields{
		"player_id": actor.ID,
		"party_id":  party.ID,
	}).Info("Party created")
	return partyView(party), nil
}

func (s *GameService) JoinParty(actor *domain.Player, partyID, name string) (api.PartyView, error) {
	party, ok := s.parties[partyID]
	if !ok {
		return api.PartyView{}, domain.ErrPartyNotFound
	}
	if party.Has(actor.ID) {
		// повторный вход в свою партию: просто повторяем partyJoined
		return partyView(party), nil
	}
	if party.Full(s.cfg.MaxPartySize) {
		return api.PartyView{}, domain.ErrPartyFull
	}
	if party.Status != domain.PartyWaiting {
		return api.PartyView{}, domain.ErrPartyStarted
	}
	if actor.InSession() {
		return api.PartyView{}, domain.ErrAlreadyInGame
	}

	if name != "" {
		actor.Name = name
	}
	if actor.PartyID != "" {
		s.leaveParty(actor)
	}

	party.Members = append(party.Members, actor.ID)
	actor.PartyID = party.ID

	view := partyView(party)
	s.afterReply(func() {
		s.hub.SendToMany(view.Members, api.NewMessage(api.MsgPartyUpdate, view), actor.ID)
	})
	s.partyListChanged()

	s.log.WithFields(logrus.Fields{
		"player_id": actor.ID,
		"party_id":  party.ID,
		"members":   len(party.Members),
	}).Info("Player joined party")
	return view, nil
}

func (s *GameService) LeaveParty(actor *domain.Player) {
	if actor.PartyID == "" {
		return
	}
	s.leaveParty(actor)
}

// leaveParty убирает игрока из партии. Пустая партия удаляется,
// лидерство переходит первому оставшемуся. Сессию игрок при этом не покидает.
func (s *GameService) leaveParty(p *domain.Player) {
	party, ok := s.parties[p.PartyID]
	p.PartyID = ""
	if !ok {
		return
	}

	party.Remove(p.ID)
	if party.Empty() {
		delete(s.parties, party.ID)
		s.log.WithField("party_id", party.ID).Info("Party disbanded")
	} else {
		view := partyView(party)
		s.afterReply(func() {
			s.hub.SendToMany(view.Members, api.NewMessage(api.MsgPartyUpdate, view), "")
		})
	}
	s.partyListChanged()

	s.log.WithFields(logrus.Fields{
		"player_id": p.ID,
		"party_id":  party.ID,
	}).Info("Player left party")
}

func (s *GameService) StartGame(actor *domain.Player) error {
	party, ok := s.parties[actor.PartyID]
	if actor.PartyID == "" || !ok {
		return domain.ErrNotInParty
	}
	if party.LeaderID != actor.ID {
		return domain.ErrNotLeader
	}
	if party.Status != domain.PartyWaiting {
		return domain.ErrPartyInGame
	}
	for _, id := range party.Members {
		if m, ok := s.players[id]; ok && m.InSession() {
			return domain.ErrAlreadyInGame
		}
	}

	s.startSession(party)
	return nil
}

func (s *GameService) PartyList() []api.PartyListEntry {
	return partyList(s.parties, s.cfg.MaxPartySize)
}

// MemberDetails - имена по id. Для отключившихся игроков имя генерируется из id.
func (s *GameService) MemberDetails(ids []string) []api.MemberDetails {
	out := make([]api.MemberDetails, 0, len(ids))
	for _, id := range ids {
		name := "Unknown-" + utils.ShortID(id, 4)
		if p, ok := s.players[id]; ok {
			name = p.Name
		}
		out = append(out, api.MemberDetails{ID: id, Name: name})
	}
	return out
}

// MovePlayer сохраняет позицию, присланную клиентом, и ретранслирует её остальным.
func (s *GameService) MovePlayer(actor *domain.Player, pos domain.Position, angle float64) error {
	inst, err := s.activeInstance(actor)
	if err != nil {
		return err
	}

	arena := s.cfg.Arena
	actor.Position = domain.Position{
		X: math.Max(0, math.Min(arena.Width, pos.X)),
		Y: math.Max(0, math.Min(arena.Height, pos.Y)),
	}
	actor.Angle = angle

	s.hub.SendToMany(inst.Session.Players, api.NewMessage(api.MsgPlayerMove, api.PlayerMovePayload{
		ID:       actor.ID,
		Position: vec(actor.Position),
		Angle:    angle,
	}), actor.ID)
	return nil
}

// Shoot создает снаряды по оружию игрока. Возвращает число выпущенных снарядов.
func (s *GameService) Shoot(actor *domain.Player, angle float64) (int, error) {
	inst, err := s.activeInstance(actor)
	if err != nil {
		return 0, err
	}
	if !actor.Alive() {
		return 0, domain.ErrPlayerDead
	}

	shots := systems.FireProjectiles(actor, angle, s.newID)
	inst.Session.Projectiles = append(inst.Session.Projectiles, shots...)
	for _, p := range shots {
		s.hub.SendToMany(inst.Session.Players, api.NewMessage(api.MsgNewProjectile, projectileView(p)), "")
	}
	return len(shots), nil
}

// Upgrade покупает улучшение. Остальные участники сессии получают playerUpdated.
func (s *GameService) Upgrade(actor *domain.Player, kind domain.UpgradeType) (api.PlayerDelta, error) {
	if err := systems.ApplyUpgrade(actor, kind); err != nil {
		return api.PlayerDelta{}, err
	}

	delta := playerDelta(actor, kind)
	if inst, ok := s.sessions[actor.SessionID]; ok {
		players := inst.Session.Players
		s.afterReply(func() {
			s.hub.SendToMany(players, api.NewMessage(api.MsgPlayerUpdated, delta), actor.ID)
		})
	}
	return delta, nil
}

func (s *GameService) activeInstance(p *domain.Player) (*Instance, error) {
	inst, ok := s.sessions[p.SessionID]
	if p.SessionID == "" || !ok || !inst.Session.Active() {
		return nil, domain.ErrNotInSession
	}
	return inst, nil
}

// partyListChanged рассылает partyList всем. Внутри команды - один раз, после ответа.
func (s *GameService) partyListChanged() {
	if !s.inCommand {
		s.broadcastPartyList()
		return
	}
	if s.listPending {
		return
	}
	s.listPending = true
	s.deferred = append(s.deferred, func() {
		s.listPending = false
		s.broadcastPartyList()
	})
}

func (s *GameService) broadcastPartyList() {
	s.hub.Broadcast(api.NewMessage(api.MsgPartyList, s.PartyList()))
}

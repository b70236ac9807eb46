package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"arena-server/internal/domain"
	"arena-server/internal/engine/handlers"
	"arena-server/internal/engine/handlers/actions"
	"arena-server/pkg/api"
	"arena-server/pkg/logger"
	"arena-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

// GameService - реестр игроков, партий и сессий.
// Всё состояние принадлежит одной горутине (Run). Остальные горутины
// (сокеты, тикеры, таймеры) только кладут события в inbox.
type GameService struct {
	cfg      Config
	hub      Emitter
	recorder MatchRecorder
	rng      *rand.Rand
	newID    func() string

	players  map[string]*domain.Player
	parties  map[string]*domain.Party
	sessions map[string]*Instance

	inbox   chan any
	stopped chan struct{}
	once    sync.Once
	records sync.WaitGroup

	handlers map[domain.ActionType]handlers.HandlerFunc

	// Групповые рассылки, отложенные до ответа отправителю
	inCommand   bool
	deferred    []func()
	listPending bool

	log *logrus.Entry
}

// Option настраивает GameService при создании
type Option func(*GameService)

// WithRecorder подключает запись итогов матчей
func WithRecorder(r MatchRecorder) Option {
	return func(s *GameService) { s.recorder = r }
}

// WithIDGenerator подменяет генератор id (детерминированные тесты)
func WithIDGenerator(f func() string) Option {
	return func(s *GameService) { s.newID = f }
}

func NewService(cfg Config, hub Emitter, opts ...Option) *GameService {
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = 1024
	}
	if cfg.MaxPartySize <= 0 {
		cfg.MaxPartySize = domain.MaxPartySize
	}
	if cfg.Arena.Width == 0 || cfg.Arena.Height == 0 {
		cfg.Arena = domain.DefaultArena()
	}

	s := &GameService{
		cfg:      cfg,
		hub:      hub,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		newID:    utils.GenerateID,
		players:  make(map[string]*domain.Player),
		parties:  make(map[string]*domain.Party),
		sessions: make(map[string]*Instance),
		inbox:    make(chan any, cfg.InboxSize),
		stopped:  make(chan struct{}),
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
		log:      logger.WithComponent("game_service"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerHandlers()
	return s
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionPlayerUpdate] = handlers.WithPayload(actions.HandlePlayerUpdate)
	s.handlers[domain.ActionPlayerShoot] = handlers.WithPayload(actions.HandleShoot)
	s.handlers[domain.ActionUpgradePlayer] = handlers.WithPayload(actions.HandleUpgrade)
	s.handlers[domain.ActionCreateParty] = handlers.WithPayload(actions.HandleCreateParty)
	s.handlers[domain.ActionJoinParty] = handlers.WithPayload(actions.HandleJoinParty)
	s.handlers[domain.ActionPartyMemberDetails] = handlers.WithPayload(actions.HandleMemberDetails)
	s.handlers[domain.ActionLeaveParty] = handlers.WithEmptyPayload(actions.HandleLeaveParty)
	s.handlers[domain.ActionStartGame] = handlers.WithEmptyPayload(actions.HandleStartGame)
	s.handlers[domain.ActionRequestPartyList] = handlers.WithEmptyPayload(actions.HandleRequestPartyList)
}

// Config возвращает действующие настройки
func (s *GameService) Config() Config { return s.cfg }

// --- События inbox ---

type connectEvent struct{ playerID string }

type disconnectEvent struct{ playerID string }

type commandEvent struct{ cmd domain.InternalCommand }

type tickEvent struct{ sessionID string }

type timerKind uint8

const (
	timerGameOver timerKind = iota + 1
	timerRemove
)

type timerEvent struct {
	sessionID string
	kind      timerKind
}

type inspectEvent struct {
	fn   func()
	done chan struct{}
}

// --- GAME LOOP ---

// Run - единственный владелец состояния. Возвращается при отмене ctx.
func (s *GameService) Run(ctx context.Context) error {
	s.log.WithField("tick_rate", s.cfg.TickRate).Info("Game loop started")
	defer s.shutdown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-s.inbox:
			s.dispatch(ev)
		}
	}
}

func (s *GameService) dispatch(ev any) {
	switch ev := ev.(type) {
	case connectEvent:
		s.handleConnect(ev.playerID)
	case disconnectEvent:
		s.handleDisconnect(ev.playerID)
	case commandEvent:
		s.executeCommand(ev.cmd)
	case tickEvent:
		s.handleTick(ev.sessionID)
	case timerEvent:
		s.handleTimer(ev)
	case inspectEvent:
		ev.fn()
		close(ev.done)
	default:
		s.log.Warnf("unknown inbox event %T", ev)
	}
}

// shutdown останавливает тикеры и ждёт незавершённые записи матчей.
func (s *GameService) shutdown() {
	s.once.Do(func() {
		close(s.stopped)
		for _, inst := range s.sessions {
			inst.stop()
		}
		s.records.Wait()
		s.log.WithField("sessions", len(s.sessions)).Info("Game loop stopped")
	})
}

// post кладёт событие в inbox. После остановки цикла события отбрасываются.
func (s *GameService) post(ev any) {
	select {
	case s.inbox <- ev:
	case <-s.stopped:
	}
}

// tryPost - неблокирующий вариант для тикеров: если цикл не успевает, тик пропускается.
func (s *GameService) tryPost(ev any) bool {
	select {
	case s.inbox <- ev:
		return true
	default:
		return false
	}
}

// --- Вход из внешнего мира (WebSocket) ---

// Connect регистрирует нового игрока. Канал в Hub должен быть создан до вызова,
// иначе playerInit потеряется.
func (s *GameService) Connect(playerID string) {
	s.post(connectEvent{playerID: playerID})
}

// Disconnect - сокет закрыт: выход из партии, из сессии, удаление игрока.
func (s *GameService) Disconnect(playerID string) {
	s.post(disconnectEvent{playerID: playerID})
}

// ProcessCommand принимает команду клиента. playerID определяется соединением.
func (s *GameService) ProcessCommand(playerID string, cmd api.ClientCommand, dec domain.PayloadDecoder) {
	action := domain.ParseAction(cmd.Action)
	if action == domain.ActionUnknown {
		s.log.WithFields(logrus.Fields{
			"player_id": playerID,
			"action":    cmd.Action,
		}).Debug("Unknown action")
		return
	}

	s.post(commandEvent{cmd: domain.InternalCommand{
		Action:   action,
		PlayerID: playerID,
		ReqID:    cmd.ReqID,
		Payload:  cmd.Payload,
		Decoder:  dec,
	}})
}

// inspect выполняет fn внутри цикла и ждёт завершения (debug API).
func (s *GameService) inspect(ctx context.Context, fn func()) error {
	ev := inspectEvent{fn: fn, done: make(chan struct{})}
	select {
	case s.inbox <- ev:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopped:
		return errors.New("game loop stopped")
	}

	select {
	case <-ev.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopped:
		return errors.New("game loop stopped")
	}
}

// --- Обработчики событий ---

func (s *GameService) handleConnect(playerID string) {
	if _, exists := s.players[playerID]; exists {
		s.log.WithField("player_id", playerID).Warn("Duplicate connect ignored")
		return
	}

	p := domain.NewPlayer(playerID, s.cfg.Arena)
	s.players[playerID] = p

	s.hub.SendTo(playerID, api.NewMessage(api.MsgPlayerInit, playerView(p)))
	s.hub.SendTo(playerID, api.NewMessage(api.MsgPartyList, s.PartyList()))

	s.log.WithFields(logrus.Fields{
		"player_id": playerID,
		"name":      p.Name,
		"online":    len(s.players),
	}).Info("Player connected")
}

func (s *GameService) handleDisconnect(playerID string) {
	p, ok := s.players[playerID]
	if !ok {
		return
	}

	// Порядок как при явных действиях: партия, затем игра
	if p.PartyID != "" {
		s.leaveParty(p)
	}
	if p.SessionID != "" {
		s.leaveGame(p)
	}
	delete(s.players, playerID)

	s.log.WithFields(logrus.Fields{
		"player_id": playerID,
		"online":    len(s.players),
	}).Info("Player disconnected")
}

// executeCommand выполняет хендлер и отвечает отправителю
func (s *GameService) executeCommand(cmd domain.InternalCommand) {
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return
	}
	actor, ok := s.players[cmd.PlayerID]
	if !ok {
		// игрок уже отключился, команда устарела
		return
	}

	ctx := handlers.Context{
		Lobby:   s,
		Actor:   actor,
		ReqID:   cmd.ReqID,
		Decoder: cmd.Decoder,
	}

	s.inCommand = true
	result, err := s.runHandler(handler, ctx, cmd.Payload)
	s.inCommand = false

	if err != nil {
		var clientErr *handlers.ClientError
		if errors.As(err, &clientErr) {
			s.hub.SendTo(actor.ID, api.NewMessage(clientErr.MsgType, api.ErrorPayload{Message: clientErr.Error()}))
		}
		s.log.WithFields(logrus.Fields{
			"player_id": actor.ID,
			"action":    cmd.Action.String(),
		}).WithError(err).Debug("Command rejected")
	}

	if result.Reply != nil {
		s.hub.SendTo(actor.ID, *result.Reply)
	}

	pending := s.deferred
	s.deferred = nil
	for _, fn := range pending {
		fn()
	}
}

// runHandler изолирует панику хендлера: цикл продолжает работать.
func (s *GameService) runHandler(h handlers.HandlerFunc, ctx handlers.Context, payload []byte) (res handlers.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
			s.log.WithField("player_id", ctx.Actor.ID).WithField("panic", r).Error("Handler panicked")
		}
	}()
	return h(ctx, payload)
}

// afterReply откладывает групповую рассылку до ответа отправителю
// (partyJoined приходит раньше partyUpdate). Вне команды выполняет сразу.
func (s *GameService) afterReply(fn func()) {
	if s.inCommand {
		s.deferred = append(s.deferred, fn)
		return
	}
	fn()
}

func (s *GameService) handleTick(sessionID string) {
	inst, ok := s.sessions[sessionID]
	if !ok || !inst.Session.Active() {
		return
	}
	inst.tick()
}

func (s *GameService) handleTimer(ev timerEvent) {
	inst, ok := s.sessions[ev.sessionID]
	if !ok {
		return
	}

	switch ev.kind {
	case timerGameOver:
		if inst.Session.Active() {
			s.endGame(inst, domain.ResultDefeat)
		}
	case timerRemove:
		if !inst.Session.Active() {
			delete(s.sessions, ev.sessionID)
			s.log.WithField("session_id", ev.sessionID).Debug("Session removed")
		}
	}
}

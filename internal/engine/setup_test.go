package engine

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"arena-server/internal/domain"
	"arena-server/pkg/api"
	"arena-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	os.Exit(m.Run())
}

// delivery - одно сообщение одному получателю. "*" - широковещательное.
type delivery struct {
	to  string
	msg api.ServerMessage
}

// fakeEmitter запоминает все отправки в порядке вызова
type fakeEmitter struct {
	mu  sync.Mutex
	log []delivery
}

func (f *fakeEmitter) SendTo(id string, msg api.ServerMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log = append(f.log, delivery{to: id, msg: msg})
}

func (f *fakeEmitter) SendToMany(ids []string, msg api.ServerMessage, except string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		if id != except {
			f.log = append(f.log, delivery{to: id, msg: msg})
		}
	}
}

func (f *fakeEmitter) Broadcast(msg api.ServerMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log = append(f.log, delivery{to: "*", msg: msg})
}

// received - сообщения, адресованные игроку лично (без широковещательных)
func (f *fakeEmitter) received(id string) []api.ServerMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []api.ServerMessage
	for _, d := range f.log {
		if d.to == id {
			out = append(out, d.msg)
		}
	}
	return out
}

func (f *fakeEmitter) count(id, msgType string) int {
	n := 0
	for _, m := range f.received(id) {
		if m.Type == msgType {
			n++
		}
	}
	return n
}

func (f *fakeEmitter) broadcasts(msgType string) int {
	return f.count("*", msgType)
}

func (f *fakeEmitter) types(id string) []string {
	var out []string
	for _, m := range f.received(id) {
		out = append(out, m.Type)
	}
	return out
}

func (f *fakeEmitter) last(id, msgType string) (api.ServerMessage, bool) {
	msgs := f.received(id)
	for k := len(msgs) - 1; k >= 0; k-- {
		if msgs[k].Type == msgType {
			return msgs[k], true
		}
	}
	return api.ServerMessage{}, false
}

func (f *fakeEmitter) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log = nil
}

// fakeRecorder складывает итоги матчей в канал
type fakeRecorder struct {
	records chan domain.MatchRecord
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{records: make(chan domain.MatchRecord, 8)}
}

func (r *fakeRecorder) Record(_ context.Context, rec domain.MatchRecord) error {
	r.records <- rec
	return nil
}

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}

func testConfig() Config {
	cfg := NewConfig()
	cfg.Seed = 7
	cfg.TickRate = 0
	cfg.GameOverDelay = time.Hour
	cfg.SessionLinger = 0
	return cfg
}

// newTestService - сервис без собственного цикла: тесты вызывают обработчики напрямую
func newTestService(t *testing.T, cfg Config, opts ...Option) (*GameService, *fakeEmitter) {
	t.Helper()
	hub := &fakeEmitter{}
	opts = append([]Option{WithIDGenerator(seqIDs("id-"))}, opts...)
	s := NewService(cfg, hub, opts...)
	t.Cleanup(s.shutdown)
	return s, hub
}

func encode(t *testing.T, payload any) []byte {
	t.Helper()
	if payload == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return raw
}

// command выполняет команду игрока так же, как игровой цикл
func command(t *testing.T, s *GameService, playerID string, action domain.ActionType, reqID uint64, payload any) {
	t.Helper()
	s.executeCommand(domain.InternalCommand{
		Action:   action,
		PlayerID: playerID,
		ReqID:    reqID,
		Payload:  encode(t, payload),
		Decoder:  api.JSONCodec{},
	})
}

// startParty подключает игроков, собирает их в партию первого и запускает игру
func startParty(t *testing.T, s *GameService, ids ...string) *Instance {
	t.Helper()
	for _, id := range ids {
		s.handleConnect(id)
	}
	command(t, s, ids[0], domain.ActionCreateParty, 0, api.CreatePartyPayload{})
	partyID := s.players[ids[0]].PartyID
	for _, id := range ids[1:] {
		command(t, s, id, domain.ActionJoinParty, 0, api.JoinPartyPayload{PartyID: partyID})
	}
	command(t, s, ids[0], domain.ActionStartGame, 0, nil)

	inst, ok := s.sessions[s.players[ids[0]].SessionID]
	if !ok {
		t.Fatalf("session was not started for %v", ids)
	}
	return inst
}

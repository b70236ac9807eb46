package actions

import (
	"errors"
	"testing"

	"arena-server/internal/domain"
	"arena-server/internal/engine/handlers"
	"arena-server/pkg/api"
)

// stubLobby запоминает вызовы и возвращает заранее заданную ошибку
type stubLobby struct {
	err   error
	calls []string

	movedTo domain.Position
	upgrade domain.UpgradeType
}

func (l *stubLobby) CreateParty(_ *domain.Player, name string) (api.PartyView, error) {
	l.calls = append(l.calls, "create:"+name)
	return api.PartyView{ID: "party-1", Leader: "a", Members: []string{"a"}, Status: "waiting"}, l.err
}

func (l *stubLobby) JoinParty(_ *domain.Player, partyID, _ string) (api.PartyView, error) {
	l.calls = append(l.calls, "join:"+partyID)
	return api.PartyView{ID: partyID}, l.err
}

func (l *stubLobby) LeaveParty(*domain.Player) { l.calls = append(l.calls, "leave") }

func (l *stubLobby) StartGame(*domain.Player) error {
	l.calls = append(l.calls, "start")
	return l.err
}

func (l *stubLobby) PartyList() []api.PartyListEntry {
	return []api.PartyListEntry{{ID: "party-1", Players: 1, MaxPlayers: 4}}
}

func (l *stubLobby) MemberDetails(ids []string) []api.MemberDetails {
	out := make([]api.MemberDetails, len(ids))
	for i, id := range ids {
		out[i] = api.MemberDetails{ID: id, Name: "n-" + id}
	}
	return out
}

func (l *stubLobby) MovePlayer(_ *domain.Player, pos domain.Position, _ float64) error {
	l.movedTo = pos
	return l.err
}

func (l *stubLobby) Shoot(*domain.Player, float64) (int, error) { return 1, l.err }

func (l *stubLobby) Upgrade(_ *domain.Player, kind domain.UpgradeType) (api.PlayerDelta, error) {
	l.upgrade = kind
	return api.PlayerDelta{ID: "a", UpgradeApplied: string(kind)}, l.err
}

func newCtx(l *stubLobby, reqID uint64) handlers.Context {
	return handlers.Context{
		Lobby: l,
		Actor: &domain.Player{ID: "a"},
		ReqID: reqID,
	}
}

func TestPartyHandlers_ErrorsBecomePartyError(t *testing.T) {
	lobby := &stubLobby{err: domain.ErrPartyFull}

	_, err := HandleJoinParty(newCtx(lobby, 0), api.JoinPartyPayload{PartyID: "p"})

	var clientErr *handlers.ClientError
	if !errors.As(err, &clientErr) || clientErr.MsgType != api.MsgPartyError {
		t.Fatalf("expected partyError, got %v", err)
	}
	if !errors.Is(err, domain.ErrPartyFull) || clientErr.Error() != "Party is full" {
		t.Errorf("error text must be kept, got %q", clientErr.Error())
	}
}

func TestHandleCreateParty_Reply(t *testing.T) {
	lobby := &stubLobby{}

	res, err := HandleCreateParty(newCtx(lobby, 0), api.CreatePartyPayload{Name: "Alice"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Reply == nil || res.Reply.Type != api.MsgPartyCreated {
		t.Fatalf("expected partyCreated reply, got %+v", res.Reply)
	}
	if len(lobby.calls) != 1 || lobby.calls[0] != "create:Alice" {
		t.Errorf("unexpected calls %v", lobby.calls)
	}
}

func TestHandleStartGame_GameError(t *testing.T) {
	lobby := &stubLobby{err: domain.ErrNotLeader}

	_, err := HandleStartGame(newCtx(lobby, 0))

	var clientErr *handlers.ClientError
	if !errors.As(err, &clientErr) || clientErr.MsgType != api.MsgGameError {
		t.Fatalf("expected gameError, got %v", err)
	}
}

func TestHandleMemberDetails_EchoesReqID(t *testing.T) {
	res, err := HandleMemberDetails(newCtx(&stubLobby{}, 9), api.MemberIDs{"x", "y"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Reply.ReqID != 9 || res.Reply.Type != api.MsgPartyMemberDetails {
		t.Errorf("unexpected reply %+v", res.Reply)
	}
	if details := res.Reply.Payload.([]api.MemberDetails); len(details) != 2 || details[1].Name != "n-y" {
		t.Errorf("unexpected details %+v", details)
	}
}

func TestHandleUpgrade(t *testing.T) {
	lobby := &stubLobby{}
	res, err := HandleUpgrade(newCtx(lobby, 3), api.UpgradePayload{Type: "health"})
	if err != nil {
		t.Fatal(err)
	}
	if lobby.upgrade != domain.UpgradeHealth || res.Reply.Type != api.MsgPlayerUpdate || res.Reply.ReqID != 3 {
		t.Errorf("unexpected result %+v", res.Reply)
	}

	lobby.err = domain.ErrNotEnoughXP
	res, err = HandleUpgrade(newCtx(lobby, 0), api.UpgradePayload{Type: "evolve"})
	if !errors.Is(err, domain.ErrNotEnoughXP) || res.Reply != nil {
		t.Errorf("failed upgrade must not reply, got %+v / %v", res.Reply, err)
	}
	var clientErr *handlers.ClientError
	if errors.As(err, &clientErr) {
		t.Error("failed upgrade is silent, not a client error")
	}
}

func TestWithPayload_DecodesAndValidates(t *testing.T) {
	lobby := &stubLobby{}
	h := handlers.WithPayload(HandlePlayerUpdate)

	ctx := newCtx(lobby, 0)
	ctx.Decoder = api.JSONCodec{}
	if _, err := h(ctx, []byte(`{"position":{"x":10,"y":20},"angle":0.5}`)); err != nil {
		t.Fatal(err)
	}
	if lobby.movedTo != (domain.Position{X: 10, Y: 20}) {
		t.Errorf("unexpected position %+v", lobby.movedTo)
	}

	if _, err := h(ctx, []byte(`{"position":`)); err == nil {
		t.Error("malformed payload must fail")
	}

	join := handlers.WithPayload(HandleJoinParty)
	if _, err := join(ctx, []byte(`{}`)); err == nil {
		t.Error("join without partyId must fail validation")
	}
	if len(lobby.calls) != 0 {
		t.Errorf("lobby must not be called on invalid payload, got %v", lobby.calls)
	}
}

func TestHandleRequestPartyList(t *testing.T) {
	h := handlers.WithEmptyPayload(HandleRequestPartyList)
	res, err := h(newCtx(&stubLobby{}, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if list := res.Reply.Payload.([]api.PartyListEntry); len(list) != 1 || list[0].MaxPlayers != 4 {
		t.Errorf("unexpected list %+v", list)
	}
}

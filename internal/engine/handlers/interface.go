package handlers

import (
	"arena-server/internal/domain"
	"arena-server/pkg/api"
)

// Lobby описывает всё, что хендлер может сделать с реестром игроков, партий и сессий.
// GameService неявно реализует этот интерфейс.
type Lobby interface {
	CreateParty(actor *domain.Player, name string) (api.PartyView, error)
	JoinParty(actor *domain.Player, partyID, name string) (api.PartyView, error)
	LeaveParty(actor *domain.Player)
	StartGame(actor *domain.Player) error
	PartyList() []api.PartyListEntry
	MemberDetails(ids []string) []api.MemberDetails

	MovePlayer(actor *domain.Player, pos domain.Position, angle float64) error
	Shoot(actor *domain.Player, angle float64) (int, error)
	Upgrade(actor *domain.Player, kind domain.UpgradeType) (api.PlayerDelta, error)
}

// Context передает хендлеру реестр и отправителя.
// Хендлер вызывается только из игрового цикла, поэтому может мутировать Actor.
type Context struct {
	Lobby   Lobby
	Actor   *domain.Player
	ReqID   uint64
	Decoder domain.PayloadDecoder
}

// Result - ответ лично отправителю. Пустой Result - ничего не отправлять.
// Групповые рассылки делает Lobby.
type Result struct {
	Reply *api.ServerMessage
}

// HandlerFunc - это контракт для любого клиентского сообщения.
type HandlerFunc func(ctx Context, payload []byte) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// Reply - ответ отправителю. reqID копируется из запроса для RPC.
func Reply(msgType string, reqID uint64, payload any) Result {
	return Result{Reply: &api.ServerMessage{Type: msgType, ReqID: reqID, Payload: payload}}
}

// ClientError - ошибка, которую нужно показать самому игроку (partyError / gameError).
type ClientError struct {
	MsgType string
	Err     error
}

func (e *ClientError) Error() string { return e.Err.Error() }

func (e *ClientError) Unwrap() error { return e.Err }

func PartyError(err error) error {
	return &ClientError{MsgType: api.MsgPartyError, Err: err}
}

func GameError(err error) error {
	return &ClientError{MsgType: api.MsgGameError, Err: err}
}

package actions

import (
	"arena-server/internal/domain"
	"arena-server/internal/engine/handlers"
	"arena-server/pkg/api"
)

// HandleUpgrade: при успехе отправитель получает playerUpdate, остальные в сессии - playerUpdated.
// Неудача (нет опыта, уже evolved) молча ничего не меняет.
func HandleUpgrade(ctx handlers.Context, p api.UpgradePayload) (handlers.Result, error) {
	delta, err := ctx.Lobby.Upgrade(ctx.Actor, domain.UpgradeType(p.Type))
	if err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.Reply(api.MsgPlayerUpdate, ctx.ReqID, delta), nil
}

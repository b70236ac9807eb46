package actions

import (
	"arena-server/internal/domain"
	"arena-server/internal/engine/handlers"
	"arena-server/pkg/api"
)

// HandlePlayerUpdate принимает позицию и угол от клиента (вне сессии игнорируется).
func HandlePlayerUpdate(ctx handlers.Context, p api.PlayerUpdatePayload) (handlers.Result, error) {
	pos := domain.Position{X: p.Position.X, Y: p.Position.Y}
	if err := ctx.Lobby.MovePlayer(ctx.Actor, pos, p.Angle); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.EmptyResult(), nil
}

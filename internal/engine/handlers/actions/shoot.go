package actions

import (
	"arena-server/internal/engine/handlers"
	"arena-server/pkg/api"
)

func HandleShoot(ctx handlers.Context, p api.ShootPayload) (handlers.Result, error) {
	if _, err := ctx.Lobby.Shoot(ctx.Actor, p.Angle); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.EmptyResult(), nil
}

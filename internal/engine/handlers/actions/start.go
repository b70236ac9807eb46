package actions

import "arena-server/internal/engine/handlers"

func HandleStartGame(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Lobby.StartGame(ctx.Actor); err != nil {
		return handlers.EmptyResult(), handlers.GameError(err)
	}
	return handlers.EmptyResult(), nil
}

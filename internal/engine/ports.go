package engine

import (
	"context"

	"arena-server/internal/domain"
	"arena-server/pkg/api"
)

// Emitter доставляет сообщения клиентам. network.Broadcaster реализует его.
// Реализация не должна блокировать вызывающего.
type Emitter interface {
	SendTo(playerID string, msg api.ServerMessage)
	SendToMany(playerIDs []string, msg api.ServerMessage, except string)
	Broadcast(msg api.ServerMessage)
}

// MatchRecorder сохраняет итоги завершённых сессий (файл, Postgres, MongoDB).
type MatchRecorder interface {
	Record(ctx context.Context, rec domain.MatchRecord) error
}

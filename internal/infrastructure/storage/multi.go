package storage

import (
	"context"
	"errors"

	"arena-server/internal/domain"
)

// Recorder - любой приёмник истории матчей
type Recorder interface {
	Record(ctx context.Context, rec domain.MatchRecord) error
}

// History - источник истории для /api/matches
type History interface {
	Recent(ctx context.Context, limit int) ([]domain.MatchRecord, error)
}

// Multi пишет матч во все приёмники. Ошибка одного не мешает остальным.
type Multi []Recorder

func (m Multi) Record(ctx context.Context, rec domain.MatchRecord) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop ничего не сохраняет
type Nop struct{}

func (Nop) Record(context.Context, domain.MatchRecord) error { return nil }

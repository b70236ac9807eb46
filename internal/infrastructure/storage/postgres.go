package storage

import (
	"context"
	"database/sql"
	"fmt"

	"arena-server/internal/domain"
	"arena-server/pkg/logger"

	"github.com/lib/pq"
)

const matchesSchema = `
CREATE TABLE IF NOT EXISTS matches (
	session_id  TEXT PRIMARY KEY,
	party_id    TEXT NOT NULL,
	result      TEXT NOT NULL,
	wave        INTEGER NOT NULL,
	kills       INTEGER NOT NULL,
	started_at  TIMESTAMPTZ NOT NULL,
	ended_at    TIMESTAMPTZ NOT NULL,
	player_ids  TEXT[] NOT NULL,
	player_names TEXT[] NOT NULL,
	player_xp   DOUBLE PRECISION[] NOT NULL DEFAULT '{}'
)`

// таблицы, созданные до появления опыта в истории
const migrateMatches = `ALTER TABLE matches ADD COLUMN IF NOT EXISTS player_xp DOUBLE PRECISION[] NOT NULL DEFAULT '{}'`

const insertMatch = `
INSERT INTO matches (session_id, party_id, result, wave, kills, started_at, ended_at, player_ids, player_names, player_xp)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (session_id) DO NOTHING`

const selectRecent = `
SELECT session_id, party_id, result, wave, kills, started_at, ended_at, player_ids, player_names, player_xp
FROM matches ORDER BY ended_at DESC LIMIT $1`

// PostgresRecorder пишет историю матчей в таблицу matches
type PostgresRecorder struct {
	DB *sql.DB
}

// ConnectPostgres открывает соединение и проверяет его пингом.
func ConnectPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	logger.Log.WithField("component", "match_store").Info("Successfully connected to PostgreSQL")
	return db, nil
}

func NewPostgresRecorder(db *sql.DB) *PostgresRecorder {
	return &PostgresRecorder{DB: db}
}

// EnsureSchema создает таблицу, если её ещё нет
func (r *PostgresRecorder) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, matchesSchema); err != nil {
		return fmt.Errorf("create matches table: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, migrateMatches); err != nil {
		return fmt.Errorf("migrate matches table: %w", err)
	}
	return nil
}

func (r *PostgresRecorder) Record(ctx context.Context, rec domain.MatchRecord) error {
	names := make([]string, len(rec.Players))
	xp := make([]float64, len(rec.Players))
	for i, p := range rec.Players {
		names[i] = p.Name
		xp[i] = p.Experience
	}

	_, err := r.DB.ExecContext(ctx, insertMatch,
		rec.SessionID, rec.PartyID, string(rec.Result), rec.Wave, rec.Kills,
		rec.StartedAt, rec.EndedAt, pq.Array(rec.PlayerIDs()), pq.Array(names), pq.Array(xp))
	if err != nil {
		return fmt.Errorf("insert match %s: %w", rec.SessionID, err)
	}
	return nil
}

// Recent - последние матчи (новые первыми)
func (r *PostgresRecorder) Recent(ctx context.Context, limit int) ([]domain.MatchRecord, error) {
	rows, err := r.DB.QueryContext(ctx, selectRecent, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.MatchRecord{}
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// rowScanner - общее у *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (domain.MatchRecord, error) {
	var (
		rec    domain.MatchRecord
		result string
		ids    []string
		names  []string
		xp     []float64
	)
	if err := row.Scan(&rec.SessionID, &rec.PartyID, &result, &rec.Wave, &rec.Kills,
		&rec.StartedAt, &rec.EndedAt, pq.Array(&ids), pq.Array(&names), pq.Array(&xp)); err != nil {
		return domain.MatchRecord{}, err
	}
	rec.Result = domain.MatchResult(result)
	rec.Players = make([]domain.MatchPlayer, len(ids))
	for i, id := range ids {
		rec.Players[i].ID = id
		if i < len(names) {
			rec.Players[i].Name = names[i]
		}
		if i < len(xp) {
			rec.Players[i].Experience = xp[i]
		}
	}
	return rec, nil
}

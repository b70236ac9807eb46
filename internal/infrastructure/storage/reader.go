package storage

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"arena-server/internal/domain"
	"arena-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

var ErrInvalidMagic = errors.New("invalid magic")

// Load читает один файл матча
func (s *FileRecorder) Load(path string) (domain.MatchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.MatchRecord{}, err
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

// List возвращает пути всех файлов матчей, по имени (то есть по времени старта)
func (s *FileRecorder) List() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.SaveDir, "match_*"+FileExt))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// Recent читает limit последних файлов матчей (новые первыми).
// Битые файлы пропускаются с предупреждением.
func (s *FileRecorder) Recent(ctx context.Context, limit int) ([]domain.MatchRecord, error) {
	paths, err := s.List()
	if err != nil {
		return nil, err
	}

	out := []domain.MatchRecord{}
	for k := len(paths) - 1; k >= 0 && len(out) < limit; k-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := s.Load(paths[k])
		if err != nil {
			logger.Log.WithFields(logrus.Fields{
				"component": "match_store",
				"path":      paths[k],
			}).WithError(err).Warn("Skipping unreadable match file")
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeResult(code uint8) (domain.MatchResult, error) {
	switch code {
	case resultDefeat:
		return domain.ResultDefeat, nil
	case resultAbandoned:
		return domain.ResultAbandoned, nil
	}
	return "", fmt.Errorf("unknown result code %d", code)
}

func readString(r io.Reader, n uint8) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func readBinary(r io.Reader) (domain.MatchRecord, error) {
	// 1. Заголовок целиком
	var header MatchFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return domain.MatchRecord{}, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return domain.MatchRecord{}, ErrInvalidMagic
	}
	if header.Version != Version1 {
		return domain.MatchRecord{}, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	result, err := decodeResult(header.Result)
	if err != nil {
		return domain.MatchRecord{}, err
	}

	rec := domain.MatchRecord{
		Result:    result,
		Wave:      int(header.Wave),
		Kills:     int(header.Kills),
		StartedAt: time.UnixMilli(header.StartedAt),
		EndedAt:   time.UnixMilli(header.EndedAt),
		Players:   make([]domain.MatchPlayer, header.PlayerCount),
	}
	if rec.SessionID, err = readString(r, header.SessionLen); err != nil {
		return domain.MatchRecord{}, fmt.Errorf("failed to read session id: %w", err)
	}
	if rec.PartyID, err = readString(r, header.PartyLen); err != nil {
		return domain.MatchRecord{}, fmt.Errorf("failed to read party id: %w", err)
	}

	// 2. Игроки
	for i := range rec.Players {
		var ph PlayerHeader
		if err := binary.Read(r, binary.LittleEndian, &ph); err != nil {
			return domain.MatchRecord{}, err
		}

		p := domain.MatchPlayer{Experience: ph.Experience}
		if p.ID, err = readString(r, ph.IDLen); err != nil {
			return domain.MatchRecord{}, err
		}
		if p.Name, err = readString(r, ph.NameLen); err != nil {
			return domain.MatchRecord{}, err
		}
		rec.Players[i] = p
	}

	return rec, nil
}

package storage

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"arena-server/internal/domain"
	"arena-server/pkg/logger"
	"arena-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

const (
	MagicHeader string = `ARMR` // 4 байта
	Version1    uint32 = 1
	FileExt            = ".armr"
)

// Коды результата в файле
const (
	resultDefeat    uint8 = 1
	resultAbandoned uint8 = 2
)

// MatchFileHeader - точное представление заголовка файла в памяти.
// binary.Write пишет его целиком: тут только массивы и числа.
type MatchFileHeader struct {
	Magic       [4]byte // 4
	Version     uint32  // 4
	StartedAt   int64   // 8, unix ms
	EndedAt     int64   // 8, unix ms
	Wave        int32   // 4
	Kills       int32   // 4
	Result      uint8   // 1
	PlayerCount uint8   // 1
	SessionLen  uint8   // 1
	PartyLen    uint8   // 1
}

// PlayerHeader - заголовок записи каждого игрока
type PlayerHeader struct {
	Experience float64 // 8
	IDLen      uint8   // 1
	NameLen    uint8   // 1
}

// FileRecorder пишет каждый матч в отдельный бинарный файл.
type FileRecorder struct {
	SaveDir string
	mu      sync.Mutex
}

func NewFileRecorder(dir string) (*FileRecorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create match dir: %w", err)
	}
	return &FileRecorder{SaveDir: dir}, nil
}

func (s *FileRecorder) Record(ctx context.Context, rec domain.MatchRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	filename := fmt.Sprintf("match_%d_%s%s", rec.StartedAt.Unix(), utils.ShortID(rec.SessionID, 8), FileExt)
	path := filepath.Join(s.SaveDir, filename)

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeBinary(w, rec); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"component":  "match_store",
		"session_id": rec.SessionID,
		"file":       filename,
	}).Debug("Match file written")
	return nil
}

func encodeResult(r domain.MatchResult) (uint8, error) {
	switch r {
	case domain.ResultDefeat:
		return resultDefeat, nil
	case domain.ResultAbandoned:
		return resultAbandoned, nil
	}
	return 0, fmt.Errorf("unknown result %q", r)
}

func shortString(field, v string) ([]byte, error) {
	b := []byte(v)
	if len(b) > 255 {
		return nil, fmt.Errorf("%s too long: %d", field, len(b))
	}
	return b, nil
}

func writeBinary(w io.Writer, rec domain.MatchRecord) error {
	if len(rec.Players) > 255 {
		return fmt.Errorf("too many players: %d", len(rec.Players))
	}
	result, err := encodeResult(rec.Result)
	if err != nil {
		return err
	}
	sessionID, err := shortString("session id", rec.SessionID)
	if err != nil {
		return err
	}
	partyID, err := shortString("party id", rec.PartyID)
	if err != nil {
		return err
	}

	// 1. Заголовок
	header := MatchFileHeader{
		Version:     Version1,
		StartedAt:   rec.StartedAt.UnixMilli(),
		EndedAt:     rec.EndedAt.UnixMilli(),
		Wave:        int32(rec.Wave),
		Kills:       int32(rec.Kills),
		Result:      result,
		PlayerCount: uint8(len(rec.Players)),
		SessionLen:  uint8(len(sessionID)),
		PartyLen:    uint8(len(partyID)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(sessionID); err != nil {
		return err
	}
	if _, err := w.Write(partyID); err != nil {
		return err
	}

	// 2. Игроки
	for _, p := range rec.Players {
		id, err := shortString("player id", p.ID)
		if err != nil {
			return err
		}
		name, err := shortString("player name", p.Name)
		if err != nil {
			return err
		}

		ph := PlayerHeader{
			Experience: p.Experience,
			IDLen:      uint8(len(id)),
			NameLen:    uint8(len(name)),
		}
		if err := binary.Write(w, binary.LittleEndian, &ph); err != nil {
			return err
		}
		if _, err := w.Write(id); err != nil {
			return err
		}
		if _, err := w.Write(name); err != nil {
			return err
		}
	}

	return nil
}

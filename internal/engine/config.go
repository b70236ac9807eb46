package engine

import (
	"time"

	"arena-server/internal/domain"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. Зерно каждой сессии выводится из него.
	Seed int64

	// TickRate - частота симуляции, Гц. 0 - тики не запускаются (тесты двигают мир вручную).
	TickRate int

	Arena        domain.Arena
	MaxPartySize int

	// GameOverDelay - пауза между гибелью всей партии и gameOver
	GameOverDelay time.Duration
	// SessionLinger - сколько завершённая сессия живёт в реестре
	SessionLinger time.Duration
	// RecordTimeout - лимит на запись итогов матча
	RecordTimeout time.Duration

	InboxSize int
}

// NewConfig создает конфиг по умолчанию (случайный сид, 60 Гц)
func NewConfig() Config {
	return Config{
		Seed:          time.Now().UnixNano(),
		TickRate:      60,
		Arena:         domain.DefaultArena(),
		MaxPartySize:  domain.MaxPartySize,
		GameOverDelay: 3 * time.Second,
		SessionLinger: 5 * time.Second,
		RecordTimeout: 5 * time.Second,
		InboxSize:     1024,
	}
}

// TickInterval - период тика (0, если тики выключены)
func (c Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TickRate)
}

package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"arena-server/pkg/logger"

	"github.com/joho/godotenv"
)

// Load подтягивает переменные из .env файлов (по умолчанию ./.env).
// Отсутствие файла не ошибка: в контейнере всё приходит через окружение.
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Log.WithField("file", f).Debug("env file not found, skipping")
				continue
			}
			return err
		}
		logger.Log.WithField("file", f).Info("Loaded environment file")
	}
	return nil
}

// String читает переменную окружения или возвращает значение по умолчанию.
func String(key, def string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logger.Log.WithField("key", key).Debugf("env not set, using default %q", def)
		return def
	}
	return v
}

func Int(key string, def int) int {
	raw := String(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.Log.WithField("key", key).WithError(err).Warn("invalid int in env, using default")
		return def
	}
	return v
}

func Float(key string, def float64) float64 {
	raw := String(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.Log.WithField("key", key).WithError(err).Warn("invalid float in env, using default")
		return def
	}
	return v
}

// Duration понимает "3s", "1500ms" и голые числа (миллисекунды).
func Duration(key string, def time.Duration) time.Duration {
	raw := String(key, "")
	if raw == "" {
		return def
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		logger.Log.WithField("key", key).WithError(err).Warn("invalid duration in env, using default")
		return def
	}
	return v
}

func Bool(key string, def bool) bool {
	switch strings.ToLower(String(key, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

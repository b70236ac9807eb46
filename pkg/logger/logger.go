package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log - глобальный логгер сервера арены.
// До вызова Init пишет в stderr с уровнем info, чтобы пакеты можно было использовать в тестах без main.
var Log = logrus.New()

// Init настраивает глобальный логгер по переменным окружения.
// Вызывается один раз при старте (main.go, TestMain).
func Init() {
	Log = logrus.New()

	// 1. Уровень: LOG_LEVEL, по умолчанию info.
	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Форматтер: json для продакшена, цветной текст для разработки.
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// WithComponent возвращает entry с полем component.
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

// Silence глушит вывод (бенчмарки, шумные тесты).
func Silence() {
	Log.SetOutput(io.Discard)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	_ "net/http/pprof" // Profiling
	"strconv"
	"time"

	"arena-server/internal/engine"
	"arena-server/internal/infrastructure/storage"
	"arena-server/internal/network"
	"arena-server/internal/version"
	"arena-server/pkg/api"
	"arena-server/pkg/logger"
	"arena-server/pkg/utils"

	"github.com/gorilla/mux"
)

type Server struct {
	Engine *engine.GameService
	Hub    *network.Broadcaster
	Port   string

	// History - история матчей для /api/matches (nil - история выключена)
	History storage.History
	// Debug - регистрировать /debug/* и pprof
	Debug bool
}

func New(engine *engine.GameService, hub *network.Broadcaster, port string) *Server {
	return &Server{
		Engine: engine,
		Hub:    hub,
		Port:   port,
		Debug:  true,
	}
}

const (
	defaultMatchesLimit = 20
	maxMatchesLimit     = 100
)

// Router собирает все маршруты (нужен и тестам через httptest)
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/ws", s.handleWS)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)
	r.HandleFunc("/api/parties", s.handleParties).Methods(http.MethodGet)
	r.HandleFunc("/api/matches", s.handleMatches).Methods(http.MethodGet)

	// Debug Routes
	if s.Debug {
		debugHandler := NewDebugHandler(s.Engine, s.Hub)
		debugHandler.RegisterRoutes(r)
		r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)
	}

	r.Use(enableCORS)
	return r
}

// Run запускает HTTP сервер и останавливает его при отмене ctx
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("🛡️  Arena server running on :%s", s.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next.ServeHTTP(w, r)
	})
}

// handleWS обрабатывает подключение по WebSocket. ?codec=msgpack - бинарные кадры.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	codec, err := api.CodecByName(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	client := NewClient(s, conn, codec, utils.GenerateID())
	client.log.Info("Client connected")
	client.start()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}

// /api/parties - ожидающие партии (то же, что partyList по сокету)
func (s *Server) handleParties(w http.ResponseWriter, r *http.Request) {
	parties, err := s.Engine.Parties(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, parties)
}

// /api/matches?limit=N - последние сыгранные матчи
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		http.Error(w, "Match history disabled", http.StatusServiceUnavailable)
		return
	}

	limit := defaultMatchesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxMatchesLimit)
	}

	matches, err := s.History.Recent(r.Context(), limit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch match history")
		http.Error(w, "Failed to fetch match history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, matches)
}

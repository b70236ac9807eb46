package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"arena-server/internal/domain"
	"arena-server/internal/engine"
	"arena-server/internal/network"

	"github.com/gorilla/mux"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
	Hub     *network.Broadcaster
}

func NewDebugHandler(s *engine.GameService, hub *network.Broadcaster) *DebugHandler {
	return &DebugHandler{Service: s, Hub: hub}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/debug/sessions", h.handleListSessions).Methods(http.MethodGet)
	r.HandleFunc("/debug/sessions/{id}", h.handleDumpSession).Methods(http.MethodGet)
	r.HandleFunc("/debug/players", h.handleListPlayers).Methods(http.MethodGet)
	r.HandleFunc("/debug/hub", h.handleHub).Methods(http.MethodGet)
}

// /debug/sessions - список сессий с волной и количеством сущностей
func (h *DebugHandler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.Service.Sessions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, sessions)
}

// /debug/sessions/{id} - дамп сессии: игроки, враги, снаряды
func (h *DebugHandler) handleDumpSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	detail, err := h.Service.SessionDetail(r.Context(), id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, detail)
}

// /debug/players - все подключённые игроки
func (h *DebugHandler) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.Service.Players(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, players)
}

// /debug/hub - подписчики и потерянные сообщения
func (h *DebugHandler) handleHub(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"subscribers": h.Hub.SubscriberCount(),
		"dropped":     h.Hub.Dropped(),
	})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, пустой список), возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}

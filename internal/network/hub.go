package network

import (
	"sync"
	"sync/atomic"

	"arena-server/pkg/api"
	"arena-server/pkg/logger"
)

// SubscriberBuffer - размер личного канала. При переполнении кадры теряются.
const SubscriberBuffer = 256

// Broadcaster занимается только рассылкой сообщений подписчикам.
// Игровой цикл никогда не блокируется на медленном клиенте.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: PlayerID -> Личный канал
	subscribers map[string]chan api.ServerMessage
	dropped     atomic.Uint64
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerMessage),
	}
}

// Register создает личный канал игрока (или бота)
func (b *Broadcaster) Register(playerID string) <-chan api.ServerMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем: старое соединение отвалится
	if old, ok := b.subscribers[playerID]; ok {
		close(old)
	}

	ch := make(chan api.ServerMessage, SubscriberBuffer)
	b.subscribers[playerID] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал
func (b *Broadcaster) Unregister(playerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[playerID]; ok {
		close(ch)
		delete(b.subscribers, playerID)
	}
}

// SendTo отправляет сообщение одному игроку (Unicast)
func (b *Broadcaster) SendTo(playerID string, msg api.ServerMessage) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[playerID]; ok {
		b.push(playerID, ch, msg)
	}
}

// SendToMany рассылает группе (комната сессии или партии), пропуская except
func (b *Broadcaster) SendToMany(playerIDs []string, msg api.ServerMessage, except string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, id := range playerIDs {
		if id == except {
			continue
		}
		if ch, ok := b.subscribers[id]; ok {
			b.push(id, ch, msg)
		}
	}
}

// Broadcast отправляет всем подключенным
func (b *Broadcaster) Broadcast(msg api.ServerMessage) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		b.push(id, ch, msg)
	}
}

// push вызывается под RLock
func (b *Broadcaster) push(id string, ch chan api.ServerMessage, msg api.ServerMessage) {
	select {
	case ch <- msg:
	default:
		b.dropped.Add(1)
		logger.Log.WithField("player_id", id).WithField("type", msg.Type).Debug("Hub: channel full, message dropped")
	}
}

// HasSubscriber проверяет, подключен ли игрок
func (b *Broadcaster) HasSubscriber(playerID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[playerID]
	return ok
}

// Dropped - сколько сообщений потеряно из-за переполненных каналов
func (b *Broadcaster) Dropped() uint64 {
	return b.dropped.Load()
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

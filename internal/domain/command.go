package domain

// PayloadDecoder распаковывает payload в кодеке соединения (json или msgpack).
type PayloadDecoder interface {
	Unmarshal(data []byte, v any) error
}

// InternalCommand - команда клиента, уже привязанная к игроку.
type InternalCommand struct {
	Action   ActionType
	PlayerID string // кто прислал (определяется соединением, не клиентом)
	ReqID    uint64 // для ответов в стиле RPC
	Payload  []byte
	Decoder  PayloadDecoder
}

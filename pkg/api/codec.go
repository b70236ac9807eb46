package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec - формат кадров одного соединения.
// JSON идёт текстовыми кадрами, msgpack - бинарными.
type Codec interface {
	Name() string
	Binary() bool
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// DecodeCommand снимает конверт {type, reqId, payload}, payload остаётся сырым
	DecodeCommand(data []byte) (ClientCommand, error)
}

// CodecByName: "json" (по умолчанию) или "msgpack"
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSONCodec{}, nil
	case "msgpack", "mp":
		return MsgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

// --- JSON ---

type JSONCodec struct{}

type jsonEnvelope struct {
	Type    string          `json:"type"`
	ReqID   uint64          `json:"reqId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Binary() bool { return false }

func (JSONCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (JSONCodec) DecodeCommand(data []byte) (ClientCommand, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return ClientCommand{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return ClientCommand{}, fmt.Errorf("decode envelope: missing type")
	}
	payload := []byte(env.Payload)
	if bytes.Equal(payload, []byte("null")) {
		payload = nil
	}
	return ClientCommand{Action: env.Type, ReqID: env.ReqID, Payload: payload}, nil
}

// --- MessagePack ---

// MsgpackCodec использует json-теги DTO, чтобы имена полей совпадали с JSON.
type MsgpackCodec struct{}

type msgpackEnvelope struct {
	Type    string             `msgpack:"type"`
	ReqID   uint64             `msgpack:"reqId,omitempty"`
	Payload msgpack.RawMessage `msgpack:"payload,omitempty"`
}

func (MsgpackCodec) Name() string { return "msgpack" }

func (MsgpackCodec) Binary() bool { return true }

func (MsgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (MsgpackCodec) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

func (MsgpackCodec) DecodeCommand(data []byte) (ClientCommand, error) {
	var env msgpackEnvelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return ClientCommand{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return ClientCommand{}, fmt.Errorf("decode envelope: missing type")
	}
	return ClientCommand{Action: env.Type, ReqID: env.ReqID, Payload: []byte(env.Payload)}, nil
}

// EncodeCommand собирает клиентский конверт (бот, тесты).
func EncodeCommand(c Codec, action string, reqID uint64, payload any) ([]byte, error) {
	return c.Marshal(ServerMessage{Type: action, ReqID: reqID, Payload: payload})
}

// DecodePayload распаковывает payload серверного/клиентского сообщения в T.
func DecodePayload[T any](c Codec, raw []byte) (T, error) {
	var out T
	if len(raw) == 0 {
		return out, nil
	}
	err := c.Unmarshal(raw, &out)
	return out, err
}

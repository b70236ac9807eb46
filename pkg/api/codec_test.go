package api

import (
	"math"
	"testing"
)

func TestCodecByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "json", false},
		{"json", "json", false},
		{"MsgPack", "msgpack", false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		c, err := CodecByName(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("CodecByName(%q): expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("CodecByName(%q): %v", tt.name, err)
		}
		if c.Name() != tt.want {
			t.Errorf("CodecByName(%q) = %s, want %s", tt.name, c.Name(), tt.want)
		}
	}
}

// Команда, собранная EncodeCommand, должна разбираться тем же кодеком с теми же полями.
func TestCommandEnvelope(t *testing.T) {
	for _, c := range []Codec{JSONCodec{}, MsgpackCodec{}} {
		t.Run(c.Name(), func(t *testing.T) {
			raw, err := EncodeCommand(c, "joinParty", 7, JoinPartyPayload{PartyID: "p1", PlayerName: "neo"})
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			cmd, err := c.DecodeCommand(raw)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if cmd.Action != "joinParty" || cmd.ReqID != 7 {
				t.Errorf("envelope = %+v", cmd)
			}

			p, err := DecodePayload[JoinPartyPayload](c, cmd.Payload)
			if err != nil {
				t.Fatalf("payload: %v", err)
			}
			if p.PartyID != "p1" || p.PlayerName != "neo" {
				t.Errorf("payload = %+v", p)
			}
		})
	}
}

func TestDecodeCommand_Errors(t *testing.T) {
	if _, err := (JSONCodec{}).DecodeCommand([]byte(`{"payload":{}}`)); err == nil {
		t.Error("expected error for missing type")
	}
	if _, err := (JSONCodec{}).DecodeCommand([]byte(`not json`)); err == nil {
		t.Error("expected error for garbage")
	}
	if _, err := (MsgpackCodec{}).DecodeCommand([]byte{0xc1}); err == nil {
		t.Error("expected error for invalid msgpack")
	}
}

func TestDecodeCommand_NullPayload(t *testing.T) {
	cmd, err := (JSONCodec{}).DecodeCommand([]byte(`{"type":"leaveParty","payload":null}`))
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Payload != nil {
		t.Errorf("null payload should be dropped, got %q", cmd.Payload)
	}
}

func TestMsgpackUsesJSONNames(t *testing.T) {
	c := MsgpackCodec{}
	raw, err := c.Marshal(NewMessage(MsgPlayerXP, PlayerXPPayload{ID: "a", Experience: 12}))
	if err != nil {
		t.Fatal(err)
	}

	var generic map[string]any
	if err := c.Unmarshal(raw, &generic); err != nil {
		t.Fatal(err)
	}
	if generic["type"] != MsgPlayerXP {
		t.Errorf("type = %v", generic["type"])
	}
	payload, ok := generic["payload"].(map[string]any)
	if !ok {
		t.Fatalf("payload has type %T", generic["payload"])
	}
	if _, ok := payload["experience"]; !ok {
		t.Errorf("expected json field name 'experience', got keys %v", payload)
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		v       Validator
		wantErr bool
	}{
		{"finite update", PlayerUpdatePayload{Position: Vec{X: 1, Y: 2}}, false},
		{"nan update", PlayerUpdatePayload{Position: Vec{X: math.NaN()}}, true},
		{"inf angle", ShootPayload{Angle: math.Inf(1)}, true},
		{"ok shoot", ShootPayload{Angle: 1}, false},
		{"join without id", JoinPartyPayload{}, true},
		{"join", JoinPartyPayload{PartyID: "x"}, false},
		{"empty upgrade", UpgradePayload{}, true},
		{"long player name", CreatePartyPayload{Name: "0123456789012345678901234567890123"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

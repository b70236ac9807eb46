package domain

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"playerUpdate", ActionPlayerUpdate},
		{"playerShoot", ActionPlayerShoot},
		{"createParty", ActionCreateParty},
		{"joinParty", ActionJoinParty},
		{"leaveParty", ActionLeaveParty},
		{"startGame", ActionStartGame},
		{"upgradePlayer", ActionUpgradePlayer},
		{"requestPartyList", ActionRequestPartyList},
		{"getPartyMemberDetails", ActionPartyMemberDetails},
		{"PLAYERSHOOT", ActionUnknown},
		{"", ActionUnknown},
	}

	for _, tt := range tests {
		result := ParseAction(tt.input)
		if result != tt.expected {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestActionType_String(t *testing.T) {
	tests := []struct {
		action   ActionType
		expected string
	}{
		{ActionPlayerShoot, "playerShoot"},
		{ActionStartGame, "startGame"},
		{ActionUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("ActionType(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

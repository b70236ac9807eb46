package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Fatalf("expected unique ids, got %q twice", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("GenerateID() = %q is not a uuid: %v", a, err)
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		id   string
		n    int
		want string
	}{
		{"abcdef", 4, "abcd"},
		{"ab", 4, "ab"},
		{"", 4, ""},
	}
	for _, tt := range tests {
		if got := ShortID(tt.id, tt.n); got != tt.want {
			t.Errorf("ShortID(%q, %d) = %q, want %q", tt.id, tt.n, got, tt.want)
		}
	}
}

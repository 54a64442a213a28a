package utils

import (
	"strings"
	"testing"
)

func TestCheckSecret(t *testing.T) {
	hashed, err := HashSecret("Password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	tests := []struct {
		name   string
		secret string
		want   bool
	}{
		{"exact", "Password123", true},
		{"different", "Password124", false},
		{"empty", "", false},
		{"nul repeat", "Password123\x00Password123", false},
		{"nul suffix", "Password123\x00", false},
		{"too long", strings.Repeat("Password123\x00", 7), false},
		{"prefix over limit", "Password123" + strings.Repeat("x", MaxSecretLen), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckSecret(hashed, tt.secret); got != tt.want {
				t.Errorf("CheckSecret(%q) = %v, want %v", tt.secret, got, tt.want)
			}
		})
	}
}

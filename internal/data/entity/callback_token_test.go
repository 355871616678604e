package entity

import (
	"testing"
	"time"
)

func TestParseAliasType(t *testing.T) {
	tests := []struct {
		in   string
		want AliasType
		ok   bool
	}{
		{"EMAIL", AliasTypeEmail, true},
		{"MOBILE", AliasTypeMobile, true},
		{"email", "", false},
		{"", "", false},
		{"FAX", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseAliasType(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseAliasType(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCallbackTokenExpiredBoundary(t *testing.T) {
	window := 15 * time.Minute
	now := time.Now()

	token := &CallbackToken{}

	// Exactly at the boundary the token is still valid
	token.CreatedAt = now.Add(-window)
	if token.Expired(now, window) {
		t.Fatal("token at the boundary should not be expired")
	}

	token.CreatedAt = now.Add(-window - time.Nanosecond)
	if !token.Expired(now, window) {
		t.Fatal("token past the boundary should be expired")
	}

	token.CreatedAt = now
	if token.Expired(now, window) {
		t.Fatal("fresh token should not be expired")
	}
}

func TestUserAliasValue(t *testing.T) {
	mobile := "+15551234567"
	user := &User{Email: "alice@example.com", Mobile: &mobile}

	if got := user.AliasValue(AliasTypeEmail); got != "alice@example.com" {
		t.Fatalf("email alias = %q", got)
	}
	if got := user.AliasValue(AliasTypeMobile); got != mobile {
		t.Fatalf("mobile alias = %q", got)
	}

	user.Mobile = nil
	if got := user.AliasValue(AliasTypeMobile); got != "" {
		t.Fatalf("missing mobile alias = %q, want empty", got)
	}
}

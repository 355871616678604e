package utils

import (
	"testing"
)

func TestGenerateTokenKeyShape(t *testing.T) {
	lengths := []int{4, 6, 8, 12}

	for _, length := range lengths {
		for i := 0; i < 200; i++ {
			key := GenerateTokenKey(length)
			if len(key) != length {
				t.Fatalf("length %d: key %q has %d characters", length, key, len(key))
			}
			for _, c := range key {
				if c < '0' || c > '9' {
					t.Fatalf("key %q contains non-digit %q", key, c)
				}
			}
		}
	}
}

func TestGenerateTokenKeyDefaultsLength(t *testing.T) {
	for _, bad := range []int{0, -1} {
		key := GenerateTokenKey(bad)
		if len(key) != 6 {
			t.Fatalf("length %d should fall back to 6 digits, got %q", bad, key)
		}
	}
}

func TestGenerateTokenKeyVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[GenerateTokenKey(6)] = true
	}

	// 100 draws from a million values colliding down to a handful would
	// mean the generator is broken, not unlucky.
	if len(seen) < 90 {
		t.Fatalf("100 draws produced only %d distinct keys", len(seen))
	}
}

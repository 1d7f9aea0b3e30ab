package utils

import (
	"strings"
	"testing"
)

func TestRandomSeed(t *testing.T) {
	seed := RandomSeed(12)
	if len(seed) != 12 {
		t.Fatalf("len = %d, want 12", len(seed))
	}
	for _, r := range seed {
		if !strings.ContainsRune(seedAlphabet, r) {
			t.Errorf("unexpected character %q in seed %q", r, seed)
		}
	}
	if RandomSeed(12) == seed {
		t.Error("two seeds should not collide")
	}
}

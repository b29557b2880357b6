package postgres

import (
	"strings"
	"testing"
)

func TestAccountNumberGenerator(t *testing.T) {
	g := NewAccountNumberGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number := g.AccountNumber()

		if !strings.HasPrefix(number, "AC") {
			t.Fatalf("expected AC prefix, got %q", number)
		}
		if len(number) != 2+26 {
			t.Fatalf("expected 28 characters, got %d in %q", len(number), number)
		}
		if seen[number] {
			t.Fatalf("duplicate account number %q", number)
		}
		seen[number] = true
	}
}

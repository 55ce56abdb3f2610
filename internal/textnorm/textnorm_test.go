package textnorm

import "testing"

func TestCanonicalParts(t *testing.T) {
	t.Parallel()

	a := CanonicalParts([]string{"Alice", "Example"})
	b := CanonicalParts([]string{"example", " ALICE "})
	if a != b {
		t.Fatalf("expected %q == %q", a, b)
	}
}

func TestCanonicalValueMapIgnoresKeyOrder(t *testing.T) {
	t.Parallel()

	a := CanonicalValue(map[string]any{"firstName": "Alice", "lastName": "Example"})
	b := CanonicalValue(map[string]any{"lastName": "Alice", "firstName": "Example"})
	if a != b {
		t.Fatalf("swapped parts should normalise identically: %q vs %q", a, b)
	}
}

func TestCanonicalValueSkipsEmptyParts(t *testing.T) {
	t.Parallel()

	got := CanonicalValue(map[string]any{"line1": "1 Main St", "line2": "  "})
	if got != "1 main st" {
		t.Fatalf("got %q", got)
	}
}

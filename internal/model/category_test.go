package model

import "testing"

func TestWorkerCategoryStable(t *testing.T) {
	first := WorkerCategory("Anna Müller")
	for i := 0; i < 10; i++ {
		if got := WorkerCategory("Anna Müller"); got != first {
			t.Fatalf("category not stable: got %q, want %q", got, first)
		}
	}
	if first == CategoryNeutral {
		t.Fatalf("named worker should not map to the neutral category")
	}
}

func TestWorkerCategoryNeutralFallback(t *testing.T) {
	if got := WorkerCategory(""); got != CategoryNeutral {
		t.Fatalf("expected neutral for empty name, got %q", got)
	}
	if got := WorkerCategory("   "); got != CategoryNeutral {
		t.Fatalf("expected neutral for blank name, got %q", got)
	}
}

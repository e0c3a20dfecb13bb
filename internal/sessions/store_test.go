package sessions

import "testing"

func TestHashTokenStableAndHex(t *testing.T) {
	a := HashToken("token-a")
	b := HashToken("token-a")
	if a != b {
		t.Fatalf("same token hashed differently: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d (%q)", len(a), a)
	}
	if a == HashToken("token-b") {
		t.Fatalf("different tokens produced the same hash")
	}
}

func TestKeyNamespacesDiffer(t *testing.T) {
	if refreshKey("x") == resetKey("x") {
		t.Fatalf("refresh and reset keys must not collide")
	}
}

package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(4) // min cost keeps the test fast

	digest, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if digest == "pw1" || digest == "" {
		t.Fatalf("digest must not equal plaintext")
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Fatalf("unexpected digest format: %q", digest)
	}

	if !h.Verify("pw1", digest) {
		t.Fatalf("Verify must succeed for the original password")
	}
	if h.Verify("pw2", digest) {
		t.Fatalf("Verify must fail for a different password")
	}
}

func TestVerify_MalformedDigest(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(4)

	for _, digest := range []string{"", "not-a-digest", "$2a$zz$broken"} {
		if h.Verify("anything", digest) {
			t.Fatalf("Verify must return false for malformed digest %q", digest)
		}
	}
}

func TestHashesAreSalted(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(4)

	a, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password must differ (salt)")
	}
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(-1)
	digest, err := h.Hash("x")
	if err != nil {
		t.Fatalf("Hash error with fallback cost: %v", err)
	}
	if !h.Verify("x", digest) {
		t.Fatalf("Verify failed with fallback cost")
	}
}

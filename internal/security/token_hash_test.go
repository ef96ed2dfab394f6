package security

import "testing"

func TestHashToken_Consistent(t *testing.T) {
	token := "test-refresh-token-123"
	hash1 := HashToken(token)
	hash2 := HashToken(token)

	if hash1 != hash2 {
		t.Errorf("HashToken not consistent: hash1 = %q, hash2 = %q", hash1, hash2)
	}
	if len(hash1) != 64 {
		t.Errorf("hash length = %d, want 64 (SHA-256 hex)", len(hash1))
	}
	if hash1 == token {
		t.Error("HashToken must not return the plaintext token")
	}
}

func TestHashToken_DifferentTokens(t *testing.T) {
	if HashToken("token-1") == HashToken("token-2") {
		t.Error("HashToken produced same hash for different tokens")
	}
}

func TestTokenHashEqual(t *testing.T) {
	stored := HashToken("correct-token")

	if !TokenHashEqual("correct-token", stored) {
		t.Error("TokenHashEqual should match correct token")
	}
	if TokenHashEqual("wrong-token", stored) {
		t.Error("TokenHashEqual should reject incorrect token")
	}
	if TokenHashEqual("correct-token", "a"+stored) {
		t.Error("TokenHashEqual should reject a stored hash of different length")
	}
	if TokenHashEqual("correct-token", "") {
		t.Error("TokenHashEqual should reject an empty stored hash")
	}
}

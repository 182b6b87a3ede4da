package auth

import "testing"

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	tests := []struct {
		name     string
		password string
	}{
		{name: "simple password", password: "password123"},
		{name: "complex password", password: "P@ssw0rd!#$%^&*()"},
		{name: "unicode password", password: "密码123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if hash == "" || hash == tt.password {
				t.Errorf("Hash() returned %q", hash)
			}
			if !hasher.Verify(tt.password, hash) {
				t.Error("Verify() returned false for correct password")
			}
		})
	}
}

func TestPasswordHasher_RejectsWrongPassword(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("testpassword123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
	}{
		{name: "wrong password", password: "wrongpassword"},
		{name: "empty password", password: ""},
		{name: "similar password", password: "testpassword1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hasher.Verify(tt.password, hash) {
				t.Errorf("Verify() accepted %q", tt.password)
			}
		})
	}
}

func TestPasswordHasher_UniqueHashes(t *testing.T) {
	hasher := NewPasswordHasher()

	hash1, err := hasher.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	hash2, err := hasher.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// Salting makes the hashes differ even for the same input.
	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for the same password")
	}
	if !hasher.Verify("samepassword", hash1) || !hasher.Verify("samepassword", hash2) {
		t.Error("Verify() failed for one of the hashes")
	}
}

package db

import (
	"path/filepath"
	"testing"
)

func TestInitDB(t *testing.T) {
	InitDB(filepath.Join(t.TempDir(), "test_portal.db"))
	if DB == nil {
		t.Fatal("DB was not initialized")
	}
	defer DB.Close()

	// Verify tables exist by attempting a simple select
	var count int
	for _, table := range []string{"admins", "students", "items", "applications"} {
		err := DB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		if err != nil {
			t.Errorf("Could not query %s table: %v", table, err)
		}
	}

	if DummyHash == "" {
		t.Error("DummyHash was not prepared")
	}
	if CheckPasswordHash("not-a-real-password-either", DummyHash) {
		t.Error("DummyHash matched an arbitrary password")
	}
}

func TestPasswordHashing(t *testing.T) {
	password := "mypassword"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == password {
		t.Error("HashPassword returned the plaintext password")
	}

	if !CheckPasswordHash(password, hash) {
		t.Error("CheckPasswordHash failed for correct password")
	}

	if CheckPasswordHash("wrongpassword", hash) {
		t.Error("CheckPasswordHash succeeded for wrong password")
	}
}

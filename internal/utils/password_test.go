package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("pw1", 4) // low cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "pw1" {
		t.Fatal("password stored in clear text")
	}
	if !VerifyPassword(hash, "pw1") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "pw2") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPasswordSalts(t *testing.T) {
	h1, err := HashPassword("same", 4)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	h2, err := HashPassword("same", 4)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical; salt missing")
	}
}

func TestHashPasswordClampsCost(t *testing.T) {
	hash, err := HashPassword("pw", 0)
	if err != nil {
		t.Fatalf("HashPassword returned error for zero cost: %v", err)
	}
	if !VerifyPassword(hash, "pw") {
		t.Fatal("hash with defaulted cost does not verify")
	}
}

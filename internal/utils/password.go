package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a salted bcrypt hash of the plain password using the
// given cost. Costs below bcrypt.MinCost fall back to the library default.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt hash and a plain password. The comparison
// inside bcrypt is constant time.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

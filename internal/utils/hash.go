package utils

import "golang.org/x/crypto/bcrypt"

// HashPIN hashes a PIN with bcrypt (salted, one-way).
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPIN verifies a candidate PIN against a stored bcrypt hash.
func CheckPIN(pin, hashedPIN string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPIN), []byte(pin)) == nil
}

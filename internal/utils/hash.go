package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used for new passwords.
// Raise it over time as hardware gets faster; existing hashes keep the
// cost they were created with.
const DefaultHashCost = bcrypt.DefaultCost

// HashPassword generates a salted bcrypt hash. The salt is random per
// call, so hashing the same password twice never produces the same output.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), DefaultHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if password matches hash. A malformed hash is
// treated as a non-match, never an error: callers only ever need the
// yes/no answer and must not branch on why verification failed.
func VerifyPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}

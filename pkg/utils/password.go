package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// SecretCost keeps firmware hashing cheap; these are simulator secrets,
// and every fleet build hashes them.
const SecretCost = bcrypt.MinCost

// MaxSecretLen is the most bytes bcrypt reads from a key.
const MaxSecretLen = 72

func HashSecret(secret string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(secret), SecretCost)
}

// CheckSecret matches secret against hashed only when bcrypt sees every
// byte of it. bcrypt terminates the key with NUL and cycles it up to
// MaxSecretLen bytes, so a NUL inside secret or a longer secret could
// collide with a different value.
func CheckSecret(hashed []byte, secret string) bool {
	if len(secret) > MaxSecretLen || strings.IndexByte(secret, 0) >= 0 {
		return false
	}
	err := bcrypt.CompareHashAndPassword(hashed, []byte(secret))
	return err == nil
}

// Package cryptox holds the credential-hashing primitive shared by account
// provisioning and login. The task service never stores or compares plain
// passwords, only the digest produced here.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// PasswordDigest returns the lowercase hex SHA-256 digest of password.
// The same function must be used at provisioning time and at login time,
// otherwise stored hashes will never match.
func PasswordDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// DigestEqual compares two digests in constant time.
func DigestEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

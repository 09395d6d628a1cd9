package models

import "time"

// User is an account provisioned once and immutable thereafter. PasswordHash
// is the hex digest produced by cryptox.PasswordDigest.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

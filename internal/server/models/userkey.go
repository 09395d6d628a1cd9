// Package models holds the persisted entities owned by the task store.
package models

// GeneratedUserKey is the serialized secret-share material produced by a
// successful key-generation ceremony. At most one row exists per user;
// a later ceremony overwrites the previous material.
type GeneratedUserKey struct {
	UserID  string
	KeyData string
}

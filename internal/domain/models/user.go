package models

import "time"

// User represents an account; Email is stored lowercased.
type User struct {
	ID         int64
	Email      string
	Name       string
	PassHash   []byte
	IsActive   bool
	IsStaff    bool
	IsAdmin    bool
	DateJoined time.Time
}

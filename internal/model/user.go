package model

import "time"

// User account statuses. A fresh registration starts unverified, email
// confirmation moves it to active, and administrators may block or unblock.
const (
	StatusUnverified = "unverified"
	StatusActive     = "active"
	StatusBlocked    = "blocked"
)

// User represents a registered account.
type User struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Name             string     `json:"name" gorm:"size:100;not null"`
	Email            string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash     string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Status           string     `json:"status" gorm:"size:20;not null;default:'unverified';index"`
	RegistrationTime time.Time  `json:"registration_time" gorm:"autoCreateTime"`
	LastLoginTime    *time.Time `json:"last_login_time"`
}

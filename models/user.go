package models

import "time"

type User struct {
	ID                string     `gorm:"primaryKey" json:"id"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string     `json:"-"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Phone             string     `json:"phone"`
	Role              string     `gorm:"type:VARCHAR(20);default:'user'" json:"role"` // "user" or "admin"
	Provider          string     `json:"provider"`                                    // "google" etc. for social logins
	IsVerified        bool       `json:"is_verified"`
	VerificationToken string     `json:"-"`
	ResetToken        string     `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == "admin"
}

package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey"`        // Primary key
	Username  string    `gorm:"unique;not null"`   // Unique display name
	Email     string    `gorm:"unique;not null"`   // Unique email, used for login
	Password  string    `gorm:"not null" json:"-"` // Hashed password, never serialized
	CreatedAt time.Time `gorm:"autoCreateTime"`    // Timestamp of registration
}

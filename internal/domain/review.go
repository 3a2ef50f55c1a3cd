package domain

import "time"

// Review Model
// Schema is reserved for the rating feature; no endpoint serves it yet.
type Review struct {
	ID         uint      `gorm:"primaryKey"`                      // Primary key
	ProjectID  uint      `gorm:"not null;index"`                  // Foreign key to the reviewed Project
	ReviewerID uint      `gorm:"not null;index"`                  // Foreign key to the reviewing User
	Rating     int       `gorm:"check:rating >= 1 AND rating <= 5"` // Star rating between 1 and 5
	Comment    string    // Optional review text
	CreatedAt  time.Time `gorm:"autoCreateTime"` // Timestamp of creation
}

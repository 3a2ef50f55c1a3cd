package domain

import "time"

// Project Model
type Project struct {
	ID          uint          `gorm:"primaryKey"`     // Primary key
	Title       string        `gorm:"not null"`       // Project title
	Description string        `gorm:"not null"`       // Project description
	AuthorID    uint          `gorm:"not null;index"` // Foreign key to the owning User
	CreatedAt   time.Time     `gorm:"autoCreateTime"` // Timestamp of creation
	Files       []ProjectFile `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;"` // Attached files
}

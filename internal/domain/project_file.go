package domain

import "time"

// ProjectFile Model
type ProjectFile struct {
	ID         uint      `gorm:"primaryKey"`     // Primary key
	ProjectID  uint      `gorm:"not null;index"` // Foreign key to the parent Project
	FilePath   string    `gorm:"not null"`       // Public path of the stored file
	UploadedAt time.Time `gorm:"autoCreateTime"` // Timestamp of upload
}

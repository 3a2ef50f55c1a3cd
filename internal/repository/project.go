package repository

import (
	"time" // Timestamps in the joined view

	"projects_platform/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ProjectWithAuthor is a project row joined with its author name and attached file
type ProjectWithAuthor struct {
	ID          uint      `json:"id"`                  // Project ID
	Title       string    `json:"title"`               // Project title
	Description string    `json:"description"`         // Project description
	AuthorID    uint      `json:"author_id"`           // Owning user ID
	AuthorName  string    `json:"author_name"`         // Owning user's username
	FilePath    *string   `json:"file_path,omitempty"` // Public path of the attached file, if any
	CreatedAt   time.Time `json:"created_at"`          // Timestamp of creation
}

// ProjectRepository provides access to project records and their attachments
type ProjectRepository interface {
	ListWithAuthor() ([]ProjectWithAuthor, error)               // All projects, newest first
	GetWithAuthor(id uint) (*ProjectWithAuthor, error)          // One project joined with author
	FindByID(id uint) (*domain.Project, error)                  // Raw project row, for ownership checks
	CreateWithFile(project *domain.Project, filePath string) error // Insert project and optional attachment atomically
	Update(project *domain.Project) error                       // Replace title and description
	DeleteCascade(id uint) ([]string, error)                    // Delete project and attachments, returning their paths
}

// GormProjectRepository implements ProjectRepository on top of the projects table
type GormProjectRepository struct {
	db *gorm.DB // Database handle
}

// NewProjectRepository creates a gorm-backed project repository
func NewProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// joined builds the base query joining projects with authors and attachments
func (r *GormProjectRepository) joined() *gorm.DB {
	return r.db.Table("projects").
		Select("projects.id, projects.title, projects.description, projects.author_id, projects.created_at, users.username AS author_name, project_files.file_path AS file_path").
		Joins("JOIN users ON users.id = projects.author_id").
		Joins("LEFT JOIN project_files ON project_files.project_id = projects.id")
}

// ListWithAuthor returns all projects ordered by creation time descending
func (r *GormProjectRepository) ListWithAuthor() ([]ProjectWithAuthor, error) {
	rows := make([]ProjectWithAuthor, 0) // Serializes as an empty list when no projects exist
	// Ties on created_at break on ascending id for a deterministic order
	err := r.joined().Order("projects.created_at DESC, projects.id ASC").Scan(&rows).Error
	if err != nil {
		return nil, err // Storage error
	}
	return rows, nil
}

// GetWithAuthor returns one project joined with its author, or gorm.ErrRecordNotFound
func (r *GormProjectRepository) GetWithAuthor(id uint) (*ProjectWithAuthor, error) {
	var row ProjectWithAuthor // Struct to hold the joined row
	result := r.joined().Where("projects.id = ?", id).Limit(1).Scan(&row)
	if result.Error != nil {
		return nil, result.Error // Storage error
	}
	// Scan does not report missing rows itself
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// FindByID returns the raw project row, or gorm.ErrRecordNotFound
func (r *GormProjectRepository) FindByID(id uint) (*domain.Project, error) {
	var project domain.Project // Project struct to hold data
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err // Not found or storage error
	}
	return &project, nil
}

// CreateWithFile inserts the project and, when filePath is non-empty, its
// attachment row in a single transaction so a failure leaves no partial state
func (r *GormProjectRepository) CreateWithFile(project *domain.Project, filePath string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Insert the project row
		if err := tx.Create(project).Error; err != nil {
			return err // Return error to rollback
		}
		if filePath != "" {
			// Link the stored file to the new project
			file := domain.ProjectFile{ProjectID: project.ID, FilePath: filePath}
			if err := tx.Create(&file).Error; err != nil {
				return err // Return error to rollback
			}
		}
		return nil // Commit transaction
	})
}

// Update replaces the title and description of an existing project.
// The author is never changeable.
func (r *GormProjectRepository) Update(project *domain.Project) error {
	return r.db.Model(&domain.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]any{"title": project.Title, "description": project.Description}).Error
}

// DeleteCascade removes the project and all its attachment rows in one
// transaction and returns the stored file paths for on-disk cleanup
func (r *GormProjectRepository) DeleteCascade(id uint) ([]string, error) {
	var paths []string // Stored file paths of the attachments
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Collect attachment paths before the rows disappear
		if err := tx.Model(&domain.ProjectFile{}).Where("project_id = ?", id).Pluck("file_path", &paths).Error; err != nil {
			return err // Return error to rollback
		}
		// Delete attachment rows first to keep the foreign key satisfied
		if err := tx.Where("project_id = ?", id).Delete(&domain.ProjectFile{}).Error; err != nil {
			return err // Return error to rollback
		}
		return tx.Delete(&domain.Project{}, id).Error // Delete the project row
	})
	if err != nil {
		return nil, err // Rolled back
	}
	return paths, nil
}

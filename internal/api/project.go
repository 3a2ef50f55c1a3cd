package api

import (
	"errors"       // Error inspection
	"net/http"     // HTTP status codes
	"strconv"      // String conversion
	"unicode/utf8" // Character counting for validation

	"projects_platform/internal/domain"     // Importing domain models
	"projects_platform/internal/repository" // Storage interfaces
	"projects_platform/internal/storage"    // Uploaded file persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // For gorm.ErrRecordNotFound
)

// Validation thresholds for project input
const (
	minTitleLen       = 3  // Minimum title length in characters
	minDescriptionLen = 10 // Minimum description length in characters
)

// Request struct for project updates
type UpdateProjectRequest struct {
	Title       string `json:"title"`       // Replacement title
	Description string `json:"description"` // Replacement description
}

// validateProjectInput applies the creation rules to title and description.
// Returns an empty string when the input is acceptable.
func validateProjectInput(title, description string) string {
	if title == "" || description == "" {
		return "Title and description are required"
	}
	// Lengths are counted in characters, not bytes
	if utf8.RuneCountInString(title) < minTitleLen {
		return "Title must be at least 3 characters"
	}
	if utf8.RuneCountInString(description) < minDescriptionLen {
		return "Description must be at least 10 characters"
	}
	return "" // Input is valid
}

// callerID extracts the authenticated user's ID placed in context by the JWT middleware
func callerID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("userID") // Get userID from context
	if !exists {
		return 0, false // Middleware did not run
	}
	id, ok := userID.(uint) // The middleware stores a uint
	return id, ok
}

// projectID parses the :id route parameter
func projectID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32) // Parse the path parameter
	if err != nil {
		return 0, false // Not a valid project ID
	}
	return uint(id), true
}

// ListProjectsHandler returns all projects, newest first
func ListProjectsHandler(projects repository.ProjectRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := projects.ListWithAuthor() // Fetch all projects joined with authors
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to fetch projects")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"projects": rows}) // Return the project list
	}
}

// GetProjectHandler returns a single project by ID
func GetProjectHandler(projects repository.ProjectRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := projectID(c) // Parse the project ID
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		project, err := projects.GetWithAuthor(id) // Fetch the joined project row
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
				return
			}
			logrus.WithFields(logrus.Fields{"project_id": id, "error": err.Error()}).Error("Failed to fetch project")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"project": project}) // Return the project
	}
}

// CreateProjectHandler creates a project from a multipart form, storing an
// optional attached file alongside it
func CreateProjectHandler(projects repository.ProjectRepository, files *storage.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorID, ok := callerID(c) // Get the authenticated caller
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}
		title := c.PostForm("title")             // Title form field
		description := c.PostForm("description") // Description form field
		// Validate before any record or file is written
		if msg := validateProjectInput(title, description); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		// An attached file is optional; c.FormFile errors when none was sent
		filePath := ""
		if file, err := c.FormFile("file"); err == nil {
			stored, err := files.Save(c, file) // Persist under a generated unique name
			if err != nil {
				if errors.Is(err, storage.ErrFileTooLarge) {
					// Over the cap, nothing was written
					c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the 20MB limit"})
					return
				}
				logrus.WithFields(logrus.Fields{"author_id": authorID, "error": err.Error()}).Error("Failed to store uploaded file")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
				return
			}
			filePath = stored // Public path recorded against the project
		}
		// Insert the project and its attachment row atomically
		project := domain.Project{Title: title, Description: description, AuthorID: authorID}
		if err := projects.CreateWithFile(&project, filePath); err != nil {
			// Do not leave an orphaned file on disk without a record
			if filePath != "" {
				if rmErr := files.Remove(filePath); rmErr != nil {
					logrus.WithFields(logrus.Fields{"file_path": filePath, "error": rmErr.Error()}).Warn("Failed to clean up stored file")
				}
			}
			logrus.WithFields(logrus.Fields{"author_id": authorID, "error": err.Error()}).Error("Failed to create project")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
			return
		}
		// Return the project joined with author name and file path
		created, err := projects.GetWithAuthor(project.ID)
		if err != nil {
			logrus.WithFields(logrus.Fields{"project_id": project.ID, "error": err.Error()}).Error("Failed to fetch created project")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
			return
		}
		logrus.WithFields(logrus.Fields{"project_id": project.ID, "author_id": authorID}).Info("Project created")
		c.JSON(http.StatusCreated, gin.H{
			"message": "Project created successfully", // Success message
			"project": created,                        // Created project
		})
	}
}

// UpdateProjectHandler replaces the title and description of an owned project
func UpdateProjectHandler(projects repository.ProjectRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerID(c) // Get the authenticated caller
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}
		id, ok := projectID(c) // Parse the project ID
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		existing, err := projects.FindByID(id) // Fetch the existing project
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
				return
			}
			logrus.WithFields(logrus.Fields{"project_id": id, "error": err.Error()}).Error("Failed to fetch project")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
			return
		}
		// Ownership check: only the author may edit
		if existing.AuthorID != caller {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own projects"})
			return
		}
		var req UpdateProjectRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title and description are required"})
			return
		}
		// Updates run through the same validation as creation
		if msg := validateProjectInput(req.Title, req.Description); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		existing.Title = req.Title             // Replace title
		existing.Description = req.Description // Replace description
		if err := projects.Update(existing); err != nil {
			logrus.WithFields(logrus.Fields{"project_id": id, "error": err.Error()}).Error("Failed to update project")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
			return
		}
		// Return the updated project joined with its author
		updated, err := projects.GetWithAuthor(id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"project_id": id, "error": err.Error()}).Error("Failed to fetch updated project")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
			return
		}
		logrus.WithFields(logrus.Fields{"project_id": id, "author_id": caller}).Info("Project updated")
		c.JSON(http.StatusOK, gin.H{
			"message": "Project updated successfully", // Success message
			"project": updated,                        // Updated project
		})
	}
}

// DeleteProjectHandler deletes an owned project, its attachment rows, and the
// stored files behind them
func DeleteProjectHandler(projects repository.ProjectRepository, files *storage.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerID(c) // Get the authenticated caller
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}
		id, ok := projectID(c) // Parse the project ID
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		existing, err := projects.FindByID(id) // Fetch the existing project
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
				return
			}
			logrus.WithFields(logrus.Fields{"project_id": id, "error": err.Error()}).Error("Failed to fetch project")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
			return
		}
		// Ownership check: only the author may delete
		if existing.AuthorID != caller {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own projects"})
			return
		}
		paths, err := projects.DeleteCascade(id) // Delete project and attachment rows
		if err != nil {
			logrus.WithFields(logrus.Fields{"project_id": id, "error": err.Error()}).Error("Failed to delete project")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
			return
		}
		// Remove the stored bytes; the rows are already gone, so failures only get logged
		for _, p := range paths {
			if err := files.Remove(p); err != nil {
				logrus.WithFields(logrus.Fields{"file_path": p, "error": err.Error()}).Warn("Failed to remove stored file")
			}
		}
		logrus.WithFields(logrus.Fields{"project_id": id, "author_id": caller}).Info("Project deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"}) // Success message
	}
}

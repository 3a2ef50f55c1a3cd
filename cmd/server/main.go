package main

import (
	"log"      // log package is needed for logging
	"net/http" // HTTP status codes

	"projects_platform/internal/api"        // Custom package for API handlers
	"projects_platform/internal/config"     // Custom package for configuration
	"projects_platform/internal/middleware" // Custom package for middleware
	"projects_platform/internal/repository" // Custom package for storage access
	"projects_platform/internal/storage"    // Custom package for uploaded files

	"github.com/gin-contrib/cors" // CORS middleware for Gin
	"github.com/gin-gonic/gin"    // Gin web framework
	"github.com/sirupsen/logrus"  // Logrus for structured logging
	"gorm.io/driver/mysql"        // MySQL driver for GORM
	"gorm.io/gorm"                // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	// TranslateError maps driver duplicate-key failures to gorm.ErrDuplicatedKey
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup the upload directory for attached project files
	fileStore, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		logrus.Fatalf("failed to prepare upload directory: %v", err)
	}

	users := repository.NewUserRepository(db)       // Identity store
	projects := repository.NewProjectRepository(db) // Project store

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	r.Use(cors.Default())        // Allow cross-origin requests
	r.Use(middleware.NoCache())  // Disable client-side caching of API responses

	// Serve stored attachments under a public path outside the API namespace
	r.Static("/uploads", fileStore.Dir())

	// Root route to verify the API is reachable
	r.GET("/api", func(c *gin.Context) {
		c.String(http.StatusOK, "TIC Projects Platform API is running")
	})

	// Auth routes
	r.POST("/auth/register", api.RegisterHandler(users, cfg.JWTSecret)) // Registration endpoint
	r.POST("/auth/login", api.LoginHandler(users, cfg.JWTSecret))       // Login endpoint

	// Public project routes
	r.GET("/projects", api.ListProjectsHandler(projects))    // List projects endpoint
	r.GET("/projects/:id", api.GetProjectHandler(projects))  // Get project endpoint

	// Mutating project routes (protected by JWT)
	protected := r.Group("/projects")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	protected.POST("", api.CreateProjectHandler(projects, fileStore))      // Create project endpoint
	protected.PUT("/:id", api.UpdateProjectHandler(projects))              // Update project endpoint
	protected.DELETE("/:id", api.DeleteProjectHandler(projects, fileStore)) // Delete project endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}

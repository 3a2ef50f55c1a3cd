package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"projects_platform/internal/domain"     // Importing domain models
	"projects_platform/internal/repository" // Storage interfaces
	"projects_platform/internal/utils"      // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // For gorm.ErrRecordNotFound
)

// bcryptCost is the adaptive hashing cost for stored passwords
const bcryptCost = 10

// Request struct for registration
type RegisterRequest struct {
	Email    string `json:"email"`    // Email must be provided
	Password string `json:"password"` // Password must be provided
	Name     string `json:"name"`     // Display name must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email"`    // Email must be provided
	Password string `json:"password"` // Password must be provided
}

// publicUser strips a user down to its public fields
func publicUser(user *domain.User) gin.H {
	return gin.H{
		"id":    user.ID,       // User ID
		"name":  user.Username, // Display name
		"email": user.Email,    // Email
	}
}

// RegisterHandler creates a new user and returns a signed token
func RegisterHandler(users repository.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email, password, and name are required"})
			return
		}
		// All three fields are required
		if req.Email == "" || req.Password == "" || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email, password, and name are required"})
			return
		}
		// Reject an already registered email
		if _, err := users.FindByEmail(req.Email); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			// Unexpected storage failure
			logrus.WithFields(logrus.Fields{"email": req.Email, "error": err.Error()}).Error("Registration lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}
		// The schema also requires a unique username
		if _, err := users.FindByUsername(req.Name); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithFields(logrus.Fields{"name": req.Name, "error": err.Error()}).Error("Registration lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}
		// Hash the password before storage; the plaintext is never retained
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Create the user record
		user := domain.User{Username: req.Name, Email: req.Email, Password: string(hash)}
		if err := users.Insert(&user); err != nil {
			// A concurrent registration can win the race between the lookup and
			// the insert; the unique constraint reports it as a duplicate key
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
				return
			}
			logrus.WithFields(logrus.Fields{"email": req.Email, "error": err.Error()}).Error("Failed to create user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}
		// Issue a signed token for the new identity
		token, err := utils.GenerateJWT(user.ID, user.Email, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("User registered")
		// Return the token and public user fields
		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully", // Success message
			"token":   token,                          // Signed bearer token
			"user":    publicUser(&user),              // Public identity fields
		})
	}
}

// LoginHandler authenticates a user and returns a fresh token
func LoginHandler(users repository.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}
		// Both fields are required
		if req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}
		user, err := users.FindByEmail(req.Email) // Fetch user by email
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message whether the email or the password was wrong
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		} else if err != nil {
			// Unexpected storage failure, not a credential problem
			logrus.WithFields(logrus.Fields{"email": req.Email, "error": err.Error()}).Error("Login lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		// Issue a fresh token
		token, err := utils.GenerateJWT(user.ID, user.Email, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token and public user fields
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful", // Success message
			"token":   token,              // Signed bearer token
			"user":    publicUser(user),   // Public identity fields
		})
	}
}

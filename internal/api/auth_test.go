package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"projects_platform/internal/domain"
	"projects_platform/internal/repository"
	"projects_platform/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// fakeUserRepo is an in-memory UserRepository for handler tests
type fakeUserRepo struct {
	users     []*domain.User
	findErr   error // Returned by lookups when set, simulating a storage outage
	insertErr error
}

func (f *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Insert(user *domain.User) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	user.ID = uint(len(f.users) + 1)
	user.CreatedAt = time.Now()
	f.users = append(f.users, user)
	return nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newAuthRouter(users repository.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", RegisterHandler(users, testSecret))
	r.POST("/auth/login", LoginHandler(users, testSecret))
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegisterHandler(t *testing.T) {
	t.Run("registers a new user and issues a token", func(t *testing.T) {
		repo := &fakeUserRepo{}
		r := newAuthRouter(repo)

		w := postJSON(t, r, "/auth/register", gin.H{"email": "alice@example.com", "password": "secret1", "name": "Alice"})
		require.Equal(t, http.StatusCreated, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, "User registered successfully", body["message"])

		// The token decodes to the stored identity
		claims, err := utils.ParseJWT(body["token"].(string), testSecret)
		require.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)

		// Only public fields come back
		user := body["user"].(map[string]any)
		assert.Equal(t, "Alice", user["name"])
		assert.Equal(t, "alice@example.com", user["email"])
		assert.NotContains(t, user, "password")

		// The stored password is a bcrypt hash of the plaintext
		require.Len(t, repo.users, 1)
		assert.NotEqual(t, "secret1", repo.users[0].Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[0].Password), []byte("secret1")))
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		r := newAuthRouter(&fakeUserRepo{})

		w := postJSON(t, r, "/auth/register", gin.H{"email": "alice@example.com", "password": "secret1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Email, password, and name are required")
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := &fakeUserRepo{}
		r := newAuthRouter(repo)

		w := postJSON(t, r, "/auth/register", gin.H{"email": "alice@example.com", "password": "secret1", "name": "Alice"})
		require.Equal(t, http.StatusCreated, w.Code)

		w = postJSON(t, r, "/auth/register", gin.H{"email": "alice@example.com", "password": "other-pass", "name": "Alicia"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "User already exists")
	})

	t.Run("maps a duplicate-key insert to conflict", func(t *testing.T) {
		// A concurrent registration can slip past the lookup; the unique
		// constraint then rejects the insert with a duplicate-key error
		repo := &fakeUserRepo{insertErr: gorm.ErrDuplicatedKey}
		r := newAuthRouter(repo)

		w := postJSON(t, r, "/auth/register", gin.H{"email": "alice@example.com", "password": "secret1", "name": "Alice"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "User already exists")
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		repo := &fakeUserRepo{}
		r := newAuthRouter(repo)

		w := postJSON(t, r, "/auth/register", gin.H{"email": "alice@example.com", "password": "secret1", "name": "Alice"})
		require.Equal(t, http.StatusCreated, w.Code)

		w = postJSON(t, r, "/auth/register", gin.H{"email": "alice2@example.com", "password": "secret1", "name": "Alice"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "User already exists")
	})
}

func TestLoginHandler(t *testing.T) {
	// Seed one account through the register handler
	repo := &fakeUserRepo{}
	r := newAuthRouter(repo)
	w := postJSON(t, r, "/auth/register", gin.H{"email": "alice@example.com", "password": "secret1", "name": "Alice"})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("logs in with valid credentials", func(t *testing.T) {
		w := postJSON(t, r, "/auth/login", gin.H{"email": "alice@example.com", "password": "secret1"})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, "Login successful", body["message"])

		// The fresh token carries the same identity
		claims, err := utils.ParseJWT(body["token"].(string), testSecret)
		require.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		w := postJSON(t, r, "/auth/login", gin.H{"email": "nobody@example.com", "password": "secret1"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid email or password")
	})

	t.Run("rejects wrong password with the same message", func(t *testing.T) {
		w := postJSON(t, r, "/auth/login", gin.H{"email": "alice@example.com", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid email or password")
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		w := postJSON(t, r, "/auth/login", gin.H{"email": "alice@example.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Email and password are required")
	})

	t.Run("reports a storage failure as a server error", func(t *testing.T) {
		// A lookup error that is not record-not-found must not masquerade
		// as bad credentials
		broken := newAuthRouter(&fakeUserRepo{findErr: gorm.ErrInvalidDB})

		w := postJSON(t, broken, "/auth/login", gin.H{"email": "alice@example.com", "password": "secret1"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Failed to log in")
	})
}

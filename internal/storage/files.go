package storage

import (
	"errors"         // Sentinel errors
	"mime/multipart" // Uploaded file headers
	"os"             // Filesystem operations
	"path"           // Public URL paths
	"path/filepath"  // Filesystem paths
	"strconv"        // Int64 to string conversion
	"time"           // Time-based file name prefix

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Random file name suffix
)

// MaxUploadBytes caps uploaded files at 20 MiB
const MaxUploadBytes = 20 << 20

// publicPrefix is the URL path uploaded files are served under
const publicPrefix = "/uploads"

// ErrFileTooLarge is returned when an upload exceeds MaxUploadBytes
var ErrFileTooLarge = errors.New("file exceeds the upload size limit")

// FileStore persists uploaded project files under collision-resistant names
type FileStore struct {
	dir string // Directory the files live in
}

// NewFileStore creates the upload directory if needed and returns a store over it
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err // Directory could not be created
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory the store writes to
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes an uploaded file under a generated unique name and returns its
// public path. The size cap is enforced before anything touches the disk.
func (s *FileStore) Save(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > MaxUploadBytes {
		return "", ErrFileTooLarge // Reject before writing
	}
	// Millisecond timestamp prefix plus a random suffix, keeping the original extension
	name := strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(s.dir, name)); err != nil {
		return "", err // Write failed
	}
	return path.Join(publicPrefix, name), nil // Public path the file is served under
}

// Remove deletes the stored file behind a public path
func (s *FileStore) Remove(publicPath string) error {
	return os.Remove(filepath.Join(s.dir, path.Base(publicPath))) // Map public path back to disk
}

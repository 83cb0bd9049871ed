// internal/domain/upload/service.go
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/config"
)

// Service handles product image uploads
type Service struct {
	config *config.Config
}

// NewService creates a new upload service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// UploadResult represents a stored image
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

// ValidateImage checks the file against the extension allow-list and
// the configured size ceiling
func (s *Service) ValidateImage(header *multipart.FileHeader) error {
	if header.Size > s.config.Upload.MaxSize {
		return fmt.Errorf("file too large: maximum size is %d bytes", s.config.Upload.MaxSize)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	for _, allowed := range s.config.Upload.AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}

	return fmt.Errorf("file type not allowed: allowed types are %s", strings.Join(s.config.Upload.AllowedExtensions, ", "))
}

// SaveImage validates and stores an uploaded image under the upload
// directory with a collision-resistant name
func (s *Service) SaveImage(header *multipart.FileHeader) (*UploadResult, error) {
	if err := s.ValidateImage(header); err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.config.Upload.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := GenerateFilename(ext)
	dstPath := filepath.Join(s.config.Upload.Dir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &UploadResult{
		Filename: filename,
		URL:      s.config.Upload.BaseURL + "/" + filename,
		Size:     size,
	}, nil
}

// GenerateFilename builds a collision-resistant filename for ext,
// which must include the leading dot
func GenerateFilename(ext string) string {
	return fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.New().String(), ext)
}

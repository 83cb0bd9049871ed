// internal/domain/upload/service_test.go
package upload

import (
	"mime/multipart"
	"regexp"
	"testing"

	"github.com/your-org/storefront-backend/internal/config"
)

func testService() *Service {
	return NewService(&config.Config{
		Upload: config.UploadConfig{
			Dir:               "./uploads",
			BaseURL:           "/uploads",
			MaxSize:           5242880,
			AllowedExtensions: []string{"jpg", "jpeg", "png", "gif", "webp"},
		},
	})
}

func TestValidateImageAllowedExtensions(t *testing.T) {
	s := testService()

	for _, name := range []string{"photo.jpg", "photo.JPEG", "banner.png", "anim.gif", "hero.webp"} {
		header := &multipart.FileHeader{Filename: name, Size: 1024}
		if err := s.ValidateImage(header); err != nil {
			t.Fatalf("%s should be accepted: %v", name, err)
		}
	}
}

func TestValidateImageRejectsDisallowedExtension(t *testing.T) {
	s := testService()

	for _, name := range []string{"script.php", "archive.zip", "doc.pdf", "noext"} {
		header := &multipart.FileHeader{Filename: name, Size: 1024}
		if err := s.ValidateImage(header); err == nil {
			t.Fatalf("%s should be rejected", name)
		}
	}
}

func TestValidateImageRejectsOversizedFile(t *testing.T) {
	s := testService()

	header := &multipart.FileHeader{Filename: "big.jpg", Size: 5242881}
	if err := s.ValidateImage(header); err == nil {
		t.Fatal("file above size ceiling should be rejected")
	}

	header.Size = 5242880
	if err := s.ValidateImage(header); err != nil {
		t.Fatalf("file at size ceiling should be accepted: %v", err)
	}
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename(".png")

	pattern := regexp.MustCompile(`^\d+_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.png$`)
	if !pattern.MatchString(name) {
		t.Fatalf("filename %q does not match expected pattern", name)
	}

	if GenerateFilename(".png") == name {
		t.Fatal("filenames should be collision-resistant")
	}
}

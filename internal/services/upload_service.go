package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxImageSize = 2 << 20 // 2MB, same cap the old portal enforced on uploads

// UploadService stores candidate photos and signatures under the configured
// files root and hands back an opaque reference path. It never inspects the
// image beyond extension and size; the stage writer only cares that a
// non-empty reference exists.
type UploadService struct {
	FilesRoot string
}

func NewUploadService(filesRoot string) *UploadService {
	return &UploadService{FilesRoot: filepath.Clean(filesRoot)}
}

// SaveImage writes the upload to disk under a fresh uuid name and returns the
// reference to persist. Only jpeg/png up to 2MB are accepted.
func (s *UploadService) SaveImage(file io.Reader, originalName string, size int64) (string, error) {
	if size <= 0 || size > maxImageSize {
		return "", ErrInvalidImage
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", ErrInvalidImage
	}

	dir := filepath.Join(s.FilesRoot, "uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, maxImageSize+1)); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return "/uploads/" + name, nil
}

// Resolve maps a stored reference back to a path under the files root.
func (s *UploadService) Resolve(ref string) (string, error) {
	clean := filepath.Clean("/" + ref)
	if !strings.HasPrefix(clean, "/uploads/") {
		return "", fmt.Errorf("unknown file reference: %s", ref)
	}
	return filepath.Join(s.FilesRoot, clean), nil
}

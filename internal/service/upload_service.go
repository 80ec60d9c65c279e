package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/trade-journal/pkg/token"
)

var (
	ErrFileTooLarge        = errors.New("file exceeds the upload size limit")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// allowedExtensions are the image types accepted for screenshots and
// journal attachments
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// UploadService stores uploaded images on disk under random token
// filenames and hands back a public URL
type UploadService struct {
	dir      string
	baseURL  string
	maxBytes int64
}

// NewUploadService creates a new UploadService
func NewUploadService(dir, baseURL string, maxSizeMB int64) *UploadService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &UploadService{
		dir:      dir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxSizeMB * 1024 * 1024,
	}
}

// Save writes one uploaded file and returns its public URL
func (s *UploadService) Save(header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxBytes {
		return "", ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedFileType
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", err
	}

	name, err := token.New(24)
	if err != nil {
		return "", err
	}
	filename := name + ext

	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/uploads/%s", s.baseURL, filename), nil
}

// Dir returns the storage directory for static file serving
func (s *UploadService) Dir() string {
	return s.dir
}

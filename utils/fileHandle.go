package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"lsf/config"
	"lsf/models"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxUploadSize caps a single upload at 100 MiB. Declared as a variable so
// tests can lower it.
var MaxUploadSize int64 = 100 * 1024 * 1024

var allowedMimeTypes = map[string]bool{
	// Documents
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true, // PPTX
	"application/vnd.ms-powerpoint": true, // PPT
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true, // DOCX
	"application/msword": true, // DOC
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true, // XLSX
	"application/vnd.ms-excel": true, // XLS

	// Images
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,

	// Videos
	"video/mp4":       true,
	"video/avi":       true,
	"video/mov":       true,
	"video/wmv":       true,
	"video/webm":      true,
	"video/quicktime": true,

	// Audio
	"audio/mp3":  true,
	"audio/wav":  true,
	"audio/ogg":  true,
	"audio/mpeg": true,
	"audio/mp4":  true,

	// Archives
	"application/zip":              true,
	"application/x-rar-compressed": true,
	"application/x-7z-compressed":  true,
}

// IsAllowedMimeType reports whether a MIME type is in the upload allow-list.
func IsAllowedMimeType(mimeType string) bool {
	return allowedMimeTypes[mimeType]
}

// DetectMimeType returns the declared Content-Type of an uploaded part,
// sniffing the payload when the client declared nothing useful.
func DetectMimeType(file *multipart.FileHeader) string {
	declared := file.Header.Get("Content-Type")
	// Strip parameters like "; charset=utf-8"
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}

	src, err := file.Open()
	if err != nil {
		return declared
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return declared
	}
	return detected.String()
}

// StorageDir returns the storage root for a category. Background images live
// under an images root; everything else under a files root.
func StorageDir(category string) string {
	if category == models.CategoryBackground {
		return filepath.Join(config.AppConfig.UploadDir, "images")
	}
	return filepath.Join(config.AppConfig.UploadDir, "files")
}

// FileURL builds the public download URL for a stored filename, selecting
// the root matching its category.
func FileURL(category, filename string) string {
	if filename == "" {
		return ""
	}
	if category == models.CategoryBackground {
		return "/uploads/images/" + filename
	}
	return "/uploads/files/" + filename
}

// SaveUploadedFile persists a multipart upload under the category's storage
// root and returns the stored filename and the full path. The stored name is
// prefixed with a random identifier so it never collides and cannot be
// guessed from the original name alone.
func SaveUploadedFile(file *multipart.FileHeader, category string) (string, string, error) {
	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	destDir := StorageDir(category)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", "", err
	}

	storedName := uuid.New().String() + "-" + filepath.Base(file.Filename)
	filePath := filepath.Join(destDir, storedName)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", err
	}

	return storedName, filePath, nil
}

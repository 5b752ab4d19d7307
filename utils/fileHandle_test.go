package utils_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lsf/config"
	"lsf/models"
	"lsf/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a *multipart.FileHeader the way an HTTP upload would.
func fileHeader(t *testing.T, filename, contentType string, payload []byte) *multipart.FileHeader {
	t.Helper()

	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	require.NotEmpty(t, form.File["file"])
	return form.File["file"][0]
}

func setupConfig(t *testing.T) {
	t.Helper()
	config.LoadConfig()
	config.AppConfig.UploadDir = t.TempDir()
}

func TestSaveUploadedFile(t *testing.T) {
	setupConfig(t)

	fh := fileHeader(t, "report.pdf", "application/pdf", []byte("%PDF-1.4 data"))
	storedName, path, err := utils.SaveUploadedFile(fh, models.CategoryResources)
	require.NoError(t, err)

	// Random prefix, original name kept as suffix
	assert.True(t, strings.HasSuffix(storedName, "-report.pdf"))
	assert.Greater(t, len(storedName), len("report.pdf"))

	assert.Equal(t, filepath.Join(config.AppConfig.UploadDir, "files", storedName), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 data"), content)
}

func TestSaveUploadedFileNamesNeverCollide(t *testing.T) {
	setupConfig(t)

	fh := fileHeader(t, "same.pdf", "application/pdf", []byte("x"))
	nameA, _, err := utils.SaveUploadedFile(fh, models.CategoryResources)
	require.NoError(t, err)
	nameB, _, err := utils.SaveUploadedFile(fh, models.CategoryResources)
	require.NoError(t, err)

	assert.NotEqual(t, nameA, nameB)
}

func TestSaveUploadedFileBackgroundRoot(t *testing.T) {
	setupConfig(t)

	fh := fileHeader(t, "bg.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	_, path, err := utils.SaveUploadedFile(fh, models.CategoryBackground)
	require.NoError(t, err)
	assert.Contains(t, path, filepath.Join(config.AppConfig.UploadDir, "images"))
}

func TestFileURL(t *testing.T) {
	assert.Equal(t, "/uploads/images/a.png", utils.FileURL(models.CategoryBackground, "a.png"))
	assert.Equal(t, "/uploads/files/b.pdf", utils.FileURL(models.CategoryResources, "b.pdf"))
	assert.Equal(t, "/uploads/files/c.pdf", utils.FileURL(models.CategoryModule, "c.pdf"))
	assert.Equal(t, "", utils.FileURL(models.CategoryModule, ""))
}

func TestIsAllowedMimeType(t *testing.T) {
	allowed := []string{
		"application/pdf",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"image/png",
		"video/quicktime",
		"audio/mpeg",
		"application/zip",
	}
	for _, mt := range allowed {
		assert.True(t, utils.IsAllowedMimeType(mt), mt)
	}

	denied := []string{
		"application/x-msdownload",
		"text/html",
		"application/octet-stream",
		"",
	}
	for _, mt := range denied {
		assert.False(t, utils.IsAllowedMimeType(mt), mt)
	}
}

func TestDetectMimeTypeDeclared(t *testing.T) {
	fh := fileHeader(t, "doc.pdf", "application/pdf", []byte("ignored"))
	assert.Equal(t, "application/pdf", utils.DetectMimeType(fh))
}

func TestDetectMimeTypeStripsParameters(t *testing.T) {
	fh := fileHeader(t, "notes.svg", "image/svg+xml; charset=utf-8", []byte("<svg/>"))
	assert.Equal(t, "image/svg+xml", utils.DetectMimeType(fh))
}

func TestDetectMimeTypeSniffsWhenUndeclared(t *testing.T) {
	fh := fileHeader(t, "mystery", "application/octet-stream", []byte("%PDF-1.4 content here"))
	assert.Equal(t, "application/pdf", utils.DetectMimeType(fh))
}

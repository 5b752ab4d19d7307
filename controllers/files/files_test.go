package filesController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lsf/config"
	"lsf/database"
	"lsf/models"
	authRoutes "lsf/routers/authRoutes"
	fileRoutes "lsf/routers/fileRoutes"
	"lsf/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()
	config.AppConfig.UploadDir = t.TempDir()
	config.AppConfig.SaltRound = bcrypt.MinCost

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	database.Database = database.DbInstance{Db: db}
	require.NoError(t, database.SeedDatabase(db))

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	fileRoutes.SetupFileRoutes(app)
	return app
}

func loginToken(t *testing.T, app *fiber.App) string {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"password":%q}`,
		config.AppConfig.AdminUsername, config.AppConfig.AdminPassword)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	resp.Body.Close()
	require.NotEmpty(t, parsed.Token)
	return parsed.Token
}

// uploadRequest builds a multipart request with one file part and optional
// extra form fields.
func uploadRequest(t *testing.T, path, field, filename, contentType string, payload []byte, fields map[string]string) *http.Request {
	t.Helper()

	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func doUpload(t *testing.T, app *fiber.App, req *http.Request, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	_ = json.Unmarshal(raw, &parsed)
	return resp, parsed
}

func listCategory(t *testing.T, app *fiber.App, path string) []map[string]interface{} {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var files []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&files))
	resp.Body.Close()
	return files
}

var pdfPayload = []byte("%PDF-1.4 test document payload")

func TestUploadResourceAndListOrder(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	first := uploadRequest(t, "/api/files/upload/resources", "file", "first.pdf", "application/pdf", pdfPayload, map[string]string{"description": "first doc"})
	resp, parsed := doUpload(t, app, first, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, parsed["success"])

	file := parsed["file"].(map[string]interface{})
	assert.Equal(t, "first.pdf", file["originalName"])
	assert.Equal(t, "application/pdf", file["fileType"])
	assert.Equal(t, "first doc", file["description"])
	storedName := file["filename"].(string)
	assert.True(t, strings.HasSuffix(storedName, "-first.pdf"))
	assert.NotEqual(t, "first.pdf", storedName)
	assert.Equal(t, "/uploads/files/"+storedName, file["url"])

	// Payload landed under the files root
	_, err := os.Stat(filepath.Join(config.AppConfig.UploadDir, "files", storedName))
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	second := uploadRequest(t, "/api/files/upload/resources", "file", "second.pdf", "application/pdf", pdfPayload, nil)
	resp2, _ := doUpload(t, app, second, token)
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	files := listCategory(t, app, "/api/files/category/resources")
	require.Len(t, files, 2)
	assert.Equal(t, "second.pdf", files[0]["originalName"], "most recent upload listed first")
	assert.Equal(t, "first.pdf", files[1]["originalName"])
}

func TestUploadRejectsDisallowedMime(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	req := uploadRequest(t, "/api/files/upload/resources", "file", "evil.exe", "application/x-msdownload", []byte("MZ"), nil)
	resp, _ := doUpload(t, app, req, token)
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	files := listCategory(t, app, "/api/files/category/resources")
	assert.Empty(t, files)
}

func TestUploadRejectsOversize(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	oldLimit := utils.MaxUploadSize
	utils.MaxUploadSize = 10
	defer func() { utils.MaxUploadSize = oldLimit }()

	req := uploadRequest(t, "/api/files/upload/resources", "file", "big.pdf", "application/pdf", pdfPayload, nil)
	resp, _ := doUpload(t, app, req, token)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestUploadModuleFile(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	req := uploadRequest(t, "/api/files/upload/module/1", "file", "slides.pdf", "application/pdf", pdfPayload, map[string]string{"description": "week 1"})
	resp, parsed := doUpload(t, app, req, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	file := parsed["file"].(map[string]interface{})
	assert.Equal(t, float64(1), file["moduleId"])

	files := listCategory(t, app, "/api/files/category/module?moduleId=1")
	require.Len(t, files, 1)
	assert.Equal(t, "slides.pdf", files[0]["originalName"])

	other := listCategory(t, app, "/api/files/category/module?moduleId=2")
	assert.Empty(t, other)
}

func TestUploadModuleMissingModule(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	req := uploadRequest(t, "/api/files/upload/module/999", "file", "slides.pdf", "application/pdf", pdfPayload, nil)
	resp, _ := doUpload(t, app, req, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploadBackgroundCreatesNoRow(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	png := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 64)...)
	req := uploadRequest(t, "/api/files/upload/background", "image", "bg.png", "image/png", png, nil)
	resp, parsed := doUpload(t, app, req, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	image := parsed["image"].(map[string]interface{})
	storedName := image["filename"].(string)
	assert.Equal(t, "/uploads/images/"+storedName, image["url"])

	// Stored under the images root, with no files row
	_, err := os.Stat(filepath.Join(config.AppConfig.UploadDir, "images", storedName))
	require.NoError(t, err)

	var count int64
	database.Database.Db.Model(&models.StoredFile{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUploadWithoutFile(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	req := httptest.NewRequest(http.MethodPost, "/api/files/upload/resources", nil)
	resp, _ := doUpload(t, app, req, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadRequiresAuth(t *testing.T) {
	app := setupTestApp(t)

	req := uploadRequest(t, "/api/files/upload/resources", "file", "doc.pdf", "application/pdf", pdfPayload, nil)
	resp, _ := doUpload(t, app, req, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDeleteFileNotFound(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	req := httptest.NewRequest(http.MethodDelete, "/api/files/999", nil)
	resp, _ := doUpload(t, app, req, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteFileSurvivesMissingPayload(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	up := uploadRequest(t, "/api/files/upload/resources", "file", "doc.pdf", "application/pdf", pdfPayload, nil)
	resp, parsed := doUpload(t, app, up, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	file := parsed["file"].(map[string]interface{})
	id := int(file["id"].(float64))
	storedName := file["filename"].(string)

	// Simulate the unlink step failing: the payload is already gone
	require.NoError(t, os.Remove(filepath.Join(config.AppConfig.UploadDir, "files", storedName)))

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/files/%d", id), nil)
	delResp, delParsed := doUpload(t, app, req, token)
	require.Equal(t, http.StatusOK, delResp.StatusCode)
	assert.Equal(t, true, delParsed["success"])

	files := listCategory(t, app, "/api/files/category/resources")
	assert.Empty(t, files)
}

func TestDeleteFileRemovesRowAndPayload(t *testing.T) {
	app := setupTestApp(t)
	token := loginToken(t, app)

	up := uploadRequest(t, "/api/files/upload/testimonials", "file", "story.pdf", "application/pdf", pdfPayload, nil)
	resp, parsed := doUpload(t, app, up, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	file := parsed["file"].(map[string]interface{})
	id := int(file["id"].(float64))
	storedName := file["filename"].(string)
	payload := filepath.Join(config.AppConfig.UploadDir, "files", storedName)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/files/%d", id), nil)
	delResp, _ := doUpload(t, app, req, token)
	require.Equal(t, http.StatusOK, delResp.StatusCode)

	_, err := os.Stat(payload)
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, listCategory(t, app, "/api/files/category/testimonials"))
}

func TestDeleteFileRequiresAuth(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/files/1", nil)
	resp, _ := doUpload(t, app, req, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

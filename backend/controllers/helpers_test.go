package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"project/backend/config"
	"project/backend/models"
	"project/backend/routes"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	App *fiber.App
	DB  *gorm.DB
	Cfg *config.Config
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "testsecret",
		DBName:    "test",
		UploadDir: t.TempDir(),
	}
	for _, dir := range []string{"avatars", "submissions"} {
		require.NoError(t, os.MkdirAll(filepath.Join(cfg.UploadDir, dir), 0o755))
	}

	app := fiber.New(fiber.Config{BodyLimit: 60 * 1024 * 1024})
	routes.SetupRoutes(app, db, cfg, nil)

	return &testEnv{App: app, DB: db, Cfg: cfg}
}

func (e *testEnv) createUser(t *testing.T, email, role string, points int) (models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Email:    email,
		Password: string(hashed),
		Name:     "Test " + role,
		Role:     role,
		Points:   points,
		Level:    points/100 + 1,
	}
	require.NoError(t, e.DB.Create(&user).Error)

	token, err := utils.GenerateJWTToken(user.ID, user.Role, e.Cfg)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) jsonRequest(t *testing.T, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) uploadRequest(t *testing.T, path, token string, fields map[string]string, fileField, filename string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	part, err := writer.CreateFormFile(fileField, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("test file content"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

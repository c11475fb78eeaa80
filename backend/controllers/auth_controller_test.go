package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"project/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesStudentWithToken(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.jsonRequest(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "New Student",
		"email":    "new@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.NotEmpty(t, result["token"])
	user := result["user"].(map[string]interface{})
	assert.Equal(t, "student", user["role"])
	assert.Equal(t, float64(1), user["level"])

	// A fresh student already has a leaderboard entry at zero points
	var entry models.RankingEntry
	require.NoError(t, env.DB.First(&entry, "user_id = ?", user["id"]).Error)
	assert.Equal(t, 0, entry.Points)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "taken@example.com", models.RoleStudent, 0)

	resp := env.jsonRequest(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Second",
		"email":    "taken@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegisterValidatesInput(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.jsonRequest(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "X",
		"email":    "not-an-email",
		"password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "student@example.com", models.RoleStudent, 0)

	resp := env.jsonRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "student@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginFirstEverStartsStreak(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "student@example.com", models.RoleStudent, 0)

	resp := env.jsonRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "student@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	user := result["user"].(map[string]interface{})
	assert.Equal(t, float64(1), user["streak"])
	assert.Equal(t, float64(5), user["points"])
}

func TestLoginSameDayDoesNotRepay(t *testing.T) {
	env := setupTestEnv(t)
	student, _ := env.createUser(t, "student@example.com", models.RoleStudent, 0)

	now := time.Now().UTC()
	require.NoError(t, env.DB.Model(&models.User{}).Where("id = ?", student.ID).
		Updates(map[string]interface{}{"last_login": now, "streak": 1, "points": 5}).Error)

	resp := env.jsonRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "student@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	user := result["user"].(map[string]interface{})
	assert.Equal(t, float64(1), user["streak"])
	assert.Equal(t, float64(5), user["points"])
}

func TestLoginConsecutiveDayExtendsStreak(t *testing.T) {
	env := setupTestEnv(t)
	student, _ := env.createUser(t, "student@example.com", models.RoleStudent, 10)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	require.NoError(t, env.DB.Model(&models.User{}).Where("id = ?", student.ID).
		Updates(map[string]interface{}{"last_login": yesterday, "streak": 2}).Error)

	resp := env.jsonRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "student@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	user := result["user"].(map[string]interface{})
	// streak reaches 3, so the base 5 gets the +5 streak bonus
	assert.Equal(t, float64(3), user["streak"])
	assert.Equal(t, float64(20), user["points"])
}

func TestLoginMissedDayResetsStreak(t *testing.T) {
	env := setupTestEnv(t)
	student, _ := env.createUser(t, "student@example.com", models.RoleStudent, 0)

	threeDaysAgo := time.Now().UTC().AddDate(0, 0, -3)
	require.NoError(t, env.DB.Model(&models.User{}).Where("id = ?", student.ID).
		Updates(map[string]interface{}{"last_login": threeDaysAgo, "streak": 6}).Error)

	resp := env.jsonRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "student@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	user := result["user"].(map[string]interface{})
	assert.Equal(t, float64(1), user["streak"])
	assert.Equal(t, float64(5), user["points"])
}

func TestRefreshRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.jsonRequest(t, http.MethodPost, "/api/auth/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshReturnsNewToken(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "student@example.com", models.RoleStudent, 0)

	resp := env.jsonRequest(t, http.MethodPost, "/api/auth/refresh", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.NotEmpty(t, result["token"])
}

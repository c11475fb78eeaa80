package controllers_test

import (
	"net/http"
	"testing"

	"project/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "student@example.com", models.RoleStudent, 42)

	resp := env.jsonRequest(t, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, "student@example.com", result["email"])
	assert.Equal(t, float64(42), result["points"])
	_, hasPassword := result["password"]
	assert.False(t, hasPassword)
}

func TestStudentCannotViewOtherProfiles(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "student@example.com", models.RoleStudent, 0)
	other, _ := env.createUser(t, "other@example.com", models.RoleStudent, 0)

	resp := env.jsonRequest(t, http.MethodGet, "/api/users/"+other.ID, token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestTeacherCanViewAnyProfile(t *testing.T) {
	env := setupTestEnv(t)
	student, _ := env.createUser(t, "student@example.com", models.RoleStudent, 0)
	_, teacherToken := env.createUser(t, "teacher@example.com", models.RoleTeacher, 0)

	resp := env.jsonRequest(t, http.MethodGet, "/api/users/"+student.ID, teacherToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListUsersRequiresTeacher(t *testing.T) {
	env := setupTestEnv(t)
	_, studentToken := env.createUser(t, "student@example.com", models.RoleStudent, 0)
	_, teacherToken := env.createUser(t, "teacher@example.com", models.RoleTeacher, 0)

	resp := env.jsonRequest(t, http.MethodGet, "/api/users/", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.jsonRequest(t, http.MethodGet, "/api/users/", teacherToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpdateUserDerivedLevelWins(t *testing.T) {
	env := setupTestEnv(t)
	student, token := env.createUser(t, "student@example.com", models.RoleStudent, 0)

	// Client asks for points 250 and a contradicting level 9
	resp := env.jsonRequest(t, http.MethodPut, "/api/users/"+student.ID, token,
		map[string]interface{}{"points": 250, "level": 9})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, float64(250), result["points"])
	assert.Equal(t, float64(3), result["level"])

	// The projection follows the corrected values
	var entry models.RankingEntry
	require.NoError(t, env.DB.First(&entry, "user_id = ?", student.ID).Error)
	assert.Equal(t, 250, entry.Points)
	assert.Equal(t, 3, entry.Level)
}

func TestUpdateUserClampsValues(t *testing.T) {
	env := setupTestEnv(t)
	student, token := env.createUser(t, "student@example.com", models.RoleStudent, 50)

	resp := env.jsonRequest(t, http.MethodPut, "/api/users/"+student.ID, token,
		map[string]interface{}{"points": -20, "progress": 150})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, float64(0), result["points"])
	assert.Equal(t, float64(100), result["progress"])
}

func TestChangePassword(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "student@example.com", models.RoleStudent, 0)

	resp := env.jsonRequest(t, http.MethodPost, "/api/users/change-password", token,
		map[string]string{
			"currentPassword": "wrong",
			"newPassword":     "newpassword",
		})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.jsonRequest(t, http.MethodPost, "/api/users/change-password", token,
		map[string]string{
			"currentPassword": "password123",
			"newPassword":     "newpassword",
		})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Old password no longer works
	resp = env.jsonRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "student@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPersonalCourses(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "student@example.com", models.RoleStudent, 0)

	course := models.Course{Category: "sao", Title: "Basics"}
	require.NoError(t, env.DB.Create(&course).Error)

	resp := env.jsonRequest(t, http.MethodPost, "/api/users/personal-courses", token,
		map[string]string{"courseId": course.ID})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	courses := result["personalCourses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, course.ID, courses[0])

	resp = env.jsonRequest(t, http.MethodDelete, "/api/users/personal-courses/"+course.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result = decodeBody(t, resp)
	assert.Empty(t, result["personalCourses"])
}

func TestAddUnknownPersonalCourse(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "student@example.com", models.RoleStudent, 0)

	resp := env.jsonRequest(t, http.MethodPost, "/api/users/personal-courses", token,
		map[string]string{"courseId": "missing"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

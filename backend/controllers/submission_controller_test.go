package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"project/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPracticeUploadAutoApproves(t *testing.T) {
	env := setupTestEnv(t)
	student, token := env.createUser(t, "student@example.com", models.RoleStudent, 0)

	resp := env.uploadRequest(t, "/api/submissions", token, map[string]string{
		"type": "practice",
		"note": "my recording",
	}, "file", "practice.mp4")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	result := decodeBody(t, resp)
	submission := result["submission"].(map[string]interface{})
	assert.Equal(t, "approved", submission["status"])
	assert.Equal(t, float64(10), submission["pointsAwarded"])

	var updated models.User
	require.NoError(t, env.DB.First(&updated, "id = ?", student.ID).Error)
	assert.Equal(t, 10, updated.Points)
	assert.Equal(t, 2, updated.Progress)
}

func TestChallengeUploadStaysPending(t *testing.T) {
	env := setupTestEnv(t)
	student, token := env.createUser(t, "student@example.com", models.RoleStudent, 0)

	resp := env.uploadRequest(t, "/api/submissions", token, map[string]string{
		"type": "challenge",
	}, "file", "challenge.mp4")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	result := decodeBody(t, resp)
	submission := result["submission"].(map[string]interface{})
	assert.Equal(t, "pending", submission["status"])

	var updated models.User
	require.NoError(t, env.DB.First(&updated, "id = ?", student.ID).Error)
	assert.Equal(t, 0, updated.Points)
}

func TestChallengeDailyLimit(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "student@example.com", models.RoleStudent, 0)

	resp := env.uploadRequest(t, "/api/submissions", token,
		map[string]string{"type": "challenge"}, "file", "first.mp4")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.uploadRequest(t, "/api/submissions", token,
		map[string]string{"type": "challenge"}, "file", "second.mp4")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChallengeRejectedAllowsResubmit(t *testing.T) {
	env := setupTestEnv(t)
	student, token := env.createUser(t, "student@example.com", models.RoleStudent, 0)

	rejected := models.Submission{
		UserID: student.ID,
		Type:   models.SubmissionTypeChallenge,
		Status: models.SubmissionRejected,
	}
	require.NoError(t, env.DB.Create(&rejected).Error)

	resp := env.uploadRequest(t, "/api/submissions", token,
		map[string]string{"type": "challenge"}, "file", "retry.mp4")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestUploadRejectsUnknownFileType(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUser(t, "student@example.com", models.RoleStudent, 0)

	resp := env.uploadRequest(t, "/api/submissions", token,
		map[string]string{"type": "practice"}, "file", "malware.exe")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReviewApprovalAwardsPoints(t *testing.T) {
	env := setupTestEnv(t)
	student, _ := env.createUser(t, "student@example.com", models.RoleStudent, 95)
	_, teacherToken := env.createUser(t, "teacher@example.com", models.RoleTeacher, 0)

	submission := models.Submission{
		UserID: student.ID,
		Type:   models.SubmissionTypeChallenge,
		Status: models.SubmissionPending,
	}
	require.NoError(t, env.DB.Create(&submission).Error)

	resp := env.jsonRequest(t, http.MethodPut, "/api/submissions/"+submission.ID+"/review",
		teacherToken, map[string]interface{}{
			"status":        "approved",
			"pointsAwarded": 15,
		})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, "approved", result["status"])
	assert.NotEmpty(t, result["reviewedAt"])

	var updated models.User
	require.NoError(t, env.DB.First(&updated, "id = ?", student.ID).Error)
	assert.Equal(t, 110, updated.Points)
	assert.Equal(t, 2, updated.Level)
	assert.Equal(t, 5, updated.Progress)
}

func TestReviewRejectionRequiresComment(t *testing.T) {
	env := setupTestEnv(t)
	student, _ := env.createUser(t, "student@example.com", models.RoleStudent, 0)
	_, teacherToken := env.createUser(t, "teacher@example.com", models.RoleTeacher, 0)

	submission := models.Submission{
		UserID: student.ID,
		Type:   models.SubmissionTypeChallenge,
		Status: models.SubmissionPending,
	}
	require.NoError(t, env.DB.Create(&submission).Error)

	resp := env.jsonRequest(t, http.MethodPut, "/api/submissions/"+submission.ID+"/review",
		teacherToken, map[string]interface{}{"status": "rejected"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReviewIsSingleShot(t *testing.T) {
	env := setupTestEnv(t)
	student, _ := env.createUser(t, "student@example.com", models.RoleStudent, 0)
	_, teacherToken := env.createUser(t, "teacher@example.com", models.RoleTeacher, 0)

	submission := models.Submission{
		UserID: student.ID,
		Type:   models.SubmissionTypeChallenge,
		Status: models.SubmissionPending,
	}
	require.NoError(t, env.DB.Create(&submission).Error)

	resp := env.jsonRequest(t, http.MethodPut, "/api/submissions/"+submission.ID+"/review",
		teacherToken, map[string]interface{}{"status": "approved", "pointsAwarded": 10})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.jsonRequest(t, http.MethodPut, "/api/submissions/"+submission.ID+"/review",
		teacherToken, map[string]interface{}{"status": "rejected", "teacherComment": "late"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The first decision stands
	var stored models.Submission
	require.NoError(t, env.DB.First(&stored, "id = ?", submission.ID).Error)
	assert.Equal(t, models.SubmissionApproved, stored.Status)
}

func TestReviewRequiresTeacherRole(t *testing.T) {
	env := setupTestEnv(t)
	student, studentToken := env.createUser(t, "student@example.com", models.RoleStudent, 0)

	submission := models.Submission{
		UserID: student.ID,
		Type:   models.SubmissionTypeChallenge,
		Status: models.SubmissionPending,
	}
	require.NoError(t, env.DB.Create(&submission).Error)

	resp := env.jsonRequest(t, http.MethodPut, "/api/submissions/"+submission.ID+"/review",
		studentToken, map[string]interface{}{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestListSubmissionsScopedToStudent(t *testing.T) {
	env := setupTestEnv(t)
	student, studentToken := env.createUser(t, "student@example.com", models.RoleStudent, 0)
	other, _ := env.createUser(t, "other@example.com", models.RoleStudent, 0)

	for _, userID := range []string{student.ID, other.ID} {
		sub := models.Submission{
			UserID:    userID,
			Type:      models.SubmissionTypeChallenge,
			Status:    models.SubmissionPending,
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, env.DB.Create(&sub).Error)
	}

	resp := env.jsonRequest(t, http.MethodGet, "/api/submissions", studentToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	data := result["data"].([]interface{})
	require.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, student.ID, first["userId"])
}

func TestListSubmissionsTeacherSeesAll(t *testing.T) {
	env := setupTestEnv(t)
	student, _ := env.createUser(t, "student@example.com", models.RoleStudent, 0)
	other, _ := env.createUser(t, "other@example.com", models.RoleStudent, 0)
	_, teacherToken := env.createUser(t, "teacher@example.com", models.RoleTeacher, 0)

	for _, userID := range []string{student.ID, other.ID} {
		sub := models.Submission{
			UserID: userID,
			Type:   models.SubmissionTypeChallenge,
			Status: models.SubmissionPending,
		}
		require.NoError(t, env.DB.Create(&sub).Error)
	}

	resp := env.jsonRequest(t, http.MethodGet, "/api/submissions", teacherToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, float64(2), result["total"])
}

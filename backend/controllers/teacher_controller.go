package controllers

import (
	"math"

	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TeacherController struct {
	DB *gorm.DB
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{DB: db}
}

// Analytics aggregates the numbers the teacher dashboard shows: class size,
// review queue state, and class-wide point/progress averages.
func (tc *TeacherController) Analytics(c *fiber.Ctx) error {
	var studentCount int64
	if err := tc.DB.Model(&models.User{}).
		Where("role = ?", models.RoleStudent).Count(&studentCount).Error; err != nil {
		return utils.InternalServerError(c, "Could not query students")
	}

	var pending, approved, rejected int64
	counts := []struct {
		dest   *int64
		status string
		byType string
	}{
		{&pending, models.SubmissionPending, models.SubmissionTypeChallenge},
		{&approved, models.SubmissionApproved, ""},
		{&rejected, models.SubmissionRejected, ""},
	}
	for _, q := range counts {
		query := tc.DB.Model(&models.Submission{}).Where("status = ?", q.status)
		if q.byType != "" {
			query = query.Where("type = ?", q.byType)
		}
		if err := query.Count(q.dest).Error; err != nil {
			return utils.InternalServerError(c, "Could not query submissions")
		}
	}

	var averages struct {
		AvgPoints   float64
		AvgProgress float64
	}
	if err := tc.DB.Model(&models.User{}).
		Select("COALESCE(AVG(points), 0) AS avg_points, COALESCE(AVG(progress), 0) AS avg_progress").
		Where("role = ?", models.RoleStudent).
		Scan(&averages).Error; err != nil {
		return utils.InternalServerError(c, "Could not aggregate student stats")
	}

	return c.JSON(fiber.Map{
		"studentCount":       studentCount,
		"pendingSubmissions": pending,
		"approvedCount":      approved,
		"rejectedCount":      rejected,
		"totalReviewed":      approved + rejected,
		"averagePoints":      int(math.Round(averages.AvgPoints)),
		"averageProgress":    int(math.Round(averages.AvgProgress)),
	})
}

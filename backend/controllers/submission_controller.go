package controllers

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"project/backend/config"
	"project/backend/middleware"
	"project/backend/models"
	"project/backend/scoring"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	maxSubmissionSize = 50 * 1024 * 1024

	practicePoints   = 10
	practiceProgress = 2
	reviewProgress   = 5

	defaultChallengePoints = 15
)

var allowedSubmissionExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".mp4": true, ".mov": true, ".avi": true, ".webm": true,
	".pdf": true, ".doc": true, ".docx": true,
}

type SubmissionController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Ledger *scoring.Ledger
	Logger *log.Logger
}

func NewSubmissionController(db *gorm.DB, cfg *config.Config, ledger *scoring.Ledger, logger *log.Logger) *SubmissionController {
	return &SubmissionController{DB: db, Cfg: cfg, Ledger: ledger, Logger: logger}
}

func utcDayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

// Upload receives a practice or challenge file. Practice submissions from
// students are approved on the spot with a fixed award; challenge
// submissions stay pending for teacher review and are limited to one
// non-rejected submission per UTC day.
func (sc *SubmissionController) Upload(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	file, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "No file part named \"file\"")
	}
	if file.Filename == "" {
		return utils.BadRequest(c, "No selected file")
	}
	if file.Size > maxSubmissionSize {
		return utils.PayloadTooLarge(c, "File size exceeds limit (50MB)")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedSubmissionExts[ext] {
		return utils.BadRequest(c, fmt.Sprintf("File type %q not allowed", strings.TrimPrefix(ext, ".")))
	}

	note := strings.TrimSpace(c.FormValue("note"))
	submissionType := strings.ToLower(c.FormValue("type", models.SubmissionTypePractice))
	relatedID := c.FormValue("relatedId")
	relatedTitle := c.FormValue("relatedTitle", "N/A")

	switch submissionType {
	case models.SubmissionTypePractice, models.SubmissionTypePracticeVideo, models.SubmissionTypeChallenge:
	default:
		return utils.BadRequest(c, "Unknown submission type")
	}

	// A rejected challenge does not consume the daily slot, so a student
	// can fix the issue and resubmit the same day.
	if submissionType == models.SubmissionTypeChallenge && user.IsStudent() {
		dayStart, dayEnd := utcDayBounds(time.Now())
		var taken int64
		err := sc.DB.Model(&models.Submission{}).
			Where("user_id = ? AND type = ? AND status <> ? AND created_at >= ? AND created_at < ?",
				user.ID, models.SubmissionTypeChallenge, models.SubmissionRejected, dayStart, dayEnd).
			Count(&taken).Error
		if err != nil {
			return utils.InternalServerError(c, "Could not query submissions")
		}
		if taken > 0 {
			return utils.BadRequest(c, "Bạn chỉ được nộp một thử thách mỗi ngày. Vui lòng thử lại vào ngày mai.")
		}
	}

	// Resolve the related title from the referenced record when the client
	// did not supply a usable one.
	if relatedID != "" && (relatedTitle == "" || relatedTitle == "N/A") {
		switch submissionType {
		case models.SubmissionTypeChallenge:
			var challenge models.Challenge
			if err := sc.DB.Select("title").First(&challenge, "id = ?", relatedID).Error; err == nil {
				relatedTitle = challenge.Title
			}
		default:
			var course models.Course
			if err := sc.DB.Select("title").First(&course, "id = ?", relatedID).Error; err == nil {
				relatedTitle = course.Title
			}
		}
	}

	filename := fmt.Sprintf("%s_%s_%d%s", submissionType, user.ID, time.Now().UTC().Unix(), ext)
	if err := c.SaveFile(file, filepath.Join(sc.Cfg.UploadDir, "submissions", filename)); err != nil {
		return utils.InternalServerError(c, "Could not store submission file")
	}

	submission := models.Submission{
		UserID:           user.ID,
		UserEmail:        user.Email,
		UserName:         user.Name,
		Type:             submissionType,
		Status:           models.SubmissionPending,
		RelatedID:        relatedID,
		RelatedTitle:     relatedTitle,
		URL:              "/uploads/submissions/" + filename,
		OriginalFilename: file.Filename,
		Note:             note,
	}
	if err := sc.DB.Create(&submission).Error; err != nil {
		return utils.InternalServerError(c, "Could not create submission")
	}

	message := "Submission received."

	switch {
	case user.IsStudent() && submissionType != models.SubmissionTypeChallenge:
		submission.Status = models.SubmissionApproved
		submission.PointsAwarded = practicePoints
		if err := sc.DB.Model(&models.Submission{}).Where("id = ?", submission.ID).
			Updates(map[string]interface{}{
				"status":         models.SubmissionApproved,
				"points_awarded": practicePoints,
			}).Error; err != nil {
			return utils.InternalServerError(c, "Could not approve submission")
		}
		if _, err := sc.Ledger.Award(user.ID, practicePoints, practiceProgress); err != nil && sc.Logger != nil {
			sc.Logger.Printf("failed to award practice points for submission %s: %v", submission.ID, err)
		}
		message = fmt.Sprintf("Practice submission received, +%d points!", practicePoints)

	case submissionType == models.SubmissionTypeChallenge:
		potential := defaultChallengePoints
		if relatedID != "" {
			var challenge models.Challenge
			if err := sc.DB.First(&challenge, "id = ?", relatedID).Error; err == nil && challenge.Points > 0 {
				potential = challenge.Points
			}
		}
		message = fmt.Sprintf("Challenge submission received. Waiting for review (potential +%d points).", potential)
	}

	if sc.Logger != nil {
		sc.Logger.Printf("submission %q received from %s, id: %s, status: %s",
			submissionType, user.Email, submission.ID, submission.Status)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"submission": submission,
		"message":    message,
	})
}

// List returns submissions newest-first with pagination. Students are pinned
// to their own records; teachers see everything and can filter by student.
func (sc *SubmissionController) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	query := sc.DB.Model(&models.Submission{})
	if user.Role != models.RoleTeacher {
		query = query.Where("user_id = ?", user.ID)
	} else {
		if studentID := c.Query("userId"); studentID != "" {
			query = query.Where("user_id = ?", studentID)
		} else if email := c.Query("userEmail"); email != "" {
			query = query.Where("user_email = ?", strings.ToLower(strings.TrimSpace(email)))
		}
	}
	if subType := c.Query("type"); subType != "" {
		query = query.Where("type = ?", strings.ToLower(subType))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", strings.ToLower(status))
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 1
	} else if limit > 100 {
		limit = 100
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.InternalServerError(c, "Could not count submissions")
	}

	var submissions []models.Submission
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&submissions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query submissions")
	}

	return utils.Paginate(c, submissions, total, page, limit)
}

// ListForUser returns one user's submissions, defaulting to challenge type.
func (sc *SubmissionController) ListForUser(c *fiber.Ctx) error {
	current := middleware.CurrentUser(c)
	targetID := c.Params("id")

	if current.ID != targetID && current.Role != models.RoleTeacher {
		return utils.Forbidden(c, "Unauthorized access to user submissions")
	}

	limit := c.QueryInt("limit", 100)
	if limit < 1 {
		limit = 1
	} else if limit > 100 {
		limit = 100
	}

	query := sc.DB.Where("user_id = ?", targetID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", strings.ToLower(status))
	}
	subType := c.Query("type", models.SubmissionTypeChallenge)
	if subType != "" {
		query = query.Where("type = ?", strings.ToLower(subType))
	}

	var submissions []models.Submission
	if err := query.Order("created_at DESC").Limit(limit).Find(&submissions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query submissions")
	}
	return c.JSON(submissions)
}

type ReviewInput struct {
	Status         string `json:"status"`
	TeacherComment string `json:"teacherComment"`
	PointsAwarded  int    `json:"pointsAwarded"`
}

// Review moves a pending submission to approved or rejected. The transition
// is a conditional update keyed on the pending status, so of two concurrent
// reviews exactly one wins; the loser gets a conflict naming the status that
// beat it. Approval with points runs the award for the student afterwards.
func (sc *SubmissionController) Review(c *fiber.Ctx) error {
	reviewer := middleware.CurrentUser(c)
	submissionID := c.Params("id")

	var input ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	status := strings.ToLower(input.Status)
	if status != models.SubmissionApproved && status != models.SubmissionRejected {
		return utils.BadRequest(c, "Status must be \"approved\" or \"rejected\"")
	}
	comment := strings.TrimSpace(input.TeacherComment)
	if status == models.SubmissionRejected && comment == "" {
		return utils.BadRequest(c, "Comment is required for rejection")
	}

	points := 0
	if status == models.SubmissionApproved {
		points = input.PointsAwarded
		if points < 0 {
			points = 0
		}
	}

	var submission models.Submission
	if err := sc.DB.First(&submission, "id = ?", submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Submission not found")
		}
		return utils.InternalServerError(c, "Could not query submission")
	}
	if submission.Status != models.SubmissionPending {
		return utils.Conflict(c, fmt.Sprintf("Submission already reviewed (Status: %s)", submission.Status))
	}

	now := time.Now().UTC()
	res := sc.DB.Model(&models.Submission{}).
		Where("id = ? AND status = ?", submissionID, models.SubmissionPending).
		Updates(map[string]interface{}{
			"status":          status,
			"teacher_comment": comment,
			"points_awarded":  points,
			"reviewed_at":     now,
			"reviewer_id":     reviewer.ID,
		})
	if res.Error != nil {
		return utils.InternalServerError(c, "Could not update submission")
	}
	if res.RowsAffected == 0 {
		// Lost the race: re-read to name the status that landed first.
		var current models.Submission
		if err := sc.DB.First(&current, "id = ?", submissionID).Error; err == nil &&
			current.Status != models.SubmissionPending {
			return utils.Conflict(c, fmt.Sprintf("Submission reviewed concurrently (Status: %s)", current.Status))
		}
		return utils.InternalServerError(c, "Failed to update submission status")
	}

	if status == models.SubmissionApproved && points > 0 {
		var student models.User
		if err := sc.DB.First(&student, "id = ?", submission.UserID).Error; err == nil && student.IsStudent() {
			if _, err := sc.Ledger.Award(student.ID, points, reviewProgress); err != nil && sc.Logger != nil {
				sc.Logger.Printf("failed to award review points to student %s for submission %s: %v",
					student.ID, submissionID, err)
			}
		}
	}

	var updated models.Submission
	if err := sc.DB.First(&updated, "id = ?", submissionID).Error; err != nil {
		return utils.InternalServerError(c, "Could not load reviewed submission")
	}

	if sc.Logger != nil {
		sc.Logger.Printf("submission %s reviewed by %s, status: %s, points: %d",
			submissionID, reviewer.Email, status, points)
	}
	return c.JSON(updated)
}

// ServeFile streams a stored submission file to its owner or a teacher.
func (sc *SubmissionController) ServeFile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	filename := filepath.Base(c.Params("filename"))
	if filename == "" || filename == "." {
		return utils.BadRequest(c, "Filename is required")
	}

	fileURL := "/uploads/submissions/" + filename
	var submission models.Submission
	if err := sc.DB.Where("url = ?", fileURL).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "File not found")
		}
		return utils.InternalServerError(c, "Could not query submission")
	}
	if submission.UserID != user.ID && user.Role != models.RoleTeacher {
		return utils.Forbidden(c, "Unauthorized access to this file")
	}

	return c.SendFile(filepath.Join(sc.Cfg.UploadDir, "submissions", filename))
}

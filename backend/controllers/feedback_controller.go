package controllers

import (
	"errors"
	"log"
	"strings"
	"time"

	"project/backend/middleware"
	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var allowedFeedbackStatuses = map[string]bool{
	models.FeedbackNew:       true,
	models.FeedbackViewed:    true,
	models.FeedbackAddressed: true,
	models.FeedbackRejected:  true,
	models.FeedbackSpam:      true,
}

type FeedbackController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewFeedbackController(db *gorm.DB, logger *log.Logger) *FeedbackController {
	return &FeedbackController{DB: db, Logger: logger}
}

func (fc *FeedbackController) Submit(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input struct {
		Text string `json:"text"`
		URL  string `json:"url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return utils.BadRequest(c, "Feedback text cannot be empty")
	}

	pageURL := input.URL
	if pageURL == "" {
		pageURL = c.Get(fiber.HeaderReferer)
	}

	feedback := models.Feedback{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Text:      text,
		URL:       pageURL,
		Status:    models.FeedbackNew,
	}
	if err := fc.DB.Create(&feedback).Error; err != nil {
		return utils.InternalServerError(c, "Could not store feedback")
	}

	if fc.Logger != nil {
		fc.Logger.Printf("feedback received from user %s (%s)", user.ID, user.Name)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Feedback submitted successfully!",
		"feedback": feedback,
	})
}

// List returns feedback newest-first. Teachers see everything, students only
// their own entries.
func (fc *FeedbackController) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 1
	} else if limit > 100 {
		limit = 100
	}

	query := fc.DB.Model(&models.Feedback{})
	if user.Role != models.RoleTeacher {
		query = query.Where("user_id = ?", user.ID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", strings.ToLower(status))
	}

	var feedback []models.Feedback
	if err := query.Order("created_at DESC").Limit(limit).Find(&feedback).Error; err != nil {
		return utils.InternalServerError(c, "Could not query feedback")
	}
	return c.JSON(feedback)
}

// Reply records a teacher's answer and moves the feedback to the supplied
// status (addressed when omitted).
func (fc *FeedbackController) Reply(c *fiber.Ctx) error {
	teacher := middleware.CurrentUser(c)
	feedbackID := c.Params("id")

	var input struct {
		Reply  string `json:"reply"`
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	reply := strings.TrimSpace(input.Reply)
	if reply == "" {
		return utils.BadRequest(c, "Reply text cannot be empty")
	}
	status := strings.ToLower(input.Status)
	if status == "" {
		status = models.FeedbackAddressed
	}
	if !allowedFeedbackStatuses[status] {
		return utils.BadRequest(c, "Invalid status provided: "+status)
	}

	now := time.Now().UTC()
	res := fc.DB.Model(&models.Feedback{}).Where("id = ?", feedbackID).
		Updates(map[string]interface{}{
			"reply":      reply,
			"status":     status,
			"replied_at": now,
			"replied_by": teacher.ID,
		})
	if res.Error != nil {
		return utils.InternalServerError(c, "Could not update feedback")
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "Feedback item not found")
	}

	var updated models.Feedback
	if err := fc.DB.First(&updated, "id = ?", feedbackID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Feedback item not found")
		}
		return utils.InternalServerError(c, "Could not load feedback")
	}

	if fc.Logger != nil {
		fc.Logger.Printf("feedback %s replied by teacher %s, status: %s", feedbackID, teacher.ID, status)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Feedback updated successfully",
		"feedback": updated,
	})
}

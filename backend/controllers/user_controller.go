package controllers

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"project/backend/config"
	"project/backend/middleware"
	"project/backend/models"
	"project/backend/scoring"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxAvatarSize = 2 * 1024 * 1024

type UserController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Ledger *scoring.Ledger
	Logger *log.Logger
}

func NewUserController(db *gorm.DB, cfg *config.Config, ledger *scoring.Ledger, logger *log.Logger) *UserController {
	return &UserController{DB: db, Cfg: cfg, Ledger: ledger, Logger: logger}
}

func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// GetUserByID returns another user's profile. Students may only fetch their
// own record; teachers may fetch anyone's.
func (uc *UserController) GetUserByID(c *fiber.Ctx) error {
	current := middleware.CurrentUser(c)
	targetID := c.Params("id")

	if current.ID != targetID && current.Role != models.RoleTeacher {
		return utils.Forbidden(c, "Unauthorized to view this profile")
	}

	var user models.User
	if err := uc.DB.First(&user, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(user)
}

// ListUsers is teacher-only and supports an optional ?role= filter.
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit < 1 {
		limit = 1
	} else if limit > 500 {
		limit = 500
	}

	query := uc.DB.Model(&models.User{}).Order("created_at DESC").Limit(limit)
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(users)
}

type UpdateUserInput struct {
	Name              *string                `json:"name"`
	Progress          *int                   `json:"progress"`
	Points            *int                   `json:"points"`
	Level             *int                   `json:"level"`
	Badges            *[]string              `json:"badges"`
	Achievements      *[]string              `json:"achievements"`
	PersonalCourses   *[]string              `json:"personalCourses"`
	FlashcardProgress map[string]interface{} `json:"flashcardProgress"`
	FlashcardScore    *int                   `json:"flashcardScore"`
}

// UpdateUser applies a partial profile update. Scoring fields go through the
// ledger reconcile pass afterwards, so a client-sent level that disagrees
// with the points-derived one never sticks.
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	current := middleware.CurrentUser(c)
	targetID := c.Params("id")

	if current.ID != targetID && current.Role != models.RoleTeacher {
		return utils.Forbidden(c, "Unauthorized")
	}

	var target models.User
	if err := uc.DB.First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	updates := map[string]interface{}{}
	scoringTouched := false

	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name != "" && name != target.Name {
			updates["name"] = name
			scoringTouched = true
		}
	}
	if input.Progress != nil {
		progress := *input.Progress
		if progress < 0 {
			progress = 0
		} else if progress > 100 {
			progress = 100
		}
		updates["progress"] = progress
	}
	if input.Points != nil {
		points := *input.Points
		if points < 0 {
			points = 0
		}
		updates["points"] = points
		scoringTouched = true
	}
	if input.Level != nil {
		level := *input.Level
		if level < 1 {
			level = 1
		}
		updates["level"] = level
		scoringTouched = true
	}
	if input.Badges != nil {
		updates["badges"] = datatypes.JSONSlice[string](trimStrings(*input.Badges))
	}
	if input.Achievements != nil {
		updates["achievements"] = datatypes.JSONSlice[string](trimStrings(*input.Achievements))
	}
	if input.PersonalCourses != nil {
		updates["personal_courses"] = datatypes.JSONSlice[string](trimStrings(*input.PersonalCourses))
	}
	if input.FlashcardProgress != nil {
		updates["flashcard_progress"] = datatypes.JSONMap(input.FlashcardProgress)
	}
	if input.FlashcardScore != nil {
		score := *input.FlashcardScore
		if score < 0 {
			score = 0
		}
		updates["flashcard_score"] = score
	}

	if len(updates) == 0 {
		return c.JSON(target)
	}

	if err := uc.DB.Model(&models.User{}).Where("id = ?", targetID).Updates(updates).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user")
	}

	if scoringTouched {
		updated, err := uc.Ledger.Reconcile(targetID)
		if err != nil {
			return utils.InternalServerError(c, "Could not reconcile user scoring state")
		}
		return c.JSON(updated)
	}

	var updated models.User
	if err := uc.DB.First(&updated, "id = ?", targetID).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(updated)
}

func trimStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (uc *UserController) AddPersonalCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input struct {
		CourseID string `json:"courseId"`
	}
	if err := c.BodyParser(&input); err != nil || input.CourseID == "" {
		return utils.BadRequest(c, "courseId is required")
	}

	var course models.Course
	if err := uc.DB.First(&course, "id = ?", input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	for _, id := range user.PersonalCourses {
		if id == input.CourseID {
			return c.JSON(fiber.Map{"personalCourses": user.PersonalCourses})
		}
	}
	user.PersonalCourses = append(user.PersonalCourses, input.CourseID)
	if err := uc.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update("personal_courses", user.PersonalCourses).Error; err != nil {
		return utils.InternalServerError(c, "Could not update personal courses")
	}

	return c.JSON(fiber.Map{"personalCourses": user.PersonalCourses})
}

func (uc *UserController) RemovePersonalCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	courseID := c.Params("id")
	if courseID == "" {
		return utils.BadRequest(c, "Course ID is required")
	}

	kept := make([]string, 0, len(user.PersonalCourses))
	for _, id := range user.PersonalCourses {
		if id != courseID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(user.PersonalCourses) {
		return utils.NotFound(c, "Course not in personal list")
	}

	user.PersonalCourses = kept
	if err := uc.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update("personal_courses", user.PersonalCourses).Error; err != nil {
		return utils.InternalServerError(c, "Could not update personal courses")
	}

	return c.JSON(fiber.Map{"personalCourses": user.PersonalCourses})
}

func (uc *UserController) ChangePassword(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return utils.BadRequest(c, "Current and new password are required")
	}
	if len(input.NewPassword) < 6 {
		return utils.BadRequest(c, "New password must be at least 6 characters")
	}
	if input.NewPassword == input.CurrentPassword {
		return utils.BadRequest(c, "New password must differ from the current one")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		return utils.Unauthorized(c, "Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}
	if err := uc.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update("password", string(hashed)).Error; err != nil {
		return utils.InternalServerError(c, "Could not update password")
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

var allowedAvatarExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

// ChangeAvatar stores an uploaded image under the uploads dir and points the
// profile (and the ranking entry) at it.
func (uc *UserController) ChangeAvatar(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		return utils.BadRequest(c, "No avatar file provided")
	}
	if file.Size > maxAvatarSize {
		return utils.PayloadTooLarge(c, "Avatar exceeds the 2MB limit")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedAvatarExts[ext] {
		return utils.BadRequest(c, "Unsupported avatar file type")
	}

	filename := fmt.Sprintf("%s_%s%s", user.ID, uuid.NewString(), ext)
	dst := filepath.Join(uc.Cfg.UploadDir, "avatars", filename)
	if err := c.SaveFile(file, dst); err != nil {
		return utils.InternalServerError(c, "Could not store avatar")
	}

	avatarURL := "/uploads/avatars/" + filename
	if err := uc.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update("avatar", avatarURL).Error; err != nil {
		return utils.InternalServerError(c, "Could not update avatar")
	}

	user.Avatar = avatarURL
	if err := uc.Ledger.SyncRanking(user); err != nil && uc.Logger != nil {
		uc.Logger.Printf("failed to update ranking avatar for user %s: %v", user.ID, err)
	}

	return c.JSON(fiber.Map{"avatar": avatarURL})
}

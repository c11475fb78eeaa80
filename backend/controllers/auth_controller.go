package controllers

import (
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"project/backend/config"
	"project/backend/middleware"
	"project/backend/models"
	"project/backend/scoring"
	"project/backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

type AuthController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Ledger *scoring.Ledger
	Logger *log.Logger
}

func NewAuthController(db *gorm.DB, cfg *config.Config, ledger *scoring.Ledger, logger *log.Logger) *AuthController {
	return &AuthController{DB: db, Cfg: cfg, Ledger: ledger, Logger: logger}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=student teacher"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func defaultAvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random&color=fff&size=150"
}

func validationDetails(err error) map[string]string {
	details := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details[strings.ToLower(fe.Field())] = "failed on rule: " + fe.Tag()
		}
	}
	return details
}

// Register creates an account and returns a fresh token so the client can
// skip a separate login round-trip.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	role := input.Role
	if role == "" {
		role = models.RoleStudent
	}

	var existing models.User
	if err := ac.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return utils.Conflict(c, "Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	name := strings.TrimSpace(input.Name)
	user := models.User{
		Email:             email,
		Password:          string(hashed),
		Name:              name,
		Role:              role,
		Avatar:            defaultAvatarURL(name),
		Level:             1,
		Badges:            []string{},
		Achievements:      []string{},
		PersonalCourses:   []string{},
		FlashcardProgress: map[string]interface{}{},
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not create user")
	}

	// New students show up on the leaderboard with zero points right away.
	if err := ac.Ledger.SyncRanking(&user); err != nil && ac.Logger != nil {
		ac.Logger.Printf("failed to create ranking entry for user %s: %v", user.ID, err)
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login authenticates by email/password and applies the daily streak award:
// first login of a UTC day bumps the streak (reset to 1 when a day was
// missed) and pays 5 points, plus 5 from a 3-day streak or 15 from a 7-day
// streak. A repeat login on the same day only refreshes lastLogin.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(input); err != nil {
		return utils.ValidationError(c, validationDetails(err))
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User
	if err := ac.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid email or password")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid email or password")
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{"last_login": now}
	pointsToAdd := 0

	if user.IsStudent() {
		streak := user.Streak
		if user.LastLogin == nil {
			streak = 1
			pointsToAdd = 5
		} else {
			today := now.Truncate(24 * time.Hour)
			lastDay := user.LastLogin.UTC().Truncate(24 * time.Hour)
			if today.After(lastDay) {
				if today.Sub(lastDay) == 24*time.Hour {
					streak++
				} else {
					streak = 1
				}
				pointsToAdd = 5
				if streak >= 7 {
					pointsToAdd += 15
				} else if streak >= 3 {
					pointsToAdd += 5
				}
			}
		}
		if streak != user.Streak {
			updates["streak"] = streak
		}
	}

	if err := ac.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return utils.InternalServerError(c, "Could not update login state")
	}

	updated, err := ac.Ledger.Award(user.ID, pointsToAdd, 0)
	if err != nil {
		return utils.InternalServerError(c, "Could not apply login reward")
	}

	token, err := utils.GenerateJWTToken(updated.ID, updated.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	if ac.Logger != nil {
		ac.Logger.Printf("user logged in: %s, role: %s, streak: %d", updated.Email, updated.Role, updated.Streak)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  updated,
	})
}

// Refresh re-issues a token for an already authenticated session.
func (ac *AuthController) Refresh(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

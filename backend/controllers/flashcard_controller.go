package controllers

import (
	"fmt"
	"log"

	"project/backend/middleware"
	"project/backend/models"
	"project/backend/scoring"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const flashcardTestProgress = 5

var allowedFlashcardCategories = map[string]bool{
	"sao": true, "dan-tranh": true, "dan-nguyet": true, "vovinam": true,
}

type FlashcardController struct {
	DB     *gorm.DB
	Ledger *scoring.Ledger
	Logger *log.Logger
}

func NewFlashcardController(db *gorm.DB, ledger *scoring.Ledger, logger *log.Logger) *FlashcardController {
	return &FlashcardController{DB: db, Ledger: ledger, Logger: logger}
}

func (fc *FlashcardController) List(c *fiber.Ctx) error {
	category := c.Query("category", "sao")
	if !allowedFlashcardCategories[category] {
		return utils.BadRequest(c, "Invalid flashcard category")
	}

	var cards []models.Flashcard
	if err := fc.DB.Where("category = ?", category).Find(&cards).Error; err != nil {
		return utils.InternalServerError(c, "Could not query flashcards")
	}
	return c.JSON(cards)
}

type flashcardProgressInput struct {
	Category     string                   `json:"category"`
	ProgressData []map[string]interface{} `json:"progressData"`
}

// SaveProgress stores per-card review state under the user's
// flashcardProgress map, keyed category then card id. Scoring happens only
// through CompleteTest, never here.
func (fc *FlashcardController) SaveProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input flashcardProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Category == "" || input.ProgressData == nil {
		return utils.BadRequest(c, "Category and progressData array required")
	}

	progress := map[string]interface{}(user.FlashcardProgress)
	if progress == nil {
		progress = map[string]interface{}{}
	}
	categoryState, _ := progress[input.Category].(map[string]interface{})
	if categoryState == nil {
		categoryState = map[string]interface{}{}
	}

	validUpdates := false
	for _, cardState := range input.ProgressData {
		cardID, _ := cardState["id"].(string)
		if cardID == "" {
			continue
		}
		state := map[string]interface{}{}
		for k, v := range cardState {
			if k != "id" {
				state[k] = v
			}
		}
		if len(state) == 0 {
			continue
		}
		categoryState[cardID] = state
		validUpdates = true
	}

	if !validUpdates {
		return c.JSON(fiber.Map{
			"message":           "No valid updates provided",
			"flashcardProgress": user.FlashcardProgress,
		})
	}

	progress[input.Category] = categoryState
	if err := fc.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update("flashcard_progress", datatypes.JSONMap(progress)).Error; err != nil {
		return utils.InternalServerError(c, "Could not save flashcard progress")
	}

	return c.JSON(fiber.Map{
		"message":           "Progress saved successfully",
		"flashcardProgress": progress,
	})
}

// CompleteTest credits a finished flashcard test. The score arrives from
// the client, is clamped to non-negative, and lands on the user as points
// plus a fixed progress bump. Non-students get an acknowledgement only.
func (fc *FlashcardController) CompleteTest(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	if !user.IsStudent() {
		return c.JSON(fiber.Map{"message": "Only students earn points from tests"})
	}

	var input struct {
		Score int `json:"score"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid score provided")
	}
	score := input.Score
	if score < 0 {
		score = 0
	}
	if score == 0 {
		return c.JSON(fiber.Map{"message": "Test completed, no points earned."})
	}

	updated, err := fc.Ledger.Award(user.ID, score, flashcardTestProgress)
	if err != nil {
		return utils.InternalServerError(c, "Could not record test result")
	}

	if fc.Logger != nil {
		fc.Logger.Printf("flashcard test recorded for student %s, points: +%d", user.ID, score)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Test completed! +%d points.", score),
		"user":    updated,
	})
}

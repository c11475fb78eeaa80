package controllers

import (
	"log"
	"math/rand"
	"strings"

	"project/backend/games"
	"project/backend/middleware"
	"project/backend/scoring"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type MiniGameController struct {
	Ledger *scoring.Ledger
	Logger *log.Logger
}

func NewMiniGameController(ledger *scoring.Ledger, logger *log.Logger) *MiniGameController {
	return &MiniGameController{Ledger: ledger, Logger: logger}
}

// Start hands out one random question of the requested type, optionally
// filtered by level. The response never includes the answer list.
func (mc *MiniGameController) Start(c *fiber.Ctx) error {
	gameType := c.Query("type")
	if gameType == "" {
		return utils.BadRequest(c, "Game type required")
	}

	questions := games.ByType(gameType)
	if len(questions) == 0 {
		return utils.NotFound(c, "Invalid or no questions available for game type: "+gameType)
	}

	if level := c.QueryInt("level", 0); level > 0 {
		filtered := questions[:0]
		for _, q := range questions {
			if q.Level == level {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}
	if len(questions) == 0 {
		return utils.NotFound(c, "No questions available for game type "+gameType+" at that level")
	}

	question := questions[rand.Intn(len(questions))]
	if mc.Logger != nil {
		mc.Logger.Printf("mini-game %q (id: %s) level %d started for user %s",
			gameType, question.ID, question.Level, middleware.CurrentUser(c).ID)
	}
	return c.JSON(question)
}

type miniGameAnswerInput struct {
	GameID string `json:"gameId"`
	Answer string `json:"answer"`
}

// SubmitAnswer checks the answer case-insensitively against the question's
// accepted forms and credits the question's points to students on a match.
// A wrong answer reveals the first accepted form.
func (mc *MiniGameController) SubmitAnswer(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input miniGameAnswerInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	answer := strings.ToLower(strings.TrimSpace(input.Answer))
	if input.GameID == "" || answer == "" {
		return utils.BadRequest(c, "Game ID and answer required")
	}

	question, ok := games.ByID(input.GameID)
	if !ok {
		return utils.NotFound(c, "Invalid game ID")
	}

	isCorrect := false
	for _, accepted := range question.Answers {
		if answer == strings.ToLower(accepted) {
			isCorrect = true
			break
		}
	}

	response := fiber.Map{
		"isCorrect":     isCorrect,
		"pointsAwarded": 0,
	}
	if !isCorrect && len(question.Answers) > 0 {
		response["correctAnswer"] = strings.ToLower(question.Answers[0])
	}

	if isCorrect && user.IsStudent() {
		if _, err := mc.Ledger.Award(user.ID, question.Points, 0); err != nil {
			if mc.Logger != nil {
				mc.Logger.Printf("mini-game %s correct but award failed for student %s: %v",
					input.GameID, user.ID, err)
			}
		} else {
			response["pointsAwarded"] = question.Points
		}
	}

	return c.JSON(response)
}

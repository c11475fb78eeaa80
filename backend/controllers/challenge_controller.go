package controllers

import (
	"errors"
	"log"
	"math/rand"
	"time"

	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewChallengeController(db *gorm.DB, logger *log.Logger) *ChallengeController {
	return &ChallengeController{DB: db, Logger: logger}
}

func (cc *ChallengeController) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 1
	} else if limit > 50 {
		limit = 50
	}

	var total int64
	if err := cc.DB.Model(&models.Challenge{}).Count(&total).Error; err != nil {
		return utils.InternalServerError(c, "Could not count challenges")
	}

	var challenges []models.Challenge
	if err := cc.DB.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&challenges).Error; err != nil {
		return utils.InternalServerError(c, "Could not query challenges")
	}

	return utils.Paginate(c, challenges, total, page, limit)
}

// Daily picks the challenge of the current UTC day. The first request of a
// day draws a random active challenge, excluding yesterday's pick so the
// same challenge never runs twice in a row, and records the pick so later
// requests that day return the same one.
func (cc *ChallengeController) Daily(c *fiber.Ctx) error {
	today := time.Now().UTC().Format("2006-01-02")
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	var record models.DailyChallenge
	if err := cc.DB.Where("date = ?", today).First(&record).Error; err == nil {
		var challenge models.Challenge
		if err := cc.DB.First(&challenge, "id = ?", record.ChallengeID).Error; err == nil {
			return c.JSON(challenge)
		}
		// Stored pick points at a deleted challenge, fall through to redraw.
	}

	query := cc.DB.Model(&models.Challenge{}).Where("active = ?", true)
	var yesterdayRecord models.DailyChallenge
	if err := cc.DB.Where("date = ?", yesterday).First(&yesterdayRecord).Error; err == nil &&
		yesterdayRecord.ChallengeID != "" {
		query = query.Where("id <> ?", yesterdayRecord.ChallengeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return utils.InternalServerError(c, "Could not query challenges")
	}
	if count == 0 {
		return utils.NotFound(c, "No daily challenge found in database")
	}

	var challenge models.Challenge
	if err := query.Offset(rand.Intn(int(count))).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "No daily challenge found in database")
		}
		return utils.InternalServerError(c, "Could not query challenges")
	}

	record = models.DailyChallenge{Date: today, ChallengeID: challenge.ID}
	if err := cc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"challenge_id"}),
	}).Create(&record).Error; err != nil && cc.Logger != nil {
		cc.Logger.Printf("failed to record daily challenge for %s: %v", today, err)
	}

	return c.JSON(challenge)
}

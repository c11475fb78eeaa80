package controllers

import (
	"project/backend/config"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StatusController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewStatusController(db *gorm.DB, cfg *config.Config) *StatusController {
	return &StatusController{DB: db, Cfg: cfg}
}

// Status reports liveness plus whether the database answers a ping.
func (sc *StatusController) Status(c *fiber.Ctx) error {
	sqlDB, err := sc.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":          "Server running",
			"database_status": "disconnected",
			"error":           err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":          "Server is running",
		"database_status": "connected",
		"database_name":   sc.Cfg.DBName,
	})
}

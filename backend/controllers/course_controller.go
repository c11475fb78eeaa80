package controllers

import (
	"errors"

	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

func (cc *CourseController) List(c *fiber.Ctx) error {
	query := cc.DB.Model(&models.Course{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query courses")
	}
	return c.JSON(courses)
}

// LearningPath returns the curriculum roadmap sorted by item order.
func (cc *CourseController) LearningPath(c *fiber.Ctx) error {
	var items []models.LearningPathItem
	if err := cc.DB.Order("item_order ASC").Find(&items).Error; err != nil {
		return utils.InternalServerError(c, "Could not query learning path")
	}
	return c.JSON(items)
}

func (cc *CourseController) GetByID(c *fiber.Ctx) error {
	var course models.Course
	if err := cc.DB.First(&course, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query course")
	}
	return c.JSON(course)
}

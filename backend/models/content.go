package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Category    string    `gorm:"index;not null" json:"category"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	TheoryURL   string    `json:"theory_url"`
	Thumbnail   string    `json:"thumbnail"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Challenge struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Points      int       `gorm:"default:10" json:"points"`
	Thumbnail   string    `json:"thumbnail"`
	Type        string    `gorm:"default:practice_video" json:"type"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `gorm:"index:idx_challenges_created,sort:desc" json:"createdAt"`
}

func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// DailyChallenge remembers which challenge was picked for a UTC date, so the
// next day's pick can exclude it.
type DailyChallenge struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Date        string    `gorm:"uniqueIndex;not null" json:"date"` // YYYY-MM-DD, UTC
	ChallengeID string    `gorm:"type:uuid" json:"challengeId"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Flashcard struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Category string `gorm:"index;not null" json:"category"` // sao, dan-tranh, dan-nguyet, vovinam
	Question string `gorm:"not null" json:"question"`
	Answer   string `gorm:"not null" json:"answer"`
}

func (f *Flashcard) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// LearningPathItem is one step of the curriculum roadmap, served in Order
// ascending. CourseID optionally links the step to a course.
type LearningPathItem struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Order       int    `gorm:"column:item_order;index" json:"order"`
	CourseID    string `gorm:"type:uuid" json:"courseId,omitempty"`
}

func (l *LearningPathItem) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

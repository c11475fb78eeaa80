package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FeedbackNew       = "new"
	FeedbackViewed    = "viewed"
	FeedbackAddressed = "addressed"
	FeedbackRejected  = "rejected"
	FeedbackSpam      = "spam"
)

type Feedback struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string     `gorm:"type:uuid;index" json:"userId"`
	UserName  string     `json:"userName"`
	UserEmail string     `json:"userEmail"`
	Text      string     `gorm:"not null" json:"text"`
	URL       string     `json:"url"`
	Status    string     `gorm:"default:new" json:"status"`
	Reply     string     `json:"reply"`
	RepliedAt *time.Time `json:"repliedAt"`
	RepliedBy *string    `gorm:"type:uuid" json:"repliedBy"`
	CreatedAt time.Time  `gorm:"index:idx_feedback_created,sort:desc" json:"createdAt"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

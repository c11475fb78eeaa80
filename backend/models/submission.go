package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

const (
	SubmissionTypePractice      = "practice"
	SubmissionTypePracticeVideo = "practice_video"
	SubmissionTypeChallenge     = "challenge"
)

// Submission lifecycle: pending -> approved | rejected, terminal once set.
// Practice submissions are approved synchronously at creation; challenge
// submissions stay pending until a teacher reviews them.
type Submission struct {
	ID               string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string     `gorm:"type:uuid;index:idx_submissions_user_created,priority:1" json:"userId"`
	UserEmail        string     `json:"userEmail"`
	UserName         string     `json:"userName"`
	Type             string     `gorm:"index:idx_submissions_status_type,priority:2" json:"type"`
	Status           string     `gorm:"default:pending;index:idx_submissions_status_type,priority:1" json:"status"`
	RelatedID        string     `json:"relatedId"`
	RelatedTitle     string     `json:"relatedTitle"`
	URL              string     `json:"url"`
	OriginalFilename string     `json:"originalFilename"`
	Note             string     `json:"note"`
	TeacherComment   string     `json:"teacherComment"`
	PointsAwarded    int        `gorm:"default:0" json:"pointsAwarded"`
	ReviewerID       *string    `gorm:"type:uuid" json:"reviewerId"`
	ReviewedAt       *time.Time `json:"reviewedAt"`
	CreatedAt        time.Time  `gorm:"index:idx_submissions_user_created,priority:2,sort:desc" json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

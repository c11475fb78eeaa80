package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type User struct {
	ID                string                      `gorm:"type:uuid;primaryKey" json:"id"`
	Email             string                      `gorm:"uniqueIndex;not null" json:"email"`
	Password          string                      `gorm:"not null" json:"-"`
	Name              string                      `gorm:"not null" json:"name"`
	Role              string                      `gorm:"default:student;index" json:"role"`
	Avatar            string                      `json:"avatar"`
	Progress          int                         `gorm:"default:0" json:"progress"`
	Points            int                         `gorm:"default:0;index:idx_users_points,sort:desc" json:"points"`
	Level             int                         `gorm:"default:1" json:"level"`
	Streak            int                         `gorm:"default:0" json:"streak"`
	FlashcardScore    int                         `gorm:"default:0" json:"flashcardScore"`
	Badges            datatypes.JSONSlice[string] `json:"badges"`
	Achievements      datatypes.JSONSlice[string] `json:"achievements"`
	PersonalCourses   datatypes.JSONSlice[string] `json:"personalCourses"`
	FlashcardProgress datatypes.JSONMap           `json:"flashcardProgress"`
	LastLogin         *time.Time                  `json:"lastLogin"`
	CreatedAt         time.Time                   `json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsStudent reports whether gamification fields (points, level, streak)
// apply to this account.
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

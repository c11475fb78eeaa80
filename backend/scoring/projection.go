package scoring

import (
	"project/backend/models"

	"gorm.io/gorm/clause"
)

// SyncRanking upserts the leaderboard entry for a student from a
// post-update user snapshot. Non-student users are a no-op, so ranking
// entries exist only for students. Applying the same snapshot twice leaves
// the stored entry unchanged.
func (l *Ledger) SyncRanking(user *models.User) error {
	if user == nil || !user.IsStudent() {
		return nil
	}

	entry := models.RankingEntry{
		UserID: user.ID,
		Name:   user.Name,
		Points: user.Points,
		Avatar: user.Avatar,
		Level:  user.Level,
	}
	return l.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "points", "avatar", "level"}),
	}).Create(&entry).Error
}

// Package scoring owns the points/leveling core: the ledger that applies
// point and progress deltas to student records, the denormalized ranking
// projection kept in step with it, and the read cache the leaderboard
// endpoints are served from.
package scoring

import (
	"errors"
	"log"

	"project/backend/models"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

const PointsPerLevel = 100

// LevelForPoints derives the level stored alongside points. Level is a
// denormalized value: it is recomputed on every write that touches points,
// and any externally supplied level is overridden by this formula.
func LevelForPoints(points int) int {
	if points < 0 {
		points = 0
	}
	level := points/PointsPerLevel + 1
	if level < 1 {
		level = 1
	}
	return level
}

type Ledger struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewLedger(db *gorm.DB, logger *log.Logger) *Ledger {
	return &Ledger{DB: db, Logger: logger}
}

// Award applies an additive point/progress delta to a user record and
// returns the post-update snapshot. The delta itself is applied as a single
// store-side increment; the clamp and level recompute happen in a follow-up
// conditional write (see Reconcile), so two concurrent awards for the same
// user can at worst repeat an identical fix-up, never lose an increment.
func (l *Ledger) Award(userID string, pointsDelta, progressDelta int) (*models.User, error) {
	if pointsDelta != 0 || progressDelta != 0 {
		res := l.DB.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"points":   gorm.Expr("points + ?", pointsDelta),
				"progress": gorm.Expr("progress + ?", progressDelta),
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrUserNotFound
		}
	}
	return l.Reconcile(userID)
}

// Reconcile reads the user, clamps points/progress, rewrites the derived
// level where it disagrees with the stored one, and upserts the ranking
// projection for students. It is safe to call after any write that touched
// scoring fields.
func (l *Ledger) Reconcile(userID string) (*models.User, error) {
	var user models.User
	if err := l.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	fixes := map[string]interface{}{}
	if user.Points < 0 {
		user.Points = 0
		fixes["points"] = 0
	}
	if user.Progress < 0 {
		user.Progress = 0
		fixes["progress"] = 0
	} else if user.Progress > 100 {
		user.Progress = 100
		fixes["progress"] = 100
	}
	if user.IsStudent() {
		if level := LevelForPoints(user.Points); level != user.Level {
			user.Level = level
			fixes["level"] = level
		}
	}

	if len(fixes) > 0 {
		if err := l.DB.Model(&models.User{}).Where("id = ?", userID).Updates(fixes).Error; err != nil {
			return nil, err
		}
	}

	// The projection is a derived read-model: a failed upsert leaves it
	// stale until the user's next scoring event, it does not fail the
	// scoring write itself.
	if err := l.SyncRanking(&user); err != nil && l.Logger != nil {
		l.Logger.Printf("failed to update ranking for user %s: %v", userID, err)
	}

	return &user, nil
}

package models

// RankingEntry is a denormalized copy of the fields the leaderboard needs,
// one row per student, keyed by user id. It is derived from User and never
// authoritative: every scoring event upserts it from the post-update user.
type RankingEntry struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	Name   string `json:"name"`
	Points int    `gorm:"index:idx_rankings_points,sort:desc" json:"points"`
	Avatar string `json:"avatar"`
	Level  int    `gorm:"default:1" json:"level"`
}

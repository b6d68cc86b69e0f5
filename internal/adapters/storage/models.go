package storage

import "time"

// SummaryModel is the GORM model for finished-session records
type SummaryModel struct {
	ID                  uint   `gorm:"primaryKey;autoIncrement"`
	SessionID           string `gorm:"not null;uniqueIndex:idx_session_id"`
	Player              string `gorm:"not null;default:'';index:idx_player"`
	StartedAt           time.Time
	EndedAt             time.Time
	DurationSeconds     float64
	Commands            int
	Hints               int
	Solutions           int
	CompletedStageIDs   string `gorm:"not null;default:''"`
	CompletedStageCount int
	TotalStageCount     int
	Score               int `gorm:"not null;index:idx_score"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the table name for GORM
func (SummaryModel) TableName() string { return "session_summaries" }

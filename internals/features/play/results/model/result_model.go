package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResultModel struct {
	ResultID uuid.UUID `gorm:"column:result_id;type:uuid;primaryKey" json:"result_id"`

	ResultGameID    string `gorm:"column:result_game_id;not null;uniqueIndex:uq_results_game_team_key,priority:1" json:"result_game_id"`
	ResultGameTitle string `gorm:"column:result_game_title" json:"result_game_title"`
	ResultTeamName  string `gorm:"column:result_team_name;not null" json:"result_team_name"`
	ResultTeamKey   string `gorm:"column:result_team_key;not null;uniqueIndex:uq_results_game_team_key,priority:2" json:"-"`
	ResultEmail     string `gorm:"column:result_email;not null" json:"result_email"`

	ResultStartTime time.Time `gorm:"column:result_start_time;not null" json:"result_start_time"`
	ResultEndTime   time.Time `gorm:"column:result_end_time;not null" json:"result_end_time"`

	// as submitted; seconds are derived once on write
	ResultDuration        string `gorm:"column:result_duration;not null" json:"result_duration"`
	ResultDurationSeconds *int64 `gorm:"column:result_duration_seconds" json:"result_duration_seconds"`

	ResultStars      *string `gorm:"column:result_stars" json:"result_stars"`
	ResultStarsCount *int    `gorm:"column:result_stars_count" json:"result_stars_count"`

	ResultGameType string `gorm:"column:result_game_type;not null" json:"result_game_type"`

	ResultCreatedAt time.Time `gorm:"column:result_created_at;autoCreateTime" json:"result_created_at"`
}

func (ResultModel) TableName() string {
	return "results"
}

func (r *ResultModel) BeforeCreate(tx *gorm.DB) error {
	if r.ResultID == uuid.Nil {
		r.ResultID = uuid.New()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const MaxPlayers = 8

type TeamModel struct {
	TeamID uuid.UUID `gorm:"column:team_id;type:uuid;primaryKey" json:"team_id"`

	TeamGameID  string `gorm:"column:team_game_id;not null;uniqueIndex:uq_teams_game_name_key,priority:1;index:idx_teams_game_start,priority:1" json:"team_game_id"`
	TeamName    string `gorm:"column:team_name;not null" json:"team_name"`
	TeamNameKey string `gorm:"column:team_name_key;not null;uniqueIndex:uq_teams_game_name_key,priority:2" json:"-"`
	TeamEmail   string `gorm:"column:team_email;not null" json:"team_email"`

	TeamPlayers pq.StringArray `gorm:"column:team_players;type:text[];not null" json:"team_players"`

	TeamStartTime *time.Time `gorm:"column:team_start_time;index:idx_teams_game_start,priority:2" json:"team_start_time"`
	TeamEndTime   *time.Time `gorm:"column:team_end_time" json:"team_end_time"`

	TeamCreatedAt time.Time `gorm:"column:team_created_at;autoCreateTime" json:"team_created_at"`
}

func (TeamModel) TableName() string {
	return "teams"
}

func (t *TeamModel) BeforeCreate(tx *gorm.DB) error {
	if t.TeamID == uuid.Nil {
		t.TeamID = uuid.New()
	}
	return nil
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"kiezjagd_backend/internals/features/play/teams/model"
	"kiezjagd_backend/internals/helpers/dbtime"
)

type RegisterTeamRequest struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Players []string `json:"players"`
	GameID  string   `json:"gameId"`
}

type TeamResponse struct {
	TeamID        uuid.UUID  `json:"team_id"`
	TeamName      string     `json:"team_name"`
	TeamEmail     string     `json:"team_email"`
	TeamPlayers   []string   `json:"team_players"`
	TeamGameID    string     `json:"team_game_id"`
	TeamStartTime *time.Time `json:"team_start_time"`
	TeamEndTime   *time.Time `json:"team_end_time"`
}

func ToTeamResponse(m *model.TeamModel) TeamResponse {
	players := []string(m.TeamPlayers)
	if players == nil {
		players = []string{}
	}
	return TeamResponse{
		TeamID:        m.TeamID,
		TeamName:      m.TeamName,
		TeamEmail:     m.TeamEmail,
		TeamPlayers:   players,
		TeamGameID:    m.TeamGameID,
		TeamStartTime: dbtime.LocalPtr(m.TeamStartTime),
		TeamEndTime:   dbtime.LocalPtr(m.TeamEndTime),
	}
}

package dto

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"kiezjagd_backend/internals/features/play/results/model"
	"kiezjagd_backend/internals/helpers/dbtime"
)

// SubmitResultRequest mirrors what the game client posts at the finish line.
// Duration and stars arrive as numbers or strings depending on app version.
type SubmitResultRequest struct {
	GameID    string     `json:"gameId"`
	GameTitle string     `json:"gameTitle"`
	TeamName  string     `json:"teamName"`
	Email     string     `json:"email"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Duration  any        `json:"duration"`
	Stars     any        `json:"stars"`
	GameType  string     `json:"gameType"`
}

// Text renders a loosely typed scalar as the string that gets stored.
func Text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

type ResultResponse struct {
	ResultID              uuid.UUID `json:"result_id"`
	ResultGameID          string    `json:"result_game_id"`
	ResultGameTitle       string    `json:"result_game_title"`
	ResultTeamName        string    `json:"result_team_name"`
	ResultEmail           string    `json:"result_email"`
	ResultStartTime       time.Time `json:"result_start_time"`
	ResultEndTime         time.Time `json:"result_end_time"`
	ResultDuration        string    `json:"result_duration"`
	ResultDurationSeconds *int64    `json:"result_duration_seconds"`
	ResultStars           *string   `json:"result_stars"`
	ResultStarsCount      *int      `json:"result_stars_count"`
	ResultGameType        string    `json:"result_game_type"`
	ResultCreatedAt       time.Time `json:"result_created_at"`
}

func ToResultResponse(m *model.ResultModel) ResultResponse {
	return ResultResponse{
		ResultID:              m.ResultID,
		ResultGameID:          m.ResultGameID,
		ResultGameTitle:       m.ResultGameTitle,
		ResultTeamName:        m.ResultTeamName,
		ResultEmail:           m.ResultEmail,
		ResultStartTime:       dbtime.Local(m.ResultStartTime),
		ResultEndTime:         dbtime.Local(m.ResultEndTime),
		ResultDuration:        m.ResultDuration,
		ResultDurationSeconds: m.ResultDurationSeconds,
		ResultStars:           m.ResultStars,
		ResultStarsCount:      m.ResultStarsCount,
		ResultGameType:        m.ResultGameType,
		ResultCreatedAt:       dbtime.Local(m.ResultCreatedAt),
	}
}

func ToResultResponses(rows []model.ResultModel) []ResultResponse {
	out := make([]ResultResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToResultResponse(&rows[i]))
	}
	return out
}

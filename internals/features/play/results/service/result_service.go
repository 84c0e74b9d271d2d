package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"kiezjagd_backend/internals/features/play/rankings/scoring"
	"kiezjagd_backend/internals/features/play/results/dto"
	"kiezjagd_backend/internals/features/play/results/model"
	helper "kiezjagd_backend/internals/helpers"
	"kiezjagd_backend/internals/helpers/apperr"
)

type ResultStore interface {
	Create(ctx context.Context, m *model.ResultModel) error
	List(ctx context.Context) ([]model.ResultModel, error)
	ListByGame(ctx context.Context, gameID string) ([]model.ResultModel, error)
}

// RankingInvalidator drops cached rankings of a game after a new result.
type RankingInvalidator interface {
	Invalidate(ctx context.Context, gameID string) error
}

var errResultDuplicate = apperr.Conflict(apperr.CodeResultDuplicate, "Für dieses Team existiert bereits ein Ergebnis")

type ResultService struct {
	store    ResultStore
	rankings RankingInvalidator
}

// NewResultService accepts a nil invalidator when no ranking cache runs.
func NewResultService(store ResultStore, rankings RankingInvalidator) *ResultService {
	return &ResultService{store: store, rankings: rankings}
}

// Submit stores a finished game. Results are write-once per team and game.
func (s *ResultService) Submit(ctx context.Context, req *dto.SubmitResultRequest) (*model.ResultModel, error) {
	m, err := buildResult(req)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, m); err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, errResultDuplicate
		}
		return nil, err
	}

	if s.rankings != nil {
		if err := s.rankings.Invalidate(ctx, m.ResultGameID); err != nil {
			zap.L().Warn("ranking cache invalidation failed",
				zap.String("game_id", m.ResultGameID), zap.Error(err))
		}
	}
	return m, nil
}

func buildResult(req *dto.SubmitResultRequest) (*model.ResultModel, error) {
	gameID := strings.TrimSpace(req.GameID)
	team := helper.NormalizeName(req.TeamName)
	email := helper.NormalizeEmail(req.Email)
	duration := dto.Text(req.Duration)
	gameType := strings.TrimSpace(req.GameType)

	var missing []string
	for _, f := range []struct {
		name  string
		empty bool
	}{
		{"gameId", gameID == ""},
		{"teamName", team == ""},
		{"email", email == ""},
		{"startTime", req.StartTime == nil},
		{"endTime", req.EndTime == nil},
		{"duration", duration == ""},
		{"gameType", gameType == ""},
	} {
		if f.empty {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, apperr.Invalid(apperr.CodeResultInvalid, "Fehlende Felder: "+strings.Join(missing, ", "))
	}
	if req.EndTime.Before(*req.StartTime) {
		return nil, apperr.Invalid(apperr.CodeResultInvalid, "endTime liegt vor startTime")
	}

	m := &model.ResultModel{
		ResultGameID:    gameID,
		ResultGameTitle: strings.TrimSpace(req.GameTitle),
		ResultTeamName:  team,
		ResultTeamKey:   helper.NameKey(team),
		ResultEmail:     email,
		ResultStartTime: req.StartTime.UTC(),
		ResultEndTime:   req.EndTime.UTC(),
		ResultDuration:  duration,
		ResultGameType:  gameType,
	}
	if secs, ok := scoring.ParseDurationSeconds(req.Duration); ok {
		m.ResultDurationSeconds = &secs
	}
	if stars := dto.Text(req.Stars); stars != "" {
		n := scoring.ParseStars(req.Stars)
		m.ResultStars = &stars
		m.ResultStarsCount = &n
	}
	return m, nil
}

func (s *ResultService) List(ctx context.Context) ([]model.ResultModel, error) {
	return s.store.List(ctx)
}

func (s *ResultService) ListByGame(ctx context.Context, gameID string) ([]model.ResultModel, error) {
	return s.store.ListByGame(ctx, strings.TrimSpace(gameID))
}

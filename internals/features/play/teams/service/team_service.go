package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"kiezjagd_backend/internals/features/play/teams/dto"
	"kiezjagd_backend/internals/features/play/teams/model"
	helper "kiezjagd_backend/internals/helpers"
	"kiezjagd_backend/internals/helpers/apperr"
)

type TeamStore interface {
	Create(ctx context.Context, t *model.TeamModel) error
	FindByNameKey(ctx context.Context, gameID, nameKey string) (*model.TeamModel, error)
}

var (
	errTeamInvalid  = apperr.Invalid(apperr.CodeTeamInvalid, "Ungültige Teaminformationen")
	errTeamTaken    = apperr.Conflict(apperr.CodeTeamNameTaken, "Teamname bereits vergeben")
	errTeamNotFound = apperr.NotFound(apperr.CodeTeamInvalid, "Team nicht gefunden")
)

type TeamService struct {
	store TeamStore
	now   func() time.Time
}

func NewTeamService(store TeamStore) *TeamService {
	return &TeamService{store: store, now: time.Now}
}

func (s *TeamService) WithClock(now func() time.Time) *TeamService {
	s.now = now
	return s
}

// SanitizePlayers normalizes names, drops blanks and keeps the first MaxPlayers.
func SanitizePlayers(players []string) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		if n := helper.NormalizeName(p); n != "" {
			out = append(out, n)
		}
		if len(out) == model.MaxPlayers {
			break
		}
	}
	return out
}

// Register stores a team. Name uniqueness per game is left to the unique
// index so two racing registrations resolve to one winner and one conflict.
func (s *TeamService) Register(ctx context.Context, req *dto.RegisterTeamRequest) (*model.TeamModel, error) {
	name := helper.NormalizeName(req.Name)
	email := helper.NormalizeEmail(req.Email)
	gameID := strings.TrimSpace(req.GameID)
	players := SanitizePlayers(req.Players)

	if gameID == "" || name == "" || email == "" || len(players) == 0 {
		return nil, errTeamInvalid
	}

	start := s.now()
	t := &model.TeamModel{
		TeamGameID:    gameID,
		TeamName:      name,
		TeamNameKey:   helper.NameKey(name),
		TeamEmail:     email,
		TeamPlayers:   pq.StringArray(players),
		TeamStartTime: &start,
	}
	if err := s.store.Create(ctx, t); err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, errTeamTaken
		}
		return nil, err
	}
	return t, nil
}

// FindByName resolves a team (and its players) by display name within a game.
func (s *TeamService) FindByName(ctx context.Context, gameID, name string) (*model.TeamModel, error) {
	t, err := s.store.FindByNameKey(ctx, strings.TrimSpace(gameID), helper.NameKey(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

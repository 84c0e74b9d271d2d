package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bmizerany/assert"
	"gorm.io/gorm"

	"kiezjagd_backend/internals/features/play/teams/dto"
	"kiezjagd_backend/internals/features/play/teams/model"
	"kiezjagd_backend/internals/helpers/apperr"
)

// memTeams enforces the (game, name key) unique index like postgres would.
type memTeams struct {
	rows map[string]*model.TeamModel
}

func (m *memTeams) Create(_ context.Context, t *model.TeamModel) error {
	k := t.TeamGameID + "|" + t.TeamNameKey
	if _, ok := m.rows[k]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.rows[k] = t
	return nil
}

func (m *memTeams) FindByNameKey(_ context.Context, gameID, key string) (*model.TeamModel, error) {
	t, ok := m.rows[gameID+"|"+key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func newSvc() *TeamService {
	return NewTeamService(&memTeams{rows: map[string]*model.TeamModel{}}).
		WithClock(func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) })
}

func TestRegisterNameUniquePerGame(t *testing.T) {
	svc := newSvc()
	ctx := context.Background()
	req := func(name, game string) *dto.RegisterTeamRequest {
		return &dto.RegisterTeamRequest{Name: name, Email: "a@b.de", Players: []string{"Ada"}, GameID: game}
	}

	_, err := svc.Register(ctx, req("Die Füchse", "g1"))
	assert.Equal(t, nil, err)

	_, err = svc.Register(ctx, req("  die   FÜCHSE ", "g1"))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, true, apperr.HasCode(err, apperr.CodeTeamNameTaken))

	_, err = svc.Register(ctx, req("Die Füchse", "g2"))
	assert.Equal(t, nil, err)
}

func TestRegisterSanitizes(t *testing.T) {
	svc := newSvc()
	players := []string{" Ada ", "", "  ", "Bob"}
	for i := 0; i < 10; i++ {
		players = append(players, "P"+strings.Repeat("x", i))
	}
	team, err := svc.Register(context.Background(), &dto.RegisterTeamRequest{
		Name: " Kiez   Kids ", Email: " Kiez@Example.DE ", Players: players, GameID: "g1",
	})
	assert.Equal(t, nil, err)
	assert.Equal(t, "Kiez Kids", team.TeamName)
	assert.Equal(t, "kiez@example.de", team.TeamEmail)
	assert.Equal(t, model.MaxPlayers, len(team.TeamPlayers))
	assert.Equal(t, "Ada", team.TeamPlayers[0])
	assert.Equal(t, "Bob", team.TeamPlayers[1])
	assert.Equal(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), *team.TeamStartTime)
}

func TestRegisterInvalid(t *testing.T) {
	svc := newSvc()
	for _, r := range []dto.RegisterTeamRequest{
		{Email: "a@b.de", Players: []string{"Ada"}, GameID: "g1"},
		{Name: "X", Players: []string{"Ada"}, GameID: "g1"},
		{Name: "X", Email: "a@b.de", Players: []string{" ", ""}, GameID: "g1"},
		{Name: "X", Email: "a@b.de", Players: []string{"Ada"}},
	} {
		_, err := svc.Register(context.Background(), &r)
		assert.Equal(t, true, apperr.HasCode(err, apperr.CodeTeamInvalid))
	}
}

func TestFindByName(t *testing.T) {
	svc := newSvc()
	ctx := context.Background()
	_, _ = svc.Register(ctx, &dto.RegisterTeamRequest{Name: "Wölfe", Email: "a@b.de", Players: []string{"Ada", "Bob"}, GameID: "g1"})

	team, err := svc.FindByName(ctx, "g1", "wolfe")
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(team.TeamPlayers))

	_, err = svc.FindByName(ctx, "g2", "Wölfe")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

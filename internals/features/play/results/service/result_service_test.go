package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bmizerany/assert"
	"gorm.io/gorm"

	"kiezjagd_backend/internals/features/play/results/dto"
	"kiezjagd_backend/internals/features/play/results/model"
	"kiezjagd_backend/internals/helpers/apperr"
)

type memResults struct {
	rows []model.ResultModel
}

func (m *memResults) Create(_ context.Context, r *model.ResultModel) error {
	for _, x := range m.rows {
		if x.ResultGameID == r.ResultGameID && x.ResultTeamKey == r.ResultTeamKey {
			return gorm.ErrDuplicatedKey
		}
	}
	m.rows = append(m.rows, *r)
	return nil
}

func (m *memResults) List(context.Context) ([]model.ResultModel, error) { return m.rows, nil }

func (m *memResults) ListByGame(_ context.Context, id string) ([]model.ResultModel, error) {
	out := []model.ResultModel{}
	for _, r := range m.rows {
		if r.ResultGameID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

type recInvalidator struct {
	games []string
	err   error
}

func (r *recInvalidator) Invalidate(_ context.Context, gameID string) error {
	r.games = append(r.games, gameID)
	return r.err
}

func validRequest() *dto.SubmitResultRequest {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(62 * time.Minute)
	return &dto.SubmitResultRequest{
		GameID:    "kreuzberg-1",
		GameTitle: "Kreuzberg Rallye",
		TeamName:  "  Die  Füchse ",
		Email:     "Team@Example.org",
		StartTime: &start,
		EndTime:   &end,
		Duration:  "1h 2m 3s",
		Stars:     float64(4),
		GameType:  "Maxi",
	}
}

func TestSubmitStoresNormalizedResult(t *testing.T) {
	store := &memResults{}
	inv := &recInvalidator{}
	svc := NewResultService(store, inv)

	m, err := svc.Submit(context.Background(), validRequest())
	assert.Equal(t, nil, err)
	assert.Equal(t, "Die Füchse", m.ResultTeamName)
	assert.Equal(t, "team@example.org", m.ResultEmail)
	assert.Equal(t, int64(3723), *m.ResultDurationSeconds)
	assert.Equal(t, "4", *m.ResultStars)
	assert.Equal(t, 4, *m.ResultStarsCount)
	assert.Equal(t, []string{"kreuzberg-1"}, inv.games)
}

func TestSubmitDuplicateIsRejected(t *testing.T) {
	store := &memResults{}
	svc := NewResultService(store, nil)

	_, err := svc.Submit(context.Background(), validRequest())
	assert.Equal(t, nil, err)

	again := validRequest()
	again.TeamName = "die füchse"
	again.Duration = "00:59:00"
	_, err = svc.Submit(context.Background(), again)
	assert.Equal(t, true, apperr.HasCode(err, apperr.CodeResultDuplicate))
	assert.Equal(t, 1, len(store.rows))
	assert.Equal(t, "1h 2m 3s", store.rows[0].ResultDuration)
}

func TestSubmitMissingFields(t *testing.T) {
	svc := NewResultService(&memResults{}, nil)

	req := validRequest()
	req.Duration = nil
	req.GameType = " "
	_, err := svc.Submit(context.Background(), req)
	assert.Equal(t, true, apperr.HasCode(err, apperr.CodeResultInvalid))
	e, _ := apperr.As(err)
	assert.Equal(t, "Fehlende Felder: duration, gameType", e.Message)

	req = validRequest()
	req.StartTime = nil
	_, err = svc.Submit(context.Background(), req)
	assert.Equal(t, true, apperr.HasCode(err, apperr.CodeResultInvalid))
}

func TestSubmitKeepsUnparseableDuration(t *testing.T) {
	store := &memResults{}
	svc := NewResultService(store, nil)

	req := validRequest()
	req.Duration = "ewig"
	req.Stars = nil
	m, err := svc.Submit(context.Background(), req)
	assert.Equal(t, nil, err)
	assert.Equal(t, "ewig", m.ResultDuration)
	assert.Equal(t, (*int64)(nil), m.ResultDurationSeconds)
	assert.Equal(t, (*string)(nil), m.ResultStars)
}

func TestSubmitNumericDuration(t *testing.T) {
	svc := NewResultService(&memResults{}, nil)
	req := validRequest()
	req.Duration = float64(130)
	m, err := svc.Submit(context.Background(), req)
	assert.Equal(t, nil, err)
	assert.Equal(t, "130", m.ResultDuration)
	assert.Equal(t, int64(130), *m.ResultDurationSeconds)
}

func TestSubmitSurvivesCacheFailure(t *testing.T) {
	inv := &recInvalidator{err: errors.New("redis down")}
	svc := NewResultService(&memResults{}, inv)
	_, err := svc.Submit(context.Background(), validRequest())
	assert.Equal(t, nil, err)
}

func TestSubmitRejectsReversedTimes(t *testing.T) {
	svc := NewResultService(&memResults{}, nil)
	req := validRequest()
	req.StartTime, req.EndTime = req.EndTime, req.StartTime
	_, err := svc.Submit(context.Background(), req)
	assert.Equal(t, true, apperr.HasCode(err, apperr.CodeResultInvalid))
}

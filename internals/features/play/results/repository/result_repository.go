package repository

import (
	"context"

	"gorm.io/gorm"

	"kiezjagd_backend/internals/features/play/results/model"
)

type ResultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

/* ===================== READ ===================== */

func (r *ResultRepository) List(ctx context.Context) ([]model.ResultModel, error) {
	var out []model.ResultModel
	if err := r.db.WithContext(ctx).
		Order("result_created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ResultRepository) ListByGame(ctx context.Context, gameID string) ([]model.ResultModel, error) {
	return r.ListByGames(ctx, []string{gameID})
}

// ListByGames loads every result of the given games in submission order.
func (r *ResultRepository) ListByGames(ctx context.Context, gameIDs []string) ([]model.ResultModel, error) {
	out := []model.ResultModel{}
	if len(gameIDs) == 0 {
		return out, nil
	}
	if err := r.db.WithContext(ctx).
		Where("result_game_id IN ?", gameIDs).
		Order("result_created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

/* ===================== WRITE ===================== */

// Create never overwrites; a second result for the same team hits
// uq_results_game_team_key.
func (r *ResultRepository) Create(ctx context.Context, m *model.ResultModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

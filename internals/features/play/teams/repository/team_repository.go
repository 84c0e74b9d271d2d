package repository

import (
	"context"

	"gorm.io/gorm"

	"kiezjagd_backend/internals/features/play/teams/model"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create relies on uq_teams_game_name_key; concurrent duplicates surface as a
// unique violation.
func (r *TeamRepository) Create(ctx context.Context, t *model.TeamModel) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TeamRepository) FindByNameKey(ctx context.Context, gameID, nameKey string) (*model.TeamModel, error) {
	var t model.TeamModel
	if err := r.db.WithContext(ctx).
		Where("team_game_id = ? AND team_name_key = ?", gameID, nameKey).
		First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// internals/features/games/games/repository/game_repository.go
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kiezjagd_backend/internals/features/games/games/model"
)

type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

/* ====================== READ ====================== */

// FindByKey accepts the internal uuid or the public id; both circulate in
// links handed out over the years. Missing → gorm.ErrRecordNotFound.
func (r *GameRepository) FindByKey(ctx context.Context, key string) (*model.GameModel, error) {
	key = strings.TrimSpace(key)
	if id, err := uuid.Parse(key); err == nil {
		var g model.GameModel
		err := r.db.WithContext(ctx).Where("game_id = ?", id).First(&g).Error
		if err == nil {
			return &g, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return r.FindByPublicID(ctx, key)
}

func (r *GameRepository) FindByPublicID(ctx context.Context, publicID string) (*model.GameModel, error) {
	var g model.GameModel
	if err := r.db.WithContext(ctx).Where("game_public_id = ?", publicID).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GameRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.GameModel, error) {
	var g model.GameModel
	if err := r.db.WithContext(ctx).First(&g, "game_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns games ordered by sort index then name. includeDisabled=false
// drops rows with the legacy disabled flag at the query level; activation
// windows are evaluated in the service.
func (r *GameRepository) List(ctx context.Context, includeDisabled bool) ([]model.GameModel, error) {
	q := r.db.WithContext(ctx).
		Omit("game_questions").
		Order("game_sort_index ASC, game_name ASC")
	if !includeDisabled {
		q = q.Where("game_is_disabled = ?", false)
	}
	var out []model.GameModel
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GameRepository) RandomPublicIDs(ctx context.Context, n int) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&model.GameModel{}).
		Where("game_is_disabled = ?", false).
		Order("random()").
		Limit(n).
		Pluck("game_public_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

/* ====================== WRITE ====================== */

func (r *GameRepository) Create(ctx context.Context, g *model.GameModel) error {
	return r.db.WithContext(ctx).Create(g).Error
}

// Save writes the full row, questions included.
func (r *GameRepository) Save(ctx context.Context, g *model.GameModel) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.GameModel{}, "game_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package games

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kiezjagd_backend/internals/features/games/games/dto"
	"kiezjagd_backend/internals/features/games/games/model"
)

// GameSeed is an admin upsert payload plus a fixed public id so reruns
// find the row again.
type GameSeed struct {
	dto.UpsertGameRequest
	GamePublicID  string                `json:"game_public_id"`
	GameQuestions []dto.QuestionRequest `json:"game_questions"`
}

func LoadGameSeeds(path string) ([]GameSeed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var rows []GameSeed
	if err := sonic.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	for i, r := range rows {
		if strings.TrimSpace(r.GamePublicID) == "" {
			return nil, fmt.Errorf("seed %d (%s): game_public_id is required", i, r.GameName)
		}
	}
	return rows, nil
}

// ToModel builds the row the seed describes.
func (s *GameSeed) ToModel() *model.GameModel {
	m := &model.GameModel{GamePublicID: strings.TrimSpace(s.GamePublicID)}
	s.ApplyTo(m)
	qs := make([]model.Question, 0, len(s.GameQuestions))
	for i := range s.GameQuestions {
		qs = append(qs, s.GameQuestions[i].ToModel())
	}
	m.GameQuestions = qs
	return m
}

// SeedGamesFromJSON inserts games whose public id does not exist yet and
// returns how many were created. Existing games are left untouched.
func SeedGamesFromJSON(ctx context.Context, db *gorm.DB, path string) (int, error) {
	rows, err := LoadGameSeeds(path)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range rows {
		m := rows[i].ToModel()

		var existing model.GameModel
		err := db.WithContext(ctx).Select("game_id").
			Where("game_public_id = ?", m.GamePublicID).
			First(&existing).Error
		if err == nil {
			zap.L().Debug("seed game exists, skipping", zap.String("public_id", m.GamePublicID))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}

		if err := db.WithContext(ctx).Create(m).Error; err != nil {
			return created, fmt.Errorf("seed %s: %w", m.GamePublicID, err)
		}
		created++
	}
	return created, nil
}

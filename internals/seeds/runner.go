package seeds

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	games "kiezjagd_backend/internals/seeds/games"
)

// RunAllSeeds loads the catalog fixtures. Seeding is skipped when
// gamesFile is empty.
func RunAllSeeds(ctx context.Context, db *gorm.DB, gamesFile string) error {
	if gamesFile == "" {
		return nil
	}

	//* Games
	n, err := games.SeedGamesFromJSON(ctx, db, gamesFile)
	if err != nil {
		return err
	}
	zap.L().Info("seeded games", zap.Int("created", n), zap.String("file", gamesFile))
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	gamemodel "kiezjagd_backend/internals/features/games/games/model"
	"kiezjagd_backend/internals/features/play/rankings/scoring"
	resultmodel "kiezjagd_backend/internals/features/play/results/model"
	"kiezjagd_backend/internals/helpers/apperr"
)

// RankingSize is what the game detail page shows under "Bestenliste".
const RankingSize = 5

type ResultSource interface {
	ListByGames(ctx context.Context, gameIDs []string) ([]resultmodel.ResultModel, error)
}

type GameLookup interface {
	FindByKey(ctx context.Context, key string) (*gamemodel.GameModel, error)
}

type RankingService struct {
	results ResultSource
	games   GameLookup
	cache   *Cache
}

func NewRankingService(results ResultSource, games GameLookup, cache *Cache) *RankingService {
	return &RankingService{results: results, games: games, cache: cache}
}

type GameTop struct {
	GameName   string           `json:"gameName"`
	TopResults []scoring.Ranked `json:"topResults"`
}

// TopN returns the best n results per requested game id, serving cached
// lists where possible. Every id is present in the map.
func (s *RankingService) TopN(ctx context.Context, ids []string, n int) (map[string][]scoring.Ranked, error) {
	if n <= 0 {
		n = scoring.DefaultTopN
	}
	ids = uniqueIDs(ids)
	out := make(map[string][]scoring.Ranked, len(ids))

	var missing []string
	versions := make(map[string]int64, len(ids))
	for _, id := range ids {
		rows, ver, ok := s.cache.Get(ctx, n, id)
		if ok {
			out[id] = rows
			continue
		}
		versions[id] = ver
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out, nil
	}

	rows, err := s.results.ListByGames(ctx, missing)
	if err != nil {
		return nil, err
	}
	entries := make([]scoring.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, ToEntry(&rows[i]))
	}

	for id, ranked := range scoring.TopN(missing, entries, n) {
		out[id] = ranked
		if err := s.cache.Set(ctx, n, id, versions[id], ranked); err != nil {
			zap.L().Warn("ranking cache write failed", zap.String("game_id", id), zap.Error(err))
		}
	}
	return out, nil
}

// GameTop resolves a game by public id (or uuid) and returns its top n.
func (s *RankingService) GameTop(ctx context.Context, key string, n int) (*GameTop, error) {
	g, err := s.games.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeGameNotFound, "Spiel nicht gefunden")
		}
		return nil, err
	}
	top, err := s.TopN(ctx, []string{g.GamePublicID}, n)
	if err != nil {
		return nil, err
	}
	return &GameTop{GameName: g.GameName, TopResults: top[g.GamePublicID]}, nil
}

// Invalidate lets the result service drop stale lists after a submit.
func (s *RankingService) Invalidate(ctx context.Context, gameID string) error {
	return s.cache.Invalidate(ctx, gameID)
}

func ToEntry(m *resultmodel.ResultModel) scoring.Entry {
	e := scoring.Entry{
		GameID:   m.ResultGameID,
		TeamName: m.ResultTeamName,
		Duration: m.ResultDuration,
		GameType: m.ResultGameType,
	}
	if m.ResultStarsCount != nil {
		e.Stars = *m.ResultStarsCount
	}
	start := m.ResultStartTime
	if !start.IsZero() {
		e.StartTime = &start
	}
	return e
}

// uniqueIDs trims, drops blanks and keeps first occurrence order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// SplitIDs parses the comma separated ?ids= query value.
func SplitIDs(raw string) []string {
	return uniqueIDs(strings.Split(raw, ","))
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/bmizerany/assert"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	gamemodel "kiezjagd_backend/internals/features/games/games/model"
	"kiezjagd_backend/internals/features/play/rankings/scoring"
	resultmodel "kiezjagd_backend/internals/features/play/results/model"
	"kiezjagd_backend/internals/helpers/apperr"
)

type fakeResults struct {
	rows  []resultmodel.ResultModel
	calls [][]string
}

func (f *fakeResults) ListByGames(_ context.Context, ids []string) ([]resultmodel.ResultModel, error) {
	f.calls = append(f.calls, ids)
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []resultmodel.ResultModel{}
	for _, r := range f.rows {
		if want[r.ResultGameID] {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeGames map[string]*gamemodel.GameModel

func (f fakeGames) FindByKey(_ context.Context, key string) (*gamemodel.GameModel, error) {
	if g, ok := f[key]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func seedResults(gameID string, n int) []resultmodel.ResultModel {
	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	out := make([]resultmodel.ResultModel, 0, n)
	for i := n; i >= 1; i-- {
		out = append(out, resultmodel.ResultModel{
			ResultGameID:    gameID,
			ResultTeamName:  fmt.Sprintf("Team %02d", i),
			ResultDuration:  fmt.Sprintf("%dm", i*3),
			ResultGameType:  "Maxi",
			ResultStartTime: start,
		})
	}
	return out
}

func TestTopNEveryIDPresent(t *testing.T) {
	src := &fakeResults{rows: seedResults("neukoelln", 12)}
	svc := NewRankingService(src, fakeGames{}, NewCache(nil, 0))

	top, err := svc.TopN(context.Background(), []string{"neukoelln", " ", "wedding", "neukoelln"}, 8)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(top))
	assert.Equal(t, 8, len(top["neukoelln"]))
	assert.Equal(t, "Team 01", top["neukoelln"][0].TeamName)
	assert.Equal(t, int64(180), *top["neukoelln"][0].DurationSeconds)
	assert.Equal(t, 0, len(top["wedding"]))
	assert.Equal(t, [][]string{{"neukoelln", "wedding"}}, src.calls)
}

func TestGameTop(t *testing.T) {
	src := &fakeResults{rows: seedResults("mitte-1", 7)}
	games := fakeGames{"mitte-1": {GamePublicID: "mitte-1", GameName: "Mitte Krimi"}}
	svc := NewRankingService(src, games, nil)

	top, err := svc.GameTop(context.Background(), "mitte-1", RankingSize)
	assert.Equal(t, nil, err)
	assert.Equal(t, "Mitte Krimi", top.GameName)
	assert.Equal(t, RankingSize, len(top.TopResults))
	assert.Equal(t, 1, top.TopResults[0].Rank)

	_, err = svc.GameTop(context.Background(), "gibtsnicht", 8)
	assert.Equal(t, true, apperr.HasCode(err, apperr.CodeGameNotFound))
}

func TestToEntryUsesStarsCount(t *testing.T) {
	n := 3
	e := ToEntry(&resultmodel.ResultModel{ResultGameID: "g", ResultTeamName: "A", ResultStarsCount: &n})
	assert.Equal(t, 3, e.Stars)
	assert.Equal(t, (*time.Time)(nil), e.StartTime)
}

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitIDs("a, b,,c,a"))
	assert.Equal(t, []string{}, SplitIDs(""))
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "rank:top:8:mitte-1:0", cacheKey(8, "mitte-1", 0))
	assert.Equal(t, "rank:ver:mitte-1", versionKey("mitte-1"))
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	_, ver, ok := c.Get(context.Background(), 8, "g")
	assert.Equal(t, false, ok)
	assert.Equal(t, noVersion, ver)
	assert.Equal(t, nil, c.Set(context.Background(), 8, "g", 0, nil))
	assert.Equal(t, nil, c.Invalidate(context.Background(), "g"))
}

type memRedis struct {
	vals map[string]string
	down bool
}

func newMemRedis() *memRedis { return &memRedis{vals: map[string]string{}} }

func (m *memRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.down {
		return redis.NewStringResult("", errors.New("dial tcp: connection refused"))
	}
	v, ok := m.vals[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memRedis) Set(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.vals[key] = string(v)
	case string:
		m.vals[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *memRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(m.vals[key], 10, 64)
	n++
	m.vals[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func TestCacheStaleWriteAfterInvalidateIsNeverServed(t *testing.T) {
	ctx := context.Background()
	c := newCache(newMemRedis(), time.Minute)

	_, ver, ok := c.Get(ctx, 8, "g")
	assert.Equal(t, false, ok)
	assert.Equal(t, int64(0), ver)

	// a result lands between the read and the write-back
	assert.Equal(t, nil, c.Invalidate(ctx, "g"))
	assert.Equal(t, nil, c.Set(ctx, 8, "g", ver, []scoring.Ranked{{Rank: 1, TeamName: "Alt"}}))

	_, ver, ok = c.Get(ctx, 8, "g")
	assert.Equal(t, false, ok)
	assert.Equal(t, int64(1), ver)

	assert.Equal(t, nil, c.Set(ctx, 8, "g", ver, []scoring.Ranked{{Rank: 1, TeamName: "Neu"}}))
	rows, _, ok := c.Get(ctx, 8, "g")
	assert.Equal(t, true, ok)
	assert.Equal(t, "Neu", rows[0].TeamName)
}

func TestCacheRedisDownSkipsWrites(t *testing.T) {
	ctx := context.Background()
	rdb := newMemRedis()
	rdb.down = true
	c := newCache(rdb, time.Minute)

	_, ver, ok := c.Get(ctx, 8, "g")
	assert.Equal(t, false, ok)
	assert.Equal(t, noVersion, ver)
	assert.Equal(t, nil, c.Set(ctx, 8, "g", ver, []scoring.Ranked{}))
	assert.Equal(t, 0, len(rdb.vals))
}

// racingResults simulates a submit that commits while TopN reads rows.
type racingResults struct {
	fakeResults
	svc  *RankingService
	late resultmodel.ResultModel
	done bool
}

func (r *racingResults) ListByGames(ctx context.Context, ids []string) ([]resultmodel.ResultModel, error) {
	rows, err := r.fakeResults.ListByGames(ctx, ids)
	if !r.done {
		r.done = true
		r.rows = append(r.rows, r.late)
		_ = r.svc.Invalidate(ctx, r.late.ResultGameID)
	}
	return rows, err
}

func TestTopNConcurrentSubmitDoesNotPinStaleList(t *testing.T) {
	ctx := context.Background()
	src := &racingResults{
		fakeResults: fakeResults{rows: seedResults("spree", 3)},
		late: resultmodel.ResultModel{
			ResultGameID:    "spree",
			ResultTeamName:  "Blitz",
			ResultDuration:  "1m",
			ResultGameType:  "Maxi",
			ResultStartTime: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
		},
	}
	svc := NewRankingService(src, fakeGames{}, newCache(newMemRedis(), time.Minute))
	src.svc = svc

	first, err := svc.TopN(ctx, []string{"spree"}, 8)
	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(first["spree"]))

	second, err := svc.TopN(ctx, []string{"spree"}, 8)
	assert.Equal(t, nil, err)
	assert.Equal(t, 4, len(second["spree"]))
	assert.Equal(t, "Blitz", second["spree"][0].TeamName)
	assert.Equal(t, 2, len(src.calls))

	_, err = svc.TopN(ctx, []string{"spree"}, 8)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(src.calls))
}

// internals/features/games/games/service/game_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kiezjagd_backend/internals/features/games/games/dto"
	"kiezjagd_backend/internals/features/games/games/model"
	"kiezjagd_backend/internals/helpers/apperr"
)

type GameStore interface {
	FindByKey(ctx context.Context, key string) (*model.GameModel, error)
	FindByPublicID(ctx context.Context, publicID string) (*model.GameModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.GameModel, error)
	List(ctx context.Context, includeDisabled bool) ([]model.GameModel, error)
	RandomPublicIDs(ctx context.Context, n int) ([]string, error)
	Create(ctx context.Context, g *model.GameModel) error
	Save(ctx context.Context, g *model.GameModel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var (
	errGameNotFound     = apperr.NotFound(apperr.CodeGameNotFound, "Spiel nicht gefunden")
	errQuestionNotFound = apperr.NotFound(apperr.CodeQuestionNotFound, "Frage nicht gefunden")
)

type GameService struct {
	store GameStore
	now   func() time.Time
}

func NewGameService(store GameStore) *GameService {
	return &GameService{store: store, now: time.Now}
}

// WithClock replaces the time source (tests).
func (s *GameService) WithClock(now func() time.Time) *GameService {
	s.now = now
	return s
}

func notFound(err error, as *apperr.Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return as
	}
	return err
}

/* ====================== CATALOG ====================== */

// List returns the catalog; non-admins only see games that are playable now.
func (s *GameService) List(ctx context.Context, admin bool) ([]dto.GameListItem, error) {
	games, err := s.store.List(ctx, admin)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]dto.GameListItem, 0, len(games))
	for i := range games {
		g := &games[i]
		if !g.IsVisibleTo(admin, now) {
			continue
		}
		out = append(out, dto.ToGameListItem(g, now))
	}
	return out, nil
}

func (s *GameService) Get(ctx context.Context, publicID string, admin bool) (*dto.GameResponse, error) {
	g, err := s.store.FindByPublicID(ctx, strings.TrimSpace(publicID))
	if err != nil {
		return nil, notFound(err, errGameNotFound)
	}
	now := s.now()
	if !admin {
		if g.GameIsDisabled {
			return nil, apperr.Forbidden(apperr.CodeGameDisabled, "Dieses Spiel ist deaktiviert.")
		}
		if !g.IsPlayableNow(now) {
			return nil, apperr.Forbidden(apperr.CodeGameInactive, "Dieses Spiel ist derzeit nicht spielbar.")
		}
	}
	resp := dto.ToGameResponse(g, now)
	return &resp, nil
}

// Random returns up to n public ids of enabled games.
func (s *GameService) Random(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		n = 2
	}
	if n > 20 {
		n = 20
	}
	ids, err := s.store.RandomPublicIDs(ctx, n)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, apperr.NotFound(apperr.CodeGameNotFound, "Keine zufälligen Spiele gefunden")
	}
	return ids, nil
}

/* ====================== ADMIN CRUD ====================== */

func (s *GameService) Create(ctx context.Context, req *dto.UpsertGameRequest) (*model.GameModel, error) {
	g := &model.GameModel{GameQuestions: []model.Question{}}
	req.ApplyTo(g)
	g.GamePublicID = model.NewPublicID()
	if err := s.store.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GameService) Update(ctx context.Context, id uuid.UUID, req *dto.UpsertGameRequest) (*model.GameModel, error) {
	g, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, errGameNotFound)
	}
	req.ApplyTo(g)
	if err := s.store.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GameService) Delete(ctx context.Context, id uuid.UUID) error {
	return notFound(s.store.Delete(ctx, id), errGameNotFound)
}

// Copy duplicates a game under a fresh public id, name suffixed "_Kopie".
func (s *GameService) Copy(ctx context.Context, id uuid.UUID) (*model.GameModel, error) {
	src, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, errGameNotFound)
	}
	cp := *src
	cp.GameID = uuid.Nil
	cp.GamePublicID = model.NewPublicID()
	cp.GameName = src.GameName + "_Kopie"
	cp.GameCreatedAt = time.Time{}
	cp.GameUpdatedAt = time.Time{}
	cp.GameQuestions = append([]model.Question(nil), src.GameQuestions...)
	if src.GameActivation != nil {
		act := *src.GameActivation
		cp.GameActivation = &act
	}
	if err := s.store.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

/* ====================== QUESTIONS ====================== */

func validateQuestion(q model.Question) error {
	if strings.TrimSpace(q.Question) == "" {
		return apperr.Invalid(apperr.CodeQuestionInvalid, "Frage darf nicht leer sein.")
	}
	if q.Type == model.QuestionTypeAnweisung {
		if q.Coordinates == nil || q.Coordinates.Lat == 0 || q.Coordinates.Lon == 0 {
			return apperr.Invalid(apperr.CodeQuestionInvalid, "GPS-Koordinaten erforderlich!")
		}
	}
	return nil
}

func (s *GameService) AddQuestion(ctx context.Context, publicID string, req *dto.QuestionRequest) (*model.Question, error) {
	g, err := s.store.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, notFound(err, errGameNotFound)
	}
	q := req.ToModel()
	if err := validateQuestion(q); err != nil {
		return nil, err
	}
	g.GameQuestions = append(g.GameQuestions, q)
	if err := s.store.Save(ctx, g); err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuestion overwrites the question's content, keeping its id.
func (s *GameService) UpdateQuestion(ctx context.Context, publicID, questionID string, req *dto.QuestionRequest) (*model.Question, error) {
	g, err := s.store.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, notFound(err, errGameNotFound)
	}
	idx, _ := g.FindQuestion(questionID)
	if idx < 0 {
		return nil, errQuestionNotFound
	}
	q := req.ToModel()
	q.ID = questionID
	if err := validateQuestion(q); err != nil {
		return nil, err
	}
	g.GameQuestions[idx] = q
	if err := s.store.Save(ctx, g); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *GameService) DeleteQuestion(ctx context.Context, publicID, questionID string) error {
	g, err := s.store.FindByPublicID(ctx, publicID)
	if err != nil {
		return notFound(err, errGameNotFound)
	}
	idx, _ := g.FindQuestion(questionID)
	if idx < 0 {
		return errQuestionNotFound
	}
	g.GameQuestions = append(g.GameQuestions[:idx], g.GameQuestions[idx+1:]...)
	return s.store.Save(ctx, g)
}

// ReorderQuestions requires orderedIDs to be a permutation of the game's
// question ids; anything else leaves the order untouched.
func (s *GameService) ReorderQuestions(ctx context.Context, gameKey string, orderedIDs []string) error {
	g, err := s.store.FindByKey(ctx, gameKey)
	if err != nil {
		return notFound(err, errGameNotFound)
	}

	mismatch := apperr.Invalid(apperr.CodeQuestionOrderMismatch, "Nicht alle Fragen wurden korrekt zugeordnet.")
	if len(orderedIDs) != len(g.GameQuestions) {
		return mismatch
	}

	byID := make(map[string]model.Question, len(g.GameQuestions))
	for _, q := range g.GameQuestions {
		byID[q.ID] = q
	}
	reordered := make([]model.Question, 0, len(orderedIDs))
	seen := make(map[string]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		q, ok := byID[id]
		if !ok {
			return mismatch
		}
		if _, dup := seen[id]; dup {
			return mismatch
		}
		seen[id] = struct{}{}
		reordered = append(reordered, q)
	}

	g.GameQuestions = reordered
	return s.store.Save(ctx, g)
}

/* ====================== LOCATION ====================== */

func (s *GameService) VerifyLocation(ctx context.Context, publicID, questionID string, at model.Coordinates) (*dto.VerifyLocationResponse, error) {
	g, err := s.store.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, notFound(err, errGameNotFound)
	}
	_, q := g.FindQuestion(questionID)
	if q == nil || q.Type != model.QuestionTypeAnweisung || q.Coordinates == nil {
		return nil, apperr.NotFound(apperr.CodeQuestionNotFound, "Frage nicht gefunden oder falscher Typ.")
	}

	d := DistanceMeters(at.Lat, at.Lon, q.Coordinates.Lat, q.Coordinates.Lon)
	if d <= MaxLocationDistanceMeters {
		return &dto.VerifyLocationResponse{Success: true, Message: "Standort korrekt!", DistanceMeters: d}, nil
	}
	return &dto.VerifyLocationResponse{Success: false, Message: "Zu weit entfernt!", DistanceMeters: d}, nil
}

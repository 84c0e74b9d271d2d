package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"kiezjagd_backend/internals/features/games/games/model"
	"kiezjagd_backend/internals/helpers/dbtime"
)

/* =========================================================
   REQUEST DTOs
   Legacy spellings (with_certicate, mail_text) are accepted
   and folded into the canonical fields by ToLegacy().
========================================================= */

type ActivationInput struct {
	Enabled      bool       `json:"enabled"`
	From         *time.Time `json:"from"`
	Until        *time.Time `json:"until"`
	RepeatYearly bool       `json:"repeat_yearly"`
}

type UpsertGameRequest struct {
	GameName        string  `json:"game_name" validate:"required,min=2,max=200"`
	GameCity        string  `json:"game_city" validate:"required"`
	GamePLZ         string  `json:"game_plz" validate:"required,max=10"`
	GameAgeGroup    string  `json:"game_age_group" validate:"required"`
	GameDescription string  `json:"game_description" validate:"required"`
	GamePrehistory  *string `json:"game_prehistory,omitempty"`
	GameInfohistory *string `json:"game_infohistory,omitempty"`
	GameLandingURL  *string `json:"game_landing_page_url,omitempty" validate:"omitempty,url"`

	GamePrice string `json:"game_price" validate:"required"`

	GameIsDisabled  bool    `json:"game_is_disabled"`
	GameIsVoucher   bool    `json:"game_is_voucher"`
	GameVoucherName *string `json:"game_voucher_name,omitempty"`

	GameWithCertificate *bool   `json:"game_with_certificate,omitempty"`
	GameWithCerticate   *bool   `json:"game_with_certicate,omitempty"`
	GameMailtext        *string `json:"game_mailtext,omitempty"`
	GameMailText        *string `json:"game_mail_text,omitempty"`

	GameImage         string  `json:"game_image" validate:"required"`
	GamePlaytime      *string `json:"game_playtime,omitempty"`
	GameStartLocation string  `json:"game_start_location" validate:"required"`
	GameEndLocation   string  `json:"game_end_location" validate:"required"`
	GameSortIndex     *int    `json:"game_sort_index,omitempty"`

	GameActivation *ActivationInput `json:"game_activation,omitempty"`
}

func (r *UpsertGameRequest) ToLegacy() model.LegacyGameFields {
	var act *model.Activation
	if r.GameActivation != nil {
		act = &model.Activation{
			Enabled:      r.GameActivation.Enabled,
			From:         r.GameActivation.From,
			Until:        r.GameActivation.Until,
			RepeatYearly: r.GameActivation.RepeatYearly,
		}
	}
	return model.LegacyGameFields{
		IsDisabled:      r.GameIsDisabled,
		WithCertificate: r.GameWithCertificate,
		WithCerticate:   r.GameWithCerticate,
		Mailtext:        r.GameMailtext,
		MailText:        r.GameMailText,
		Activation:      act,
	}
}

// ApplyTo copies the request onto m; questions and public id stay untouched.
func (r *UpsertGameRequest) ApplyTo(m *model.GameModel) {
	n := model.NormalizeLegacy(r.ToLegacy())

	m.GameName = strings.TrimSpace(r.GameName)
	m.GameCity = strings.TrimSpace(r.GameCity)
	m.GamePLZ = strings.TrimSpace(r.GamePLZ)
	m.GameAgeGroup = r.GameAgeGroup
	m.GameDescription = r.GameDescription
	m.GamePrehistory = r.GamePrehistory
	m.GameInfohistory = r.GameInfohistory
	m.GameLandingURL = r.GameLandingURL
	m.GamePrice = strings.TrimSpace(r.GamePrice)
	m.GameIsDisabled = n.IsDisabled
	m.GameIsVoucher = r.GameIsVoucher
	m.GameVoucherName = r.GameVoucherName
	m.GameWithCertificate = n.WithCertificate
	m.GameMailText = n.Mailtext
	m.GameImage = r.GameImage
	m.GamePlaytime = r.GamePlaytime
	m.GameStartLocation = r.GameStartLocation
	m.GameEndLocation = r.GameEndLocation
	if r.GameSortIndex != nil {
		m.GameSortIndex = *r.GameSortIndex
	} else if m.GameSortIndex == 0 {
		m.GameSortIndex = 9999
	}
	m.GameActivation = n.Activation
}

type QuestionRequest struct {
	Question       string                 `json:"question" validate:"required"`
	AnswerQuestion *string                `json:"answer_question,omitempty"`
	Type           string                 `json:"type" validate:"omitempty,oneof=text multiple anweisung next"`
	Options        []model.QuestionOption `json:"options,omitempty"`
	Answer         string                 `json:"answer,omitempty"`
	ImageURL       string                 `json:"image_url,omitempty"`
	AudioURL       string                 `json:"audio_url,omitempty"`
	Coordinates    *model.Coordinates     `json:"coordinates,omitempty"`
}

func (r *QuestionRequest) ToModel() model.Question {
	typ := r.Type
	if typ == "" {
		typ = model.QuestionTypeText
	}
	opts := r.Options
	if opts == nil {
		opts = []model.QuestionOption{}
	}
	return model.Question{
		ID:             uuid.NewString(),
		Question:       strings.TrimSpace(r.Question),
		AnswerQuestion: r.AnswerQuestion,
		Type:           typ,
		Options:        opts,
		Answer:         r.Answer,
		ImageURL:       r.ImageURL,
		AudioURL:       r.AudioURL,
		Coordinates:    r.Coordinates,
	}
}

type ReorderQuestionsRequest struct {
	GameID     string   `json:"game_id" validate:"required"`
	OrderedIDs []string `json:"ordered_ids" validate:"required"`
}

type VerifyLocationRequest struct {
	QuestionID      string             `json:"question_id" validate:"required"`
	UserCoordinates *model.Coordinates `json:"user_coordinates" validate:"required"`
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type GameListItem struct {
	GameID             uuid.UUID         `json:"game_id"`
	GamePublicID       string            `json:"game_public_id"`
	GameName           string            `json:"game_name"`
	GameCity           string            `json:"game_city"`
	GamePLZ            string            `json:"game_plz"`
	GameAgeGroup       string            `json:"game_age_group"`
	GamePrice          string            `json:"game_price"`
	GameImage          string            `json:"game_image"`
	GamePlaytime       *string           `json:"game_playtime"`
	GameIsDisabled     bool              `json:"game_is_disabled"`
	GameIsVoucher      bool              `json:"game_is_voucher"`
	GameSortIndex      int               `json:"game_sort_index"`
	GameQuestionsCount int               `json:"game_questions_count"`
	GameActivation     *model.Activation `json:"game_activation"`
	GameIsActiveNow    bool              `json:"game_is_active_now"`
}

func ToGameListItem(m *model.GameModel, now time.Time) GameListItem {
	return GameListItem{
		GameID:             m.GameID,
		GamePublicID:       m.GamePublicID,
		GameName:           m.GameName,
		GameCity:           m.GameCity,
		GamePLZ:            m.GamePLZ,
		GameAgeGroup:       m.GameAgeGroup,
		GamePrice:          m.GamePrice,
		GameImage:          m.GameImage,
		GamePlaytime:       m.GamePlaytime,
		GameIsDisabled:     m.GameIsDisabled,
		GameIsVoucher:      m.GameIsVoucher,
		GameSortIndex:      m.GameSortIndex,
		GameQuestionsCount: m.GameQuestionsCount,
		GameActivation:     m.GameActivation,
		GameIsActiveNow:    m.IsPlayableNow(now),
	}
}

type GameResponse struct {
	GameListItem
	GameDescription     string           `json:"game_description"`
	GamePrehistory      *string          `json:"game_prehistory"`
	GameInfohistory     *string          `json:"game_infohistory"`
	GameLandingURL      *string          `json:"game_landing_page_url"`
	GameMailtext        *string          `json:"game_mailtext"`
	GameWithCertificate bool             `json:"game_with_certificate"`
	GameVoucherName     *string          `json:"game_voucher_name"`
	GameStartLocation   string           `json:"game_start_location"`
	GameEndLocation     string           `json:"game_end_location"`
	GameQuestions       []model.Question `json:"game_questions"`
	GameCreatedAt       time.Time        `json:"game_created_at"`
	GameUpdatedAt       time.Time        `json:"game_updated_at"`
}

func ToGameResponse(m *model.GameModel, now time.Time) GameResponse {
	qs := []model.Question(m.GameQuestions)
	if qs == nil {
		qs = []model.Question{}
	}
	return GameResponse{
		GameListItem:        ToGameListItem(m, now),
		GameDescription:     m.GameDescription,
		GamePrehistory:      m.GamePrehistory,
		GameInfohistory:     m.GameInfohistory,
		GameLandingURL:      m.GameLandingURL,
		GameMailtext:        m.GameMailText,
		GameWithCertificate: m.GameWithCertificate,
		GameVoucherName:     m.GameVoucherName,
		GameStartLocation:   m.GameStartLocation,
		GameEndLocation:     m.GameEndLocation,
		GameQuestions:       qs,
		GameCreatedAt:       dbtime.Local(m.GameCreatedAt),
		GameUpdatedAt:       dbtime.Local(m.GameUpdatedAt),
	}
}

type VerifyLocationResponse struct {
	Success        bool    `json:"success"`
	Message        string  `json:"message"`
	DistanceMeters float64 `json:"distance_meters"`
}

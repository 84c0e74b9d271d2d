// file: internals/features/games/games/model/game_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	QuestionTypeText      = "text"
	QuestionTypeMultiple  = "multiple"
	QuestionTypeAnweisung = "anweisung"
	QuestionTypeNext      = "next"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type QuestionOption struct {
	Type     string `json:"type"` // text | image | both | audio | anweisung
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
	Correct  bool   `json:"correct"`
}

type Question struct {
	ID             string           `json:"id"`
	Question       string           `json:"question"`
	AnswerQuestion *string          `json:"answer_question,omitempty"`
	Type           string           `json:"type"`
	Options        []QuestionOption `json:"options"`
	Answer         string           `json:"answer"`
	ImageURL       string           `json:"image_url,omitempty"`
	AudioURL       string           `json:"audio_url,omitempty"`
	Coordinates    *Coordinates     `json:"coordinates,omitempty"`
}

type GameModel struct {
	GameID       uuid.UUID `gorm:"column:game_id;type:uuid;default:gen_random_uuid();primaryKey" json:"game_id"`
	GamePublicID string    `gorm:"column:game_public_id;type:varchar(64);not null;uniqueIndex:uq_games_public_id" json:"game_public_id"`

	GameName        string  `gorm:"column:game_name;not null" json:"game_name"`
	GameCity        string  `gorm:"column:game_city;not null" json:"game_city"`
	GamePLZ         string  `gorm:"column:game_plz;not null" json:"game_plz"`
	GameAgeGroup    string  `gorm:"column:game_age_group;not null" json:"game_age_group"`
	GameDescription string  `gorm:"column:game_description;type:text;not null" json:"game_description"`
	GamePrehistory  *string `gorm:"column:game_prehistory;type:text" json:"game_prehistory"`
	GameInfohistory *string `gorm:"column:game_infohistory;type:text" json:"game_infohistory"`
	GameLandingURL  *string `gorm:"column:game_landing_page_url" json:"game_landing_page_url"`
	GameMailText    *string `gorm:"column:game_mailtext;type:text" json:"game_mailtext"`

	// price as entered by the admin ("12,90 €"); parsed at checkout
	GamePrice string `gorm:"column:game_price;not null" json:"game_price"`

	GameIsDisabled      bool    `gorm:"column:game_is_disabled;not null;default:false" json:"game_is_disabled"`
	GameIsVoucher       bool    `gorm:"column:game_is_voucher;not null;default:false" json:"game_is_voucher"`
	GameWithCertificate bool    `gorm:"column:game_with_certificate;not null;default:false" json:"game_with_certificate"`
	GameVoucherName     *string `gorm:"column:game_voucher_name" json:"game_voucher_name"`

	GameImage         string  `gorm:"column:game_image;not null" json:"game_image"`
	GamePlaytime      *string `gorm:"column:game_playtime" json:"game_playtime"`
	GameStartLocation string  `gorm:"column:game_start_location;not null" json:"game_start_location"`
	GameEndLocation   string  `gorm:"column:game_end_location;not null" json:"game_end_location"`
	GameSortIndex     int     `gorm:"column:game_sort_index;not null;default:9999;index:idx_games_sort" json:"game_sort_index"`

	GameActivation     *Activation                   `gorm:"column:game_activation;type:jsonb;serializer:json" json:"game_activation"`
	GameQuestions      datatypes.JSONSlice[Question] `gorm:"column:game_questions;type:jsonb;not null;default:'[]'" json:"game_questions"`
	GameQuestionsCount int                           `gorm:"column:game_questions_count;not null;default:0" json:"game_questions_count"`

	GameCreatedAt time.Time `gorm:"column:game_created_at;autoCreateTime" json:"game_created_at"`
	GameUpdatedAt time.Time `gorm:"column:game_updated_at;autoUpdateTime" json:"game_updated_at"`
}

func (GameModel) TableName() string {
	return "games"
}

// NewPublicID returns 32 hex chars (16 random bytes).
func NewPublicID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (g *GameModel) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(g.GamePublicID) == "" {
		g.GamePublicID = NewPublicID()
	}
	g.GameQuestionsCount = len(g.GameQuestions)
	return nil
}

func (g *GameModel) AfterFind(tx *gorm.DB) error {
	g.GameActivation = EnsureActivation(g.GameActivation)
	return nil
}

// IsPlayableNow gates the public catalog and the player fetch of a game.
func (g *GameModel) IsPlayableNow(now time.Time) bool {
	return !g.GameIsDisabled && g.GameActivation.IsActiveNow(now)
}

func (g *GameModel) IsVisibleTo(admin bool, now time.Time) bool {
	return admin || g.IsPlayableNow(now)
}

func (g *GameModel) FindQuestion(id string) (int, *Question) {
	for i := range g.GameQuestions {
		if g.GameQuestions[i].ID == id {
			return i, &g.GameQuestions[i]
		}
	}
	return -1, nil
}

package games

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bmizerany/assert"
)

const sample = `[
  {
    "game_public_id": "kreuzberg-rallye",
    "game_name": "  Kreuzberg Rallye ",
    "game_city": "Berlin",
    "game_plz": "10999",
    "game_age_group": "8-12",
    "game_description": "Schnitzeljagd rund um den Görlitzer Park",
    "game_price": "12,90 €",
    "game_with_certicate": true,
    "game_image": "https://cdn.kiezjagd.de/kreuzberg.jpg",
    "game_start_location": "Görlitzer Bahnhof",
    "game_end_location": "Paul-Lincke-Ufer",
    "game_questions": [
      {"question": "Wie viele Bögen hat die Brücke?", "answer": "3"},
      {"question": "Weiter zum Kanal", "type": "next"}
    ]
  }
]`

func writeSeed(t *testing.T, body string) string {
	p := filepath.Join(t.TempDir(), "games.json")
	assert.Equal(t, nil, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadGameSeeds(t *testing.T) {
	rows, err := LoadGameSeeds(writeSeed(t, sample))
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(rows))

	m := rows[0].ToModel()
	assert.Equal(t, "kreuzberg-rallye", m.GamePublicID)
	assert.Equal(t, "Kreuzberg Rallye", m.GameName)
	assert.Equal(t, "12,90 €", m.GamePrice)
	assert.Equal(t, true, m.GameWithCertificate)
	assert.Equal(t, 2, len(m.GameQuestions))
	assert.Equal(t, "text", m.GameQuestions[0].Type)
	assert.Equal(t, "next", m.GameQuestions[1].Type)
	assert.NotEqual(t, "", m.GameQuestions[0].ID)
}

func TestLoadGameSeedsRequiresPublicID(t *testing.T) {
	_, err := LoadGameSeeds(writeSeed(t, `[{"game_name":"Ohne ID"}]`))
	assert.NotEqual(t, nil, err)
}

func TestLoadGameSeedsMissingFile(t *testing.T) {
	_, err := LoadGameSeeds(filepath.Join(t.TempDir(), "nope.json"))
	assert.NotEqual(t, nil, err)
}

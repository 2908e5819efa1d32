package gem

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func passthrough(c *fiber.Ctx) error { return c.Next() }

func TestUserFeedHandler(t *testing.T) {
	mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT g.id, g.title`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(gemColumns()).
			AddRow("gem-1", "Mine", "", TypeNature, 0.0, 0.0, "user-1", "A", "rina", "", now))
	mock.ExpectQuery(`SELECT id, gem_id, uri, type, created_at`).
		WithArgs([]string{"gem-1"}).
		WillReturnRows(pgxmock.NewRows(mediaColumns()))
	mock.ExpectQuery(`SELECT id, gem_id, user_id, type, created_at`).
		WithArgs([]string{"gem-1"}).
		WillReturnRows(pgxmock.NewRows(voteColumns()))

	app := fiber.New()
	RegisterRoutes(app, NewService(mock), passthrough)

	req := httptest.NewRequest(http.MethodGet, "/users/user-1/gems", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("user feed status: %v", err)
	}

	var body struct {
		Gems []GemView `json:"gems"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Gems) != 1 || body.Gems[0].ID != "gem-1" {
		t.Fatalf("unexpected feed: %+v", body.Gems)
	}
}

func TestCityFeedHandlerUnknownCity(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT code, name, lat, lng`).
		WithArgs("NOPE").
		WillReturnError(pgx.ErrNoRows)

	app := fiber.New()
	RegisterRoutes(app, NewService(mock), passthrough)

	req := httptest.NewRequest(http.MethodGet, "/cities/NOPE/gems", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404: %v", err)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "City not found" {
		t.Fatalf("unexpected error message: %q", body.Error)
	}
}

func TestVoteHandler(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO gem_votes`).
		WithArgs(pgxmock.AnyArg(), "gem-1", "user-1", VoteUp).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	app := fiber.New()
	RegisterRoutes(app, NewService(mock), passthrough)

	payload, _ := json.Marshal(fiber.Map{"userId": "user-1", "type": "UPVOTE"})
	req := httptest.NewRequest(http.MethodPost, "/gems/gem-1/votes", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("vote status: %v", err)
	}
}

func TestVoteHandlerBadType(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, NewService(nil), passthrough)

	payload, _ := json.Marshal(fiber.Map{"userId": "user-1", "type": "MAYBE"})
	req := httptest.NewRequest(http.MethodPost, "/gems/gem-1/votes", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for unknown vote type")
	}
}

func TestCreateGemHandler(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT code, name, lat, lng`).WillReturnRows(cityRows())
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO gems`).
		WithArgs(pgxmock.AnyArg(), "Hidden warung", "best sate", TypeFood, 1.0, 1.0, "user-1", "A").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectCommit()

	app := fiber.New()
	RegisterRoutes(app, NewService(mock), passthrough)

	payload, _ := json.Marshal(CreateGemInput{
		UserID:      "user-1",
		Title:       "Hidden warung",
		Description: "best sate",
		Type:        TypeFood,
		Location:    Coordinate{Latitude: 1, Longitude: 1},
	})
	req := httptest.NewRequest(http.MethodPost, "/gems", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create gem status: %v", err)
	}
}

func TestCreateGemHandlerValidation(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, NewService(nil), passthrough)

	cases := []CreateGemInput{
		{},
		{UserID: "user-1", Title: "G", Type: "TREASURE", Location: Coordinate{}},
		{UserID: "user-1", Title: "G", Type: TypeFood, Location: Coordinate{Latitude: 91}},
		{UserID: "user-1", Title: "G", Type: TypeFood, Location: Coordinate{Longitude: 181}},
		{UserID: "user-1", Title: "G", Type: TypeFood, Media: []MediaInput{{URI: "u", Type: "GIF"}}},
	}
	for i, input := range cases {
		payload, _ := json.Marshal(input)
		req := httptest.NewRequest(http.MethodPost, "/gems", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("case %d: expected bad request, got %d", i, resp.StatusCode)
		}
	}
}

func TestCreateGemHandlerNoCities(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT code, name, lat, lng`).
		WillReturnRows(pgxmock.NewRows([]string{"code", "name", "lat", "lng"}))

	app := fiber.New()
	RegisterRoutes(app, NewService(mock), passthrough)

	payload, _ := json.Marshal(CreateGemInput{
		UserID:   "user-1",
		Title:    "Nowhere",
		Type:     TypeOther,
		Location: Coordinate{Latitude: 1, Longitude: 1},
	})
	req := httptest.NewRequest(http.MethodPost, "/gems", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request when no cities exist, got %d", resp.StatusCode)
	}
}

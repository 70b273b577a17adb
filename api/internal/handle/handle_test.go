package handle

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuneguess/api/internal/game"
	"tuneguess/api/internal/middleware"
	"tuneguess/api/internal/store"
)

type stubSongs struct {
	song  store.Song
	today string
}

func (s *stubSongs) ByID(_ context.Context, id string) (store.Song, error) {
	if id != s.song.ID {
		return store.Song{}, sql.ErrNoRows
	}
	return s.song, nil
}

func (s *stubSongs) Random(context.Context) (store.Song, error) {
	return s.song, nil
}

func (s *stubSongs) ForDate(_ context.Context, day string) (store.Song, error) {
	if day != s.today {
		return store.Song{}, sql.ErrNoRows
	}
	return s.song, nil
}

func (s *stubSongs) PickForDate(context.Context, string) (store.Song, error) {
	return s.song, nil
}

type stubUsers struct {
	won        string
	subscribed map[string]bool
}

func (s *stubUsers) Ensure(_ context.Context, id string) (store.User, error) {
	return store.User{ID: id}, nil
}

func (s *stubUsers) SetSubscribed(_ context.Context, id string, sub bool) error {
	if s.subscribed == nil {
		s.subscribed = map[string]bool{}
	}
	s.subscribed[id] = sub
	return nil
}
func (s *stubUsers) Get(_ context.Context, id string) (store.User, error) {
	if s.won == "" {
		return store.User{}, sql.ErrNoRows
	}
	return store.User{ID: id, LastTimeGuessedRight: s.won}, nil
}
func (s *stubUsers) TouchGuess(context.Context, string, time.Time, string) error { return nil }

type stubGuesses struct{ rows []store.Guess }

func (s *stubGuesses) Add(_ context.Context, g store.Guess) (store.Guess, error) {
	s.rows = append(s.rows, g)
	return g, nil
}
func (s *stubGuesses) Since(context.Context, string, time.Time) ([]store.Guess, error) {
	return s.rows, nil
}

type stubScorer struct{ score int }

func (s *stubScorer) Score(context.Context, string, string, string) (int, error) {
	return s.score, nil
}

func newHandle(scoreVal int, wonDay string) *Handle {
	return New(&game.Service{
		Songs: &stubSongs{
			song:  store.Song{ID: "s1", Title: "Bohemian Rhapsody", Artist: "Queen", ClipURL: "https://clips/s1"},
			today: time.Now().UTC().Format("2006-01-02"),
		},
		Users:        &stubUsers{won: wonDay},
		Guesses:      &stubGuesses{},
		Engine:       &stubScorer{score: scoreVal},
		FreeLimit:    5,
		PremiumLimit: 10,
	})
}

func TestGuessRoute(t *testing.T) {
	h := newHandle(1000, "")

	req := httptest.NewRequest(http.MethodPost, "/v1/guesses",
		strings.NewReader(`{"user_id":"u1","guess":"Bohemian Rhapsody"}`))
	rec := httptest.NewRecorder()
	h.Guess(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res game.GuessResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.IsCorrect)
	assert.Equal(t, 1000, res.Score)
}

func TestGuessRouteValidation(t *testing.T) {
	h := newHandle(0, "")

	req := httptest.NewRequest(http.MethodPost, "/v1/guesses", strings.NewReader(`{"guess":"x"}`))
	rec := httptest.NewRecorder()
	h.Guess(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/guesses", nil)
	rec = httptest.NewRecorder()
	h.Guess(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWinnerRouteRequiresWin(t *testing.T) {
	h := newHandle(0, "")
	req := httptest.NewRequest(http.MethodGet, "/v1/songs/winner?user_id=u1", nil)
	rec := httptest.NewRecorder()
	h.Winner(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWinnerRouteRevealsAfterWin(t *testing.T) {
	today := time.Now().UTC().Format("2006-01-02")
	h := newHandle(0, today)
	req := httptest.NewRequest(http.MethodGet, "/v1/songs/winner?user_id=u1", nil)
	rec := httptest.NewRecorder()
	h.Winner(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var song store.Song
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &song))
	assert.Equal(t, "Bohemian Rhapsody", song.Title)
	assert.Equal(t, "Queen", song.Artist)
}

func TestSongByIDRoute(t *testing.T) {
	h := newHandle(0, "")

	req := httptest.NewRequest(http.MethodGet, "/v1/songs/s1", nil)
	req.SetPathValue("id", "s1")
	rec := httptest.NewRecorder()
	h.SongByID(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var song store.Song
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &song))
	assert.Equal(t, "Bohemian Rhapsody", song.Title)

	req = httptest.NewRequest(http.MethodGet, "/v1/songs/nope", nil)
	req.SetPathValue("id", "nope")
	rec = httptest.NewRecorder()
	h.SongByID(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRandomSongRoute(t *testing.T) {
	h := newHandle(0, "")

	req := httptest.NewRequest(http.MethodGet, "/v1/songs/random", nil)
	rec := httptest.NewRecorder()
	h.RandomSong(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var song store.Song
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &song))
	assert.Equal(t, "s1", song.ID)
}

func TestSubscribeRoute(t *testing.T) {
	h := newHandle(0, "")

	req := httptest.NewRequest(http.MethodPost, "/v1/users/subscription",
		strings.NewReader(`{"user_id":"u1","is_subscribed":true}`))
	rec := httptest.NewRecorder()
	h.Subscribe(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	users := h.Game.Users.(*stubUsers)
	assert.True(t, users.subscribed["u1"])

	req = httptest.NewRequest(http.MethodPost, "/v1/users/subscription", strings.NewReader(`{}`))
	rec = httptest.NewRecorder()
	h.Subscribe(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuessRouteThrottlesPerBodyUser(t *testing.T) {
	h := newHandle(10, "")
	h.GuessLimits = middleware.NewRateLimiter(1, 1)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/guesses", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Guess(rec, req)
		return rec
	}

	// Identity comes from the body only; the bucket still keys per user.
	assert.Equal(t, http.StatusOK, post(`{"user_id":"u1","guess":"a"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, post(`{"user_id":"u1","guess":"b"}`).Code)
	assert.Equal(t, http.StatusOK, post(`{"user_id":"u2","guess":"a"}`).Code)
}

func TestDailyRouteWithholdsAnswer(t *testing.T) {
	h := newHandle(0, "")
	req := httptest.NewRequest(http.MethodGet, "/v1/songs/daily", nil)
	rec := httptest.NewRecorder()
	h.Daily(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Bohemian Rhapsody")
	assert.Contains(t, rec.Body.String(), "https://clips/s1")
}

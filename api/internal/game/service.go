// Package game is the play flow around the scoring engine: daily song
// rotation, per-user guess quotas, duplicate-guess replay and history.
package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"tuneguess/api/internal/score"
	"tuneguess/api/internal/store"
)

var (
	ErrNoGuessesLeft = errors.New("no guesses left for today")
	ErrUserNotFound  = errors.New("user not found")
)

type Scorer interface {
	Score(ctx context.Context, guess, correctTitle, correctArtist string) (int, error)
}

// The store interfaces mirror the repo methods this service actually uses,
// so tests can run against in-memory fakes.
type SongStore interface {
	ByID(ctx context.Context, id string) (store.Song, error)
	ForDate(ctx context.Context, day string) (store.Song, error)
	PickForDate(ctx context.Context, day string) (store.Song, error)
	Random(ctx context.Context) (store.Song, error)
}

type UserStore interface {
	Ensure(ctx context.Context, id string) (store.User, error)
	Get(ctx context.Context, id string) (store.User, error)
	SetSubscribed(ctx context.Context, id string, subscribed bool) error
	TouchGuess(ctx context.Context, id string, at time.Time, wonDay string) error
}

type GuessStore interface {
	Add(ctx context.Context, g store.Guess) (store.Guess, error)
	Since(ctx context.Context, userID string, cutoff time.Time) ([]store.Guess, error)
}

type Service struct {
	Songs   SongStore
	Users   UserStore
	Guesses GuessStore
	Engine  Scorer

	FreeLimit    int
	PremiumLimit int

	// Daily song cache, valid until the next UTC midnight.
	mu      sync.Mutex
	cached  store.Song
	cacheAt string
}

type GuessResult struct {
	Guess       string `json:"guess"`
	IsCorrect   bool   `json:"is_correct"`
	Score       int    `json:"score"`
	GuessesLeft int    `json:"guesses_left"`
}

// DailyReveal is the public shape of the daily route: today's clip without
// the answer, plus yesterday's fully revealed song.
type DailyReveal struct {
	Today     *TodayClip    `json:"today"`
	Yesterday *RevealedSong `json:"yesterday"`
}

type TodayClip struct {
	ID      string `json:"id"`
	ClipURL string `json:"clip_url"`
}

type RevealedSong struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	CreditClip string `json:"credit_clip"`
}

func utcDay(t time.Time) string { return t.UTC().Format("2006-01-02") }

func startOfUTCDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DailySong returns today's song with the answer populated, rotating in an
// unused one on the first call of the day.
func (s *Service) DailySong(ctx context.Context) (store.Song, error) {
	day := utcDay(time.Now())

	s.mu.Lock()
	if s.cacheAt == day && s.cached.ID != "" {
		song := s.cached
		s.mu.Unlock()
		return song, nil
	}
	s.mu.Unlock()

	song, err := s.Songs.ForDate(ctx, day)
	if errors.Is(err, sql.ErrNoRows) {
		song, err = s.Songs.PickForDate(ctx, day)
	}
	if err != nil {
		return store.Song{}, err
	}

	s.mu.Lock()
	s.cached = song
	s.cacheAt = day
	s.mu.Unlock()
	return song, nil
}

// Daily is DailySong shaped for the public route: no answer leak for today,
// yesterday revealed when it exists.
func (s *Service) Daily(ctx context.Context) (DailyReveal, error) {
	var out DailyReveal

	today, err := s.DailySong(ctx)
	if err != nil && !errors.Is(err, store.ErrNoSongsLeft) {
		return out, err
	}
	if err == nil {
		out.Today = &TodayClip{ID: today.ID, ClipURL: today.ClipURL}
	}

	yesterday := utcDay(time.Now().AddDate(0, 0, -1))
	if song, err := s.Songs.ForDate(ctx, yesterday); err == nil {
		out.Yesterday = &RevealedSong{Title: song.Title, Artist: song.Artist, CreditClip: song.CreditClip}
	}
	return out, nil
}

// Winner reveals today's full song. Routes gate this on the caller having
// already won; the service just serves it.
func (s *Service) Winner(ctx context.Context) (store.Song, error) {
	return s.DailySong(ctx)
}

// RandomSong picks any song from the catalog, used or not.
func (s *Service) RandomSong(ctx context.Context) (store.Song, error) {
	return s.Songs.Random(ctx)
}

func (s *Service) SongByID(ctx context.Context, id string) (store.Song, error) {
	return s.Songs.ByID(ctx, id)
}

// Subscribe flips the premium flag, which raises the daily guess limit.
func (s *Service) Subscribe(ctx context.Context, userID string, subscribed bool) error {
	if _, err := s.Users.Ensure(ctx, userID); err != nil {
		return err
	}
	return s.Users.SetSubscribed(ctx, userID, subscribed)
}

func (s *Service) limitFor(u store.User) int {
	if u.IsSubscribed {
		return s.PremiumLimit
	}
	return s.FreeLimit
}

// MakeGuess scores one guess for a user, spending quota. A guess identical
// to one already made today replays the stored result without touching the
// engine or the quota.
func (s *Service) MakeGuess(ctx context.Context, userID, guessText string) (GuessResult, error) {
	user, err := s.Users.Ensure(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return GuessResult{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	if err != nil {
		return GuessResult{}, err
	}

	song, err := s.DailySong(ctx)
	if err != nil {
		return GuessResult{}, err
	}

	now := time.Now().UTC()
	cutoff := startOfUTCDay(now)
	limit := s.limitFor(user)

	today, err := s.Guesses.Since(ctx, userID, cutoff)
	if err != nil {
		return GuessResult{}, err
	}
	for _, past := range today {
		if past.Guess == guessText {
			return GuessResult{
				Guess:       guessText,
				IsCorrect:   past.IsCorrect,
				Score:       past.Score,
				GuessesLeft: maxInt(0, limit-len(today)),
			}, nil
		}
	}
	if len(today) >= limit {
		return GuessResult{}, ErrNoGuessesLeft
	}

	val, err := s.Engine.Score(ctx, guessText, song.Title, song.Artist)
	if err != nil {
		return GuessResult{}, err
	}
	isCorrect := val == score.MaxScore

	if _, err := s.Guesses.Add(ctx, store.Guess{
		UserID:    userID,
		SongID:    song.ID,
		Guess:     guessText,
		IsCorrect: isCorrect,
		Score:     val,
		CreatedAt: now,
	}); err != nil {
		return GuessResult{}, err
	}

	wonDay := ""
	if isCorrect {
		wonDay = utcDay(now)
	}
	if err := s.Users.TouchGuess(ctx, userID, now, wonDay); err != nil {
		return GuessResult{}, err
	}

	return GuessResult{
		Guess:       guessText,
		IsCorrect:   isCorrect,
		Score:       val,
		GuessesLeft: maxInt(0, limit-len(today)-1),
	}, nil
}

// History lists all of the user's guesses, oldest first.
func (s *Service) History(ctx context.Context, userID string) ([]store.Guess, error) {
	return s.Guesses.Since(ctx, userID, time.Time{})
}

// HasWonToday reports whether the user already guessed today's song.
func (s *Service) HasWonToday(ctx context.Context, userID string) (bool, error) {
	u, err := s.Users.Get(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.LastTimeGuessedRight == utcDay(time.Now()), nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Guess struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SongID    string    `json:"song_id"`
	Guess     string    `json:"guess"`
	IsCorrect bool      `json:"is_correct"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type GuessRepo struct{ DB *sql.DB }

func NewGuessRepo(db *sql.DB) *GuessRepo { return &GuessRepo{DB: db} }

func (r *GuessRepo) Add(ctx context.Context, g Guess) (Guess, error) {
	g.ID = uuid.NewString()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		`insert into guesses(id, user_id, song_id, guess, is_correct, score, created_at)
		 values ($1,$2,$3,$4,$5,$6,$7)`,
		g.ID, g.UserID, g.SongID, g.Guess, g.IsCorrect, g.Score, g.CreatedAt)
	return g, err
}

// Since returns the user's guesses made at or after the cutoff, oldest first.
func (r *GuessRepo) Since(ctx context.Context, userID string, cutoff time.Time) ([]Guess, error) {
	rows, err := r.DB.QueryContext(ctx,
		`select id, user_id, song_id, guess, is_correct, score, created_at
		 from guesses where user_id=$1 and created_at >= $2 order by created_at`,
		userID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Guess
	for rows.Next() {
		var g Guess
		if err := rows.Scan(&g.ID, &g.UserID, &g.SongID, &g.Guess, &g.IsCorrect, &g.Score, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"time"
)

type User struct {
	ID                   string `json:"id"`
	IsSubscribed         bool   `json:"is_subscribed"`
	LastGuessAt          *time.Time
	LastTimeGuessedRight string `json:"last_time_guessed_right,omitempty"`
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Ensure creates the user row on first contact and returns it either way.
func (r *UserRepo) Ensure(ctx context.Context, id string) (User, error) {
	_, err := r.DB.ExecContext(ctx,
		`insert into users(id) values ($1) on conflict (id) do nothing`, id)
	if err != nil {
		return User{}, err
	}
	return r.Get(ctx, id)
}

func (r *UserRepo) Get(ctx context.Context, id string) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		`select id, is_subscribed, last_guess_at, last_time_guessed_right from users where id=$1`, id).
		Scan(&u.ID, &u.IsSubscribed, &u.LastGuessAt, &u.LastTimeGuessedRight)
	return u, err
}

func (r *UserRepo) SetSubscribed(ctx context.Context, id string, subscribed bool) error {
	_, err := r.DB.ExecContext(ctx,
		`update users set is_subscribed=$2 where id=$1`, id, subscribed)
	return err
}

// TouchGuess records the time of the latest guess and, when it won, the day
// it won on (the songs reveal route uses that to decide what to show).
func (r *UserRepo) TouchGuess(ctx context.Context, id string, at time.Time, wonDay string) error {
	if wonDay != "" {
		_, err := r.DB.ExecContext(ctx,
			`update users set last_guess_at=$2, last_time_guessed_right=$3 where id=$1`, id, at, wonDay)
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		`update users set last_guess_at=$2 where id=$1`, id, at)
	return err
}

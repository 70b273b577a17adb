// Package store is the Postgres persistence layer: songs, users, guesses and
// the embedding cache.
package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

const schema = `
create table if not exists songs (
	id          text primary key,
	title       text not null,
	artist      text not null,
	clip_url    text not null default '',
	credit_clip text not null default '',
	date_used   text not null default ''
);
create index if not exists songs_date_used_idx on songs(date_used);

create table if not exists users (
	id                      text primary key,
	is_subscribed           boolean not null default false,
	last_guess_at           timestamptz,
	last_time_guessed_right text not null default ''
);

create table if not exists guesses (
	id         text primary key,
	user_id    text not null,
	song_id    text not null,
	guess      text not null,
	is_correct boolean not null,
	score      int not null,
	created_at timestamptz not null default now()
);
create index if not exists guesses_user_created_idx on guesses(user_id, created_at);

create table if not exists embedding_cache (
	key        text primary key,
	vec_json   bytea not null,
	created_at timestamptz not null default now()
);
`

// Open connects, tunes the pool for a small service and applies the schema.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(1 * time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

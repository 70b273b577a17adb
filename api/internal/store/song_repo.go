package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrNoSongsLeft = errors.New("no unused songs left")

type Song struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	ClipURL    string `json:"clip_url"`
	CreditClip string `json:"credit_clip"`
	DateUsed   string `json:"date_used,omitempty"`
}

type SongRepo struct{ DB *sql.DB }

func NewSongRepo(db *sql.DB) *SongRepo { return &SongRepo{DB: db} }

const songCols = `id, title, artist, clip_url, credit_clip, date_used`

func scanSong(row *sql.Row) (Song, error) {
	var s Song
	err := row.Scan(&s.ID, &s.Title, &s.Artist, &s.ClipURL, &s.CreditClip, &s.DateUsed)
	return s, err
}

func (r *SongRepo) ByID(ctx context.Context, id string) (Song, error) {
	row := r.DB.QueryRowContext(ctx, `select `+songCols+` from songs where id=$1`, id)
	return scanSong(row)
}

// ForDate returns the song assigned to the given UTC day (YYYY-MM-DD), or
// sql.ErrNoRows when none has been picked yet.
func (r *SongRepo) ForDate(ctx context.Context, day string) (Song, error) {
	row := r.DB.QueryRowContext(ctx, `select `+songCols+` from songs where date_used=$1`, day)
	return scanSong(row)
}

// PickForDate assigns a random unused song to the day and returns it. The
// conditional update keeps concurrent pickers from burning two songs: only
// one of them flips date_used, the loser re-reads ForDate.
func (r *SongRepo) PickForDate(ctx context.Context, day string) (Song, error) {
	for attempt := 0; attempt < 3; attempt++ {
		row := r.DB.QueryRowContext(ctx,
			`select `+songCols+` from songs where date_used='' order by random() limit 1`)
		s, err := scanSong(row)
		if errors.Is(err, sql.ErrNoRows) {
			return Song{}, ErrNoSongsLeft
		}
		if err != nil {
			return Song{}, err
		}
		res, err := r.DB.ExecContext(ctx,
			`update songs set date_used=$1 where id=$2 and date_used=''`, day, s.ID)
		if err != nil {
			return Song{}, err
		}
		if n, _ := res.RowsAffected(); n == 1 {
			s.DateUsed = day
			return s, nil
		}
		// Lost the race for this row; someone may have fixed today already.
		if got, err := r.ForDate(ctx, day); err == nil {
			return got, nil
		}
	}
	return Song{}, fmt.Errorf("could not assign a song for %s", day)
}

func (r *SongRepo) Random(ctx context.Context) (Song, error) {
	row := r.DB.QueryRowContext(ctx, `select `+songCols+` from songs order by random() limit 1`)
	return scanSong(row)
}

func (r *SongRepo) Add(ctx context.Context, s Song) error {
	_, err := r.DB.ExecContext(ctx,
		`insert into songs(id, title, artist, clip_url, credit_clip, date_used)
		 values ($1,$2,$3,$4,$5,$6)
		 on conflict (id) do update set
		   title=excluded.title, artist=excluded.artist,
		   clip_url=excluded.clip_url, credit_clip=excluded.credit_clip`,
		s.ID, s.Title, s.Artist, s.ClipURL, s.CreditClip, s.DateUsed)
	return err
}

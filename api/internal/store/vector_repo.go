package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
)

// VectorRepo backs the embedding cache with Postgres so vectors survive
// restarts. It satisfies embedcache.Cache; misses and write failures are
// soft, the embedder just pays for another upstream call.
type VectorRepo struct{ DB *sql.DB }

func NewVectorRepo(db *sql.DB) *VectorRepo { return &VectorRepo{DB: db} }

func (r *VectorRepo) Get(ctx context.Context, key string) ([]float64, bool) {
	var js []byte
	err := r.DB.QueryRowContext(ctx,
		`select vec_json from embedding_cache where key=$1`, key).Scan(&js)
	if err != nil {
		return nil, false
	}
	var vec []float64
	if err := json.Unmarshal(js, &vec); err != nil || len(vec) == 0 {
		return nil, false
	}
	return vec, true
}

func (r *VectorRepo) Put(ctx context.Context, key string, vec []float64) {
	js, _ := json.Marshal(vec)
	_, err := r.DB.ExecContext(ctx, `
insert into embedding_cache(key, vec_json)
values ($1,$2)
on conflict (key)
do update set vec_json=excluded.vec_json, created_at=now()`, key, js)
	if err != nil {
		log.Printf("embedding cache write failed for %q: %v", key, err)
	}
}

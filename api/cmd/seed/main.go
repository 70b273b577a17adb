// Command seed loads a song catalog from a JSON file into Postgres.
// Usage: seed songs.json
package main

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"

	"tuneguess/api/internal/store"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <songs.json>", os.Args[0])
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	var songs []store.Song
	if err := json.NewDecoder(f).Decode(&songs); err != nil {
		log.Fatalf("decode %s: %v", os.Args[1], err)
	}
	if len(songs) == 0 {
		log.Fatal("no songs in input")
	}

	dsn := resolveDSN()
	if dsn == "" {
		log.Fatal("database DSN is empty: set DATABASE_URL or POSTGRES_* env vars")
	}
	ctx := context.Background()
	db, err := store.Open(ctx, dsn)
	if err != nil {
		log.Fatalf("store.Open: %v", err)
	}
	defer db.Close()

	repo := store.NewSongRepo(db)
	added := 0
	for _, s := range songs {
		if strings.TrimSpace(s.Title) == "" || strings.TrimSpace(s.Artist) == "" {
			log.Printf("skipping entry with empty title or artist: %+v", s)
			continue
		}
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if err := repo.Add(ctx, s); err != nil {
			log.Fatalf("add %q: %v", s.Title, err)
		}
		added++
	}
	log.Printf("seeded %d songs", added)
}

func resolveDSN() string {
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		return v
	}
	user := getenvDefault("POSTGRES_USER", "tuneguess")
	pass := os.Getenv("POSTGRES_PASSWORD")
	host := getenvDefault("PGHOST", "db")
	port := getenvDefault("PGPORT", "5432")
	name := getenvDefault("POSTGRES_DB", "tuneguess")

	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, pass),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func getenvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

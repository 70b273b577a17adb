package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"

	"tuneguess/api/internal/config"
	"tuneguess/api/internal/embedcache"
	"tuneguess/api/internal/game"
	"tuneguess/api/internal/handle"
	"tuneguess/api/internal/httpserver"
	"tuneguess/api/internal/llm"
	"tuneguess/api/internal/llm/gemini"
	"tuneguess/api/internal/llm/gpt"
	"tuneguess/api/internal/middleware"
	"tuneguess/api/internal/score"
	"tuneguess/api/internal/store"
)

func main() {
	cfg := config.Load()

	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Port = p
	} else if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = "8000"
	}

	// --- Postgres ---
	dsn := resolveDSN(cfg)
	if dsn == "" {
		log.Fatal("database DSN is empty: set DATABASE_URL or POSTGRES_* env vars")
	}
	db, err := store.Open(context.Background(), dsn)
	if err != nil {
		log.Fatalf("store.Open: %v", err)
	}
	defer db.Close()
	log.Printf("db connected: %s", safeDSNSummary(dsn))

	// --- Engines ---
	openai := gpt.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIEmbedModel)
	engines := &llm.Engines{
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		OpenAI: openai,
	}
	judge, err := engines.GetJudge(cfg.JudgeEngine)
	if err != nil {
		log.Fatalf("judge engine: %v", err)
	}

	embedder := embedcache.Wrap(openai, store.NewVectorRepo(db))
	engine := score.New(embedder, judge)

	svc := &game.Service{
		Songs:        store.NewSongRepo(db),
		Users:        store.NewUserRepo(db),
		Guesses:      store.NewGuessRepo(db),
		Engine:       engine,
		FreeLimit:    cfg.MaxDailyGuessesFree,
		PremiumLimit: cfg.MaxDailyGuessesPremium,
	}

	h := handle.New(svc)
	h.GuessLimits = middleware.NewRateLimiter(10, 10) // 10 guesses per minute per user
	scoreLimiter := middleware.NewRateLimiter(30, 30)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/guesses", h.Guess)
	mux.HandleFunc("/v1/guesses/history", h.History)
	mux.HandleFunc("/v1/songs/daily", h.Daily)
	mux.HandleFunc("/v1/songs/winner", h.Winner)
	mux.HandleFunc("/v1/songs/random", h.RandomSong)
	mux.HandleFunc("/v1/songs/{id}", h.SongByID)
	mux.HandleFunc("/v1/users/subscription", h.Subscribe)
	mux.HandleFunc("/v1/score", scoreLimiter.Wrap(h.Score))

	addr := ":" + cfg.Port
	log.Printf("tuneguess listening on %s (judge=%s)", addr, cfg.JudgeEngine)
	log.Fatal(httpserver.StartHTTP(addr, mux))
}

func resolveDSN(cfg *config.Config) string {
	if v := strings.TrimSpace(cfg.DatabaseURL); v != "" {
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

// safeDSNSummary keeps credentials out of the logs.
func safeDSNSummary(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "(unparsable dsn)"
	}
	return u.Host + u.Path
}

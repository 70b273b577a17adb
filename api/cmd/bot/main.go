package main

import (
	"context"
	"log"
	"net"
	"net/url"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tuneguess/api/internal/config"
	"tuneguess/api/internal/embedcache"
	"tuneguess/api/internal/game"
	"tuneguess/api/internal/llm"
	"tuneguess/api/internal/llm/gemini"
	"tuneguess/api/internal/llm/gpt"
	"tuneguess/api/internal/score"
	"tuneguess/api/internal/store"
	"tuneguess/api/internal/telegram"
)

func main() {
	cfg := config.Load()
	if cfg.TelegramToken == "" {
		log.Fatal("missing required env TELEGRAM_BOT_TOKEN")
	}

	dsn := resolveDSN(cfg)
	if dsn == "" {
		log.Fatal("database DSN is empty: set DATABASE_URL or POSTGRES_* env vars")
	}
	db, err := store.Open(context.Background(), dsn)
	if err != nil {
		log.Fatalf("store.Open: %v", err)
	}
	defer db.Close()

	openai := gpt.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIEmbedModel)
	engines := &llm.Engines{
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		OpenAI: openai,
	}
	judge, err := engines.GetJudge(cfg.JudgeEngine)
	if err != nil {
		log.Fatalf("judge engine: %v", err)
	}

	svc := &game.Service{
		Songs:        store.NewSongRepo(db),
		Users:        store.NewUserRepo(db),
		Guesses:      store.NewGuessRepo(db),
		Engine:       score.New(embedcache.Wrap(openai, store.NewVectorRepo(db)), judge),
		FreeLimit:    cfg.MaxDailyGuessesFree,
		PremiumLimit: cfg.MaxDailyGuessesPremium,
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal(err)
	}
	api.Debug = false

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := api.GetUpdatesChan(u)

	log.Printf("bot @%s polling (judge=%s)", api.Self.UserName, cfg.JudgeEngine)
	telegram.New(api, svc).Run(updates)
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

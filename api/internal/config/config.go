package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port string

	DatabaseURL string

	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIEmbedModel string
	GeminiAPIKey     string
	GeminiModel      string
	JudgeEngine      string

	TelegramToken string

	MaxDailyGuessesFree    int
	MaxDailyGuessesPremium int
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Fatalf("env %s must be an integer, got %q", k, v)
	}
	return def
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8000"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		OpenAIAPIKey:     mustEnv("OPENAI_API_KEY"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIEmbedModel: getEnv("OPENAI_EMBED_MODEL", "text-embedding-3-small"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		JudgeEngine:      getEnv("JUDGE_ENGINE", "gemini"),

		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),

		MaxDailyGuessesFree:    getEnvInt("MAX_DAILY_GUESSES_FREE", 10),
		MaxDailyGuessesPremium: getEnvInt("MAX_DAILY_GUESSES_PREMIUM", 30),
	}
}

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/saebyeokjang/WordChainLeague/internal/httpserver"
	"github.com/saebyeokjang/WordChainLeague/internal/store"
	"github.com/saebyeokjang/WordChainLeague/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	dict, err := words.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	log.Info().Int("words", dict.Size()).Msg("dictionary ready")

	db, err := openDB(getEnv("SQLITE_PATH", "./data/league.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, db, dict)
	port := getEnv("PORT", "5180")
	log.Info().Str("port", port).Msg("starting wordchain-league server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

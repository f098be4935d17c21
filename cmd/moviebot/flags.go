package main

import (
	"flag"

	"github.com/windhamg/moviebot-lambda/internal/config"
)

// parseFlags читает флаги командной строки, затем переменные окружения и файл .env.
// Переменные окружения важнее флагов.
func parseFlags() (config.Config, error) {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.ApplyEnv(".env"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

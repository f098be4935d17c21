package config

import (
	"errors"
	"flag"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/windhamg/moviebot-lambda/internal/provider/listings"
	"github.com/windhamg/moviebot-lambda/internal/provider/metadata"
)

// Config - настройки сервиса.
type Config struct {
	RunAddr     string
	LogLevel    string
	DatabaseURI string

	ListingsBaseURL string
	ListingsAPIKey  string

	MetadataBaseURL     string
	MetadataAPIKey      string
	MetadataReleaseYear int

	ProviderTimeout time.Duration
}

// Default возвращает настройки по умолчанию.
func Default() Config {
	return Config{
		RunAddr:         ":8080",
		LogLevel:        "info",
		ListingsBaseURL: listings.DefaultBaseURL,
		MetadataBaseURL: metadata.DefaultBaseURL,
		ProviderTimeout: 10 * time.Second,
	}
}

// RegisterFlags регистрирует флаги командной строки.
func (c *Config) RegisterFlags(set *flag.FlagSet) {
	set.StringVar(&c.RunAddr, "a", c.RunAddr, "address and port to run server")
	set.StringVar(&c.LogLevel, "l", c.LogLevel, "log level")
	set.StringVar(&c.DatabaseURI, "d", c.DatabaseURI, "database URI for the turn journal, empty disables it")
}

// ApplyEnv накладывает переменные окружения поверх текущих значений.
// Переменные из файлов files (формат .env) не перекрывают уже заданные в окружении;
// отсутствующие файлы пропускаются.
func (c *Config) ApplyEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	setString := func(key string, dst *string) {
		if val := v.GetString(key); val != "" {
			*dst = val
		}
	}

	setString("RUN_ADDR", &c.RunAddr)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("DATABASE_URI", &c.DatabaseURI)
	setString("TMS_BASE_URL", &c.ListingsBaseURL)
	setString("TMS_API_KEY", &c.ListingsAPIKey)
	setString("TMDB_BASE_URL", &c.MetadataBaseURL)
	setString("TMDB_API_KEY", &c.MetadataAPIKey)

	if v.GetString("TMDB_RELEASE_YEAR") != "" {
		c.MetadataReleaseYear = v.GetInt("TMDB_RELEASE_YEAR")
	}
	if v.GetString("PROVIDER_TIMEOUT") != "" {
		c.ProviderTimeout = v.GetDuration("PROVIDER_TIMEOUT")
	}

	return nil
}

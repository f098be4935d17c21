// пакеты исполняемых приложений должны называться main
package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/windhamg/moviebot-lambda/internal/config"
	"github.com/windhamg/moviebot-lambda/internal/intents"
	"github.com/windhamg/moviebot-lambda/internal/logger"
	"github.com/windhamg/moviebot-lambda/internal/provider/listings"
	"github.com/windhamg/moviebot-lambda/internal/provider/metadata"
	"github.com/windhamg/moviebot-lambda/internal/store"
	"github.com/windhamg/moviebot-lambda/internal/store/pg"
)

// функция main вызывается автоматически при запуске приложения
func main() {
	cfg, err := parseFlags()
	if err != nil {
		panic(err)
	}

	if err := run(cfg); err != nil {
		panic(err)
	}
}

func run(cfg config.Config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}

	journal, err := openJournal(cfg.DatabaseURI)
	if err != nil {
		return err
	}

	bot := intents.NewDispatcher(
		listings.NewClient(cfg.ListingsBaseURL, cfg.ListingsAPIKey, cfg.ProviderTimeout),
		metadata.NewClient(metadata.Config{
			BaseURL:     cfg.MetadataBaseURL,
			APIKey:      cfg.MetadataAPIKey,
			ReleaseYear: cfg.MetadataReleaseYear,
			Timeout:     cfg.ProviderTimeout,
		}),
	)

	// создаём экземпляр приложения, передавая диспетчер интентов и журнал в качестве внешних зависимостей
	appInstance := newApp(bot, journal)

	logger.Log.Info("Running server", zap.String("address", cfg.RunAddr))
	return http.ListenAndServe(cfg.RunAddr, appInstance.routes())
}

// openJournal подключается к PostgreSQL и готовит таблицы журнала.
// Пустой uri отключает журнал.
func openJournal(uri string) (store.Store, error) {
	if uri == "" {
		logger.Log.Info("turn journal disabled")
		return nil, nil
	}

	// создаём соединение к СУБД PostgreSQL с помощью аргумента командной строки
	conn, err := sql.Open("pgx", uri)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := pg.NewStore(conn)
	if err := s.Bootstrap(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Package metadata - клиент The Movie Database (TMDB): поиск фильма, возрастной рейтинг,
// длительность и дата выхода.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/windhamg/moviebot-lambda/internal/logger"
	"github.com/windhamg/moviebot-lambda/internal/metrics"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org"
	DefaultLanguage = "en-US"
	DefaultCountry  = "US"

	providerName = "metadata"
)

// Candidate - один результат поиска.
type Candidate struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Details - длительность в минутах и дата выхода (YYYY-MM-DD).
type Details struct {
	Runtime     int    `json:"runtime"`
	ReleaseDate string `json:"release_date"`
}

type searchResponse struct {
	Results []Candidate `json:"results"`
}

type releaseDatesResponse struct {
	Results []struct {
		Country      string `json:"iso_3166_1"`
		ReleaseDates []struct {
			Certification string `json:"certification"`
		} `json:"release_dates"`
	} `json:"results"`
}

// Config - настройки клиента.
type Config struct {
	BaseURL  string
	APIKey   string
	Language string
	// Country - страна, для которой берётся возрастной рейтинг (ISO 3166-1).
	Country string
	// ReleaseYear ограничивает поиск годом премьеры; 0 - без ограничения.
	ReleaseYear int
	Timeout     time.Duration
}

// Client обращается к TMDB API.
type Client struct {
	http *resty.Client
	cfg  Config
}

// NewClient возвращает клиента TMDB; пустые поля cfg заменяются значениями по умолчанию.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Country == "" {
		cfg.Country = DefaultCountry
	}

	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetHeader("Accept", "application/json").
			SetQueryParam("api_key", cfg.APIKey),
		cfg: cfg,
	}
}

// get выполняет запрос и раскладывает JSON в out.
// Возвращает false без ошибки, если провайдер ответил не 200 или пустым телом.
func (c *Client) get(ctx context.Context, call, path string, params map[string]string, out any) (bool, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		metrics.ObserveProvider(providerName, call, metrics.OutcomeError)
		return false, fmt.Errorf("request %s: %w", call, err)
	}

	if resp.StatusCode() != http.StatusOK || len(resp.Body()) == 0 {
		logger.Log.Debug("metadata returned no data",
			zap.String("call", call),
			zap.Int("status", resp.StatusCode()),
		)
		metrics.ObserveProvider(providerName, call, metrics.OutcomeEmpty)
		return false, nil
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		metrics.ObserveProvider(providerName, call, metrics.OutcomeError)
		return false, fmt.Errorf("decode %s: %w", call, err)
	}

	metrics.ObserveProvider(providerName, call, metrics.OutcomeOK)
	return true, nil
}

// Search ищет фильмы по названию. Кандидаты возвращаются в порядке ранжирования провайдера.
func (c *Client) Search(ctx context.Context, title string) ([]Candidate, error) {
	params := map[string]string{
		"language":      c.cfg.Language,
		"page":          "1",
		"include_adult": "false",
		"query":         strings.TrimSpace(title),
	}
	if c.cfg.ReleaseYear > 0 {
		params["primary_release_year"] = strconv.Itoa(c.cfg.ReleaseYear)
	}

	var res searchResponse
	if ok, err := c.get(ctx, "search", "/3/search/movie", params, &res); !ok {
		return nil, err
	}
	return res.Results, nil
}

// Certification возвращает возрастной рейтинг фильма для страны из настроек.
// Пустая строка означает, что рейтинг не найден.
func (c *Client) Certification(ctx context.Context, id int64) (string, error) {
	var res releaseDatesResponse
	path := fmt.Sprintf("/3/movie/%d/release_dates", id)
	if ok, err := c.get(ctx, "release_dates", path, nil, &res); !ok {
		return "", err
	}

	for _, r := range res.Results {
		if r.Country == c.cfg.Country && len(r.ReleaseDates) > 0 {
			return r.ReleaseDates[0].Certification, nil
		}
	}
	return "", nil
}

// Details возвращает длительность и дату выхода фильма.
func (c *Client) Details(ctx context.Context, id int64) (Details, error) {
	var res Details
	path := fmt.Sprintf("/3/movie/%d", id)
	if _, err := c.get(ctx, "details", path, map[string]string{"language": c.cfg.Language}, &res); err != nil {
		return Details{}, err
	}
	return res, nil
}

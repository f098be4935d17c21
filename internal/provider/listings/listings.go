// Package listings - клиент API киноафиши (TMS OnConnect), который отдаёт сеансы по почтовому индексу.
package listings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/windhamg/moviebot-lambda/internal/logger"
	"github.com/windhamg/moviebot-lambda/internal/metrics"
)

const (
	DefaultBaseURL = "http://data.tmsapi.com"

	showingsPath = "/v1.1/movies/showings"
	providerName = "listings"
)

// Query - параметры запроса сеансов.
type Query struct {
	// StartDate в формате YYYY-MM-DD.
	StartDate string
	Zipcode   string
	// NumDays - длина окна в днях; 0 оставляет значение по умолчанию у провайдера.
	NumDays int
}

// Movie - фильм со всеми его сеансами в порядке ответа провайдера.
type Movie struct {
	Title     string     `json:"title"`
	Showtimes []Showtime `json:"showtimes"`
}

type Showtime struct {
	Theatre Theatre `json:"theatre"`
	// DateTime - локальное время сеанса без часового пояса, например 2018-03-09T19:30.
	DateTime string `json:"dateTime"`
}

type Theatre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client обращается к API киноафиши.
type Client struct {
	http   *resty.Client
	apiKey string
}

// NewClient возвращает клиента API киноафиши.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		apiKey: apiKey,
	}
}

// Showings возвращает фильмы с сеансами около индекса.
// Ответ не 200 или пустое тело означают "нет данных" и ошибкой не считаются.
func (c *Client) Showings(ctx context.Context, q Query) ([]Movie, error) {
	params := map[string]string{
		"startDate": q.StartDate,
		"zip":       q.Zipcode,
		"api_key":   c.apiKey,
	}
	if q.NumDays > 0 {
		params["numDays"] = strconv.Itoa(q.NumDays)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(showingsPath)
	if err != nil {
		metrics.ObserveProvider(providerName, "showings", metrics.OutcomeError)
		return nil, fmt.Errorf("request showings: %w", err)
	}

	if resp.StatusCode() != http.StatusOK || len(resp.Body()) == 0 {
		logger.Log.Debug("listings returned no data",
			zap.Int("status", resp.StatusCode()),
			zap.String("zip", q.Zipcode),
		)
		metrics.ObserveProvider(providerName, "showings", metrics.OutcomeEmpty)
		return nil, nil
	}

	var movies []Movie
	if err := json.Unmarshal(resp.Body(), &movies); err != nil {
		metrics.ObserveProvider(providerName, "showings", metrics.OutcomeError)
		return nil, fmt.Errorf("decode showings: %w", err)
	}

	metrics.ObserveProvider(providerName, "showings", metrics.OutcomeOK)
	return movies, nil
}

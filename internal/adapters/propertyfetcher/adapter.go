package propertyfetcher

import (
	"fmt"
	"net/url"

	"github.com/gocolly/colly/v2"
)

const userAgent = "property-list-service/1.0"

// PropertyFetcherAdapter отвечает за все запросы к API со списком объектов
type PropertyFetcherAdapter struct {
	// родительский коллектор, клоны наследуют его лимиты
	collector *colly.Collector
	baseURL   string
}

// Config для PropertyFetcherAdapter
type Config struct {
	// BaseURL - адрес ресурса без параметра page
	BaseURL string
	// Parallelism - сколько запросов к домену может идти одновременно (от разных экранов)
	Parallelism int
}

// NewPropertyFetcherAdapter - конструктор
func NewPropertyFetcherAdapter(cfg Config) (*PropertyFetcherAdapter, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("PropertyFetcherAdapter: invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("PropertyFetcherAdapter: base URL %q has no host", cfg.BaseURL)
	}
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}

	c := colly.NewCollector(
		colly.AllowedDomains(u.Hostname()),
		colly.AllowURLRevisit(),
		colly.UserAgent(userAgent),
	)

	// Ответ разбираем при любом статусе, как обычный fetch
	c.ParseHTTPErrorResponse = true
	// Таймаута у запроса нет
	c.SetRequestTimeout(0)

	err = c.Limit(&colly.LimitRule{
		DomainGlob:  u.Hostname(),
		Parallelism: cfg.Parallelism,
	})
	if err != nil {
		return nil, fmt.Errorf("PropertyFetcherAdapter: failed to set limit rule: %w", err)
	}

	return &PropertyFetcherAdapter{
		collector: c,
		baseURL:   cfg.BaseURL,
	}, nil
}

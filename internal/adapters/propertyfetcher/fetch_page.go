package propertyfetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"property-list-service/internal/contextkeys"
	"property-list-service/internal/core/domain"
	"property-list-service/internal/core/port"

	"github.com/gocolly/colly/v2"
)

func (a *PropertyFetcherAdapter) buildPageURL(page int) (string, error) {
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchPage делает один GET-запрос за страницей и разбирает JSON-конверт.
// Повторов нет; ошибки сети и разбора возвращаются вызывающему.
func (a *PropertyFetcherAdapter) FetchPage(ctx context.Context, page int) (*domain.PageResponse, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyFetcherAdapter(FetchPage)",
		"page":      page,
	})

	targetURL, err := a.buildPageURL(page)
	if err != nil {
		return nil, fmt.Errorf("property fetcher: failed to build URL for page %d: %w", page, err)
	}

	// "одноразовый" клон со своими обработчиками
	collector := a.collector.Clone()
	collector.Context = ctx

	var result *domain.PageResponse
	var responseErr error

	collector.OnRequest(func(r *colly.Request) {
		logger.Debug("Making request to fetch page", port.Fields{"url": r.URL.String()})
	})

	collector.OnResponse(func(r *colly.Response) {
		var data domain.PageResponse
		if jsonErr := json.Unmarshal(r.Body, &data); jsonErr != nil {
			responseErr = fmt.Errorf("property fetcher: failed to parse JSON from %s: %w", r.Request.URL.String(), jsonErr)
			return
		}
		result = &data
	})

	collector.OnError(func(r *colly.Response, err error) {
		logger.Error("Failed to fetch page", err, port.Fields{
			"url":    targetURL,
			"status": r.StatusCode,
		})
		responseErr = fmt.Errorf("property fetcher: request to %s failed with status %d: %w", targetURL, r.StatusCode, err)
	})

	visitErr := collector.Visit(targetURL)
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}
	if visitErr != nil {
		return nil, fmt.Errorf("property fetcher: failed to visit URL %s: %w", targetURL, visitErr)
	}
	if result == nil {
		return nil, fmt.Errorf("property fetcher: empty response from %s", targetURL)
	}

	logger.Info("Finished fetching page", port.Fields{
		"url":           targetURL,
		"items_fetched": len(result.Data),
		"count":         result.Count,
	})

	return result, nil
}

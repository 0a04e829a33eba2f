// Package quotes fetches live market prices from the Yahoo Finance chart API.
package quotes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/etfolio/etf-tracker-backend/internal/model"
)

// FinanceClient fetches market quotes over HTTP. It wraps a standard
// http.Client and knows how to talk to the Yahoo Finance chart endpoint.
type FinanceClient struct {
	httpClient *http.Client
}

// NewFinanceClient creates a new quote client with default HTTP settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// LatestClose returns the most recent daily closing price for a symbol.
// It queries the last 5 trading days and takes the latest non-zero close,
// so a symbol quoted mid-session still resolves to a usable price.
func (c *FinanceClient) LatestClose(symbol string) (model.Quote, error) {
	url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=5d", symbol)
	result, err := c.query(url)
	if err != nil {
		return model.Quote{}, err
	}
	if len(result.Chart.Result) == 0 {
		return model.Quote{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	chart := result.Chart.Result[0]
	if len(chart.Indicators.Quote) == 0 || len(chart.Indicators.Quote[0].Close) == 0 {
		return model.Quote{}, fmt.Errorf("no close prices returned for symbol %s", symbol)
	}

	closes := chart.Indicators.Quote[0].Close
	var price float64
	var fetchedAt time.Time
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] > 0 {
			price = closes[i]
			if i < len(chart.Timestamp) {
				fetchedAt = time.Unix(chart.Timestamp[i], 0).UTC()
			}
			break
		}
	}
	if price == 0 {
		return model.Quote{}, fmt.Errorf("no usable close price for symbol %s", symbol)
	}
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	return model.Quote{
		Symbol:    chart.Meta.Symbol,
		Price:     price,
		Currency:  chart.Meta.Currency,
		FetchedAt: fetchedAt,
	}, nil
}

// query executes an HTTP request against the chart API, parses the JSON
// payload and surfaces API-level errors. The User-Agent header mimics a
// browser because the endpoint blocks obvious bots.
func (c *FinanceClient) query(url string) (Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("quote provider error: %s", *response.Chart.Error)
	}

	return response, nil
}

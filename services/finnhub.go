package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"stockfolio/observability"
)

// FinnhubService handles communication with the Finnhub indicator API used
// by the scanner: instantaneous quote, company profile, and the 150-period
// simple moving average.
type FinnhubService struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewFinnhubService creates a new FinnhubService instance
func NewFinnhubService(apiKey, baseURL string) *FinnhubService {
	if baseURL == "" {
		baseURL = "https://finnhub.io/api/v1"
	}
	return &FinnhubService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
}

// finnhubQuoteResponse is the /quote payload; c is the current price.
type finnhubQuoteResponse struct {
	Current float64 `json:"c"`
}

// finnhubProfileResponse is the /stock/profile2 payload. Market cap is
// reported in millions of dollars.
type finnhubProfileResponse struct {
	Name            string  `json:"name"`
	MarketCapMillon float64 `json:"marketCapitalization"`
	Industry        string  `json:"finnhubIndustry"`
}

// finnhubIndicatorResponse is the /indicator payload for the SMA request.
type finnhubIndicatorResponse struct {
	SMA []float64 `json:"sma"`
}

// GetScannerData fetches quote, profile, and 150-day SMA for a symbol. The
// last element of the SMA series is taken as the moving average. Any missing
// figure is an error so the scanner can exclude the symbol.
func (s *FinnhubService) GetScannerData(ctx context.Context, symbol string) (*ScannerData, error) {
	return WithCircuitBreaker(ctx, BreakerFinnhub, func() (*ScannerData, error) {
		var data *ScannerData

		err := WithRetry(ctx, DefaultRetryConfig, func() error {
			var quote finnhubQuoteResponse
			if err := s.getJSON(ctx, "quote", fmt.Sprintf("%s/quote?symbol=%s&token=%s", s.baseURL, url.QueryEscape(symbol), s.apiKey), &quote); err != nil {
				return err
			}

			var profile finnhubProfileResponse
			if err := s.getJSON(ctx, "profile", fmt.Sprintf("%s/stock/profile2?symbol=%s&token=%s", s.baseURL, url.QueryEscape(symbol), s.apiKey), &profile); err != nil {
				return err
			}

			var indicator finnhubIndicatorResponse
			if err := s.getJSON(ctx, "indicator", fmt.Sprintf("%s/indicator?symbol=%s&indicator=sma&timeperiod=150&token=%s", s.baseURL, url.QueryEscape(symbol), s.apiKey), &indicator); err != nil {
				return err
			}

			if quote.Current <= 0 {
				return fmt.Errorf("no quote for symbol %s", symbol)
			}
			if profile.MarketCapMillon <= 0 {
				return fmt.Errorf("no market cap for symbol %s", symbol)
			}
			if len(indicator.SMA) == 0 {
				return fmt.Errorf("no moving average series for symbol %s", symbol)
			}

			name := profile.Name
			if name == "" {
				name = symbol
			}

			data = &ScannerData{
				Price:        quote.Current,
				MarketCap:    int64(profile.MarketCapMillon * 1_000_000),
				MovingAvg150: indicator.SMA[len(indicator.SMA)-1],
				Sector:       profile.Industry,
				Name:         name,
			}
			return nil
		})

		if err != nil {
			return nil, err
		}
		return data, nil
	})
}

func (s *FinnhubService) getJSON(ctx context.Context, operation, reqURL string, dest any) error {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest("finnhub", operation)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		metrics.RecordExternalAPIError("finnhub", operation)
		return fmt.Errorf("failed to fetch %s: %w", operation, err)
	}
	defer resp.Body.Close()

	metrics.RecordExternalAPIDuration("finnhub", operation, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		metrics.RecordExternalAPIError("finnhub", operation)
		return fmt.Errorf("%s API returned status %d", operation, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		metrics.RecordExternalAPIError("finnhub", operation)
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}

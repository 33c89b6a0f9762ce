package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stockfolio/models"
	"stockfolio/observability"

	"github.com/shopspring/decimal"
)

// YahooService handles communication with the Yahoo Finance endpoints for
// quotes, company profiles, and symbol search.
type YahooService struct {
	httpClient *http.Client
	baseURL    string
}

// NewYahooService creates a new YahooService instance
func NewYahooService(baseURL string) *YahooService {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &YahooService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
}

// chartResponse is the shape of the v8 chart endpoint. Close series may
// contain nulls on non-trading days.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// quoteSummaryResponse is the shape of the v10 quoteSummary endpoint.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"assetProfile"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// searchResponse is the shape of the v1 search endpoint.
type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
	} `json:"quotes"`
}

// GetQuote fetches the recent daily close series for a ticker and derives
// the current price from the last close and the change from the prior
// close. The percent change uses the prior close as its baseline.
func (s *YahooService) GetQuote(ctx context.Context, ticker string) (*models.PriceQuote, error) {
	return WithCircuitBreaker(ctx, BreakerYahoo, func() (*models.PriceQuote, error) {
		var quote *models.PriceQuote

		err := WithRetry(ctx, DefaultRetryConfig, func() error {
			reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=3mo", s.baseURL, url.PathEscape(ticker))

			var chartResp chartResponse
			if err := s.getJSON(ctx, "chart", reqURL, &chartResp); err != nil {
				return err
			}

			if len(chartResp.Chart.Result) == 0 {
				return fmt.Errorf("no chart data for ticker %s", ticker)
			}
			quotes := chartResp.Chart.Result[0].Indicators.Quote
			if len(quotes) == 0 {
				return fmt.Errorf("no close series for ticker %s", ticker)
			}

			closes := make([]float64, 0, len(quotes[0].Close))
			for _, c := range quotes[0].Close {
				if c != nil {
					closes = append(closes, *c)
				}
			}
			if len(closes) == 0 {
				return fmt.Errorf("empty close series for ticker %s", ticker)
			}

			last := closes[len(closes)-1]
			prev := last
			if len(closes) >= 2 {
				prev = closes[len(closes)-2]
			}

			lastDec := decimal.NewFromFloat(last)
			prevDec := decimal.NewFromFloat(prev)
			change := lastDec.Sub(prevDec)

			changePct := decimal.Zero
			if !prevDec.IsZero() {
				changePct = change.Div(prevDec).Mul(decimal.NewFromInt(100))
			}

			quote = &models.PriceQuote{
				Ticker:        ticker,
				CurrentPrice:  lastDec,
				Change:        change,
				ChangePercent: changePct,
				AsOf:          time.Now(),
			}
			return nil
		})

		if err != nil {
			return nil, err
		}
		return quote, nil
	})
}

// GetCategory resolves a ticker's sector via the company asset profile. A
// profile with no usable sector or industry classifies as SectorUnknown
// without error; only transport failures return an error.
func (s *YahooService) GetCategory(ctx context.Context, ticker string) (models.Sector, error) {
	return WithCircuitBreaker(ctx, BreakerYahoo, func() (models.Sector, error) {
		var sector models.Sector

		err := WithRetry(ctx, DefaultRetryConfig, func() error {
			reqURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=assetProfile", s.baseURL, url.PathEscape(ticker))

			var summaryResp quoteSummaryResponse
			if err := s.getJSON(ctx, "quoteSummary", reqURL, &summaryResp); err != nil {
				return err
			}

			if len(summaryResp.QuoteSummary.Result) == 0 {
				sector = models.SectorUnknown
				return nil
			}

			profile := summaryResp.QuoteSummary.Result[0].AssetProfile
			if profile.Sector != "" {
				sector = MapSector(profile.Sector)
				return nil
			}
			sector = MapIndustry(profile.Industry)
			return nil
		})

		if err != nil {
			return models.SectorUnknown, err
		}
		return sector, nil
	})
}

// SearchName resolves a ticker into its display name. An empty string means
// the search found no matching symbol.
func (s *YahooService) SearchName(ctx context.Context, ticker string) (string, error) {
	return WithCircuitBreaker(ctx, BreakerYahoo, func() (string, error) {
		var name string

		err := WithRetry(ctx, DefaultRetryConfig, func() error {
			reqURL := fmt.Sprintf("%s/v1/finance/search?q=%s", s.baseURL, url.QueryEscape(ticker))

			var searchResp searchResponse
			if err := s.getJSON(ctx, "search", reqURL, &searchResp); err != nil {
				return err
			}

			for _, q := range searchResp.Quotes {
				if strings.EqualFold(q.Symbol, ticker) {
					if q.ShortName != "" {
						name = q.ShortName
					} else {
						name = q.LongName
					}
					return nil
				}
			}
			return nil
		})

		if err != nil {
			return "", err
		}
		return name, nil
	})
}

func (s *YahooService) getJSON(ctx context.Context, operation, reqURL string, dest any) error {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest("yahoo", operation)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		metrics.RecordExternalAPIError("yahoo", operation)
		return fmt.Errorf("failed to fetch %s: %w", operation, err)
	}
	defer resp.Body.Close()

	metrics.RecordExternalAPIDuration("yahoo", operation, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		metrics.RecordExternalAPIError("yahoo", operation)
		return fmt.Errorf("%s API returned status %d", operation, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		metrics.RecordExternalAPIError("yahoo", operation)
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}

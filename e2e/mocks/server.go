// Package mocks provides HTTP mock servers for the external market-data
// APIs used in end-to-end tests.
package mocks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// MockServer serves configurable responses for the Yahoo Finance and
// Finnhub endpoints the application talks to. A single server handles
// both APIs; their paths do not overlap.
type MockServer struct {
	mu     sync.RWMutex
	server *httptest.Server

	// Canned responses keyed by symbol
	chartCloses map[string][]*float64
	profiles    map[string]CompanyProfile
	indicators  map[string]IndicatorData

	// Error injection
	yahooDown   bool
	finnhubDown bool

	// Request tracking for assertions
	requestLog []RequestLog
}

// NewMockServer creates a mock server with empty response tables.
func NewMockServer() *MockServer {
	m := &MockServer{
		chartCloses: make(map[string][]*float64),
		profiles:    make(map[string]CompanyProfile),
		indicators:  make(map[string]IndicatorData),
	}
	m.server = httptest.NewServer(m)
	return m
}

// URL returns the mock server's base URL.
func (m *MockServer) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockServer) Close() {
	m.server.Close()
}

// SetChart sets the daily close series returned for a symbol. Nil entries
// stand in for non-trading days.
func (m *MockServer) SetChart(symbol string, closes ...float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	series := make([]*float64, len(closes))
	for i := range closes {
		c := closes[i]
		series[i] = &c
	}
	m.chartCloses[symbol] = series
}

// SetProfile sets the company profile returned for a symbol.
func (m *MockServer) SetProfile(symbol string, profile CompanyProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[symbol] = profile
}

// SetIndicator sets the scanner payload returned for a symbol.
func (m *MockServer) SetIndicator(symbol string, data IndicatorData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indicators[symbol] = data
}

// SetYahooDown makes every Yahoo endpoint return a 500.
func (m *MockServer) SetYahooDown(down bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.yahooDown = down
}

// SetFinnhubDown makes every Finnhub endpoint return a 500.
func (m *MockServer) SetFinnhubDown(down bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finnhubDown = down
}

// GetRequestLog returns all logged requests for assertions.
func (m *MockServer) GetRequestLog() []RequestLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]RequestLog{}, m.requestLog...)
}

// ClearRequestLog clears the request log.
func (m *MockServer) ClearRequestLog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestLog = m.requestLog[:0]
}

// ServeHTTP routes requests to the endpoint handlers.
func (m *MockServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requestLog = append(m.requestLog, RequestLog{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
	})
	m.mu.Unlock()

	path := r.URL.Path

	switch {
	case strings.HasPrefix(path, "/v8/finance/chart/"):
		m.handleChart(w, r)
	case strings.HasPrefix(path, "/v10/finance/quoteSummary/"):
		m.handleQuoteSummary(w, r)
	case path == "/v1/finance/search":
		m.handleSearch(w, r)
	case path == "/quote":
		m.handleFinnhubQuote(w, r)
	case path == "/stock/profile2":
		m.handleFinnhubProfile(w, r)
	case path == "/indicator":
		m.handleFinnhubIndicator(w, r)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (m *MockServer) handleChart(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	down := m.yahooDown
	symbol := strings.TrimPrefix(r.URL.Path, "/v8/finance/chart/")
	closes, ok := m.chartCloses[symbol]
	m.mu.RUnlock()

	if down {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	type quote struct {
		Close []*float64 `json:"close"`
	}
	resp := map[string]any{
		"chart": map[string]any{
			"result": []any{},
		},
	}
	if ok {
		resp["chart"] = map[string]any{
			"result": []any{
				map[string]any{
					"indicators": map[string]any{
						"quote": []quote{{Close: closes}},
					},
				},
			},
		}
	}
	writeJSON(w, resp)
}

func (m *MockServer) handleQuoteSummary(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	down := m.yahooDown
	symbol := strings.TrimPrefix(r.URL.Path, "/v10/finance/quoteSummary/")
	profile, ok := m.profiles[symbol]
	m.mu.RUnlock()

	if down {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	results := []any{}
	if ok {
		results = append(results, map[string]any{
			"assetProfile": map[string]string{
				"sector": profile.Sector,
			},
		})
	}
	writeJSON(w, map[string]any{
		"quoteSummary": map[string]any{"result": results},
	})
}

func (m *MockServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	down := m.yahooDown
	symbol := r.URL.Query().Get("q")
	profile, ok := m.profiles[symbol]
	m.mu.RUnlock()

	if down {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	quotes := []any{}
	if ok {
		quotes = append(quotes, map[string]string{
			"symbol":    symbol,
			"shortname": profile.ShortName,
			"longname":  profile.LongName,
		})
	}
	writeJSON(w, map[string]any{"quotes": quotes})
}

func (m *MockServer) handleFinnhubQuote(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	down := m.finnhubDown
	data := m.indicators[r.URL.Query().Get("symbol")]
	m.mu.RUnlock()

	if down {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]float64{"c": data.Price})
}

func (m *MockServer) handleFinnhubProfile(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	down := m.finnhubDown
	data := m.indicators[r.URL.Query().Get("symbol")]
	m.mu.RUnlock()

	if down {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{
		"name":                 data.Name,
		"marketCapitalization": data.MarketCapMln,
		"finnhubIndustry":      data.Industry,
	})
}

func (m *MockServer) handleFinnhubIndicator(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	down := m.finnhubDown
	data := m.indicators[r.URL.Query().Get("symbol")]
	m.mu.RUnlock()

	if down {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	sma := []float64{}
	if data.MovingAvg150 > 0 {
		sma = append(sma, data.MovingAvg150)
	}
	writeJSON(w, map[string]any{"sma": sma})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

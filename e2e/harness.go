// Package e2e provides end-to-end testing infrastructure. The full HTTP
// stack runs against in-memory ledgers and a mock server standing in for
// the external market-data APIs.
package e2e

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stockfolio/config"
	"stockfolio/e2e/mocks"
	"stockfolio/internal/api"
	"stockfolio/internal/app"
	"stockfolio/portfolio"
	"stockfolio/repository"
	"stockfolio/scanner"
	"stockfolio/services"
)

// TestHarness wires the application against mock external APIs.
type TestHarness struct {
	t          *testing.T
	ctx        context.Context
	cancel     context.CancelFunc
	mockServer *mocks.MockServer
	store      *repository.MemoryStore
	app        *app.App
	router     http.Handler
	config     *config.Config

	// Universe overrides the scanner's reference list. Set before Setup.
	Universe []scanner.ReferenceStock
}

// NewTestHarness creates a new test harness. Call Setup before use.
func NewTestHarness(t *testing.T) *TestHarness {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	return &TestHarness{t: t, ctx: ctx, cancel: cancel}
}

// Setup starts the mock server and wires the full application against it.
func (h *TestHarness) Setup() error {
	h.mockServer = mocks.NewMockServer()
	h.config = config.NewTestConfig()

	// Fresh breaker registry so failure scenarios don't leak across tests
	services.SetGlobalRegistry(services.NewCircuitBreakerRegistry(services.DefaultCircuitBreakerConfig))

	h.store = repository.NewMemoryStore()

	yahoo := services.NewYahooService(h.mockServer.URL())
	quotes := services.NewCachedQuoteService(yahoo, services.NewMemoryPriceCache(time.Minute))

	manager := portfolio.NewManager(h.store, yahoo, yahoo)
	engine := portfolio.NewEngine(quotes)

	finnhub := services.NewFinnhubService("test-token", h.mockServer.URL())
	stockScanner := scanner.New(finnhub, h.Universe, scanner.DefaultConfig)

	h.app = app.New(h.config, manager, engine, stockScanner, nil, nil)

	handler := api.NewHandler(h.app, h.config)
	h.router = api.NewRouter(handler, h.config)

	return nil
}

// Teardown releases all test resources.
func (h *TestHarness) Teardown() {
	if h.cancel != nil {
		h.cancel()
	}
	if h.app != nil {
		h.app.Shutdown(context.Background())
	}
	if h.mockServer != nil {
		h.mockServer.Close()
	}
}

// Context returns the test context.
func (h *TestHarness) Context() context.Context {
	return h.ctx
}

// MockServer returns the mock server for configuring responses.
func (h *TestHarness) MockServer() *mocks.MockServer {
	return h.mockServer
}

// App returns the application instance.
func (h *TestHarness) App() *app.App {
	return h.app
}

// Router returns the HTTP router for making requests.
func (h *TestHarness) Router() http.Handler {
	return h.router
}

// Config returns the test configuration.
func (h *TestHarness) Config() *config.Config {
	return h.config
}

// DoRequest performs an HTTP request against the router.
func (h *TestHarness) DoRequest(method, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

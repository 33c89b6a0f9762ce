package mocks

// CompanyProfile is the canned profile behind the quoteSummary and search
// endpoints.
type CompanyProfile struct {
	Sector    string
	ShortName string
	LongName  string
}

// IndicatorData is the canned scanner payload for a symbol, spread over the
// quote, profile2, and indicator endpoints.
type IndicatorData struct {
	Price        float64
	MarketCapMln float64 // reported in millions, matching the upstream API
	MovingAvg150 float64
	Industry     string
	Name         string
}

// RequestLog records incoming requests for test assertions.
type RequestLog struct {
	Method string
	Path   string
	Query  string
}

package scanner

// ReferenceStock is one entry of the fixed scan universe. The sector here is
// only a label for the listing; the scan itself reports the sector returned
// by the indicator provider.
type ReferenceStock struct {
	Symbol string
	Name   string
	Sector string
}

// DefaultUniverse is the fixed large-cap list the scanner iterates.
var DefaultUniverse = []ReferenceStock{
	{"AAPL", "Apple Inc.", "Technology"},
	{"MSFT", "Microsoft Corporation", "Technology"},
	{"GOOGL", "Alphabet Inc.", "Technology"},
	{"AMZN", "Amazon.com Inc.", "Consumer Cyclical"},
	{"NVDA", "NVIDIA Corporation", "Technology"},
	{"META", "Meta Platforms Inc.", "Technology"},
	{"BRK.B", "Berkshire Hathaway Inc.", "Financial Services"},
	{"LLY", "Eli Lilly and Company", "Healthcare"},
	{"TSLA", "Tesla Inc.", "Consumer Cyclical"},
	{"UNH", "UnitedHealth Group Inc.", "Healthcare"},
	{"JPM", "JPMorgan Chase & Co.", "Financial Services"},
	{"V", "Visa Inc.", "Financial Services"},
	{"JNJ", "Johnson & Johnson", "Healthcare"},
	{"PG", "Procter & Gamble Co.", "Consumer Defensive"},
	{"HD", "Home Depot Inc.", "Consumer Cyclical"},
	{"MA", "Mastercard Inc.", "Financial Services"},
	{"CVX", "Chevron Corporation", "Energy"},
	{"ABBV", "AbbVie Inc.", "Healthcare"},
	{"PFE", "Pfizer Inc.", "Healthcare"},
	{"BAC", "Bank of America Corp.", "Financial Services"},
	{"KO", "Coca-Cola Co.", "Consumer Defensive"},
	{"PEP", "PepsiCo Inc.", "Consumer Defensive"},
	{"AVGO", "Broadcom Inc.", "Technology"},
	{"TMO", "Thermo Fisher Scientific Inc.", "Healthcare"},
	{"COST", "Costco Wholesale Corp.", "Consumer Defensive"},
	{"MRK", "Merck & Co. Inc.", "Healthcare"},
	{"WMT", "Walmart Inc.", "Consumer Defensive"},
	{"ABT", "Abbott Laboratories", "Healthcare"},
	{"ACN", "Accenture plc", "Technology"},
	{"CRM", "Salesforce Inc.", "Technology"},
	{"DHR", "Danaher Corporation", "Healthcare"},
	{"VZ", "Verizon Communications Inc.", "Communication Services"},
	{"ADBE", "Adobe Inc.", "Technology"},
	{"NFLX", "Netflix Inc.", "Communication Services"},
	{"NKE", "Nike Inc.", "Consumer Cyclical"},
	{"PM", "Philip Morris International", "Consumer Defensive"},
	{"TXN", "Texas Instruments Inc.", "Technology"},
	{"INTC", "Intel Corporation", "Technology"},
	{"QCOM", "QUALCOMM Inc.", "Technology"},
	{"HON", "Honeywell International Inc.", "Industrials"},
	{"IBM", "International Business Machines Corp.", "Technology"},
	{"UNP", "Union Pacific Corporation", "Industrials"},
	{"CAT", "Caterpillar Inc.", "Industrials"},
	{"GS", "Goldman Sachs Group Inc.", "Financial Services"},
	{"AMAT", "Applied Materials Inc.", "Technology"},
	{"MS", "Morgan Stanley", "Financial Services"},
	{"SPGI", "S&P Global Inc.", "Financial Services"},
	{"RTX", "Raytheon Technologies Corp.", "Industrials"},
	{"ISRG", "Intuitive Surgical Inc.", "Healthcare"},
	{"PLD", "Prologis Inc.", "Real Estate"},
	{"LMT", "Lockheed Martin Corporation", "Industrials"},
	{"BMY", "Bristol-Myers Squibb Co.", "Healthcare"},
	{"T", "AT&T Inc.", "Communication Services"},
	{"DE", "Deere & Company", "Industrials"},
	{"AXP", "American Express Co.", "Financial Services"},
	{"GILD", "Gilead Sciences Inc.", "Healthcare"},
	{"AMGN", "Amgen Inc.", "Healthcare"},
	{"ADI", "Analog Devices Inc.", "Technology"},
	{"C", "Citigroup Inc.", "Financial Services"},
	{"MDLZ", "Mondelez International Inc.", "Consumer Defensive"},
	{"GE", "General Electric Company", "Industrials"},
	{"TJX", "TJX Companies Inc.", "Consumer Cyclical"},
	{"SBUX", "Starbucks Corporation", "Consumer Cyclical"},
	{"CMCSA", "Comcast Corporation", "Communication Services"},
	{"TMUS", "T-Mobile US Inc.", "Communication Services"},
	{"ADP", "Automatic Data Processing Inc.", "Technology"},
	{"DUK", "Duke Energy Corporation", "Utilities"},
	{"SO", "Southern Company", "Utilities"},
	{"BDX", "Becton Dickinson and Company", "Healthcare"},
	{"ITW", "Illinois Tool Works Inc.", "Industrials"},
	{"CSCO", "Cisco Systems Inc.", "Technology"},
	{"BLK", "BlackRock Inc.", "Financial Services"},
	{"SCHW", "Charles Schwab Corporation", "Financial Services"},
	{"CI", "Cigna Corporation", "Healthcare"},
	{"USB", "U.S. Bancorp", "Financial Services"},
	{"PNC", "PNC Financial Services Group Inc.", "Financial Services"},
	{"TGT", "Target Corporation", "Consumer Cyclical"},
	{"MO", "Altria Group Inc.", "Consumer Defensive"},
	{"UPS", "United Parcel Service Inc.", "Industrials"},
	{"LOW", "Lowe's Companies Inc.", "Consumer Cyclical"},
	{"INTU", "Intuit Inc.", "Technology"},
	{"CB", "Chubb Limited", "Financial Services"},
	{"ICE", "Intercontinental Exchange Inc.", "Financial Services"},
	{"CME", "CME Group Inc.", "Financial Services"},
	{"ETN", "Eaton Corporation plc", "Industrials"},
	{"AON", "Aon plc", "Financial Services"},
	{"MMC", "Marsh & McLennan Companies Inc.", "Financial Services"},
	{"REGN", "Regeneron Pharmaceuticals Inc.", "Healthcare"},
	{"KLAC", "KLA Corporation", "Technology"},
	{"CDNS", "Cadence Design Systems Inc.", "Technology"},
	{"SNPS", "Synopsys Inc.", "Technology"},
	{"MELI", "MercadoLibre Inc.", "Consumer Cyclical"},
	{"PANW", "Palo Alto Networks Inc.", "Technology"},
	{"FTNT", "Fortinet Inc.", "Technology"},
	{"CRWD", "CrowdStrike Holdings Inc.", "Technology"},
	{"ZS", "Zscaler Inc.", "Technology"},
	{"OKTA", "Okta Inc.", "Technology"},
	{"TEAM", "Atlassian Corporation plc", "Technology"},
	{"SNOW", "Snowflake Inc.", "Technology"},
	{"DDOG", "Datadog Inc.", "Technology"},
	{"PLTR", "Palantir Technologies Inc.", "Technology"},
	{"RBLX", "Roblox Corporation", "Communication Services"},
	{"UBER", "Uber Technologies Inc.", "Technology"},
	{"LYFT", "Lyft Inc.", "Technology"},
	{"DASH", "DoorDash Inc.", "Consumer Cyclical"},
	{"ABNB", "Airbnb Inc.", "Consumer Cyclical"},
	{"COIN", "Coinbase Global Inc.", "Financial Services"},
	{"HOOD", "Robinhood Markets Inc.", "Financial Services"},
	{"RIVN", "Rivian Automotive Inc.", "Consumer Cyclical"},
	{"LCID", "Lucid Group Inc.", "Consumer Cyclical"},
	{"NIO", "NIO Inc.", "Consumer Cyclical"},
	{"XPEV", "XPeng Inc.", "Consumer Cyclical"},
	{"LI", "Li Auto Inc.", "Consumer Cyclical"},
}

package layer

// Default stock universe, drawn from the major US indices by sector. The
// screener caps whatever universe it is given at maxUniverseSize.
var (
	techStocks = []string{
		"AAPL", "MSFT", "GOOGL", "GOOG", "AMZN", "TSLA", "NVDA", "META",
		"NFLX", "AMD", "CRM", "ADBE", "ORCL", "INTC", "CSCO", "AVGO",
		"QCOM", "TXN", "AMAT", "LRCX", "KLAC", "MRVL", "FTNT", "PANW",
	}
	financialStocks = []string{
		"JPM", "BAC", "WFC", "GS", "MS", "C", "BLK", "SCHW", "AXP", "USB",
		"PNC", "TFC", "COF", "BK", "STT", "NTRS", "RF", "CFG", "KEY", "FITB",
	}
	healthcareStocks = []string{
		"JNJ", "PFE", "UNH", "ABBV", "MRK", "TMO", "ABT", "DHR", "BMY", "LLY",
		"AMGN", "GILD", "ISRG", "VRTX", "REGN", "BIIB", "ILMN", "MRNA", "ZTS", "CVS",
	}
	consumerStocks = []string{
		"HD", "MCD", "NKE", "SBUX", "TGT", "LOW", "TJX", "COST",
		"WMT", "PG", "KO", "PEP", "CL", "KMB", "GIS", "K", "CPB", "CAG",
	}
	industrialStocks = []string{
		"BA", "CAT", "GE", "MMM", "HON", "UPS", "RTX", "LMT", "NOC", "GD",
		"FDX", "UNP", "CSX", "NSC", "DAL", "UAL", "AAL", "LUV", "JBLU", "ALK",
	}
	energyStocks = []string{
		"XOM", "CVX", "COP", "EOG", "SLB", "PSX", "VLO", "MPC", "KMI", "OKE",
		"WMB", "EPD", "ET", "MPLX", "PAA", "EQT", "DVN", "FANG", "MRO", "APA",
	}
)

// DefaultUniverse merges the sector lists, deduplicated, in a stable order.
func DefaultUniverse() []string {
	groups := [][]string{
		techStocks, financialStocks, healthcareStocks,
		consumerStocks, industrialStocks, energyStocks,
	}
	seen := make(map[string]bool)
	var universe []string
	for _, group := range groups {
		for _, symbol := range group {
			if !seen[symbol] {
				seen[symbol] = true
				universe = append(universe, symbol)
			}
		}
	}
	return universe
}

// Fallback picks used when screening comes back empty.
var (
	fallbackGrowth   = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA"}
	fallbackValue    = []string{"JPM", "JNJ", "PG", "KO", "WMT"}
	fallbackBalanced = []string{"AAPL", "MSFT", "JPM", "JNJ", "GOOGL"}
)

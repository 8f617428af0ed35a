package yahoo

// chartResponse mirrors the /v8/finance/chart payload. Null entries in
// the OHLCV arrays (market holidays) arrive as JSON null, hence the
// pointer slices.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiErrorBody `json:"error"`
	} `json:"chart"`
}

type apiErrorBody struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func floatAt(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}

func intAt(values []*float64, i int) int64 {
	return int64(floatAt(values, i))
}

// yahooValue is quoteSummary's {raw, fmt} number wrapper.
type yahooValue struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

// quoteSummaryResponse mirrors the /v10/finance/quoteSummary payload for
// the modules the client requests.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryModules `json:"result"`
		Error  *apiErrorBody         `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryModules struct {
	AssetProfile *struct {
		Sector              string `json:"sector"`
		Industry            string `json:"industry"`
		LongBusinessSummary string `json:"longBusinessSummary"`
	} `json:"assetProfile"`

	SummaryDetail *struct {
		MarketCap        yahooValue `json:"marketCap"`
		TrailingPE       yahooValue `json:"trailingPE"`
		ForwardPE        yahooValue `json:"forwardPE"`
		FiftyTwoWeekHigh yahooValue `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow  yahooValue `json:"fiftyTwoWeekLow"`
		Open             yahooValue `json:"open"`
		PreviousClose    yahooValue `json:"previousClose"`
		DayLow           yahooValue `json:"dayLow"`
		DayHigh          yahooValue `json:"dayHigh"`
		Volume           yahooValue `json:"volume"`
	} `json:"summaryDetail"`

	FinancialData *struct {
		CurrentPrice      yahooValue `json:"currentPrice"`
		TargetMeanPrice   yahooValue `json:"targetMeanPrice"`
		RecommendationKey string     `json:"recommendationKey"`
	} `json:"financialData"`

	Price *struct {
		Currency                   string     `json:"currency"`
		RegularMarketPreviousClose yahooValue `json:"regularMarketPreviousClose"`
	} `json:"price"`
}

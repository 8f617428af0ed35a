// Package models defines the core data types for Ava
package models

// InstrumentCategory classifies what kind of tradeable an instrument is.
// It is set at configuration time rather than sniffed from the ticker
// symbol at request time.
type InstrumentCategory string

const (
	CategoryEquity    InstrumentCategory = "equity"
	CategoryCurrency  InstrumentCategory = "currency"
	CategoryCommodity InstrumentCategory = "commodity"
	CategoryIndex     InstrumentCategory = "index"
)

// DisplayLabel returns the Turkish category label used in replies.
func (c InstrumentCategory) DisplayLabel() string {
	switch c {
	case CategoryCurrency:
		return "DÖVİZ"
	case CategoryCommodity:
		return "EMTİA"
	case CategoryIndex:
		return "ENDEKS"
	default:
		return "HİSSE"
	}
}

// Instrument is a static reference entity the assistant can discuss.
// The table is loaded once at startup and immutable thereafter.
// Aliases are the surface phrases that resolve to this instrument;
// when empty, the name and code serve as the phrases.
type Instrument struct {
	Code         string             `toml:"code" json:"code"`
	Name         string             `toml:"name" json:"name"`
	Ticker       string             `toml:"ticker" json:"ticker"`
	Currency     string             `toml:"currency" json:"currency"`
	Category     InstrumentCategory `toml:"category" json:"category"`
	Aliases      []string           `toml:"aliases" json:"aliases,omitempty"`
	SearchPhrase string             `toml:"search_phrase" json:"search_phrase"`
	NewsFlowURL  string             `toml:"news_flow_url" json:"news_flow_url,omitempty"`
}

// DefaultInstruments returns the built-in instrument table: the five BIST
// equities plus currencies, commodities and the BIST 100 index.
func DefaultInstruments() []Instrument {
	return []Instrument{
		{Code: "AKBNK", Name: "Akbank", Ticker: "AKBNK.IS", Currency: "TL", Category: CategoryEquity,
			Aliases:      []string{"akbank", "akbnk"},
			SearchPhrase: "Akbank hisse", NewsFlowURL: "https://tr.tradingview.com/news-flow/?provider=matriks,kap&symbol=BIST:AKBNK"},
		{Code: "THY", Name: "Türk Hava Yolları", Ticker: "THYAO.IS", Currency: "TL", Category: CategoryEquity,
			Aliases:      []string{"thy", "türk hava yolları", "thyao"},
			SearchPhrase: "THYAO hisse", NewsFlowURL: "https://tr.tradingview.com/news-flow/?provider=matriks,kap&symbol=BIST:THYAO"},
		{Code: "GARAN", Name: "Garanti Bankası", Ticker: "GARAN.IS", Currency: "TL", Category: CategoryEquity,
			Aliases:      []string{"garan", "garanti"},
			SearchPhrase: "Garanti hisse", NewsFlowURL: "https://tr.tradingview.com/news-flow/?provider=matriks,kap&symbol=BIST:GARAN"},
		{Code: "EREGL", Name: "Ereğli Demir Çelik", Ticker: "EREGL.IS", Currency: "TL", Category: CategoryEquity,
			Aliases:      []string{"eregl", "ereğli"},
			SearchPhrase: "Ereğli hisse", NewsFlowURL: "https://tr.tradingview.com/news-flow/?provider=matriks,kap&symbol=BIST:EREGL"},
		{Code: "KCHOL", Name: "Koç Holding", Ticker: "KCHOL.IS", Currency: "TL", Category: CategoryEquity,
			Aliases:      []string{"kchol", "koç", "koc"},
			SearchPhrase: "Koç Holding hisse", NewsFlowURL: "https://tr.tradingview.com/news-flow/?provider=matriks,kap&symbol=BIST:KCHOL"},
		{Code: "DOLAR", Name: "Amerikan Doları", Ticker: "USDTRY=X", Currency: "TL", Category: CategoryCurrency,
			Aliases:      []string{"dolar", "usd", "usdtry"},
			SearchPhrase: "dolar kuru", NewsFlowURL: "https://tr.tradingview.com/news-flow/?provider=matriks,kap&symbol=OANDA:USDTRY"},
		{Code: "EURO", Name: "Euro", Ticker: "EURTRY=X", Currency: "TL", Category: CategoryCurrency,
			Aliases:      []string{"euro", "eur"},
			SearchPhrase: "euro kuru", NewsFlowURL: "https://tr.tradingview.com/news-flow/?provider=matriks,kap&symbol=OANDA:EURTRY"},
		{Code: "ALTIN", Name: "Altın", Ticker: "GC=F", Currency: "USD", Category: CategoryCommodity,
			Aliases:      []string{"altın", "altin", "gold", "ons"},
			SearchPhrase: "altın fiyat", NewsFlowURL: "https://tr.tradingview.com/news-flow/?provider=matriks,kap&symbol=OANDA:XAUUSD"},
		{Code: "GUMUS", Name: "Gümüş", Ticker: "SI=F", Currency: "USD", Category: CategoryCommodity,
			Aliases:      []string{"gümüş", "gumus", "silver"},
			SearchPhrase: "gümüş fiyat", NewsFlowURL: "https://tr.tradingview.com/news-flow/?provider=matriks,kap&symbol=OANDA:XAGUSD"},
		{Code: "BIST100", Name: "BIST 100 Endeksi", Ticker: "XU100.IS", Currency: "puan", Category: CategoryIndex,
			Aliases:      []string{"bist", "bist100", "endeks", "borsa"},
			SearchPhrase: "BIST borsa", NewsFlowURL: "https://tr.tradingview.com/news-flow/?provider=matriks,kap&symbol=BIST:XU100"},
	}
}

package nestegg

import (
	"context"
	"log"
	"strings"
)

// Tickers with a fixed unit price: a "share" of cash or real estate is
// already denominated in the reporting currency.
const (
	TickerCash       = "CASH"
	TickerRealEstate = "REAL ESTATE"
)

// Quote is a live price observation for one ticker.
type Quote struct {
	Ticker string
	Price  float64
}

// Quoter looks up live prices. The engine has no historical price store, so
// both the live anchor and historical by-asset breakdowns value holdings at
// current prices.
type Quoter interface {
	// Quote returns the current price of an equity ticker.
	Quote(ctx context.Context, ticker string) (Quote, error)
	// CryptoQuote returns the current price of a crypto ticker (e.g. "BTC").
	CryptoQuote(ctx context.Context, ticker string) (Quote, error)
}

// classOf classifies a ticker. CASH and REAL ESTATE are fixed classes,
// recognized crypto tickers form their own class, everything else is a stock.
func (e *Engine) classOf(ticker string) AssetClass {
	switch t := strings.ToUpper(strings.TrimSpace(ticker)); {
	case t == TickerCash:
		return ClassCash
	case t == TickerRealEstate || t == "REALESTATE":
		return ClassRealEstate
	default:
		if _, ok := e.crypto[t]; ok {
			return ClassCrypto
		}
		return ClassStock
	}
}

// priceOf resolves the current unit price for a ticker. A failed lookup is
// logged and prices the ticker at 0, so one bad quote never fails a whole
// valuation.
func (e *Engine) priceOf(ctx context.Context, ticker string) float64 {
	switch e.classOf(ticker) {
	case ClassCash, ClassRealEstate:
		return 1.0
	case ClassCrypto:
		q, err := e.quotes.CryptoQuote(ctx, ticker)
		if err != nil {
			log.Printf("crypto quote for %q failed (valued at 0): %v", ticker, err)
			return 0
		}
		return q.Price
	default:
		q, err := e.quotes.Quote(ctx, ticker)
		if err != nil {
			log.Printf("quote for %q failed (valued at 0): %v", ticker, err)
			return 0
		}
		return q.Price
	}
}

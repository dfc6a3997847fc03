// Package yahoo implements the live quote service over the public Yahoo
// Finance v8 chart endpoint. Crypto tickers are quoted through their -USD
// pair symbols.
package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/mbeaufre/nestegg"
)

// DefaultBaseURL is the chart API root.
const DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// Client fetches live market prices.
type Client struct {
	BaseURL string
	client  *http.Client
}

// New creates a quote client with a short timeout; quote lookups punctuate
// interactive chart requests and must fail fast.
func New() *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 8 * time.Second},
	}
}

// Quote returns the current price of an equity ticker.
func (c *Client) Quote(ctx context.Context, ticker string) (nestegg.Quote, error) {
	price, err := c.fetchPrice(ctx, ticker)
	if err != nil {
		return nestegg.Quote{}, err
	}
	return nestegg.Quote{Ticker: ticker, Price: price}, nil
}

// CryptoQuote returns the current price of a crypto ticker, quoted in USD.
func (c *Client) CryptoQuote(ctx context.Context, ticker string) (nestegg.Quote, error) {
	price, err := c.fetchPrice(ctx, ticker+"-USD")
	if err != nil {
		return nestegg.Quote{}, err
	}
	return nestegg.Quote{Ticker: ticker, Price: price}, nil
}

func (c *Client) fetchPrice(ctx context.Context, symbol string) (float64, error) {
	addr := fmt.Sprintf("%s/%s?interval=1m&range=1d", c.BaseURL, url.PathEscape(symbol))

	var jobj any
	if err := c.jwget(ctx, addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error retrieving %q: %w", symbol, err)
	}

	path := "$.chart.result[0].meta.regularMarketPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %w", symbol, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("error parsing %q: %q not a float %v", symbol, path, jval)
	}
	if val == 0 {
		return math.NaN(), fmt.Errorf("empty price for %q, nothing to return", symbol)
	}
	return val, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func (c *Client) jwget(ctx context.Context, addr string, data interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	// Yahoo rejects the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; nestegg/1.0)")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		resp.Body.Close()
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}

var _ nestegg.Quoter = (*Client)(nil)

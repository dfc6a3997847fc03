// Package sheets reads the tracker's spreadsheet datastore through the
// values endpoint of a Google-Sheets-style REST API. Every read goes through
// the shared call gate and the freshness cache; the engine never talks to
// the datastore directly.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/mbeaufre/nestegg"
)

// DefaultBaseURL is the spreadsheet values API root.
const DefaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// Client reads ranges of one spreadsheet. The zero value is not usable;
// construct with New.
type Client struct {
	SpreadsheetID string
	APIKey        string
	BaseURL       string

	client *http.Client
	gate   *nestegg.CallGate
	cache  *nestegg.RangeCache
}

// New creates a client with the default call gate (50 calls per sliding
// 60 seconds) and the default 60-second range cache.
func New(spreadsheetID, apiKey string) *Client {
	return &Client{
		SpreadsheetID: spreadsheetID,
		APIKey:        apiKey,
		BaseURL:       DefaultBaseURL,
		client:        &http.Client{Timeout: 15 * time.Second},
		gate:          nestegg.NewCallGate(0, 0),
		cache:         nestegg.NewRangeCache(0),
	}
}

// valuesResponse mirrors the values endpoint payload.
type valuesResponse struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

// ReadRange returns the raw rows of a range, row 0 being the header by
// convention. Fresh cached rows are served unless forceRefresh is set; a
// rejected gate call surfaces nestegg.ErrRateLimited.
func (c *Client) ReadRange(ctx context.Context, rangeID string, forceRefresh bool) ([][]string, error) {
	if !forceRefresh {
		if rows, ok := c.cache.Get(rangeID); ok {
			return rows, nil
		}
	}

	if err := c.gate.Record(); err != nil {
		return nil, fmt.Errorf("range %q: %w", rangeID, err)
	}

	addr := fmt.Sprintf("%s/%s/values/%s?key=%s",
		c.BaseURL, url.PathEscape(c.SpreadsheetID), url.PathEscape(rangeID), url.QueryEscape(c.APIKey))

	var payload valuesResponse
	if err := jwget(ctx, c.client, addr, &payload); err != nil {
		return nil, fmt.Errorf("reading range %q: %w", rangeID, err)
	}

	rows := payload.Values
	if rows == nil {
		rows = [][]string{}
	}
	c.cache.Put(rangeID, rows)
	return rows, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(ctx context.Context, client *http.Client, addr string, data interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
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

var _ nestegg.RangeReader = (*Client)(nil)

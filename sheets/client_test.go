package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/mbeaufre/nestegg"
)

// newTestClient points a client at a test server, with a roomy gate and
// cache unless a test swaps them.
func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		SpreadsheetID: "sheet-123",
		APIKey:        "key-abc",
		BaseURL:       srv.URL,
		client:        srv.Client(),
		gate:          nestegg.NewCallGate(0, 0),
		cache:         nestegg.NewRangeCache(0),
	}
}

func TestReadRange(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(`{"range":"Totals!A:G","values":[["Timestamp","User"],["2025-06-17T10:00:00Z","amy"]]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	rows, err := c.ReadRange(context.Background(), "Totals!A:G", false)
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}

	want := [][]string{{"Timestamp", "User"}, {"2025-06-17T10:00:00Z", "amy"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
	if gotPath != "/sheet-123/values/Totals!A:G" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotKey != "key-abc" {
		t.Errorf("api key = %q, want %q", gotKey, "key-abc")
	}
}

func TestReadRangeCaches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"values":[["a"]]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	ctx := context.Background()

	if _, err := c.ReadRange(ctx, "Totals!A:G", false); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ReadRange(ctx, "Totals!A:G", false); err != nil {
		t.Fatal(err)
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1 (second read from cache)", hits)
	}

	// a different range is a different cache key
	if _, err := c.ReadRange(ctx, "Holdings!A:E", false); err != nil {
		t.Fatal(err)
	}
	if hits != 2 {
		t.Errorf("server hit %d times, want 2", hits)
	}

	// forceRefresh bypasses the cache
	if _, err := c.ReadRange(ctx, "Totals!A:G", true); err != nil {
		t.Fatal(err)
	}
	if hits != 3 {
		t.Errorf("server hit %d times, want 3", hits)
	}
}

func TestReadRangeRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"values":[["a"]]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	c.gate = nestegg.NewCallGate(1, time.Minute)
	ctx := context.Background()

	if _, err := c.ReadRange(ctx, "Totals!A:G", true); err != nil {
		t.Fatalf("first read: %v", err)
	}
	_, err := c.ReadRange(ctx, "Totals!A:G", true)
	if !errors.Is(err, nestegg.ErrRateLimited) {
		t.Errorf("err = %v, want ErrRateLimited", err)
	}
}

func TestReadRangeEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// an empty range has no "values" field at all
		w.Write([]byte(`{"range":"Totals!A:G"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	rows, err := c.ReadRange(context.Background(), "Totals!A:G", false)
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("rows = %#v, want an empty non-nil slice", rows)
	}
}

func TestReadRangeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(srv)
	if _, err := c.ReadRange(context.Background(), "Totals!A:G", false); err == nil {
		t.Error("expected an error on a 403 response")
	}
}

package gamma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func marketPage(offset, count int) []byte {
	records := make([]map[string]interface{}, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, map[string]interface{}{
			"id":     fmt.Sprintf("m-%d", offset+i),
			"slug":   fmt.Sprintf("slug-%d", offset+i),
			"volume": 1.0,
		})
	}
	data, _ := json.Marshal(records)
	return data
}

func TestMarketsByTagShortPageStops(t *testing.T) {
	var offsets []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		offsets = append(offsets, offset)
		if offset == 0 {
			w.Write(marketPage(0, 100))
			return
		}
		w.Write(marketPage(offset, 37))
	}))
	defer srv.Close()

	c := testClient(t, srv, Config{PageSize: 100})
	markets, err := c.MarketsByTag(context.Background(), 7, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(markets) != 137 {
		t.Fatalf("expected 137 markets, got %d", len(markets))
	}
	if len(offsets) != 2 || offsets[0] != 0 || offsets[1] != 100 {
		t.Fatalf("unexpected offsets: %v", offsets)
	}
}

func TestMarketsByTagFullPageTriggersOneMoreRequest(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		if offset == 0 {
			w.Write(marketPage(0, 100))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := testClient(t, srv, Config{PageSize: 100})
	markets, err := c.MarketsByTag(context.Background(), 7, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(markets) != 100 {
		t.Fatalf("expected 100 markets, got %d", len(markets))
	}
	if requests != 2 {
		t.Fatalf("exactly-full page should trigger one more request, got %d", requests)
	}
}

func TestMarketsByTagSendsListingParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("tag_id") != "42" || q.Get("related_tags") != "true" || q.Get("closed") != "true" {
			t.Errorf("unexpected params: %v", q)
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := testClient(t, srv, Config{PageSize: 100})
	if _, err := c.MarketsByTag(context.Background(), 42, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMarketsByTagWrappedDataShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"a","slug":"s-a","volume":"3.5"}]}`))
	}))
	defer srv.Close()

	c := testClient(t, srv, Config{PageSize: 100})
	markets, err := c.MarketsByTag(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(markets) != 1 || markets[0].Volume != 3.5 {
		t.Fatalf("unexpected markets: %+v", markets)
	}
}

func TestMarketsByTagAbortsOnExhaustedFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testClient(t, srv, Config{PageSize: 100, MaxRetries: 2})
	if _, err := c.MarketsByTag(context.Background(), 1, false); err == nil {
		t.Fatalf("expected error when listing fetch exhausts retries")
	}
}

package aggregate

import (
	"context"
	"reflect"
	"testing"

	"polyscope/internal/model"
)

// stubTradeSource serves canned trades per condition id and records calls.
type stubTradeSource struct {
	trades map[string][]model.Trade
	calls  []string
}

func (s *stubTradeSource) TradesForMarket(_ context.Context, conditionID string) ([]model.Trade, error) {
	s.calls = append(s.calls, conditionID)
	return s.trades[conditionID], nil
}

func TestAggregatorMergesOutcomeVariants(t *testing.T) {
	markets := []model.Market{
		{ID: "1", Slug: "event-2025-06-01-yes", ConditionID: "0xy", Volume: 5},
		{ID: "2", Slug: "event-2025-06-01-no", ConditionID: "0xn", Volume: 20, Question: "Will it?"},
		{ID: "3", Slug: "event-2025-06-01", ConditionID: "0xe", Volume: 3},
	}
	src := &stubTradeSource{trades: map[string][]model.Trade{
		"0xn": {{Timestamp: 1000, Size: 10, Price: 0.5, ProxyWallet: "0xa"}},
	}}

	agg := NewAggregator(Config{SiteBase: "https://polymarket.com"}, src, nil)
	rows, err := agg.Run(context.Background(), markets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("expected one merged event, got %d", len(rows))
	}
	row := rows[0]
	if row.EventKey != "event-2025-06-01" {
		t.Fatalf("event key mismatch: %q", row.EventKey)
	}
	if row.URL != "https://polymarket.com/event/event-2025-06-01" {
		t.Fatalf("url mismatch: %q", row.URL)
	}
	if row.MarketsCount != 3 || row.UniqueTokens != 3 {
		t.Fatalf("count mismatch: %+v", row)
	}
	if row.TotalVolumeUSD != 28 {
		t.Fatalf("group volume must sum the whole group, got %v", row.TotalVolumeUSD)
	}
	if row.RepMarketID != "2" || row.RepConditionID != "0xn" {
		t.Fatalf("representative should be the max-volume market: %+v", row)
	}
	if row.AnyQuestion != "Will it?" {
		t.Fatalf("question mismatch: %q", row.AnyQuestion)
	}
	if row.TotalTrades != 1 || row.TotalVolumeUSD == 0 {
		t.Fatalf("metrics mismatch: %+v", row)
	}
	if row.UniqueEvents != 1 {
		t.Fatalf("unique events mismatch: %d", row.UniqueEvents)
	}

	// Only the representative's trades are fetched.
	if len(src.calls) != 1 || src.calls[0] != "0xn" {
		t.Fatalf("expected a single fetch for the representative, got %v", src.calls)
	}
}

func TestAggregatorTieBreakFirstSeen(t *testing.T) {
	markets := []model.Market{
		{ID: "a", Slug: "tie-2025-01-01-x", Volume: 7},
		{ID: "b", Slug: "tie-2025-01-01-y", Volume: 7},
	}
	src := &stubTradeSource{}

	agg := NewAggregator(Config{}, src, nil)
	rows, err := agg.Run(context.Background(), markets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].RepMarketID != "a" {
		t.Fatalf("tie must go to the first-seen market, got %q", rows[0].RepMarketID)
	}
}

func TestAggregatorMissingConditionIDSkipsFetch(t *testing.T) {
	markets := []model.Market{
		{ID: "1", Slug: "solo-market", Volume: 12},
	}
	src := &stubTradeSource{}

	agg := NewAggregator(Config{}, src, nil)
	rows, err := agg.Run(context.Background(), markets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(src.calls) != 0 {
		t.Fatalf("no condition id must mean no fetch, got %v", src.calls)
	}
	row := rows[0]
	if row.TotalTrades != 0 || row.TradersCount != 0 || row.ActiveDays != 0 {
		t.Fatalf("expected zero metrics bundle, got %+v", row)
	}
	if row.TotalVolumeUSD != 12 {
		t.Fatalf("group volume must still sum, got %v", row.TotalVolumeUSD)
	}
}

func TestAggregatorUndatedSlugsStaySeparate(t *testing.T) {
	markets := []model.Market{
		{ID: "1", Slug: "who-wins-the-cup", Volume: 1},
		{ID: "2", Slug: "who-wins-the-race", Volume: 1},
	}
	src := &stubTradeSource{}

	agg := NewAggregator(Config{}, src, nil)
	rows, err := agg.Run(context.Background(), markets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("anchor-less slugs must form singleton groups, got %d rows", len(rows))
	}
	if rows[0].UniqueEvents != 2 || rows[1].UniqueEvents != 2 {
		t.Fatalf("unique events should be the distinct group count: %+v", rows)
	}
}

func TestAggregatorIdempotent(t *testing.T) {
	markets := []model.Market{
		{ID: "1", Slug: "event-2025-06-01-yes", ConditionID: "0xy", Volume: 5},
		{ID: "2", Slug: "event-2025-06-01-no", ConditionID: "0xn", Volume: 20},
		{ID: "3", Slug: "other-market", ConditionID: "0xo", Volume: 1},
	}
	src := &stubTradeSource{trades: map[string][]model.Trade{
		"0xn": {{Timestamp: 1000, Size: 4, Price: 0.25, ProxyWallet: "0xa"}},
		"0xo": {{Timestamp: 2000, Size: 8, Price: 0.5, ProxyWallet: "0xb"}},
	}}
	agg := NewAggregator(Config{SiteBase: "https://x"}, src, nil)

	first, err := agg.Run(context.Background(), markets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := agg.Run(context.Background(), markets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byKey := func(rows []model.EventRow) map[string]model.EventRow {
		out := make(map[string]model.EventRow, len(rows))
		for _, row := range rows {
			out[row.EventKey] = row
		}
		return out
	}
	if !reflect.DeepEqual(byKey(first), byKey(second)) {
		t.Fatalf("runs diverged:\n%+v\n%+v", first, second)
	}
}

func TestDedupMarkets(t *testing.T) {
	markets := []model.Market{
		{ID: "1", Slug: "a", Volume: 1},
		{ID: "2", Slug: "b", Volume: 2},
		{ID: "1", Slug: "a", Volume: 9},
		{Slug: "no-id"},
	}
	out := DedupMarkets(markets)
	if len(out) != 2 {
		t.Fatalf("expected 2 markets, got %d", len(out))
	}
	if out[0].ID != "1" || out[0].Volume != 9 {
		t.Fatalf("first occurrence keeps position, last keeps record: %+v", out[0])
	}
	if out[1].ID != "2" {
		t.Fatalf("unexpected order: %+v", out)
	}
}

package storage

import (
	"context"
	"strconv"

	"polyscope/internal/model"
)

// Storage defines a sink for event rows.
type Storage interface {
	PutEventRows(ctx context.Context, rows []model.EventRow) error
}

// columns is the fixed output column order shared by the tabular sinks.
var columns = []string{
	"event_key", "url", "markets_count", "unique_tokens",
	"total_volume_usd", "traders_count", "total_trades",
	"avg_trade_size_usd", "avg_volume_per_trader", "avg_trades_per_day",
	"min_trade_size_usd", "max_trade_size_usd", "active_days",
	"rep_market_id", "rep_condition_id", "unique_events", "any_question",
}

func rowValues(row model.EventRow) []interface{} {
	return []interface{}{
		row.EventKey, row.URL, row.MarketsCount, row.UniqueTokens,
		row.TotalVolumeUSD, row.TradersCount, row.TotalTrades,
		row.AvgTradeSizeUSD, row.AvgVolumePerTrader, row.AvgTradesPerDay,
		row.MinTradeSizeUSD, row.MaxTradeSizeUSD, row.ActiveDays,
		row.RepMarketID, row.RepConditionID, row.UniqueEvents, row.AnyQuestion,
	}
}

func rowStrings(row model.EventRow) []string {
	values := rowValues(row)
	out := make([]string, len(values))
	for i, value := range values {
		switch v := value.(type) {
		case string:
			out[i] = v
		case int:
			out[i] = strconv.Itoa(v)
		case float64:
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return out
}

package model

// EventRow is the finalized output record for one event group. Group-level
// fields cover every market in the group; the trade statistics describe only
// the representative market's history inside the configured window.
type EventRow struct {
	EventKey           string  `json:"event_key"`
	URL                string  `json:"url"`
	MarketsCount       int     `json:"markets_count"`
	UniqueTokens       int     `json:"unique_tokens"`
	TotalVolumeUSD     float64 `json:"total_volume_usd"`
	TradersCount       int     `json:"traders_count"`
	TotalTrades        int     `json:"total_trades"`
	AvgTradeSizeUSD    float64 `json:"avg_trade_size_usd"`
	AvgVolumePerTrader float64 `json:"avg_volume_per_trader"`
	AvgTradesPerDay    float64 `json:"avg_trades_per_day"`
	MinTradeSizeUSD    float64 `json:"min_trade_size_usd"`
	MaxTradeSizeUSD    float64 `json:"max_trade_size_usd"`
	ActiveDays         int     `json:"active_days"`
	RepMarketID        string  `json:"rep_market_id"`
	RepConditionID     string  `json:"rep_condition_id"`
	UniqueEvents       int     `json:"unique_events"`
	AnyQuestion        string  `json:"any_question"`
}

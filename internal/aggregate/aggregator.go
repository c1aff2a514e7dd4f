// Package aggregate groups markets into events by base slug and computes
// per-event trade metrics.
package aggregate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"polyscope/internal/model"
	"polyscope/internal/slug"
)

// TradeSource yields the trade history for one trading contract.
type TradeSource interface {
	TradesForMarket(ctx context.Context, conditionID string) ([]model.Trade, error)
}

// Config controls aggregation behavior.
type Config struct {
	SiteBase string
}

// Aggregator collapses markets into event groups and builds one metrics row
// per group from its representative market.
type Aggregator struct {
	cfg    Config
	trades TradeSource
	logger *zap.Logger
}

func NewAggregator(cfg Config, trades TradeSource, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{cfg: cfg, trades: trades, logger: logger}
}

type group struct {
	key     string
	markets []model.Market
}

// Run partitions markets by base slug, picks the highest-volume market per
// group as its representative, fetches that market's trades, and emits one
// row per group. The group volume sum spans the whole group; the trade
// statistics describe the representative only.
func (a *Aggregator) Run(ctx context.Context, markets []model.Market) ([]model.EventRow, error) {
	if a.trades == nil {
		return nil, fmt.Errorf("trade source is nil")
	}

	groups := make(map[string]*group)
	order := make([]*group, 0)
	for _, mkt := range markets {
		key := slug.BaseKey(mkt.Slug)
		grp := groups[key]
		if grp == nil {
			grp = &group{key: key}
			groups[key] = grp
			order = append(order, grp)
		}
		grp.markets = append(grp.markets, mkt)
	}

	uniqueEvents := len(order)
	rows := make([]model.EventRow, 0, uniqueEvents)

	for _, grp := range order {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rep := representative(grp.markets)

		var groupVolume float64
		for _, mkt := range grp.markets {
			groupVolume += mkt.Volume
		}

		var trades []model.Trade
		if rep.ConditionID != "" {
			var err error
			trades, err = a.trades.TradesForMarket(ctx, rep.ConditionID)
			if err != nil {
				return nil, fmt.Errorf("trades for %s: %w", rep.ConditionID, err)
			}
		}
		m := ComputeMetrics(trades)

		rows = append(rows, model.EventRow{
			EventKey:           grp.key,
			URL:                a.eventURL(grp.key),
			MarketsCount:       len(grp.markets),
			UniqueTokens:       len(grp.markets),
			TotalVolumeUSD:     round6(groupVolume),
			TradersCount:       m.TradersCount,
			TotalTrades:        m.TotalTrades,
			AvgTradeSizeUSD:    m.AvgTradeSizeUSD,
			AvgVolumePerTrader: m.AvgVolumePerTrader,
			AvgTradesPerDay:    m.AvgTradesPerDay,
			MinTradeSizeUSD:    m.MinTradeSizeUSD,
			MaxTradeSizeUSD:    m.MaxTradeSizeUSD,
			ActiveDays:         m.ActiveDays,
			RepMarketID:        rep.ID,
			RepConditionID:     rep.ConditionID,
			UniqueEvents:       uniqueEvents,
			AnyQuestion:        rep.Question,
		})

		a.logger.Debug("event aggregated",
			zap.String("event", grp.key),
			zap.Int("markets", len(grp.markets)),
			zap.Int("trades", m.TotalTrades))
	}

	return rows, nil
}

// representative returns the market with the highest platform-reported
// volume; the first-seen market wins ties so output stays deterministic.
func representative(markets []model.Market) model.Market {
	rep := markets[0]
	for _, mkt := range markets[1:] {
		if mkt.Volume > rep.Volume {
			rep = mkt
		}
	}
	return rep
}

func (a *Aggregator) eventURL(key string) string {
	if key == "" {
		return ""
	}
	return a.cfg.SiteBase + "/event/" + key
}

// DedupMarkets collapses duplicate market ids: the first occurrence keeps
// its position, the last occurrence keeps the record. Markets without an id
// are dropped.
func DedupMarkets(markets []model.Market) []model.Market {
	index := make(map[string]int)
	out := make([]model.Market, 0, len(markets))
	for _, mkt := range markets {
		if mkt.ID == "" {
			continue
		}
		if pos, ok := index[mkt.ID]; ok {
			out[pos] = mkt
			continue
		}
		index[mkt.ID] = len(out)
		out = append(out, mkt)
	}
	return out
}

package aggregate

import (
	"math"
	"strings"

	"polyscope/internal/model"
)

// Metrics holds descriptive statistics over one market's trade history.
type Metrics struct {
	TradersCount       int
	TotalTrades        int
	TotalVolumeUSD     float64
	AvgTradeSizeUSD    float64
	AvgVolumePerTrader float64
	AvgTradesPerDay    float64
	MinTradeSizeUSD    float64
	MaxTradeSizeUSD    float64
	ActiveDays         int
}

// ComputeMetrics derives trade statistics. USD notional per trade is
// |size*price|; traders are distinct non-empty wallets, case-folded; active
// days is the inclusive day span between first and last trade timestamps,
// not a count of distinct calendar days. Empty input yields a zero bundle.
func ComputeMetrics(trades []model.Trade) Metrics {
	if len(trades) == 0 {
		return Metrics{}
	}

	traders := make(map[string]struct{})
	var total, minUSD, maxUSD float64
	var firstTS, lastTS int64

	for i, tr := range trades {
		usd := math.Abs(tr.Size * tr.Price)
		total += usd
		if i == 0 || usd < minUSD {
			minUSD = usd
		}
		if i == 0 || usd > maxUSD {
			maxUSD = usd
		}

		if addr := strings.ToLower(tr.ProxyWallet); addr != "" {
			traders[addr] = struct{}{}
		}

		if tr.Timestamp > 0 {
			if firstTS == 0 || tr.Timestamp < firstTS {
				firstTS = tr.Timestamp
			}
			if tr.Timestamp > lastTS {
				lastTS = tr.Timestamp
			}
		}
	}

	n := len(trades)
	m := Metrics{
		TradersCount:    len(traders),
		TotalTrades:     n,
		TotalVolumeUSD:  round6(total),
		AvgTradeSizeUSD: round6(total / float64(n)),
		MinTradeSizeUSD: round6(minUSD),
		MaxTradeSizeUSD: round6(maxUSD),
	}
	if len(traders) > 0 {
		m.AvgVolumePerTrader = round6(total / float64(len(traders)))
	}
	if firstTS > 0 && lastTS > 0 {
		m.ActiveDays = int((lastTS-firstTS)/86400) + 1
	}
	if m.ActiveDays > 0 {
		m.AvgTradesPerDay = round6(float64(n) / float64(m.ActiveDays))
	}
	return m
}

// round6 rounds to 6 decimal places for presentation stability.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

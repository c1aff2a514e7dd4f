package gamma

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"polyscope/internal/model"
)

const (
	tradeRetryBudget = 3
	tradePageFloor   = 100
)

// TradesForMarket pages the trade history for one condition id with cursor
// pagination, keeping only trades at or after the configured window start.
// The window filters output, not pagination progress: the next cursor comes
// from the unfiltered response.
//
// Trade fetching is best effort. On a timeout-class failure with budget left
// and the page size above the floor, the page size is halved and the same
// page retried; once the budget or the floor is hit, whatever accumulated so
// far is returned as a partial result rather than an error.
func (c *Client) TradesForMarket(ctx context.Context, conditionID string) ([]model.Trade, error) {
	var trades []model.Trade
	limit := c.cfg.TradePageSize
	retriesLeft := tradeRetryBudget
	cursor := ""

	for {
		params := map[string]string{
			"market":    conditionID,
			"takerOnly": "false",
			"limit":     strconv.Itoa(limit),
		}
		if cursor != "" {
			params["cursor"] = cursor
		}

		raw, err := c.getJSON(ctx, c.cfg.DataBase+"/trades", params)
		if err != nil {
			if ctx.Err() != nil {
				return trades, ctx.Err()
			}
			if timeoutClass(err) && retriesLeft > 0 && limit > tradePageFloor {
				retriesLeft--
				limit = max(tradePageFloor, limit/2)
				c.logger.Info("retry trades with smaller page",
					zap.String("market", conditionID), zap.Int("limit", limit))
				continue
			}
			c.logger.Warn("trade pagination stopped early",
				zap.String("market", conditionID), zap.Int("collected", len(trades)), zap.Error(err))
			return trades, nil
		}

		pg := decodePage(raw)
		if len(pg.Records) == 0 {
			return trades, nil
		}

		for _, rec := range pg.Records {
			var tr model.Trade
			if err := json.Unmarshal(rec, &tr); err != nil {
				c.logger.Warn("decode trade", zap.Error(err))
				continue
			}
			if c.cfg.WindowStart == 0 || tr.Timestamp >= c.cfg.WindowStart {
				trades = append(trades, tr)
			}
		}

		cursor = pg.Next
		if cursor == "" {
			return trades, nil
		}
	}
}

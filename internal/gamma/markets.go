package gamma

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"polyscope/internal/model"
)

// MarketsByTag pages through the market listing for one tag and closed
// state, stopping on the first short page.
func (c *Client) MarketsByTag(ctx context.Context, tagID int, closed bool) ([]model.Market, error) {
	var out []model.Market
	offset := 0
	for {
		raw, err := c.getJSON(ctx, c.cfg.GammaBase+"/markets", map[string]string{
			"tag_id":       strconv.Itoa(tagID),
			"related_tags": "true",
			"closed":       strconv.FormatBool(closed),
			"limit":        strconv.Itoa(c.cfg.PageSize),
			"offset":       strconv.Itoa(offset),
		})
		if err != nil {
			return nil, err
		}

		pg := decodePage(raw)
		for _, rec := range pg.Records {
			var mkt model.Market
			if err := json.Unmarshal(rec, &mkt); err != nil {
				c.logger.Warn("decode market", zap.Error(err))
				continue
			}
			out = append(out, mkt)
		}

		if len(pg.Records) < c.cfg.PageSize {
			return out, nil
		}
		offset += c.cfg.PageSize
	}
}

package gamma

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"polyscope/internal/model"
)

// SearchTags pages through the tag listing and returns every tag whose label
// or slug contains the folded query.
func (c *Client) SearchTags(ctx context.Context, query string) ([]model.Tag, error) {
	folded := Fold(query)

	var out []model.Tag
	offset := 0
	for {
		raw, err := c.getJSON(ctx, c.cfg.GammaBase+"/tags", map[string]string{
			"limit":  strconv.Itoa(c.cfg.PageSize),
			"offset": strconv.Itoa(offset),
		})
		if err != nil {
			return nil, err
		}

		pg := decodePage(raw)
		for _, rec := range pg.Records {
			var tag model.Tag
			if err := json.Unmarshal(rec, &tag); err != nil {
				c.logger.Warn("decode tag", zap.Error(err))
				continue
			}
			if strings.Contains(Fold(tag.Label), folded) || strings.Contains(Fold(tag.Slug), folded) {
				out = append(out, tag)
			}
		}

		if len(pg.Records) < c.cfg.PageSize {
			return out, nil
		}
		offset += c.cfg.PageSize
	}
}

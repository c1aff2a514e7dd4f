package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"polyscope/internal/model"
)

// Store provides Postgres persistence for event rows.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutEventRows upserts one row per event key.
func (s *Store) PutEventRows(ctx context.Context, rows []model.EventRow) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`
			INSERT INTO event_metrics (
				event_key, url, markets_count, unique_tokens, total_volume_usd,
				traders_count, total_trades, avg_trade_size_usd, avg_volume_per_trader,
				avg_trades_per_day, min_trade_size_usd, max_trade_size_usd, active_days,
				rep_market_id, rep_condition_id, unique_events, any_question,
				created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,now(),now())
			ON CONFLICT (event_key)
			DO UPDATE SET
				url = EXCLUDED.url,
				markets_count = EXCLUDED.markets_count,
				unique_tokens = EXCLUDED.unique_tokens,
				total_volume_usd = EXCLUDED.total_volume_usd,
				traders_count = EXCLUDED.traders_count,
				total_trades = EXCLUDED.total_trades,
				avg_trade_size_usd = EXCLUDED.avg_trade_size_usd,
				avg_volume_per_trader = EXCLUDED.avg_volume_per_trader,
				avg_trades_per_day = EXCLUDED.avg_trades_per_day,
				min_trade_size_usd = EXCLUDED.min_trade_size_usd,
				max_trade_size_usd = EXCLUDED.max_trade_size_usd,
				active_days = EXCLUDED.active_days,
				rep_market_id = EXCLUDED.rep_market_id,
				rep_condition_id = EXCLUDED.rep_condition_id,
				unique_events = EXCLUDED.unique_events,
				any_question = EXCLUDED.any_question,
				updated_at = now()
		`,
			row.EventKey,
			row.URL,
			row.MarketsCount,
			row.UniqueTokens,
			row.TotalVolumeUSD,
			row.TradersCount,
			row.TotalTrades,
			row.AvgTradeSizeUSD,
			row.AvgVolumePerTrader,
			row.AvgTradesPerDay,
			row.MinTradeSizeUSD,
			row.MaxTradeSizeUSD,
			row.ActiveDays,
			row.RepMarketID,
			row.RepConditionID,
			row.UniqueEvents,
			row.AnyQuestion,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range rows {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

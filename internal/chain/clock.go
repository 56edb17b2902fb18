package chain

import (
	"context"
	"time"

	"asset_bridge/internal/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultBlockInterval is how often the height advances when no interval is
// configured.
const DefaultBlockInterval = 2 * time.Second

// Clock is the block-height clock of the host ledger. The height is a
// monotonic logical time persisted in chain_state and advanced by a
// background ticker; listing expiry is decided by comparing against it.
type Clock struct {
	db       *pgxpool.Pool
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewClock creates a clock advancing every interval. A non-positive interval
// falls back to DefaultBlockInterval.
func NewClock(db *pgxpool.Pool, interval time.Duration) *Clock {
	if interval <= 0 {
		interval = DefaultBlockInterval
	}
	return &Clock{
		db:       db,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background ticker. Call Stop to halt it.
func (c *Clock) Start() {
	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := c.Advance(context.Background(), 1); err != nil {
					logger.Error("failed to advance block height", "error", err)
				}
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop halts the background ticker and waits for it to exit.
func (c *Clock) Stop() {
	close(c.stop)
	<-c.done
}

// Height returns the current block height.
func (c *Clock) Height(ctx context.Context) (int64, error) {
	var height int64
	err := c.db.QueryRow(ctx, `SELECT height FROM chain_state WHERE id = 1`).Scan(&height)
	return height, err
}

// Advance moves the clock forward by n blocks and returns the new height.
func (c *Clock) Advance(ctx context.Context, n int64) (int64, error) {
	var height int64
	err := c.db.QueryRow(ctx,
		`UPDATE chain_state SET height = height + $1 WHERE id = 1 RETURNING height`, n,
	).Scan(&height)
	return height, err
}

// HeightTx reads the current height inside an open transaction so that the
// expiry decision commits or rolls back with the rest of the operation.
func HeightTx(ctx context.Context, tx pgx.Tx) (int64, error) {
	var height int64
	err := tx.QueryRow(ctx, `SELECT height FROM chain_state WHERE id = 1`).Scan(&height)
	return height, err
}

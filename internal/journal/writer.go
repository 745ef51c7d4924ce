package journal

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantdash/livefeed/internal/event"
)

// Config holds batching settings for the event writer.
type Config struct {
	BatchSize     int
	FlushInterval time.Duration
}

// Metrics counts writer activity.
type Metrics struct {
	Inserts int64
	Flushes int64
	Errors  int64
}

// eventRow is a live_events table row.
type eventRow struct {
	EventType  string
	Data       []byte // JSONB payload
	EventTs    string // envelope timestamp, stored verbatim
	ReceivedAt int64  // local receive time, microseconds
}

// Writer batches received envelopes and persists them to the live_events table.
type Writer struct {
	cfg    Config
	logger *slog.Logger
	db     *pgxpool.Pool

	batchMu sync.Mutex
	batch   []eventRow
	metrics Metrics

	flushTicker *time.Ticker
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// NewWriter creates an event journal writer.
func NewWriter(cfg Config, db *pgxpool.Pool, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		cfg:    cfg,
		db:     db,
		logger: logger,
		batch:  make([]eventRow, 0, cfg.BatchSize),
	}
}

// Start begins the periodic flush loop.
func (w *Writer) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.flushTicker = time.NewTicker(w.cfg.FlushInterval)

	w.wg.Add(1)
	go w.flushLoop()

	w.logger.Info("event journal started",
		"batch_size", w.cfg.BatchSize,
		"flush_interval", w.cfg.FlushInterval,
	)
	return nil
}

// Stop halts the flush loop and writes any remaining rows.
func (w *Writer) Stop(ctx context.Context) error {
	w.logger.Info("stopping event journal")

	if w.cancel != nil {
		w.cancel()
	}
	if w.flushTicker != nil {
		w.flushTicker.Stop()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		w.logger.Warn("event journal stop timed out")
	}

	w.flush()
	return nil
}

// Record is the message callback registered on the live client. It
// accumulates the envelope and flushes once the batch fills.
func (w *Writer) Record(env event.Envelope) {
	row := transform(env)

	w.batchMu.Lock()
	w.batch = append(w.batch, row)
	shouldFlush := len(w.batch) >= w.cfg.BatchSize
	w.batchMu.Unlock()

	if shouldFlush {
		w.flush()
	}
}

// Stats returns current metrics.
func (w *Writer) Stats() Metrics {
	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	return w.metrics
}

// transform converts an envelope to a table row. An unmarshalable payload
// degrades to an empty JSON object rather than losing the event.
func transform(env event.Envelope) eventRow {
	data := []byte("{}")
	if env.Data != nil {
		if b, err := json.Marshal(env.Data); err == nil {
			data = b
		}
	}
	return eventRow{
		EventType:  string(env.Type),
		Data:       data,
		EventTs:    env.Timestamp,
		ReceivedAt: time.Now().UnixMicro(),
	}
}

// flushLoop periodically flushes the batch.
func (w *Writer) flushLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.flushTicker.C:
			w.flush()
		}
	}
}

// flush writes the current batch to the database.
func (w *Writer) flush() {
	w.batchMu.Lock()
	if len(w.batch) == 0 {
		w.batchMu.Unlock()
		return
	}
	batch := w.batch
	w.batch = make([]eventRow, 0, w.cfg.BatchSize)
	w.batchMu.Unlock()

	start := time.Now()
	if err := w.batchInsert(batch); err != nil {
		w.logger.Error("batch insert failed", "error", err, "count", len(batch))
		w.batchMu.Lock()
		w.metrics.Errors++
		w.batchMu.Unlock()
		return
	}

	w.batchMu.Lock()
	w.metrics.Inserts += int64(len(batch))
	w.metrics.Flushes++
	w.batchMu.Unlock()

	w.logger.Debug("flushed events",
		"count", len(batch),
		"duration", time.Since(start),
	)
}

// batchInsert inserts rows using pgx.Batch.
func (w *Writer) batchInsert(rows []eventRow) error {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO live_events (event_type, data, event_ts, received_at)
			VALUES ($1, $2, $3, $4)
		`, r.EventType, r.Data, r.EventTs, r.ReceivedAt)
	}

	// Background context so the final flush still lands during shutdown.
	results := w.db.SendBatch(context.Background(), batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return nil
}

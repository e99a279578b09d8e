package worker

// stock_alert_worker.go
// Processes low-stock jobs from QueueStockAlert. Emails the configured
// recipient, or only logs the alert when SMTP is not configured.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const maxAttempts = 3

// StockAlertPayload is the job envelope sent to QueueStockAlert.
type StockAlertPayload struct {
	PartID     int64  `json:"part_id"`
	PartNumber string `json:"part_number"`
	PartName   string `json:"part_name"`
	Stock      int    `json:"stock"`
	StockMin   int    `json:"stock_min"`
	SupplierID int64  `json:"supplier_id"`
}

// Sender delivers a notification. *infra.Mailer satisfies it.
type Sender interface {
	Send(to, subject, body string) error
}

type StockAlertWorker struct {
	sender  Sender
	to      string
	backoff time.Duration
}

// NewStockAlertWorker returns a worker that only logs when sender is nil or
// no recipient is configured.
func NewStockAlertWorker(sender Sender, to string) *StockAlertWorker {
	return &StockAlertWorker{sender: sender, to: to, backoff: time.Second}
}

// Process sends one alert, retrying with exponential backoff.
func (w *StockAlertWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload StockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("stock_alert_worker: invalid payload: %w", err)
	}

	logger := log.With().
		Int64("part_id", payload.PartID).
		Str("part_number", payload.PartNumber).
		Int("stock", payload.Stock).
		Int("stock_min", payload.StockMin).
		Logger()

	if w.sender == nil || w.to == "" {
		logger.Warn().Msg("stock_alert_worker: part at or below minimum stock")
		return nil
	}

	subject := fmt.Sprintf("Low stock: %s (%s)", payload.PartName, payload.PartNumber)
	body := fmt.Sprintf("Part %s %q is at %d units (minimum %d). Supplier id: %d.",
		payload.PartNumber, payload.PartName, payload.Stock, payload.StockMin, payload.SupplierID)

	var err error
	delay := w.backoff
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = w.sender.Send(w.to, subject, body); err == nil {
			logger.Info().Str("to", w.to).Msg("stock_alert_worker: alert sent")
			return nil
		}
		logger.Warn().Err(err).Int("attempt", attempt).Msg("stock_alert_worker: send failed")
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}

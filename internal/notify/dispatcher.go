package notify

import (
	"fmt"
	"log/slog"

	"github.com/omarshaarawi/sleeperbot/internal/models"
)

// Sender delivers one text message to the configured destination.
type Sender interface {
	SendMessage(text string) error
}

// DeliveryError wraps a failed send of the alert at Index.
type DeliveryError struct {
	Index int
	Err   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivering alert %d: %v", e.Index, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

type Result struct {
	Attempted int
	Sent      int
	Failed    int
}

type Dispatcher struct {
	sender Sender
	logger *slog.Logger
}

// NewDispatcher returns a dispatcher. A nil sender means credentials are
// missing and every dispatch is a logged no-op.
func NewDispatcher(sender Sender, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{sender: sender, logger: logger}
}

// Dispatch sends every alert in order. Failures are logged and never stop
// the remaining alerts.
func (d *Dispatcher) Dispatch(alerts []models.Alert) Result {
	return d.DispatchWith(d.logger, alerts)
}

// DispatchWith is Dispatch logging to logger instead of the default one.
func (d *Dispatcher) DispatchWith(logger *slog.Logger, alerts []models.Alert) Result {
	var res Result

	if len(alerts) == 0 {
		logger.Info("No alerts to send")
		return res
	}
	if d.sender == nil {
		logger.Warn("Telegram credentials not set, skipping delivery", "alerts", len(alerts))
		return res
	}

	for i, alert := range alerts {
		res.Attempted++
		if err := d.sender.SendMessage(alert.Text()); err != nil {
			res.Failed++
			logger.Error("Telegram message failed", "error", &DeliveryError{Index: i, Err: err}, "kind", alert.Kind)
			continue
		}
		res.Sent++
	}

	logger.Info("Dispatch finished", "attempted", res.Attempted, "sent", res.Sent, "failed", res.Failed)
	return res
}

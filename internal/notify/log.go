package notify

import (
	"context"
	"log"

	"github.com/cimillas/surplus-market/internal/app"
)

// LogNotifier writes capacity changes to the process log. Used when no broker
// is configured.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) CapacityChanged(_ context.Context, change app.CapacityChange) {
	n.logger.Printf(
		"capacity change at restaurant %s (%s): +%d bags, %d recipients",
		change.RestaurantName,
		change.RestaurantID,
		change.BagsReleased,
		len(change.Recipients),
	)
}

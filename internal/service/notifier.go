package service

import (
	"go.uber.org/zap"

	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
)

// Notifier receives the two logical sync events. Implementations must not
// block; the orchestrator does not depend on a response.
type Notifier interface {
	SyncCompleted(kind models.SyncKind)
	SyncFailed(kind models.SyncKind, reason string)
}

// LogNotifier is the default Notifier, emitting events to the log where the
// popup (or any tail) can observe them.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier constructs a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SyncCompleted(kind models.SyncKind) {
	n.logger.Info("sync completed", zap.String("kind", string(kind)))
}

func (n *LogNotifier) SyncFailed(kind models.SyncKind, reason string) {
	n.logger.Warn("sync failed", zap.String("kind", string(kind)), zap.String("reason", reason))
}

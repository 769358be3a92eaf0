package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-adf/internal/logging"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

// TelemetryStatus is the outcome of one command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess TelemetryStatus = "success"
	// TelemetryStatusRejected marks caller errors such as a BODY_* failure.
	TelemetryStatusRejected     TelemetryStatus = "rejected"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is handed to a Telemetry callback once Execute finishes.
// Code is the error's text code and is empty on success.
type TelemetryInfo struct {
	Command   string
	Operation string
	RequestID string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Code      string
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry observes command outcomes in place of the handler's own logging.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs outcomes to logger: rejections at WARN so bad request
// bodies do not read as converter faults, other failures at ERROR.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(ctx context.Context, _ T, info TelemetryInfo) {
		logOutcome(logging.WithFields(logger, info.Fields).WithContext(ctx), info)
	}
}

func logOutcome(logger interfaces.Logger, info TelemetryInfo) {
	args := []any{"duration_ms", info.Duration.Milliseconds()}
	if info.Error != nil {
		args = append(args, "code", info.Code, "error", info.Error)
	}
	switch info.Status {
	case TelemetryStatusSuccess:
		logger.Info("command.execute.success", args...)
	case TelemetryStatusRejected:
		logger.Warn("command.execute.rejected", args...)
	case TelemetryStatusContextError:
		logger.Error("command.execute.context_error", args...)
	default:
		logger.Error("command.execute.failed", args...)
	}
}

func statusOf(err error) TelemetryStatus {
	switch code := ErrorCode(err); {
	case err == nil:
		return TelemetryStatusSuccess
	case code == CodeCanceled || code == CodeTimeout:
		return TelemetryStatusContextError
	case Rejected(err):
		return TelemetryStatusRejected
	default:
		return TelemetryStatusFailed
	}
}

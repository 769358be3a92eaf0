package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/goliatone/go-adf/internal/logging"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

// DefaultHandlerTimeout bounds a single command execution.
const DefaultHandlerTimeout = 30 * time.Second

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// MessageFields extracts structured log fields from a message.
type MessageFields[T command.Message] func(msg T) map[string]any

// Handler wraps command execution with shared concerns (context, logging, error tagging).
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	fields    MessageFields[T]
	telemetry Telemetry[T]
	requestID func() string
}

// NewHandler creates a handler that satisfies go-command's Commander interface while applying
// validation, logging, and timeout enforcement.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:      fn,
		logger:    logging.NoOp(),
		timeout:   DefaultHandlerTimeout,
		requestID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute conforms to command.Commander[T].Execute. Every returned error is a
// go-errors error whose text code ErrorCode reports.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return invalidCommand(err)
	}

	ctx = ensureContext(ctx)
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return interrupted(err)
	}

	fields := map[string]any{
		"command": command.GetMessageType(msg),
	}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.fields != nil {
		for key, value := range h.fields(msg) {
			fields[key] = value
		}
	}

	requestID := h.requestID()
	ctx = logging.WithRequestID(ctx, requestID)
	logger := logging.WithFields(h.logger, fields).WithContext(ctx)
	logger.Debug("command.execute.start")

	started := time.Now()
	err := h.exec(ctx, msg)
	if err == nil {
		err = ctx.Err()
	}
	err = classify(err)

	info := TelemetryInfo{
		Command:   command.GetMessageType(msg),
		Operation: h.operation,
		RequestID: requestID,
		Fields:    fields,
		Duration:  time.Since(started),
		Error:     err,
		Code:      ErrorCode(err),
		Status:    statusOf(err),
		Logger:    logger,
	}
	if h.telemetry != nil {
		h.telemetry(ctx, msg, info)
		return err
	}
	logOutcome(logger, info)
	return err
}

// WithTimeout overrides the default execution timeout. Zero or negative disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout <= 0 {
			h.timeout = 0
			return
		}
		h.timeout = timeout
	}
}

// WithLogger injects the logger used during execution. Defaults to a no-op logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger == nil {
			h.logger = logging.NoOp()
			return
		}
		h.logger = logger
	}
}

// WithOperation sets a human-friendly operation name emitted with every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields adds per-message fields to every entry logged for an execution.
func WithMessageFields[T command.Message](fn MessageFields[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.fields = fn
	}
}

// WithTelemetry replaces the built-in outcome logging with fn.
func WithTelemetry[T command.Message](fn Telemetry[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.telemetry = fn
	}
}

// WithRequestID overrides the request id generator. Defaults to random UUIDs.
func WithRequestID[T command.Message](fn func() string) HandlerOption[T] {
	return func(h *Handler[T]) {
		if fn != nil {
			h.requestID = fn
		}
	}
}

func (h *Handler[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.timeout)
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-adf/internal/logging"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

type testMessage struct{}

func (testMessage) Type() string { return "adf.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "adf.test.invalid" }

func (invalidMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if code := ErrorCode(err); code != CodeInvalidCommand {
		t.Fatalf("expected %s, got %q", CodeInvalidCommand, code)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
	if code := ErrorCode(err); code != CodeTimeout {
		t.Fatalf("expected %s, got %q", CodeTimeout, code)
	}
}

func TestHandlerPropagatesRequestIDAndFields(t *testing.T) {
	var seen string
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		seen = logging.RequestID(ctx)
		return nil
	}, WithRequestID[testMessage](func() string { return "req-42" }))

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != "req-42" {
		t.Fatalf("expected request id in context, got %q", seen)
	}
}

func TestHandlerDefaultRequestIDIsUUID(t *testing.T) {
	var id string
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		id = logging.RequestID(ctx)
		return nil
	})
	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid request id, got %q", id)
	}
}

func TestHandlerTelemetryReceivesOutcome(t *testing.T) {
	var infos []TelemetryInfo
	telemetry := func(ctx context.Context, msg testMessage, info TelemetryInfo) {
		infos = append(infos, info)
	}
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	},
		WithOperation[testMessage]("markdown.convert"),
		WithMessageFields[testMessage](func(testMessage) map[string]any {
			return map[string]any{"length": 3}
		}),
		WithTelemetry[testMessage](telemetry),
	)

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(infos) != 1 {
		t.Fatalf("expected one telemetry call, got %d", len(infos))
	}
	info := infos[0]
	if info.Status != TelemetryStatusFailed {
		t.Fatalf("expected failed status, got %s", info.Status)
	}
	if info.Command != "adf.test.message" || info.Operation != "markdown.convert" {
		t.Fatalf("unexpected telemetry identity: %+v", info)
	}
	if info.Fields["length"] != 3 {
		t.Fatalf("expected message fields, got %v", info.Fields)
	}
	if !goerrors.IsCategory(info.Error, goerrors.CategoryCommand) {
		t.Fatalf("expected wrapped error in telemetry, got %v", info.Error)
	}
	if info.Code != CodeFailed || info.RequestID == "" {
		t.Fatalf("expected failed code and request id, got %q %q", info.Code, info.RequestID)
	}
}

func TestDefaultTelemetryLogsOutcome(t *testing.T) {
	logger := &recordingLogger{}
	telemetry := DefaultTelemetry[testMessage](logger)
	telemetry(context.Background(), testMessage{}, TelemetryInfo{Status: TelemetryStatusSuccess, Fields: map[string]any{"command": "adf.test.message"}})
	telemetry(context.Background(), testMessage{}, TelemetryInfo{Status: TelemetryStatusRejected, Code: "BODY_INVALID_ADF", Error: errors.New("bad body")})
	telemetry(context.Background(), testMessage{}, TelemetryInfo{Status: TelemetryStatusContextError, Code: CodeCanceled, Error: context.Canceled})

	want := []string{
		"info:command.execute.success",
		"warn:command.execute.rejected",
		"error:command.execute.context_error",
	}
	if len(logger.entries) != len(want) {
		t.Fatalf("expected %v, got %v", want, logger.entries)
	}
	for i := range want {
		if logger.entries[i] != want[i] {
			t.Fatalf("entry %d: expected %q, got %q", i, want[i], logger.entries[i])
		}
	}
}

func TestHandlerReportsRejectedBodies(t *testing.T) {
	var infos []TelemetryInfo
	bodyErr := goerrors.New("body: invalid ADF document", goerrors.CategoryValidation).
		WithTextCode("BODY_INVALID_ADF")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return bodyErr
	}, WithTelemetry[testMessage](func(ctx context.Context, msg testMessage, info TelemetryInfo) {
		infos = append(infos, info)
	}))

	err := h.Execute(context.Background(), testMessage{})
	if code := ErrorCode(err); code != "BODY_INVALID_ADF" {
		t.Fatalf("expected body code to survive, got %q", code)
	}
	if !Rejected(err) {
		t.Fatalf("expected rejected error, got %v", err)
	}
	if len(infos) != 1 || infos[0].Status != TelemetryStatusRejected || infos[0].Code != "BODY_INVALID_ADF" {
		t.Fatalf("unexpected telemetry %+v", infos)
	}
}

func TestClassifyFallsBackToFailed(t *testing.T) {
	cases := map[string]struct {
		err  error
		code string
	}{
		"disabled": {err: ErrDisabled, code: CodeDisabled},
		"canceled": {err: context.Canceled, code: CodeCanceled},
		"deadline": {err: context.DeadlineExceeded, code: CodeTimeout},
		"unknown":  {err: errors.New("lexer exploded"), code: CodeFailed},
	}
	for name, tc := range cases {
		err := classify(tc.err)
		if code := ErrorCode(err); code != tc.code {
			t.Fatalf("%s: expected %s, got %q", name, tc.code, code)
		}
		if !errors.Is(err, tc.err) {
			t.Fatalf("%s: expected cause to be kept, got %v", name, err)
		}
	}
	if classify(nil) != nil {
		t.Fatal("expected nil to stay nil")
	}
	if ErrorCode(errors.New("plain")) != "" {
		t.Fatal("expected no code for untagged errors")
	}
}

func TestCommandLoggerScopesModule(t *testing.T) {
	provider := &recordingProvider{}
	CommandLogger(provider, "markdown")
	CommandLogger(provider, " ")
	want := []string{"adf.commands.markdown", "adf.commands.core"}
	if len(provider.names) != len(want) {
		t.Fatalf("expected %v, got %v", want, provider.names)
	}
	for i := range want {
		if provider.names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, provider.names)
		}
	}
}

type recordingProvider struct {
	names []string
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	p.names = append(p.names, name)
	return &recordingLogger{}
}

type recordingLogger struct {
	entries []string
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.entries = append(l.entries, "debug:"+msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.entries = append(l.entries, "info:"+msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.entries = append(l.entries, "warn:"+msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.entries = append(l.entries, "error:"+msg) }

func (l *recordingLogger) WithFields(map[string]any) interfaces.Logger { return l }

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger { return l }

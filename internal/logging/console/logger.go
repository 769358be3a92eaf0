// Package console writes one key=value line per entry. It defaults to stderr
// because the CLI reserves stdout for the converted document.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-adf/internal/logging"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

// Options configures a Provider. The zero value logs DEBUG and above to
// stderr with wall clock timestamps.
type Options struct {
	Writer io.Writer
	Clock  func() time.Time
	Level  logging.Level
}

// Provider hands out console loggers sharing one writer.
type Provider struct {
	mu    sync.Mutex
	w     io.Writer
	clock func() time.Time
	level logging.Level
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds a console provider from opts.
func NewProvider(opts Options) *Provider {
	p := &Provider{w: opts.Writer, clock: opts.Clock, level: opts.Level}
	if p.w == nil {
		p.w = os.Stderr
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	return p
}

// GetLogger returns a logger for module. The module name itself is stamped
// by logging.ModuleLogger, not here.
func (p *Provider) GetLogger(string) interfaces.Logger {
	return &logger{p: p}
}

type logger struct {
	p      *Provider
	fields map[string]any
	ctx    context.Context
}

func (l *logger) Debug(msg string, args ...any) { l.write(logging.LevelDebug, msg, args) }
func (l *logger) Info(msg string, args ...any)  { l.write(logging.LevelInfo, msg, args) }
func (l *logger) Warn(msg string, args ...any)  { l.write(logging.LevelWarn, msg, args) }
func (l *logger) Error(msg string, args ...any) { l.write(logging.LevelError, msg, args) }

func (l *logger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &logger{p: l.p, fields: merged, ctx: l.ctx}
}

func (l *logger) WithContext(ctx context.Context) interfaces.Logger {
	return &logger{p: l.p, fields: l.fields, ctx: ctx}
}

func (l *logger) write(level logging.Level, msg string, args []any) {
	if level < l.p.level {
		return
	}

	fields := make(map[string]any, len(l.fields)+len(args)/2+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	if id := logging.RequestID(l.ctx); id != "" {
		fields[logging.FieldRequestID] = id
	}
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg" + strconv.Itoa(i/2)
		}
		if i+1 == len(args) {
			fields[key] = nil
			break
		}
		fields[key] = args[i+1]
	}

	line := format(l.p.clock().UTC(), level, msg, fields)

	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	_, _ = io.WriteString(l.p.w, line)
}

func format(ts time.Time, level logging.Level, msg string, fields map[string]any) string {
	var b strings.Builder
	b.WriteString(ts.Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(quote(value(fields[k])))
	}
	b.WriteByte('\n')
	return b.String()
}

func value(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}

func quote(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}

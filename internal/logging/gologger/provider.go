// Package gologger backs the converter's loggers with
// github.com/goliatone/go-logger. go-logger always writes to os.Stdout; the
// CLI therefore only accepts it at error level, where a successful
// conversion logs nothing.
package gologger

import (
	"context"
	"fmt"
	"maps"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-adf/internal/logging"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

const rootName = "adf"

// Config mirrors runtimeconfig.LoggingConfig for the go-logger provider.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	// Focus limits output to the listed modules. Short names such as
	// "markdown" expand to "adf.markdown".
	Focus []string
}

// Provider hands out go-logger children named after converter modules.
type Provider struct {
	root *glog.BaseLogger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds the go-logger root. Unknown levels and formats are
// rejected.
func NewProvider(cfg Config) (*Provider, error) {
	opts, err := options(cfg)
	if err != nil {
		return nil, err
	}
	root := glog.NewLogger(opts...)
	if focus := FocusModules(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

func options(cfg Config) ([]glog.Option, error) {
	level := logging.LevelInfo
	if name := strings.TrimSpace(cfg.Level); name != "" {
		parsed, ok := logging.ParseLevel(name)
		if !ok {
			return nil, fmt.Errorf("gologger: unsupported level %q", cfg.Level)
		}
		level = parsed
	}

	opts := []glog.Option{
		glog.WithName(rootName),
		glog.WithLevel(levels[level]),
		glog.WithAddSource(cfg.AddSource),
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		opts = append(opts, glog.WithLoggerTypeJSON())
	case "console":
		opts = append(opts, glog.WithLoggerTypeConsole())
	case "pretty":
		opts = append(opts, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("gologger: unsupported format %q", cfg.Format)
	}
	return opts, nil
}

var levels = map[logging.Level]string{
	logging.LevelDebug: glog.Debug,
	logging.LevelInfo:  glog.Info,
	logging.LevelWarn:  glog.Warn,
	logging.LevelError: glog.Error,
}

// FocusModules normalises focus entries into go-logger names: blanks are
// dropped and bare module names gain the "adf." prefix.
func FocusModules(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		switch {
		case name == "":
			continue
		case name == rootName || strings.HasPrefix(name, rootName+"."):
			out = append(out, name)
		default:
			out = append(out, rootName+"."+name)
		}
	}
	return out
}

// GetLogger returns the go-logger child for module; blank selects the root.
func (p *Provider) GetLogger(module string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	module = strings.TrimSpace(module)
	if module == "" || module == rootName {
		return &adapter{inner: p.root}
	}
	return &adapter{inner: p.root.GetLogger(module)}
}

type adapter struct {
	inner glog.Logger
}

func (a *adapter) Debug(msg string, args ...any) { a.inner.Debug(msg, args...) }
func (a *adapter) Info(msg string, args ...any)  { a.inner.Info(msg, args...) }
func (a *adapter) Warn(msg string, args ...any)  { a.inner.Warn(msg, args...) }
func (a *adapter) Error(msg string, args ...any) { a.inner.Error(msg, args...) }

func (a *adapter) WithFields(fields map[string]any) interfaces.Logger {
	fl, ok := a.inner.(glog.FieldsLogger)
	if !ok || len(fields) == 0 {
		return a
	}
	return &adapter{inner: fl.WithFields(maps.Clone(fields))}
}

// WithContext binds ctx and, when the context carries a command request id,
// stamps it as a field since go-logger does not read context values.
func (a *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return a
	}
	child := &adapter{inner: a.inner.WithContext(ctx)}
	if id := logging.RequestID(ctx); id != "" {
		return child.WithFields(map[string]any{logging.FieldRequestID: id})
	}
	return child
}

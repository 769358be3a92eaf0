package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-adf"
	"github.com/goliatone/go-adf/internal/body"
	"github.com/goliatone/go-adf/internal/commands"
	markdowncmd "github.com/goliatone/go-adf/internal/commands/markdown"
	"github.com/goliatone/go-adf/internal/di"
	"github.com/goliatone/go-adf/internal/logging"
)

var moduleBuilder = adf.New

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("adf: %v", err)
	}
}

type options struct {
	file             string
	text             string
	detect           bool
	body             bool
	field            string
	pretty           bool
	stripFrontMatter bool
	noMentions       bool
	userType         string
	logProvider      string
	logLevel         string
	logFormat        string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("adf", flag.ContinueOnError)
	fs.StringVar(&opts.file, "file", "", "Markdown file to convert (reads stdin when neither -file nor -text is set)")
	fs.StringVar(&opts.text, "text", "", "Markdown text to convert")
	fs.BoolVar(&opts.detect, "detect", false, "Only report whether the input looks like Markdown")
	fs.BoolVar(&opts.body, "body", false, "Resolve the input as a body value, accepting ADF JSON as-is")
	fs.StringVar(&opts.field, "field", "body", "Field name reported in body resolution errors")
	fs.BoolVar(&opts.pretty, "pretty", false, "Indent the JSON output")
	fs.BoolVar(&opts.stripFrontMatter, "strip-frontmatter", true, "Drop YAML/TOML front matter from -file input")
	fs.BoolVar(&opts.noMentions, "no-mentions", false, "Leave @[id:name] references as text")
	fs.StringVar(&opts.userType, "user-type", "", "userType stamped on mention nodes (defaults to APP)")
	fs.StringVar(&opts.logProvider, "log-provider", "console", "Logger provider: console (stderr) or gologger (stdout, error level only)")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Minimum log level: debug, info, warn or error")
	fs.StringVar(&opts.logFormat, "log-format", "", "Log format for gologger (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.file != "" && opts.text != "" {
		return opts, fmt.Errorf("-file and -text are mutually exclusive")
	}
	if opts.file != "" && opts.body {
		return opts, fmt.Errorf("-body reads -text or stdin, not -file")
	}
	if err := checkStdoutLogging(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// errLogsOnStdout rejects go-logger below error level: go-logger writes to
// os.Stdout, which carries the converted document.
var errLogsOnStdout = errors.New("-log-provider gologger writes to stdout; use -log-level error or the console provider")

func checkStdoutLogging(opts options) error {
	if !strings.EqualFold(strings.TrimSpace(opts.logProvider), "gologger") {
		return nil
	}
	if level, ok := logging.ParseLevel(opts.logLevel); ok && level >= logging.LevelError {
		return nil
	}
	return errLogsOnStdout
}

func (o options) config() adf.Config {
	cfg := adf.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Features.Commands = true
	cfg.Features.Mentions = !o.noMentions
	cfg.Markdown.StripFrontMatter = o.stripFrontMatter
	if userType := strings.TrimSpace(o.userType); userType != "" {
		cfg.Mentions.UserType = userType
	}
	cfg.Logging.Provider = o.logProvider
	cfg.Logging.Level = o.logLevel
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	return cfg
}

func run(args []string, stdin io.Reader, stdout io.Writer, diOpts ...di.Option) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	module, err := moduleBuilder(opts.config(), diOpts...)
	if err != nil {
		return fmt.Errorf("build module: %w", err)
	}
	handlers := module.Commands()
	if handlers == nil || handlers.Convert == nil || handlers.Resolve == nil {
		return fmt.Errorf("command handlers not configured; ensure Features.Commands is enabled")
	}

	ctx := context.Background()

	if opts.file != "" && !opts.detect {
		doc, meta, err := module.ConvertFile(ctx, opts.file)
		if err != nil {
			return err
		}
		if len(meta) > 0 {
			logging.ModuleLogger(module.Container().LoggerProvider(), "adf.cli").
				Debug("adf.cli.frontmatter", "path", opts.file, "keys", len(meta))
		}
		return writeJSON(stdout, doc, opts.pretty)
	}

	input, err := readInput(opts, stdin)
	if err != nil {
		return err
	}

	if opts.body {
		result := &body.Result{}
		if err := handlers.Resolve.Execute(ctx, markdowncmd.ResolveBodyCommand{
			Field:  opts.field,
			Value:  input,
			Result: result,
		}); err != nil {
			if code := commands.ErrorCode(err); code != "" {
				return fmt.Errorf("resolve %s (%s): %w", opts.field, code, err)
			}
			return fmt.Errorf("resolve %s: %w", opts.field, err)
		}
		return writeJSON(stdout, result.Payload(), opts.pretty)
	}

	result := &markdowncmd.ConvertResult{}
	if err := handlers.Convert.Execute(ctx, markdowncmd.ConvertMarkdownCommand{
		Markdown:   input,
		DetectOnly: opts.detect,
		Result:     result,
	}); err != nil {
		return fmt.Errorf("execute convert command: %w", err)
	}

	if opts.detect {
		_, err := fmt.Fprintln(stdout, result.Detected)
		return err
	}
	return writeJSON(stdout, result.Document, opts.pretty)
}

func readInput(opts options, stdin io.Reader) (string, error) {
	switch {
	case opts.text != "":
		return opts.text, nil
	case opts.file != "":
		raw, err := os.ReadFile(opts.file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", opts.file, err)
		}
		return string(raw), nil
	case stdin != nil:
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	default:
		return "", nil
	}
}

func writeJSON(w io.Writer, value any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(value)
}

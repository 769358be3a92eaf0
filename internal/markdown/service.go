package markdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-adf/internal/convert"
	"github.com/goliatone/go-adf/internal/detect"
	"github.com/goliatone/go-adf/internal/logging"
	"github.com/goliatone/go-adf/internal/mention"
	"github.com/goliatone/go-adf/pkg/document"
	"github.com/goliatone/go-adf/pkg/interfaces"
)

// ErrConversionFailed tags the cause recorded in a Report when conversion fell
// back to a literal paragraph.
var ErrConversionFailed = errors.New("markdown convert: conversion failed")

// Config controls lexing and mention processing.
type Config struct {
	Parser interfaces.ParseOptions
	// MentionUserType overrides the userType stamped on mentions.
	MentionUserType string
	// DisableMentions skips the mention pass entirely.
	DisableMentions bool
	// StripFrontMatter removes front matter before converting files.
	StripFrontMatter bool
}

// Report describes a single conversion.
type Report struct {
	Empty    bool
	Fallback bool
	Err      error
	Blocks   int
	Mentions int
	// Detected reports whether the input looked like Markdown at all.
	Detected bool
}

// Service converts Markdown into ADF documents. It holds no per-call state and
// can be shared freely.
type Service struct {
	cfg        Config
	lexer      Lexer
	mentions   mention.Processor
	logger     interfaces.Logger
	mentionLog interfaces.Logger
}

var (
	_ interfaces.MarkdownConverter = (*Service)(nil)
	_ interfaces.MarkdownDetector  = (*Service)(nil)
)

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithLexer replaces the goldmark lexer.
func WithLexer(lexer Lexer) ServiceOption {
	return func(s *Service) {
		if lexer != nil {
			s.lexer = lexer
		}
	}
}

// WithLogger sets the logger used for fallback and diagnostics entries.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMentionLogger sets the logger used for mention pass diagnostics.
func WithMentionLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.mentionLog = logger
		}
	}
}

// NewService builds a Service. Without WithLexer a GoldmarkLexer configured
// from cfg.Parser is used.
func NewService(cfg Config, opts ...ServiceOption) *Service {
	s := &Service{
		cfg:        cfg,
		mentions:   mention.Processor{UserType: cfg.MentionUserType},
		logger:     logging.NoOp(),
		mentionLog: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.lexer == nil {
		s.lexer = NewGoldmarkLexer(cfg.Parser)
	}
	return s
}

// Convert turns markdown into a document. It never fails: empty input yields
// an empty document and any lexing or conversion fault yields a single
// paragraph holding the raw input.
func (s *Service) Convert(markdown string) *document.Doc {
	doc, _ := s.ConvertWithReport(markdown)
	return doc
}

// ConvertWithReport is Convert plus a description of what happened.
func (s *Service) ConvertWithReport(markdown string) (*document.Doc, Report) {
	if strings.TrimSpace(markdown) == "" {
		return document.New(), Report{Empty: true}
	}

	detected := detect.LooksLikeMarkdown(markdown)
	doc, err := s.convert(markdown)
	if err != nil {
		s.logger.Warn("markdown.convert.fallback", "error", err, "length", len(markdown))
		return document.Plain(markdown), Report{
			Fallback: true,
			Err:      err,
			Blocks:   1,
			Detected: detected,
		}
	}

	report := Report{Blocks: len(doc.Content), Detected: detected}
	if !s.cfg.DisableMentions {
		report.Mentions = mention.Count(doc)
		if report.Mentions > 0 {
			s.mentionLog.Debug("mention.splice.completed", "mentions", report.Mentions, "user_type", s.mentions.UserType)
		}
	}
	s.logger.Debug("markdown.convert.completed", "blocks", report.Blocks, "mentions", report.Mentions)
	return doc, report
}

// LooksLikeMarkdown reports whether text carries any Markdown or mention
// syntax worth converting.
func (s *Service) LooksLikeMarkdown(text string) bool {
	return detect.LooksLikeMarkdown(text)
}

// ConvertFile reads a Markdown file and converts it. Front matter is removed
// and returned when the service is configured to strip it.
func (s *Service) ConvertFile(ctx context.Context, path string) (*document.Doc, map[string]any, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("markdown convert file %s: %w", path, err)
	}

	meta := map[string]any{}
	if s.cfg.StripFrontMatter {
		meta, source, err = StripFrontMatter(source)
		if err != nil {
			return nil, nil, fmt.Errorf("markdown convert file %s: %w", path, err)
		}
	}

	logging.WithFields(s.logger, map[string]any{"path": path}).Debug("markdown.convert.file")
	return s.Convert(string(source)), meta, nil
}

// convert runs both passes, turning lexer errors and panics into an error.
func (s *Service) convert(markdown string) (doc *document.Doc, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: panic: %v", ErrConversionFailed, r)
		}
	}()

	tokens, lexErr := s.lexer.Lex([]byte(markdown))
	if lexErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrConversionFailed, lexErr)
	}

	doc = document.New(convert.Blocks(tokens)...)
	if s.cfg.DisableMentions {
		return doc, nil
	}
	return s.mentions.Process(doc), nil
}

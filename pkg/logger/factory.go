package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for production log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs for development debugging.
	FormatText Format = "text"
)

// Option configures logger creation.
type Option func(*config)

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets output format. Panics on an invalid format.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithOutput sets a custom output destination. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		if len(attrs) > 0 {
			c.attrs = append(c.attrs, attrs...)
		}
	}
}

// WithContextExtractors registers functions that inject dynamic attributes
// from context. Nil extractors are skipped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithContextValue is a convenience wrapper adding a context value extractor.
func WithContextValue(name string, key any) Option {
	return func(c *config) {
		if name == "" || key == nil {
			return
		}
		c.extractors = append(c.extractors, func(ctx context.Context) (slog.Attr, bool) {
			if v := ctx.Value(key); v != nil {
				return slog.Any(name, v), true
			}
			return slog.Attr{}, false
		})
	}
}

// WithDevelopment configures development defaults: text format for
// readability and debug level for detailed diagnostics.
func WithDevelopment(service string) Option {
	return func(c *config) {
		if service == "" {
			return
		}
		c.level = slog.LevelDebug
		c.format = FormatText
		c.attrs = append(c.attrs, slog.String("service", service))
	}
}

// WithProduction configures production defaults: JSON format for log
// aggregation and info level to reduce noise.
func WithProduction(service string) Option {
	return func(c *config) {
		if service == "" {
			return
		}
		c.level = slog.LevelInfo
		c.format = FormatJSON
		c.attrs = append(c.attrs, slog.String("service", service))
	}
}

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

type config struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// defaultConfig provides production-safe defaults: JSON format with INFO level.
func defaultConfig() *config {
	return &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
}

// New creates a configured slog.Logger with context injection capabilities.
func New(opts ...Option) *slog.Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var handler slog.Handler
	if cfg.format == FormatText {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}

	return slog.New(NewLogHandlerDecorator(handler, cfg.extractors...))
}

package vault

import (
	"log/slog"
	"strings"
	"time"
)

// DefaultExtensions is the note extension allow-list used when none is given.
var DefaultExtensions = []string{"md", "txt"}

const greeting = "Hello from Go! Acropad vault access layer is active."

// Greet returns a fixed string confirming the layer is reachable.
func Greet() string {
	return greeting
}

// Layer is the vault access layer. It holds only construction-time settings,
// so a single Layer is safe for concurrent use.
type Layer struct {
	exts   map[string]struct{}
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Layer.
type Option func(*Layer)

// WithExtensions replaces the note extension allow-list. Extensions are
// matched case-insensitively and may be given with or without a leading dot.
func WithExtensions(exts ...string) Option {
	return func(l *Layer) {
		l.exts = extensionSet(exts)
	}
}

// WithLogger sets the logger used to report skipped entries.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Layer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Layer.
func New(opts ...Option) *Layer {
	l := &Layer{
		exts:   extensionSet(DefaultExtensions),
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Extensions returns the allow-list in no particular order.
func (l *Layer) Extensions() []string {
	out := make([]string, 0, len(l.exts))
	for ext := range l.exts {
		out = append(out, ext)
	}
	return out
}

func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" {
			continue
		}
		set[ext] = struct{}{}
	}
	return set
}

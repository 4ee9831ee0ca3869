package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/term"
)

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// LevelEnv overrides the level passed to Init when set.
const LevelEnv = "LEXREAD_LOG_LEVEL"

// ComponentKey is printed as a bracketed prefix by the console handler.
const ComponentKey = "component"

const redacted = "[REDACTED]"

var (
	globalLogger *slog.Logger
	isTerminal   = term.IsTerminal
)

// Credentials and user text must never reach a log sink. Selections,
// clipboard content and translations are user text.
var sensitiveKeys = map[string]bool{
	"api_key":       true,
	"apikey":        true,
	"authorization": true,
	"bearer":        true,
	"clipboard":     true,
	"credential":    true,
	"password":      true,
	"prompt":        true,
	"secret":        true,
	"selection":     true,
	"token":         true,
}

var sensitiveKeyParts = []string{
	"key", "token", "secret", "password", "authorization", "bearer",
	"credential", "prompt", "text", "source", "translation", "translated",
	"clipboard", "selection", "content", "body",
}

// safeKeys match a sensitive part but only ever carry settings tags or
// counts.
var safeKeys = map[string]bool{
	"text_size":         true,
	"text_color":        true,
	"source_graphemes":  true,
	"translated_length": true,
	"key_source":        true,
}

var sensitiveValues = []*regexp.Regexp{
	regexp.MustCompile(`\bAIza[0-9A-Za-z\-_]{10,}\b`),
	regexp.MustCompile(`(?i)\bsk-[A-Za-z0-9_-]{10,}\b`),
	regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9\-._~+/]+=*`),
	regexp.MustCompile(`(?i)\b(api[_-]?key|access[_-]?token|secret)\b\s*[:=]\s*\S+`),
	regexp.MustCompile(`(?i)[?&]key=[^&\s]+`),
}

// RedactAttr is a slog.ReplaceAttr function that hides credentials and user
// text.
func RedactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		return a
	}
	if shouldRedact(a) {
		return slog.String(a.Key, redacted)
	}
	return a
}

func shouldRedact(a slog.Attr) bool {
	key := strings.ToLower(a.Key)
	if safeKeys[key] {
		return false
	}
	if sensitiveKeys[key] {
		return true
	}
	for _, part := range sensitiveKeyParts {
		if strings.Contains(key, part) {
			return true
		}
	}

	value := a.Value.String()
	if a.Value.Kind() != slog.KindString {
		value = fmt.Sprint(a.Value.Any())
	}
	if value == "" {
		return false
	}
	for _, re := range sensitiveValues {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// ParseLevel accepts debug, info, warn/warning and error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func init() {
	Init(LevelInfo, nil)
}

// Init installs the global logger: a console handler on stderr, plus a JSONL
// handler when logFile is non-nil. A valid LEXREAD_LOG_LEVEL wins over level.
func Init(level slog.Level, logFile io.Writer) {
	if raw, ok := os.LookupEnv(LevelEnv); ok {
		if l, err := ParseLevel(raw); err == nil {
			level = l
		}
	}
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: RedactAttr,
	}

	color := logFile == nil && isTerminal(int(os.Stderr.Fd()))
	var handler slog.Handler = NewPrettyHandler(os.Stderr, opts, color)
	if logFile != nil {
		handler = &multiHandler{handlers: []slog.Handler{
			handler,
			slog.NewJSONHandler(logFile, opts),
		}}
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

func Debug(msg string, args ...any) { globalLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { globalLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { globalLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { globalLogger.Error(msg, args...) }

// With returns a child of the global logger carrying args on every record.
func With(args ...any) *slog.Logger { return globalLogger.With(args...) }

// Component returns a child logger tagged with name.
func Component(name string) *slog.Logger {
	return globalLogger.With(ComponentKey, name)
}

// Fatal logs at error level and exits.
func Fatal(msg string, args ...any) {
	globalLogger.Error(msg, args...)
	os.Exit(1)
}

// PrettyHandler writes one human-readable line per record:
//
//	15:04:05 INFO  [overlay] Drag session started kind=moving
//
// Lines are assembled in a buffer and written with a single call, so
// records from concurrent goroutines never interleave.
type PrettyHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	opts      *slog.HandlerOptions
	attrs     []slog.Attr
	groups    []string
	component string
	color     bool
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions, color bool) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{mu: &sync.Mutex{}, w: w, opts: opts, color: color}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}
	return level >= threshold
}

var levelColors = map[slog.Level]string{
	slog.LevelDebug: "\033[90m",
	slog.LevelInfo:  "\033[32m",
	slog.LevelWarn:  "\033[33m",
	slog.LevelError: "\033[31m",
}

func (h *PrettyHandler) paint(code, s string) string {
	if !h.color || code == "" {
		return s
	}
	return code + s + "\033[0m"
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	buf.WriteString(r.Time.Format("15:04:05"))
	buf.WriteByte(' ')
	buf.WriteString(h.paint(levelColors[r.Level], fmt.Sprintf("%-5s", r.Level.String())))
	buf.WriteByte(' ')

	component := h.component
	var attrs []slog.Attr
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == ComponentKey && len(h.groups) == 0 {
			component = a.Value.String()
			return true
		}
		attrs = append(attrs, a)
		return true
	})
	if component != "" {
		buf.WriteString(h.paint("\033[36m", "["+component+"]"))
		buf.WriteByte(' ')
	}
	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		h.appendAttr(&buf, a, h.groups)
	}
	for _, a := range attrs {
		h.appendAttr(&buf, a, h.groups)
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *PrettyHandler) appendAttr(buf *bytes.Buffer, a slog.Attr, groups []string) {
	if a.Value.Kind() == slog.KindGroup {
		inner := append(groups[:len(groups):len(groups)], a.Key)
		for _, ga := range a.Value.Group() {
			h.appendAttr(buf, ga, inner)
		}
		return
	}
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(groups, a)
	}
	if a.Key == "" {
		return
	}
	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	buf.WriteByte(' ')
	buf.WriteString(h.paint("\033[90m", key+"="))
	fmt.Fprintf(buf, "%v", a.Value)
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.attrs = h2.attrs[:len(h2.attrs):len(h2.attrs)]
	for _, a := range attrs {
		if a.Key == ComponentKey && len(h.groups) == 0 {
			h2.component = a.Value.String()
			continue
		}
		h2.attrs = append(h2.attrs, a)
	}
	return &h2
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(h2.groups[:len(h2.groups):len(h2.groups)], name)
	return &h2
}

// multiHandler fans records out to the console and file handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m *multiHandler) each(fn func(slog.Handler) slog.Handler) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = fn(h)
	}
	return &multiHandler{handlers: handlers}
}

package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

// Handler is a colored console slog.Handler. The "type" attribute (db, sync,
// http, sys) is pulled out of the record and shown as a tag.
type Handler struct {
	name  string
	level slog.Level
	attrs []slog.Attr
	mu    sync.Mutex
}

func NewHandler(name string, level slog.Level) *Handler {
	return &Handler{name: name, level: level}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		name:  h.name,
		level: h.level,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *Handler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	levelColor, levelText := levelStyle(r.Level)

	logType := "SYS"
	var sb strings.Builder
	appendAttr := func(attr slog.Attr) {
		if attr.Key == "type" {
			logType = strings.ToUpper(attr.Value.String())
			return
		}
		fmt.Fprintf(&sb, " %s=%v", attr.Key, attr.Value)
	}

	for _, attr := range h.attrs {
		appendAttr(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		appendAttr(attr)
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Printf("%s[%s] [%s] [%s%s%s] [%s%s%s] %s%s%s\n",
		colorWhite,
		h.name,
		time.Now().Format("15:04:05"),
		levelColor, levelText, colorWhite,
		colorCyan, logType, colorWhite,
		r.Message,
		sb.String(),
		colorReset,
	)
	return nil
}

func levelStyle(level slog.Level) (string, string) {
	switch {
	case level >= slog.LevelError:
		return colorRed, "ERROR"
	case level >= slog.LevelWarn:
		return colorYellow, "WARN"
	case level >= slog.LevelInfo:
		return colorGreen, "INFO"
	default:
		return colorPurple, "DEBUG"
	}
}

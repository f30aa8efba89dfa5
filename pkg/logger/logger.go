package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"))
}

// NewWithWriter creates a logger writing to w at the given level
func NewWithWriter(w io.Writer, levelStr string) *Logger {
	level := getLogLevel(levelStr)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development, JSON for everything else
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

type ctxKey struct{}

// ContextWithLogger stores l in ctx
func ContextWithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request scoped logger, or the default one
func FromContext(ctx context.Context) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*Logger); ok && l != nil {
			return l
		}
	}
	return GetDefault()
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Business logic logging methods

// LogSpotCreated logs when a spot is created
func (l *Logger) LogSpotCreated(ctx context.Context, spotID, name string, slotCount int) {
	l.Logger.InfoContext(ctx,
		"Spot Created",
		slog.String("spot_id", spotID),
		slog.String("spot_name", name),
		slog.Int("slots", slotCount),
	)
}

// LogTicketReserved logs when a ticket is allocated
func (l *Logger) LogTicketReserved(ctx context.Context, ticketID, spotID, slotID string, serial int) {
	l.Logger.InfoContext(ctx,
		"Ticket Reserved",
		slog.String("ticket_id", ticketID),
		slog.String("spot_id", spotID),
		slog.String("slot_id", slotID),
		slog.Int("serial_number", serial),
	)
}

// LogSoldOut logs a reservation attempt against a spot with no capacity left
func (l *Logger) LogSoldOut(ctx context.Context, spotID string) {
	l.Logger.InfoContext(ctx,
		"Spot Sold Out",
		slog.String("spot_id", spotID),
	)
}

// LogTicketRedeemed logs a ticket presentment
func (l *Logger) LogTicketRedeemed(ctx context.Context, ticketID, spotID string, previous int) {
	l.Logger.InfoContext(ctx,
		"Ticket Redeemed",
		slog.String("ticket_id", ticketID),
		slog.String("spot_id", spotID),
		slog.Int("previous_presentments", previous),
	)
}

// LogStoreRetry logs a transient store failure that will be retried
func (l *Logger) LogStoreRetry(ctx context.Context, operation string, err error, wait time.Duration) {
	l.Logger.WarnContext(ctx,
		"Transient Store Error, Retrying",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
		slog.Duration("backoff", wait),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Command ticketfeed tails the ticket event topic and logs gate activity.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"spotly/internal/notifications"
	"spotly/internal/shared/config"
	"spotly/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	appLogger := logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	logger.SetDefault(appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.ContextWithLogger(ctx, appLogger)

	consumer, err := notifications.NewFeedConsumer(notifications.ConsumerConfigFromConfig(cfg.Kafka), logEvent)
	if err != nil {
		appLogger.Error("Failed to start ticket feed", slog.Any("error", err))
		os.Exit(1)
	}
	defer consumer.Close()

	if err := consumer.Run(ctx); err != nil {
		appLogger.Error("Ticket feed stopped", slog.Any("error", err))
		os.Exit(1)
	}
	appLogger.Info("Ticket feed stopped")
}

func logEvent(ctx context.Context, event *notifications.TicketEvent) error {
	attrs := []any{
		slog.String("event_type", string(event.Type)),
		slog.String("spot_id", event.SpotID.String()),
		slog.Time("occurred_at", event.OccurredAt),
	}
	if event.SpotName != "" {
		attrs = append(attrs, slog.String("spot_name", event.SpotName))
	}
	if event.TicketID != nil {
		attrs = append(attrs, slog.String("ticket_id", event.TicketID.String()))
	}
	if event.SerialNumber != nil {
		attrs = append(attrs, slog.Int("serial_number", *event.SerialNumber))
	}
	if event.PreviousPresentments != nil {
		attrs = append(attrs, slog.Int("previous_presentments", *event.PreviousPresentments))
	}

	logger.FromContext(ctx).Info("Ticket event", attrs...)
	return nil
}

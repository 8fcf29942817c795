package consumer

import (
	"context"
	"fmt"
	"staysync/config"
	"staysync/infras/kafka"
	"staysync/infras/otel"
	"staysync/internal/domains/booking/model"
	"staysync/internal/domains/booking/service"
	"staysync/shared/constant"
	"staysync/shared/failure"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Consumer applies booking transition commands read from the bookings topic.
type Consumer struct {
	booking service.Booking
	kafka   kafka.Client
	cfg     *config.Config
	otel    otel.Otel
}

func New(booking service.Booking, kafkaClient kafka.Client, cfg *config.Config, otel otel.Otel) *Consumer {
	return &Consumer{
		booking: booking,
		kafka:   kafkaClient,
		cfg:     cfg,
		otel:    otel,
	}
}

// Run blocks until ctx is done.
func (c *Consumer) Run(ctx context.Context) {
	log.Info().Str("topic", c.cfg.Kafka.Topics.Bookings).Msg("booking transition consumer started")

	c.kafka.Consume(ctx, c.cfg.Kafka.ConsumerGroup, c.cfg.Kafka.Topics.Bookings, c.Handle)
}

// Handle returns an error only for failures worth redelivering. Malformed commands and
// rejected transitions are logged and acknowledged.
func (c *Consumer) Handle(ctx context.Context, msg kafkaGo.Message) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingTransition")
	defer scope.End()
	defer scope.TraceIfError(err)

	cmd, err := kafka.Decode[model.TransitionCommand](msg)
	if err != nil {
		log.Warn().Err(err).Int64("offset", msg.Offset).Msg("dropping malformed booking transition")

		return nil
	}

	err = c.booking.OnBookingTransition(ctx, cmd.BookingID, cmd.From, cmd.To)
	if err == nil {
		return nil
	}

	if failure.IsClientError(err) {
		log.Warn().Err(err).Str("booking_id", cmd.BookingID).Msg("booking transition rejected")

		return nil
	}

	return fmt.Errorf("failed to apply booking transition: %w", err)
}

package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/WheelShare-Rentals/service-rental/pkg/kafka"
)

// BookingCanceler is the slice of the booking engine the consumer needs.
type BookingCanceler interface {
	CancelPendingForCar(ctx context.Context, carID uint) (int, error)
}

// CarEventConsumer listens to car events and cancels pending bookings
// when a car is delisted.
type CarEventConsumer struct {
	consumer *kafka.Consumer
	service  BookingCanceler
	logger   *zap.Logger
}

// NewCarEventConsumer creates a CarEventConsumer.
func NewCarEventConsumer(brokers []string, groupID string, service BookingCanceler, logger *zap.Logger) *CarEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicCarEvents, logger)
	return &CarEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming car events. Blocks until the context is cancelled.
func (c *CarEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *CarEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *CarEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from car topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case CarDelisted:
		return c.handleCarDelisted(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled car event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *CarEventConsumer) handleCarDelisted(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt CarDelistedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse CarDelistedEvent data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	count, err := c.service.CancelPendingForCar(ctx, evt.CarID)
	if err != nil {
		c.logger.Error("failed to cancel pending bookings for delisted car",
			zap.Uint("car_id", evt.CarID),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("processed car.delisted event",
		zap.Uint("car_id", evt.CarID),
		zap.Int("bookings_canceled", count),
	)
	return nil
}

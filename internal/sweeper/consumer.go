package sweeper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/jobboard-be/internal/sweeper/domain"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// eventJobDeleted events carry no posting to expire and are acked on sight.
const eventJobDeleted = "job.deleted"

// setupConsumer sets QoS and returns the delivery channel for job events.
func (s *Sweeper) setupConsumer() (<-chan amqp.Delivery, error) {
	channel := s.rabbitClient.GetChannel()
	if channel == nil {
		return nil, fmt.Errorf("rabbitmq channel is nil")
	}

	// Per-consumer prefetch sized to keep every worker busy without
	// hoarding the queue.
	if err := channel.Qos(s.concurrency*2, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := s.rabbitClient.Consume(s.sweeperID)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	s.logger.Info("Job event consumer started",
		slog.String("consumer_tag", s.sweeperID),
	)

	return deliveries, nil
}

// dispatchDeliveries parses incoming events and hands them to the worker
// pool. Malformed messages are NACKed without requeue.
func (s *Sweeper) dispatchDeliveries(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Event dispatcher stopped - context canceled")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				s.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			var msg domain.EventMessage
			if err := json.Unmarshal(delivery.Body, &msg); err != nil {
				s.logger.Error("Failed to parse event JSON",
					slog.String("error", err.Error()),
					slog.String("body", string(delivery.Body)),
				)
				s.nack(delivery.DeliveryTag, false)
				continue
			}

			if msg.Event == eventJobDeleted {
				s.ack(delivery.DeliveryTag)
				continue
			}

			if _, err := uuid.Parse(msg.JobID); err != nil {
				s.logger.Error("Event carries invalid job id",
					slog.String("job_id", msg.JobID),
					slog.String("error", err.Error()),
				)
				s.nack(delivery.DeliveryTag, false)
				continue
			}

			msg.DeliveryTag = delivery.DeliveryTag

			select {
			case s.jobsChan <- &msg:
			case <-ctx.Done():
				s.logger.Info("Event dispatcher stopped while dispatching")
				s.nack(delivery.DeliveryTag, true)
				return
			}
		}
	}
}

func (s *Sweeper) ack(tag uint64) {
	channel := s.rabbitClient.GetChannel()
	if channel == nil {
		s.logger.Error("No RabbitMQ channel for ACK", slog.Uint64("delivery_tag", tag))
		return
	}
	if err := channel.Ack(tag, false); err != nil {
		s.logger.Error("Failed to ACK message",
			slog.Uint64("delivery_tag", tag),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Sweeper) nack(tag uint64, requeue bool) {
	channel := s.rabbitClient.GetChannel()
	if channel == nil {
		s.logger.Error("No RabbitMQ channel for NACK", slog.Uint64("delivery_tag", tag))
		return
	}
	if err := channel.Nack(tag, false, requeue); err != nil {
		s.logger.Error("Failed to NACK message",
			slog.Uint64("delivery_tag", tag),
			slog.String("error", err.Error()),
		)
	}
}

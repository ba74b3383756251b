package services

import (
	"context"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// OrderEventHandler processes one decoded order event.
type OrderEventHandler func(ctx context.Context, evt OrderEvent) error

// OrderEventConsumer implements sarama.ConsumerGroupHandler for order events.
// Delivery is at most once: a message that fails to decode or to be handled is
// logged and skipped, and its offset is marked like any other. Kafka commits
// offsets per partition, so an unmarked failure would be committed past anyway
// as soon as a later message is marked.
type OrderEventConsumer struct {
	handle OrderEventHandler
	log    *zap.Logger
}

// NewOrderEventConsumer creates a consumer group handler. A nil handle only logs events.
func NewOrderEventConsumer(handle OrderEventHandler, log *zap.Logger) *OrderEventConsumer {
	if log == nil {
		log = zap.NewNop()
	}
	if handle == nil {
		handle = func(context.Context, OrderEvent) error { return nil }
	}
	return &OrderEventConsumer{handle: handle, log: log.Named("order-events")}
}

// NewConsumerConfig returns the Sarama settings used by the order events consumer group.
func NewConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Offsets.AutoCommit.Enable = true
	config.Consumer.Return.Errors = true
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	return config
}

func (c *OrderEventConsumer) Setup(session sarama.ConsumerGroupSession) error {
	c.log.Info("consumer group session started", zap.Int32("generation", session.GenerationID()))
	return nil
}

func (c *OrderEventConsumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (c *OrderEventConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			c.process(session.Context(), msg)
			session.MarkMessage(msg, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (c *OrderEventConsumer) process(ctx context.Context, msg *sarama.ConsumerMessage) {
	fields := []zap.Field{
		zap.String("topic", msg.Topic),
		zap.Int32("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
	}

	evt, err := DecodeOrderEvent(msg.Value)
	if err != nil {
		c.log.Warn("skipping undecodable order event", append(fields, zap.Error(err), zap.ByteString("raw", msg.Value))...)
		return
	}
	fields = append(fields, zap.String("event_id", evt.EventID), zap.String("type", evt.Type))
	if err := c.handle(ctx, evt); err != nil {
		c.log.Error("skipping order event, handler failed", append(fields, zap.Error(err))...)
		return
	}
	c.log.Debug("order event handled", fields...)
}

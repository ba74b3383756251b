package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pelito1/PrimeMarket-back/models"
)

// Order event types.
const (
	EventOrderCheckedOut   = "order.checked_out"
	EventOrderStatusUpdate = "order.status_updated"
	EventOrderDeleted      = "order.deleted"
)

// OrderEventItem is one line item carried by an order event.
type OrderEventItem struct {
	ProductID uint `json:"productId"`
	Qty       int  `json:"qty"`
}

// OrderEvent is the message published to Kafka after an order changes.
type OrderEvent struct {
	EventID    string           `json:"eventId"`
	Type       string           `json:"type"`
	OrderID    uint             `json:"orderId"`
	CustomerID uint             `json:"customerId"`
	Status     string           `json:"status"`
	Total      decimal.Decimal  `json:"total"`
	Items      []OrderEventItem `json:"items"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// NewOrderEvent builds an event of the given type from an order snapshot.
func NewOrderEvent(eventType string, order *models.Order, at time.Time) OrderEvent {
	items := make([]OrderEventItem, 0, len(order.OrderDetails))
	for _, d := range order.OrderDetails {
		items = append(items, OrderEventItem{ProductID: d.ProductID, Qty: d.Quantity})
	}
	return OrderEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		Total:      order.Total,
		Items:      items,
		OccurredAt: at.UTC(),
	}
}

// DecodeOrderEvent parses an event strictly: unknown fields and events
// without an id, type or order are rejected.
func DecodeOrderEvent(data []byte) (OrderEvent, error) {
	var evt OrderEvent
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&evt); err != nil {
		return OrderEvent{}, fmt.Errorf("%w: malformed order event: %v", models.ErrInvalidInput, err)
	}
	if evt.EventID == "" || evt.Type == "" || evt.OrderID == 0 {
		return OrderEvent{}, fmt.Errorf("%w: order event is missing eventId, type or orderId", models.ErrInvalidInput)
	}
	return evt, nil
}

// IOrderEventPublisher publishes order events.
type IOrderEventPublisher interface {
	Publish(ctx context.Context, evt OrderEvent) error
}

// KafkaOrderEventPublisher publishes JSON events keyed by order id.
type KafkaOrderEventPublisher struct {
	kafka IKafkaService
	topic string
}

// NewKafkaOrderEventPublisher creates a publisher writing to topic.
func NewKafkaOrderEventPublisher(kafka IKafkaService, topic string) IOrderEventPublisher {
	return &KafkaOrderEventPublisher{kafka: kafka, topic: topic}
}

func (p *KafkaOrderEventPublisher) Publish(_ context.Context, evt OrderEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}
	return p.kafka.PushMessage(p.topic, strconv.FormatUint(uint64(evt.OrderID), 10), data)
}

// NoopOrderEventPublisher drops every event. It is used when Kafka is disabled.
type NoopOrderEventPublisher struct{}

func (NoopOrderEventPublisher) Publish(context.Context, OrderEvent) error { return nil }

package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/services/butler/domain/models"
)

// TopicOrderPlaced carries orders from the API and the locator to the worker.
const TopicOrderPlaced = "butler.order.placed"

// OrderPlacedEventVersion is bumped on breaking payload changes.
const OrderPlacedEventVersion = 1

// OrderPlacedEvent asks the worker's scheduler to run an order now.
type OrderPlacedEvent struct {
	EventID    uuid.UUID    `json:"event_id"`
	Order      models.Order `json:"order"`
	OccurredAt time.Time    `json:"occurred_at"`
}

func NewOrderPlacedEvent(order models.Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		EventID:    uuid.New(),
		Order:      order,
		OccurredAt: time.Now().UTC(),
	}
}

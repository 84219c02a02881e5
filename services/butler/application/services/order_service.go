package services

import (
	"context"
	"fmt"

	"github.com/pyamsoft/fridge/pkg/events"
	butlerevents "github.com/pyamsoft/fridge/services/butler/domain/events"
	"github.com/pyamsoft/fridge/services/butler/domain/models"
)

// OrderService hands orders to the worker over the event bus.
type OrderService struct {
	bus Publisher
}

func NewOrderService(bus Publisher) *OrderService {
	return &OrderService{bus: bus}
}

// Place validates order and publishes it on butler.order.placed.
func (s *OrderService) Place(ctx context.Context, order models.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	evt := butlerevents.NewOrderPlacedEvent(order)
	msg, err := events.NewJSONMessage(evt.EventID, butlerevents.OrderPlacedEventVersion, evt)
	if err != nil {
		return err
	}
	if err := s.bus.Publish(ctx, butlerevents.TopicOrderPlaced, msg); err != nil {
		return fmt.Errorf("place order %s: %w", order.Tag(), err)
	}
	return nil
}

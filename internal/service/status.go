package service

import (
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
)

var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusConfirmed:  {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
	models.OrderStatusDelivered:  nil,
	models.OrderStatusCancelled:  nil,
}

func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the statuses an order may move to from the given one.
func NextStatuses(from models.OrderStatus) []models.OrderStatus {
	return append([]models.OrderStatus(nil), orderTransitions[from]...)
}

func allowedList(from models.OrderStatus) string {
	next := NextStatuses(from)
	if len(next) == 0 {
		return "none"
	}
	names := make([]string, len(next))
	for i, st := range next {
		names[i] = string(st)
	}
	return strings.Join(names, ", ")
}

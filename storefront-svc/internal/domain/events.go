package domain

import "time"

const (
	EventOrderCreated       = "order_created"
	EventReservationCreated = "reservation_created"
)

type EventItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Event is the message published to Kafka after an order or reservation is stored.
type Event struct {
	Type          string      `json:"type"`
	OrderID       string      `json:"order_id,omitempty"`
	ReservationID string      `json:"reservation_id,omitempty"`
	BranchID      string      `json:"branch_id"`
	Items         []EventItem `json:"items,omitempty"`
	Total         float64     `json:"total,omitempty"`
	Guests        int         `json:"guests,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
}

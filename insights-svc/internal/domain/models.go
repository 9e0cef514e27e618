package domain

import "time"

const EventOrderCreated = "order_created"

type EventItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Event mirrors the message storefront-svc publishes. Only order events carry items.
type Event struct {
	Type      string      `json:"type"`
	OrderID   string      `json:"order_id,omitempty"`
	BranchID  string      `json:"branch_id"`
	Items     []EventItem `json:"items,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type ItemScore struct {
	ItemID string  `json:"itemId"`
	Score  float64 `json:"score"`
}

type PopularResponse struct {
	Branch string      `json:"branch"`
	Period string      `json:"period"`
	Items  []ItemScore `json:"items"`
}

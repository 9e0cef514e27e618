package service

import (
	"context"
	"log"
	"time"

	"cafenine/storefront-svc/internal/domain"
)

const (
	FulfilmentDelivery = "delivery"
	FulfilmentPickup   = "pickup"

	GuestUserID = "guest"

	deliveryLeadTime = 45 * time.Minute
	pickupLeadTime   = 25 * time.Minute
)

type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod"`
	Fulfilment    string `json:"fulfilment"`
	BranchID      string `json:"branchId"`
}

type ReservationRequest struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	Guests          int    `json:"guests"`
	TablePreference string `json:"tablePreference"`
	SpecialRequests string `json:"specialRequests"`
	BranchID        string `json:"branchId"`
}

// CheckoutService turns carts into orders and booking requests into reservations,
// then announces both on the event bus.
type CheckoutService struct {
	store     OrderStore
	publisher EventPublisher
	now       func() time.Time
}

func NewCheckoutService(store OrderStore, publisher EventPublisher) *CheckoutService {
	return &CheckoutService{store: store, publisher: publisher, now: time.Now}
}

// SetClock replaces the time source. Intended for tests.
func (s *CheckoutService) SetClock(now func() time.Time) {
	s.now = now
}

// PlaceOrder snapshots the cart into an order, stores it and clears the cart. Names
// and prices are copied so later menu edits do not rewrite order history.
func (s *CheckoutService) PlaceOrder(ctx context.Context, cart CartServiceInterface, user *domain.UserProfile, req CheckoutRequest) (domain.Order, error) {
	lines := cart.Lines()
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	totals := cart.Totals()
	now := s.now().UTC()

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ItemID:    line.ItemID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Notes:     line.Notes,
			AddOns:    append([]string(nil), line.AddOns...),
		})
	}

	order := domain.Order{
		UserID:            GuestUserID,
		Items:             items,
		Subtotal:          totals.Subtotal,
		Tax:               totals.Taxes,
		Total:             totals.Total,
		PaymentMethod:     req.PaymentMethod,
		Status:            domain.OrderAccepted,
		DeliveryAddressID: FulfilmentPickup,
		CreatedAt:         now,
		BranchID:          req.BranchID,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = "card"
	}
	if order.BranchID == "" {
		order.BranchID = DefaultBranchID
	}
	if user != nil {
		order.UserID = user.ID
		for _, addr := range user.Addresses {
			if addr.IsDefault {
				order.DeliveryAddressID = addr.ID
				break
			}
		}
	}
	if req.Fulfilment == FulfilmentPickup {
		order.EstimatedDelivery = now.Add(pickupLeadTime)
	} else {
		order.EstimatedDelivery = now.Add(deliveryLeadTime)
	}

	created, err := s.store.CreateOrder(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}
	if err := cart.Clear(ctx); err != nil {
		log.Printf("[storefront-svc] clear cart after order %s: %v", created.ID, err)
	}

	event := domain.Event{
		Type:      domain.EventOrderCreated,
		OrderID:   created.ID,
		BranchID:  created.BranchID,
		Total:     created.Total,
		Timestamp: now,
	}
	for _, item := range created.Items {
		event.Items = append(event.Items, domain.EventItem{ItemID: item.ItemID, Quantity: item.Quantity})
	}
	s.publish(ctx, event)

	return created, nil
}

func (s *CheckoutService) BookReservation(ctx context.Context, user *domain.UserProfile, req ReservationRequest) (domain.Reservation, error) {
	r := domain.Reservation{
		UserID:          GuestUserID,
		Date:            req.Date,
		Time:            req.Time,
		Guests:          req.Guests,
		TablePreference: req.TablePreference,
		SpecialRequests: req.SpecialRequests,
		BranchID:        req.BranchID,
		Status:          domain.ReservationConfirmed,
		CreatedAt:       s.now().UTC(),
	}
	if user != nil {
		r.UserID = user.ID
	}
	if r.BranchID == "" {
		r.BranchID = DefaultBranchID
	}

	created, err := s.store.CreateReservation(ctx, r)
	if err != nil {
		return domain.Reservation{}, err
	}

	s.publish(ctx, domain.Event{
		Type:          domain.EventReservationCreated,
		ReservationID: created.ID,
		BranchID:      created.BranchID,
		Guests:        created.Guests,
		Timestamp:     created.CreatedAt,
	})
	return created, nil
}

func (s *CheckoutService) publish(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("[storefront-svc] publish %s: %v", event.Type, err)
	}
}

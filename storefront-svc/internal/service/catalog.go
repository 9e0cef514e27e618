package service

import (
	"context"
	"sync"
	"time"

	"cafenine/storefront-svc/internal/domain"
	"cafenine/storefront-svc/internal/storage"

	"github.com/google/uuid"
)

// collection is one independently persisted list, newest first.
type collection[T any] struct {
	key   string
	items []T
	id    func(T) string
}

func loadCollection[T any](ctx context.Context, kv storage.KeyValueStore, key string, fallback []T, id func(T) string) collection[T] {
	c := collection[T]{key: key, id: id}
	var stored []T
	if storage.ReadJSON(ctx, kv, key, &stored) {
		c.items = stored
	} else {
		c.items = append([]T{}, fallback...)
	}
	return c
}

func (c *collection[T]) index(id string) int {
	for i, item := range c.items {
		if c.id(item) == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) snapshot() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) find(id string) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c *collection[T]) persist(ctx context.Context, kv storage.KeyValueStore) error {
	items := c.items
	if items == nil {
		items = []T{}
	}
	return storage.WriteJSON(ctx, kv, c.key, items)
}

// prepend adds item at the front and persists. The in-memory list is restored if
// the write fails.
func (c *collection[T]) prepend(ctx context.Context, kv storage.KeyValueStore, item T) error {
	prev := c.items
	c.items = append([]T{item}, c.items...)
	if err := c.persist(ctx, kv); err != nil {
		c.items = prev
		return err
	}
	return nil
}

// update applies fn to the item with id. Unknown ids report false and write nothing.
func (c *collection[T]) update(ctx context.Context, kv storage.KeyValueStore, id string, fn func(*T)) (bool, error) {
	i := c.index(id)
	if i < 0 {
		return false, nil
	}
	prev := c.items[i]
	fn(&c.items[i])
	if err := c.persist(ctx, kv); err != nil {
		c.items[i] = prev
		return true, err
	}
	return true, nil
}

func (c *collection[T]) remove(ctx context.Context, kv storage.KeyValueStore, id string) (bool, error) {
	i := c.index(id)
	if i < 0 {
		return false, nil
	}
	prev := c.items
	next := make([]T, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	c.items = next
	if err := c.persist(ctx, kv); err != nil {
		c.items = prev
		return true, err
	}
	return true, nil
}

// CatalogService is the operational ledger: the menu plus promotions, support
// tickets, reservations and orders. Reference data is read-only.
type CatalogService struct {
	kv  storage.KeyValueStore
	now func() time.Time

	mu           sync.RWMutex
	menu         collection[domain.MenuItem]
	promotions   collection[domain.Promotion]
	tickets      collection[domain.SupportTicket]
	reservations collection[domain.Reservation]
	orders       collection[domain.Order]

	static StaticData
}

func NewCatalogService(ctx context.Context, kv storage.KeyValueStore, seed Seed) *CatalogService {
	return &CatalogService{
		kv:  kv,
		now: time.Now,
		menu: loadCollection(ctx, kv, storage.MenuKey, seed.MenuItems,
			func(m domain.MenuItem) string { return m.ID }),
		promotions: loadCollection(ctx, kv, storage.PromotionsKey, seed.Promotions,
			func(p domain.Promotion) string { return p.ID }),
		tickets: loadCollection(ctx, kv, storage.SupportKey, seed.SupportTickets,
			func(t domain.SupportTicket) string { return t.ID }),
		reservations: loadCollection(ctx, kv, storage.ReservationsKey, seed.Reservations,
			func(r domain.Reservation) string { return r.ID }),
		orders: loadCollection(ctx, kv, storage.OrdersKey, seed.Orders,
			func(o domain.Order) string { return o.ID }),
		static: seed.Static,
	}
}

// SetClock replaces the time source. Intended for tests.
func (s *CatalogService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *CatalogService) Categories() []domain.MenuCategory { return s.static.Categories }
func (s *CatalogService) Chefs() []domain.ChefHighlight     { return s.static.Chefs }
func (s *CatalogService) Branches() []domain.Branch         { return s.static.Branches }
func (s *CatalogService) Testimonials() []domain.Testimonial {
	return s.static.Testimonials
}
func (s *CatalogService) Analytics() []domain.AnalyticSnapshot { return s.static.Analytics }
func (s *CatalogService) HeroImages() []string                 { return s.static.HeroImages }

func (s *CatalogService) Branch(id string) (domain.Branch, bool) {
	for _, b := range s.static.Branches {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Branch{}, false
}

// Menu

func (s *CatalogService) MenuItems() []domain.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menu.snapshot()
}

func (s *CatalogService) MenuItem(id string) (domain.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menu.find(id)
}

// FilterMenu returns items of category (all when empty), optionally restricted to
// featured items or chef recommendations.
func (s *CatalogService) FilterMenu(category string, featuredOnly, chefOnly bool) []domain.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.MenuItem{}
	for _, item := range s.menu.items {
		if category != "" && item.Category != category {
			continue
		}
		if featuredOnly && !item.IsFeatured {
			continue
		}
		if chefOnly && !item.IsChefRecommendation {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (s *CatalogService) FeaturedItems() []domain.MenuItem {
	return s.FilterMenu("", true, false)
}

func (s *CatalogService) ChefRecommendations() []domain.MenuItem {
	return s.FilterMenu("", false, true)
}

func (s *CatalogService) AddMenuItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Availability == "" {
		item.Availability = domain.AvailabilityAvailable
	}
	if item.Dietary == nil {
		item.Dietary = []string{}
	}
	if item.AddOns == nil {
		item.AddOns = []domain.AddOn{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return item, s.menu.prepend(ctx, s.kv, item)
}

func (s *CatalogService) UpdateMenuItem(ctx context.Context, id string, update domain.MenuItemUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menu.update(ctx, s.kv, id, func(m *domain.MenuItem) {
		if update.Name != nil {
			m.Name = *update.Name
		}
		if update.Category != nil {
			m.Category = *update.Category
		}
		if update.Description != nil {
			m.Description = *update.Description
		}
		if update.Price != nil {
			m.Price = *update.Price
		}
		if update.Image != nil {
			m.Image = *update.Image
		}
		if update.Dietary != nil {
			m.Dietary = append([]string{}, update.Dietary...)
		}
		if update.Availability != nil {
			m.Availability = *update.Availability
		}
		if update.IsFeatured != nil {
			m.IsFeatured = *update.IsFeatured
		}
		if update.IsChefRecommendation != nil {
			m.IsChefRecommendation = *update.IsChefRecommendation
		}
		if update.AddOns != nil {
			m.AddOns = append([]domain.AddOn{}, update.AddOns...)
		}
		if update.Pairing != nil {
			m.Pairing = *update.Pairing
		}
	})
}

func (s *CatalogService) RemoveMenuItem(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menu.remove(ctx, s.kv, id)
}

// Promotions

func (s *CatalogService) Promotions() []domain.Promotion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.promotions.snapshot()
}

// ActivePromotions returns promotions whose stored flag is set. Dates are not
// checked; expiry is the administrator's call.
func (s *CatalogService) ActivePromotions() []domain.Promotion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Promotion{}
	for _, p := range s.promotions.items {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}

func (s *CatalogService) AddPromotion(ctx context.Context, promo domain.Promotion) (domain.Promotion, error) {
	if promo.ID == "" {
		promo.ID = uuid.NewString()
	}
	if promo.StartsAt.IsZero() {
		promo.StartsAt = s.now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return promo, s.promotions.prepend(ctx, s.kv, promo)
}

func (s *CatalogService) UpdatePromotion(ctx context.Context, id string, update domain.PromotionUpdate) (bool, error) {
	now := s.now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promotions.update(ctx, s.kv, id, func(p *domain.Promotion) {
		if update.Title != nil {
			p.Title = *update.Title
		}
		if update.Description != nil {
			p.Description = *update.Description
		}
		if update.Code != nil {
			p.Code = *update.Code
		}
		if update.DiscountPercentage != nil {
			d := *update.DiscountPercentage
			p.DiscountPercentage = &d
		}
		if update.StartsAt != nil {
			p.StartsAt = *update.StartsAt
		}
		if update.EndsAt != nil {
			p.EndsAt = *update.EndsAt
		}
		if update.IsActive != nil {
			p.IsActive = *update.IsActive
		}
		p.UpdatedAt = &now
	})
}

func (s *CatalogService) RemovePromotion(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promotions.remove(ctx, s.kv, id)
}

// Support tickets

func (s *CatalogService) SupportTickets() []domain.SupportTicket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tickets.snapshot()
}

func (s *CatalogService) AddSupportTicket(ctx context.Context, ticket domain.SupportTicket) (domain.SupportTicket, error) {
	now := s.now().UTC()
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	if ticket.Status == "" {
		ticket.Status = domain.TicketOpen
	}
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = now
	}
	if ticket.UpdatedAt.IsZero() {
		ticket.UpdatedAt = ticket.CreatedAt
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return ticket, s.tickets.prepend(ctx, s.kv, ticket)
}

func (s *CatalogService) UpdateSupportTicket(ctx context.Context, id string, update domain.SupportTicketUpdate) (bool, error) {
	now := s.now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickets.update(ctx, s.kv, id, func(t *domain.SupportTicket) {
		if update.Subject != nil {
			t.Subject = *update.Subject
		}
		if update.Message != nil {
			t.Message = *update.Message
		}
		if update.Status != nil {
			t.Status = *update.Status
		}
		t.UpdatedAt = now
	})
}

// Reservations

func (s *CatalogService) Reservations() []domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reservations.snapshot()
}

func (s *CatalogService) ReservationsForUser(userID string) []domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Reservation{}
	for _, r := range s.reservations.items {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

func (s *CatalogService) CreateReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = domain.ReservationConfirmed
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return r, s.reservations.prepend(ctx, s.kv, r)
}

func (s *CatalogService) UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) (bool, error) {
	if !status.Valid() {
		return false, ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservations.update(ctx, s.kv, id, func(r *domain.Reservation) {
		r.Status = status
	})
}

// Orders

func (s *CatalogService) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders.snapshot()
}

func (s *CatalogService) Order(id string) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders.find(id)
}

func (s *CatalogService) OrdersForUser(userID string) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Order{}
	for _, o := range s.orders.items {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

// CreateOrder stores order as given. Item references are not checked against the
// menu; orders carry their own name and price snapshot.
func (s *CatalogService) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = domain.OrderAccepted
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.now().UTC()
	}
	order.Items = append([]domain.OrderItem{}, order.Items...)
	s.mu.Lock()
	defer s.mu.Unlock()
	return order, s.orders.prepend(ctx, s.kv, order)
}

func (s *CatalogService) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (bool, error) {
	if !status.Valid() {
		return false, ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.update(ctx, s.kv, id, func(o *domain.Order) {
		o.Status = status
	})
}

var _ CatalogServiceInterface = (*CatalogService)(nil)

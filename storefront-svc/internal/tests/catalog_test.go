package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"cafenine/storefront-svc/internal/domain"
	"cafenine/storefront-svc/internal/mocks"
	"cafenine/storefront-svc/internal/service"
	"cafenine/storefront-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var catalogClock = time.Date(2025, 4, 2, 18, 0, 0, 0, time.UTC)

func newCatalog(t *testing.T, kv storage.KeyValueStore) *service.CatalogService {
	t.Helper()
	catalog := service.NewCatalogService(context.Background(), kv, service.DefaultSeed())
	catalog.SetClock(func() time.Time { return catalogClock })
	return catalog
}

func TestCatalog_SeedDefaults(t *testing.T) {
	catalog := newCatalog(t, storage.NewMemoryStore())

	assert.Len(t, catalog.MenuItems(), 8)
	assert.Len(t, catalog.Promotions(), 2)
	assert.Len(t, catalog.SupportTickets(), 1)
	assert.Empty(t, catalog.Orders())
	assert.Empty(t, catalog.Reservations())
	assert.Len(t, catalog.Categories(), 4)
	assert.Len(t, catalog.Branches(), 3)
	assert.NotEmpty(t, catalog.Chefs())
	assert.NotEmpty(t, catalog.Testimonials())
	assert.NotEmpty(t, catalog.Analytics())
	assert.NotEmpty(t, catalog.HeroImages())

	branch, ok := catalog.Branch(service.DefaultBranchID)
	require.True(t, ok)
	assert.Equal(t, "Dubai", branch.City)
	_, ok = catalog.Branch("paris")
	assert.False(t, ok)
}

func TestCatalog_FilterMenu(t *testing.T) {
	catalog := newCatalog(t, storage.NewMemoryStore())

	tests := []struct {
		name     string
		category string
		featured bool
		chef     bool
		wantIDs  []string
	}{
		{name: "desserts", category: "desserts", wantIDs: []string{"midnight-sphere"}},
		{name: "featured mains", category: "mains", featured: true, wantIDs: []string{"wagyu-embers", "miso-cod"}},
		{name: "chef starters", category: "starters", chef: true, wantIDs: []string{"lantern-scallops"}},
		{name: "unknown category", category: "brunch", wantIDs: []string{}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			ids := []string{}
			for _, item := range catalog.FilterMenu(testCase.category, testCase.featured, testCase.chef) {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, testCase.wantIDs, ids)
		})
	}

	assert.Len(t, catalog.FeaturedItems(), 3)
	assert.Len(t, catalog.ChefRecommendations(), 4)
}

func TestCatalog_AddMenuItemIsNewestFirst(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t, storage.NewMemoryStore())

	created, err := catalog.AddMenuItem(ctx, domain.MenuItem{Name: "Smoked Old Fashioned", Category: "beverages", Price: 21})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.AvailabilityAvailable, created.Availability)
	assert.NotNil(t, created.Dietary)

	items := catalog.MenuItems()
	require.Len(t, items, 9)
	assert.Equal(t, created.ID, items[0].ID)
}

func TestCatalog_UpdateMenuItem(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t, storage.NewMemoryStore())

	price := 72.0
	soldOut := domain.AvailabilitySoldOut
	found, err := catalog.UpdateMenuItem(ctx, "wagyu-embers", domain.MenuItemUpdate{Price: &price, Availability: &soldOut})
	require.NoError(t, err)
	assert.True(t, found)

	item, ok := catalog.MenuItem("wagyu-embers")
	require.True(t, ok)
	assert.Equal(t, 72.0, item.Price)
	assert.Equal(t, domain.AvailabilitySoldOut, item.Availability)
	assert.Equal(t, "Wagyu Embers", item.Name)

	before := catalog.MenuItems()
	found, err = catalog.UpdateMenuItem(ctx, "ghost", domain.MenuItemUpdate{Price: &price})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, before, catalog.MenuItems())
}

func TestCatalog_RemoveMenuItem(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t, storage.NewMemoryStore())

	found, err := catalog.RemoveMenuItem(ctx, "burrata-garden")
	require.NoError(t, err)
	assert.True(t, found)
	_, ok := catalog.MenuItem("burrata-garden")
	assert.False(t, ok)

	found, err = catalog.RemoveMenuItem(ctx, "burrata-garden")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Len(t, catalog.MenuItems(), 7)
}

func TestCatalog_PromotionLifecycle(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t, storage.NewMemoryStore())

	promo, err := catalog.AddPromotion(ctx, domain.Promotion{Title: "Truffle Week", IsActive: false})
	require.NoError(t, err)
	assert.True(t, catalogClock.Equal(promo.StartsAt))
	assert.Nil(t, promo.UpdatedAt)
	assert.Len(t, catalog.ActivePromotions(), 2)

	active := true
	found, err := catalog.UpdatePromotion(ctx, promo.ID, domain.PromotionUpdate{IsActive: &active})
	require.NoError(t, err)
	assert.True(t, found)

	promos := catalog.Promotions()
	require.Equal(t, promo.ID, promos[0].ID)
	require.NotNil(t, promos[0].UpdatedAt)
	assert.True(t, catalogClock.Equal(*promos[0].UpdatedAt))
	assert.Len(t, catalog.ActivePromotions(), 3)

	found, err = catalog.RemovePromotion(ctx, promo.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, catalog.Promotions(), 2)
}

func TestCatalog_SupportTickets(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t, storage.NewMemoryStore())

	ticket, err := catalog.AddSupportTicket(ctx, domain.SupportTicket{
		Name:    fake.Person().Name(),
		Email:   fake.Internet().Email(),
		Subject: "Allergy question",
		Message: fake.Lorem().Sentence(8),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketOpen, ticket.Status)
	assert.True(t, catalogClock.Equal(ticket.CreatedAt))
	assert.Equal(t, ticket.CreatedAt, ticket.UpdatedAt)

	later := catalogClock.Add(2 * time.Hour)
	catalog.SetClock(func() time.Time { return later })
	resolved := domain.TicketResolved
	found, err := catalog.UpdateSupportTicket(ctx, ticket.ID, domain.SupportTicketUpdate{Status: &resolved})
	require.NoError(t, err)
	assert.True(t, found)

	tickets := catalog.SupportTickets()
	require.Len(t, tickets, 2)
	assert.Equal(t, domain.TicketResolved, tickets[0].Status)
	assert.True(t, later.Equal(tickets[0].UpdatedAt))
	assert.True(t, catalogClock.Equal(tickets[0].CreatedAt))
}

func TestCatalog_StatusUpdates(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t, storage.NewMemoryStore())

	order, err := catalog.CreateOrder(ctx, domain.Order{UserID: "u1", Total: 10})
	require.NoError(t, err)
	res, err := catalog.CreateReservation(ctx, domain.Reservation{UserID: "u1", Date: "2025-05-01", Time: "20:00", Guests: 2})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderAccepted, order.Status)
	assert.Equal(t, domain.ReservationConfirmed, res.Status)

	tests := []struct {
		name      string
		update    func() (bool, error)
		wantFound bool
		wantErr   error
	}{
		{
			name:      "order preparing",
			update:    func() (bool, error) { return catalog.UpdateOrderStatus(ctx, order.ID, domain.OrderPreparing) },
			wantFound: true,
		},
		{
			name:    "order bogus status",
			update:  func() (bool, error) { return catalog.UpdateOrderStatus(ctx, order.ID, "teleported") },
			wantErr: service.ErrInvalidStatus,
		},
		{
			name:   "unknown order",
			update: func() (bool, error) { return catalog.UpdateOrderStatus(ctx, "ghost", domain.OrderCompleted) },
		},
		{
			name:      "reservation completed",
			update:    func() (bool, error) { return catalog.UpdateReservationStatus(ctx, res.ID, domain.ReservationCompleted) },
			wantFound: true,
		},
		{
			name:    "reservation bogus status",
			update:  func() (bool, error) { return catalog.UpdateReservationStatus(ctx, res.ID, "no-show") },
			wantErr: service.ErrInvalidStatus,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			found, err := testCase.update()
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantFound, found)
		})
	}

	got, ok := catalog.Order(order.ID)
	require.True(t, ok)
	assert.Equal(t, domain.OrderPreparing, got.Status)
	assert.Equal(t, domain.ReservationCompleted, catalog.Reservations()[0].Status)
}

func TestCatalog_PerUserViews(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t, storage.NewMemoryStore())

	for _, userID := range []string{"u1", "u2", "u1"} {
		_, err := catalog.CreateOrder(ctx, domain.Order{UserID: userID})
		require.NoError(t, err)
		_, err = catalog.CreateReservation(ctx, domain.Reservation{UserID: userID, Guests: 2})
		require.NoError(t, err)
	}

	assert.Len(t, catalog.OrdersForUser("u1"), 2)
	assert.Len(t, catalog.OrdersForUser("u2"), 1)
	assert.Empty(t, catalog.OrdersForUser("u3"))
	assert.Len(t, catalog.ReservationsForUser("u1"), 2)
}

func TestCatalog_RehydratesEachCollection(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()

	first := newCatalog(t, kv)
	order, err := first.CreateOrder(ctx, domain.Order{UserID: "u1", Total: 42})
	require.NoError(t, err)
	_, err = first.RemoveMenuItem(ctx, "miso-cod")
	require.NoError(t, err)

	second := newCatalog(t, kv)
	assert.Len(t, second.MenuItems(), 7)
	got, ok := second.Order(order.ID)
	require.True(t, ok)
	assert.Equal(t, 42.0, got.Total)
	assert.Len(t, second.Promotions(), 2)
}

func TestCatalog_MalformedCollectionFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, storage.MenuKey, []byte(`{"not":"a list"}`)))
	require.NoError(t, kv.Set(ctx, storage.OrdersKey, []byte(`[]`)))

	catalog := newCatalog(t, kv)
	assert.Len(t, catalog.MenuItems(), 8)
	assert.Empty(t, catalog.Orders())
}

func TestCatalog_FailedPersistRollsBack(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewKeyValueStore(t)
	kv.On("Get", mock.Anything, mock.Anything).Return(nil, storage.ErrKeyNotFound)
	kv.On("Set", mock.Anything, storage.MenuKey, mock.Anything).Return(errors.New("connection reset"))

	catalog := newCatalog(t, kv)

	_, err := catalog.AddMenuItem(ctx, domain.MenuItem{Name: "Ghost Dish", Category: "mains"})
	assert.EqualError(t, err, "connection reset")
	assert.Len(t, catalog.MenuItems(), 8)

	found, err := catalog.RemoveMenuItem(ctx, "wagyu-embers")
	assert.True(t, found)
	assert.Error(t, err)
	_, ok := catalog.MenuItem("wagyu-embers")
	assert.True(t, ok)
}

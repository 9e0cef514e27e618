package service

import (
	"context"

	"cafenine/storefront-svc/internal/domain"
)

type CartServiceInterface interface {
	AddItem(ctx context.Context, line domain.CartLine) error
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	RemoveItem(ctx context.Context, itemID string) error
	Clear(ctx context.Context) error
	Lines() []domain.CartLine
	Totals() domain.CartTotals
}

type CartProvider interface {
	Open(ctx context.Context, clientID string) CartServiceInterface
}

type AccountsInterface interface {
	Session(ctx context.Context, clientID string) SessionInterface
	Users() []domain.UserProfile
}

type SessionInterface interface {
	User() (domain.UserProfile, bool)
	Signup(ctx context.Context, req SignupRequest) (domain.UserProfile, error)
	Login(ctx context.Context, email, password string) (domain.UserProfile, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) error
	AddAddress(ctx context.Context, address domain.Address) (domain.Address, error)
	UpdateAddress(ctx context.Context, addressID string, update domain.AddressUpdate) error
	SetDefaultAddress(ctx context.Context, addressID string) error
	AddPaymentMethod(ctx context.Context, method domain.PaymentMethod) (domain.PaymentMethod, error)
	SetDefaultPaymentMethod(ctx context.Context, methodID string) error
	ToggleFavorite(ctx context.Context, menuItemID string) error
	ToggleWishlist(ctx context.Context, menuItemID string) error
}

type CatalogServiceInterface interface {
	Categories() []domain.MenuCategory
	Chefs() []domain.ChefHighlight
	Branches() []domain.Branch
	Branch(id string) (domain.Branch, bool)
	Testimonials() []domain.Testimonial
	Analytics() []domain.AnalyticSnapshot
	HeroImages() []string

	MenuItems() []domain.MenuItem
	MenuItem(id string) (domain.MenuItem, bool)
	FilterMenu(category string, featuredOnly, chefOnly bool) []domain.MenuItem
	FeaturedItems() []domain.MenuItem
	ChefRecommendations() []domain.MenuItem
	AddMenuItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, update domain.MenuItemUpdate) (bool, error)
	RemoveMenuItem(ctx context.Context, id string) (bool, error)

	Promotions() []domain.Promotion
	ActivePromotions() []domain.Promotion
	AddPromotion(ctx context.Context, promo domain.Promotion) (domain.Promotion, error)
	UpdatePromotion(ctx context.Context, id string, update domain.PromotionUpdate) (bool, error)
	RemovePromotion(ctx context.Context, id string) (bool, error)

	SupportTickets() []domain.SupportTicket
	AddSupportTicket(ctx context.Context, ticket domain.SupportTicket) (domain.SupportTicket, error)
	UpdateSupportTicket(ctx context.Context, id string, update domain.SupportTicketUpdate) (bool, error)

	Reservations() []domain.Reservation
	ReservationsForUser(userID string) []domain.Reservation
	CreateReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) (bool, error)

	Orders() []domain.Order
	Order(id string) (domain.Order, bool)
	OrdersForUser(userID string) []domain.Order
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (bool, error)
}

// OrderStore is the slice of the catalog that checkout and booking write to.
type OrderStore interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	CreateReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type CheckoutServiceInterface interface {
	PlaceOrder(ctx context.Context, cart CartServiceInterface, user *domain.UserProfile, req CheckoutRequest) (domain.Order, error)
	BookReservation(ctx context.Context, user *domain.UserProfile, req ReservationRequest) (domain.Reservation, error)
}

var _ CheckoutServiceInterface = (*CheckoutService)(nil)

package domain

import "time"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityLimited   Availability = "limited"
	AvailabilitySoldOut   Availability = "sold-out"
)

type OrderStatus string

const (
	OrderAccepted  OrderStatus = "accepted"
	OrderPreparing OrderStatus = "preparing"
	OrderEnRoute   OrderStatus = "en-route"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderAccepted, OrderPreparing, OrderEnRoute, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationConfirmed, ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}

type TicketStatus string

const (
	TicketOpen      TicketStatus = "open"
	TicketResponded TicketStatus = "responded"
	TicketResolved  TicketStatus = "resolved"
)

type CartLine struct {
	ItemID    string   `json:"itemId"`
	Name      string   `json:"name"`
	UnitPrice float64  `json:"price"`
	Quantity  int      `json:"quantity"`
	Image     string   `json:"image"`
	Category  string   `json:"category"`
	Notes     string   `json:"notes,omitempty"`
	AddOns    []string `json:"addOns,omitempty"`
}

type CartTotals struct {
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
	Taxes     float64 `json:"taxes"`
	Total     float64 `json:"total"`
}

type Address struct {
	ID         string `json:"id"`
	Label      string `json:"label,omitempty"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"isDefault"`
}

type PaymentMethod struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Label     string `json:"label"`
	Last4     string `json:"last4,omitempty"`
	Expiry    string `json:"expiry,omitempty"`
	IsDefault bool   `json:"isDefault"`
}

type Preferences struct {
	SpiceTolerance  string `json:"spiceTolerance,omitempty"`
	PreferredDining string `json:"preferredDining,omitempty"`
	DietaryNotes    string `json:"dietaryNotes,omitempty"`
}

type UserProfile struct {
	ID             string          `json:"id"`
	FullName       string          `json:"fullName"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	AvatarColor    string          `json:"avatarColor,omitempty"`
	Role           Role            `json:"role"`
	PasswordHash   string          `json:"passwordHash"`
	Favorites      []string        `json:"favorites"`
	Wishlist       []string        `json:"wishlist"`
	Addresses      []Address       `json:"addresses"`
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
	Preferences    *Preferences    `json:"preferences,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastLogin      *time.Time      `json:"lastLogin,omitempty"`
}

// Public returns a copy without the password hash, safe to hand to clients.
func (u UserProfile) Public() UserProfile {
	out := u.Clone()
	out.PasswordHash = ""
	return out
}

// Clone deep-copies the slices so callers can mutate the result freely.
func (u UserProfile) Clone() UserProfile {
	out := u
	out.Favorites = append([]string{}, u.Favorites...)
	out.Wishlist = append([]string{}, u.Wishlist...)
	out.Addresses = append([]Address{}, u.Addresses...)
	out.PaymentMethods = append([]PaymentMethod{}, u.PaymentMethods...)
	if u.Preferences != nil {
		p := *u.Preferences
		out.Preferences = &p
	}
	if u.LastLogin != nil {
		t := *u.LastLogin
		out.LastLogin = &t
	}
	return out
}

// ProfileUpdate carries the fields a member may change about themselves. The
// email is fixed because the password hash is derived from it.
type ProfileUpdate struct {
	FullName    *string      `json:"fullName,omitempty"`
	Phone       *string      `json:"phone,omitempty"`
	AvatarColor *string      `json:"avatarColor,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

type AddressUpdate struct {
	Label      *string `json:"label,omitempty"`
	Line1      *string `json:"line1,omitempty"`
	Line2      *string `json:"line2,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	Country    *string `json:"country,omitempty"`
	IsDefault  *bool   `json:"isDefault,omitempty"`
}

type AddOn struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type MenuItem struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Category             string       `json:"category"`
	Description          string       `json:"description"`
	Price                float64      `json:"price"`
	Image                string       `json:"image"`
	Dietary              []string     `json:"dietary"`
	Availability         Availability `json:"availability"`
	IsFeatured           bool         `json:"isFeatured,omitempty"`
	IsChefRecommendation bool         `json:"isChefRecommendation,omitempty"`
	AddOns               []AddOn      `json:"addOns"`
	Pairing              string       `json:"pairing,omitempty"`
}

type MenuItemUpdate struct {
	Name                 *string       `json:"name,omitempty"`
	Category             *string       `json:"category,omitempty"`
	Description          *string       `json:"description,omitempty"`
	Price                *float64      `json:"price,omitempty"`
	Image                *string       `json:"image,omitempty"`
	Dietary              []string      `json:"dietary,omitempty"`
	Availability         *Availability `json:"availability,omitempty"`
	IsFeatured           *bool         `json:"isFeatured,omitempty"`
	IsChefRecommendation *bool         `json:"isChefRecommendation,omitempty"`
	AddOns               []AddOn       `json:"addOns,omitempty"`
	Pairing              *string       `json:"pairing,omitempty"`
}

type OrderItem struct {
	ItemID    string   `json:"itemId"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unitPrice"`
	Notes     string   `json:"notes,omitempty"`
	AddOns    []string `json:"addOns,omitempty"`
}

type Order struct {
	ID                string      `json:"id"`
	UserID            string      `json:"userId"`
	Items             []OrderItem `json:"items"`
	Subtotal          float64     `json:"subtotal"`
	Tax               float64     `json:"tax"`
	Total             float64     `json:"total"`
	PaymentMethod     string      `json:"paymentMethod"`
	Status            OrderStatus `json:"status"`
	DeliveryAddressID string      `json:"deliveryAddressId"`
	CreatedAt         time.Time   `json:"createdAt"`
	EstimatedDelivery time.Time   `json:"estimatedDelivery"`
	BranchID          string      `json:"branchId"`
}

type Reservation struct {
	ID              string            `json:"id"`
	UserID          string            `json:"userId"`
	Date            string            `json:"date"`
	Time            string            `json:"time"`
	Guests          int               `json:"guests"`
	TablePreference string            `json:"tablePreference"`
	SpecialRequests string            `json:"specialRequests,omitempty"`
	BranchID        string            `json:"branchId"`
	Status          ReservationStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
}

type Promotion struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Code               string     `json:"code,omitempty"`
	DiscountPercentage *float64   `json:"discountPercentage,omitempty"`
	StartsAt           time.Time  `json:"startsAt"`
	EndsAt             time.Time  `json:"endsAt"`
	IsActive           bool       `json:"isActive"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

type PromotionUpdate struct {
	Title              *string    `json:"title,omitempty"`
	Description        *string    `json:"description,omitempty"`
	Code               *string    `json:"code,omitempty"`
	DiscountPercentage *float64   `json:"discountPercentage,omitempty"`
	StartsAt           *time.Time `json:"startsAt,omitempty"`
	EndsAt             *time.Time `json:"endsAt,omitempty"`
	IsActive           *bool      `json:"isActive,omitempty"`
}

type SupportTicket struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId,omitempty"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Subject   string       `json:"subject"`
	Message   string       `json:"message"`
	Status    TicketStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type SupportTicketUpdate struct {
	Subject *string       `json:"subject,omitempty"`
	Message *string       `json:"message,omitempty"`
	Status  *TicketStatus `json:"status,omitempty"`
}

type MenuCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ChefHighlight struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Specialty string `json:"specialty"`
}

type Branch struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	City          string     `json:"city"`
	Address       string     `json:"address"`
	Timing        string     `json:"timing"`
	Contact       string     `json:"contact"`
	Email         string     `json:"email"`
	Coordinates   [2]float64 `json:"coordinates"`
	SignatureMenu []string   `json:"signatureMenu"`
}

type Testimonial struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Quote  string `json:"quote"`
	Rating int    `json:"rating"`
}

type AnalyticSnapshot struct {
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Change float64 `json:"change"`
}

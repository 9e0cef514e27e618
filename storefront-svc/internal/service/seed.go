package service

import (
	"time"

	"cafenine/storefront-svc/internal/domain"
)

// StaticData is reference content that never changes while the process runs.
type StaticData struct {
	Categories   []domain.MenuCategory
	Chefs        []domain.ChefHighlight
	Branches     []domain.Branch
	Testimonials []domain.Testimonial
	Analytics    []domain.AnalyticSnapshot
	HeroImages   []string
}

// Seed holds the defaults each collection falls back to when storage is empty.
type Seed struct {
	MenuItems      []domain.MenuItem
	Promotions     []domain.Promotion
	SupportTickets []domain.SupportTicket
	Reservations   []domain.Reservation
	Orders         []domain.Order
	Static         StaticData
}

const DefaultBranchID = "dubai-opus"

func mustDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func percent(v float64) *float64 { return &v }

func DefaultSeed() Seed {
	return Seed{
		MenuItems: []domain.MenuItem{
			{
				ID: "lantern-scallops", Name: "Lantern Scallops", Category: "starters",
				Description: "Hokkaido scallops seared over binchotan with yuzu beurre blanc and smoked trout roe.",
				Price:       24, Image: "/images/menu/lantern-scallops.jpg",
				Dietary: []string{"gluten-free"}, Availability: domain.AvailabilityAvailable,
				IsFeatured: true, IsChefRecommendation: true,
				AddOns:  []domain.AddOn{{ID: "caviar-bump", Name: "Oscietra caviar", Price: 18}},
				Pairing: "Chablis Premier Cru",
			},
			{
				ID: "burrata-garden", Name: "Burrata Garden", Category: "starters",
				Description: "Puglian burrata, heirloom tomatoes, basil oil and aged balsamic pearls.",
				Price:       19, Image: "/images/menu/burrata-garden.jpg",
				Dietary: []string{"vegetarian"}, Availability: domain.AvailabilityAvailable,
				AddOns: []domain.AddOn{},
			},
			{
				ID: "wagyu-embers", Name: "Wagyu Embers", Category: "mains",
				Description: "A5 wagyu striploin, ember-roasted shallots, black garlic jus and truffle pomme purée.",
				Price:       68, Image: "/images/menu/wagyu-embers.jpg",
				Dietary: []string{}, Availability: domain.AvailabilityLimited,
				IsFeatured: true, IsChefRecommendation: true,
				AddOns:  []domain.AddOn{{ID: "shaved-truffle", Name: "Shaved black truffle", Price: 22}},
				Pairing: "Barolo 2016",
			},
			{
				ID: "saffron-risotto", Name: "Saffron Risotto", Category: "mains",
				Description: "Carnaroli rice, Persian saffron, aged parmesan and gold leaf.",
				Price:       36, Image: "/images/menu/saffron-risotto.jpg",
				Dietary: []string{"vegetarian", "gluten-free"}, Availability: domain.AvailabilityAvailable,
				IsChefRecommendation: true,
				AddOns:               []domain.AddOn{},
			},
			{
				ID: "miso-cod", Name: "Miso Glazed Cod", Category: "mains",
				Description: "Black cod marinated for 72 hours in saikyo miso with pickled ginger.",
				Price:       42, Image: "/images/menu/miso-cod.jpg",
				Dietary: []string{"dairy-free"}, Availability: domain.AvailabilityAvailable,
				IsFeatured: true,
				AddOns:     []domain.AddOn{},
			},
			{
				ID: "midnight-sphere", Name: "Midnight Sphere", Category: "desserts",
				Description: "Dark chocolate sphere melted tableside with salted caramel and hazelnut praline.",
				Price:       18, Image: "/images/menu/midnight-sphere.jpg",
				Dietary: []string{"vegetarian"}, Availability: domain.AvailabilityAvailable,
				IsChefRecommendation: true,
				AddOns:               []domain.AddOn{},
			},
			{
				ID: "caviar-martini", Name: "Caviar Martini", Category: "beverages",
				Description: "Grey Goose, dry vermouth and a cucumber ribbon crowned with caviar.",
				Price:       32, Image: "/images/menu/caviar-martini.jpg",
				Dietary: []string{"gluten-free"}, Availability: domain.AvailabilitySoldOut,
				AddOns: []domain.AddOn{},
			},
			{
				ID: "rose-cardamom-latte", Name: "Rose Cardamom Latte", Category: "beverages",
				Description: "Single origin espresso, steamed oat milk, rose water and green cardamom.",
				Price:       9, Image: "/images/menu/rose-cardamom-latte.jpg",
				Dietary: []string{"vegan"}, Availability: domain.AvailabilityAvailable,
				AddOns: []domain.AddOn{{ID: "extra-shot", Name: "Extra shot", Price: 2}},
			},
		},
		Promotions: []domain.Promotion{
			{
				ID: "golden-hour", Title: "Golden Hour Pairings",
				Description: "Complimentary sommelier pairing with any two mains between 5 and 7 pm.",
				Code:        "GOLDEN", DiscountPercentage: percent(15),
				StartsAt: mustDate("2025-01-01T00:00:00Z"), EndsAt: mustDate("2025-12-31T23:59:59Z"),
				IsActive: true,
			},
			{
				ID: "chef-table-weekend", Title: "Chef's Table Weekends",
				Description: "Seven-course tasting journey with the executive chef every Saturday.",
				StartsAt:    mustDate("2025-02-01T00:00:00Z"), EndsAt: mustDate("2025-06-30T23:59:59Z"),
				IsActive: true,
			},
		},
		SupportTickets: []domain.SupportTicket{
			{
				ID: "ticket-welcome", Name: "Amara Okafor", Email: "amara@example.com",
				Subject: "Private dining for twelve",
				Message: "Could the private salon host a birthday dinner for twelve guests next month?",
				Status:  domain.TicketResponded,
				CreatedAt: mustDate("2025-01-02T10:00:00Z"), UpdatedAt: mustDate("2025-01-02T14:30:00Z"),
			},
		},
		Reservations: []domain.Reservation{},
		Orders:       []domain.Order{},
		Static: StaticData{
			Categories: []domain.MenuCategory{
				{ID: "starters", Name: "Starters", Description: "Small plates to open the evening."},
				{ID: "mains", Name: "Mains", Description: "Signature plates from the open kitchen."},
				{ID: "desserts", Name: "Desserts", Description: "Pastry kitchen finales."},
				{ID: "beverages", Name: "Beverages", Description: "Cocktails, coffee and zero-proof pairings."},
			},
			Chefs: []domain.ChefHighlight{
				{
					ID: "chef-aurelio", Name: "Aurelio Vance", Title: "Executive Chef",
					Bio:   "Twenty years across Lyon, Kyoto and New York kitchens.",
					Image: "/images/chefs/aurelio.jpg", Specialty: "Live-fire cooking",
				},
				{
					ID: "chef-noor", Name: "Noor Haddad", Title: "Pastry Chef",
					Bio:   "Builds desserts around spice markets and single origin chocolate.",
					Image: "/images/chefs/noor.jpg", Specialty: "Chocolate work",
				},
			},
			Branches: []domain.Branch{
				{
					ID: "dubai-opus", Name: "Cafe Nine Opus", City: "Dubai",
					Address: "The Opus, Business Bay", Timing: "12:00 - 01:00",
					Contact: "+971 4 555 0199", Email: "opus@cafenine.com",
					Coordinates:   [2]float64{25.1887, 55.2707},
					SignatureMenu: []string{"wagyu-embers", "caviar-martini"},
				},
				{
					ID: "new-york-hudson", Name: "Cafe Nine Hudson", City: "New York",
					Address: "145 Hudson Yards Blvd", Timing: "11:00 - 00:00",
					Contact: "+1 212 555 9034", Email: "hudson@cafenine.com",
					Coordinates:   [2]float64{40.7538, -74.0010},
					SignatureMenu: []string{"lantern-scallops", "miso-cod"},
				},
				{
					ID: "london-mayfair", Name: "Cafe Nine Mayfair", City: "London",
					Address: "22 Mount Street, Mayfair", Timing: "12:00 - 23:30",
					Contact: "+44 20 5550 1234", Email: "mayfair@cafenine.com",
					Coordinates:   [2]float64{51.5101, -0.1517},
					SignatureMenu: []string{"saffron-risotto", "midnight-sphere"},
				},
			},
			Testimonials: []domain.Testimonial{
				{ID: "t1", Name: "Lena Fischer", Role: "Food writer", Quote: "The wagyu alone is worth the flight.", Rating: 5},
				{ID: "t2", Name: "Marcus Bell", Role: "Regular guest", Quote: "Service that remembers your name and your wine.", Rating: 5},
				{ID: "t3", Name: "Priya Raman", Role: "Event planner", Quote: "Hosted forty guests without a single misstep.", Rating: 4},
			},
			Analytics: []domain.AnalyticSnapshot{
				{Label: "Monthly revenue", Value: 268, Unit: "k", Change: 9.8},
				{Label: "Covers served", Value: 4120, Unit: "guests", Change: 6.1},
				{Label: "Average ticket", Value: 86, Unit: "usd", Change: 2.4},
				{Label: "Guest rating", Value: 4.9, Unit: "stars", Change: 0.1},
			},
			HeroImages: []string{
				"/images/hero/dining-room.jpg",
				"/images/hero/open-kitchen.jpg",
				"/images/hero/terrace.jpg",
			},
		},
	}
}

// SeedRoster builds the default roster: a single administrator whose password is
// hashed with hasher at startup.
func SeedRoster(hasher PasswordHasher, email, password string) ([]domain.UserProfile, error) {
	email = normalizeEmail(email)
	hash, err := hasher.Hash(email, password)
	if err != nil {
		return nil, err
	}
	lastLogin := mustDate("2025-01-04T20:00:00Z")
	return []domain.UserProfile{
		{
			ID:           "admin-cafenine",
			FullName:     "Celeste Marlow",
			Email:        email,
			Phone:        "+1 212 555 9034",
			AvatarColor:  "#F97316",
			Role:         domain.RoleAdmin,
			PasswordHash: hash,
			Favorites:    []string{"lantern-scallops", "wagyu-embers"},
			Wishlist:     []string{"caviar-martini"},
			Addresses: []domain.Address{{
				ID: "admin-address", Line1: "145 Hudson Yards Blvd", City: "New York",
				State: "NY", PostalCode: "10001", Country: "USA", IsDefault: true,
			}},
			PaymentMethods: []domain.PaymentMethod{{
				ID: "admin-card", Type: "card", Label: "Amex Platinum",
				Last4: "3021", Expiry: "10/28", IsDefault: true,
			}},
			Preferences: &domain.Preferences{
				SpiceTolerance:  "medium",
				PreferredDining: "dine-in",
				DietaryNotes:    "Champagne pairing preferred.",
			},
			CreatedAt: mustDate("2024-07-24T18:00:00Z"),
			LastLogin: &lastLogin,
		},
	}, nil
}

package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "cafenine/storefront-svc/internal/api/http"
	"cafenine/storefront-svc/internal/domain"
	"cafenine/storefront-svc/internal/mocks"
	"cafenine/storefront-svc/internal/service"
	"cafenine/storefront-svc/internal/storage"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router    *mux.Router
	catalog   *service.CatalogService
	publisher *mocks.EventPublisher
	qr        *mocks.QRGenerator
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	kv := storage.NewMemoryStore()
	accounts := newAccounts(t, kv)
	catalog := newCatalog(t, kv)
	publisher := mocks.NewEventPublisher(t)
	qr := mocks.NewQRGenerator(t)

	handler := httpapi.NewHandler(service.NewCarts(kv), accounts, catalog, service.NewCheckoutService(catalog, publisher), qr)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return testServer{router: r, catalog: catalog, publisher: publisher, qr: qr}
}

func (s testServer) do(t *testing.T, method, path, clientID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if clientID != "" {
		req.Header.Set(httpapi.ClientIDHeader, clientID)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s testServer) loginAdmin(t *testing.T, clientID string) {
	t.Helper()
	w := s.do(t, "POST", "/api/auth/login", clientID, `{"email":"admin@cafenine.com","password":"`+adminPassword+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, "GET", "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storefront-svc")
}

func TestCartHandlers(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/cart/items", "c1", `{"itemId":"lantern-scallops"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, "POST", "/api/cart/items", "c1", `{"itemId":"lantern-scallops","quantity":1}`)
	require.Equal(t, http.StatusOK, w.Code)

	type cartBody struct {
		Items  []domain.CartLine `json:"items"`
		Totals domain.CartTotals `json:"totals"`
	}
	cart := decodeBody[cartBody](t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 24.0, cart.Items[0].UnitPrice)
	assert.InDelta(t, 51.84, cart.Totals.Total, 1e-9)

	other := decodeBody[cartBody](t, s.do(t, "GET", "/api/cart", "c2", ""))
	assert.Empty(t, other.Items)

	w = s.do(t, "PUT", "/api/cart/items/lantern-scallops", "c1", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[cartBody](t, w).Items)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
	}{
		{name: "unknown item", method: "POST", path: "/api/cart/items", body: `{"itemId":"ghost"}`, wantCode: http.StatusNotFound},
		{name: "sold out item", method: "POST", path: "/api/cart/items", body: `{"itemId":"caviar-martini"}`, wantCode: http.StatusConflict},
		{name: "invalid json", method: "POST", path: "/api/cart/items", body: `{bad`, wantCode: http.StatusBadRequest},
		{name: "remove unknown line", method: "DELETE", path: "/api/cart/items/ghost", wantCode: http.StatusOK},
		{name: "clear", method: "DELETE", path: "/api/cart", wantCode: http.StatusOK},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			w := s.do(t, testCase.method, testCase.path, "c1", testCase.body)
			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestAuthHandlers(t *testing.T) {
	s := newTestServer(t)
	signup := `{"fullName":"Noor Haddad","email":"Noor@Example.com","password":"cardamom-9"}`

	tests := []struct {
		name     string
		method   string
		path     string
		clientID string
		body     string
		wantCode int
	}{
		{name: "me before signup", method: "GET", path: "/api/auth/me", clientID: "c1", wantCode: http.StatusUnauthorized},
		{name: "signup", method: "POST", path: "/api/auth/signup", clientID: "c1", body: signup, wantCode: http.StatusCreated},
		{name: "duplicate signup", method: "POST", path: "/api/auth/signup", clientID: "c2", body: signup, wantCode: http.StatusConflict},
		{name: "signup missing fields", method: "POST", path: "/api/auth/signup", clientID: "c2", body: `{"email":"x@y.z"}`, wantCode: http.StatusBadRequest},
		{name: "me after signup", method: "GET", path: "/api/auth/me", clientID: "c1", wantCode: http.StatusOK},
		{name: "bad login", method: "POST", path: "/api/auth/login", clientID: "c2", body: `{"email":"noor@example.com","password":"wrong"}`, wantCode: http.StatusUnauthorized},
		{name: "login other case", method: "POST", path: "/api/auth/login", clientID: "c2", body: `{"email":"NOOR@example.com","password":"cardamom-9"}`, wantCode: http.StatusOK},
		{name: "logout", method: "POST", path: "/api/auth/logout", clientID: "c1", wantCode: http.StatusNoContent},
		{name: "me after logout", method: "GET", path: "/api/auth/me", clientID: "c1", wantCode: http.StatusUnauthorized},
		{name: "other client still signed in", method: "GET", path: "/api/auth/me", clientID: "c2", wantCode: http.StatusOK},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			w := s.do(t, testCase.method, testCase.path, testCase.clientID, testCase.body)
			assert.Equal(t, testCase.wantCode, w.Code, w.Body.String())
			assert.NotContains(t, w.Body.String(), "$2a$")
		})
	}
}

func TestAccountHandlers(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/account/favorites/wagyu-embers", "c1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, "POST", "/api/auth/signup", "c1", `{"fullName":"Marcus Bell","email":"marcus@example.com","password":"old-fashioned"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, "POST", "/api/account/addresses", "c1", `{"line1":"145 Hudson Yards","city":"New York","isDefault":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	addr := decodeBody[domain.Address](t, w)
	assert.NotEmpty(t, addr.ID)

	w = s.do(t, "POST", "/api/account/favorites/wagyu-embers", "c1", "")
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody[domain.UserProfile](t, w)
	assert.Equal(t, []string{"wagyu-embers"}, user.Favorites)
	assert.Empty(t, user.PasswordHash)

	w = s.do(t, "PUT", "/api/account/profile", "c1", `{"phone":"+1 555 0100"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "+1 555 0100", decodeBody[domain.UserProfile](t, w).Phone)
}

func TestCheckoutHandlers(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/checkout", "c1", `{"fulfilment":"pickup"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.do(t, "POST", "/api/cart/items", "c1", `{"itemId":"miso-cod","quantity":2}`)
	w = s.do(t, "POST", "/api/checkout", "c1", `{"fulfilment":"pickup","branchId":"atlantis"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.publisher.On("Publish", mock.Anything, mock.AnythingOfType("domain.Event")).Return(nil).Once()
	w = s.do(t, "POST", "/api/checkout", "c1", `{"fulfilment":"pickup","paymentMethod":"card"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	type orderBody struct {
		domain.Order
		QRCode string `json:"qrCode"`
	}
	order := decodeBody[orderBody](t, w)
	assert.Equal(t, "guest", order.UserID)
	assert.Equal(t, "/api/orders/"+order.ID+"/qrcode", order.QRCode)

	guestOrders := decodeBody[[]domain.Order](t, s.do(t, "GET", "/api/orders", "c9", ""))
	assert.Len(t, guestOrders, 1)

	s.qr.On("Generate", order.ID).Return([]byte("\x89PNGfake"), nil).Once()
	w = s.do(t, "GET", "/api/orders/"+order.ID+"/qrcode", "c1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = s.do(t, "GET", "/api/orders/ghost/qrcode", "c1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, "GET", "/api/orders/"+order.ID, "c2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, order.ID, decodeBody[orderBody](t, w).ID)
}

func TestReservationAndSupportHandlers(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/reservations", "c1", `{"date":"2025-05-01","time":"19:00"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventReservationCreated
	})).Return(nil).Once()
	w = s.do(t, "POST", "/api/reservations", "c1", `{"date":"2025-05-01","time":"19:00","guests":3}`)
	require.Equal(t, http.StatusCreated, w.Code)
	res := decodeBody[domain.Reservation](t, w)
	assert.Equal(t, service.DefaultBranchID, res.BranchID)
	assert.Len(t, decodeBody[[]domain.Reservation](t, s.do(t, "GET", "/api/reservations", "c1", "")), 1)

	w = s.do(t, "POST", "/api/support-tickets", "c1", `{"subject":"Parking"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, "POST", "/api/support-tickets", "c1", `{"subject":"Parking","message":"Is valet available?"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	ticket := decodeBody[domain.SupportTicket](t, w)
	assert.Equal(t, "Guest", ticket.Name)
	assert.Equal(t, domain.TicketOpen, ticket.Status)
	assert.Len(t, s.catalog.SupportTickets(), 2)
}

func TestCatalogHandlers(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name      string
		path      string
		wantCode  int
		wantCount int
	}{
		{name: "menu", path: "/api/menu", wantCode: http.StatusOK, wantCount: 8},
		{name: "menu by category", path: "/api/menu?category=beverages", wantCode: http.StatusOK, wantCount: 2},
		{name: "featured", path: "/api/menu?featured=true", wantCode: http.StatusOK, wantCount: 3},
		{name: "chef picks", path: "/api/menu?chef=true", wantCode: http.StatusOK, wantCount: 4},
		{name: "categories", path: "/api/categories", wantCode: http.StatusOK, wantCount: 4},
		{name: "branches", path: "/api/branches", wantCode: http.StatusOK, wantCount: 3},
		{name: "chefs", path: "/api/chefs", wantCode: http.StatusOK, wantCount: 2},
		{name: "testimonials", path: "/api/testimonials", wantCode: http.StatusOK, wantCount: 3},
		{name: "hero images", path: "/api/hero-images", wantCode: http.StatusOK, wantCount: 3},
		{name: "active promotions", path: "/api/promotions", wantCode: http.StatusOK, wantCount: 2},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			w := s.do(t, "GET", testCase.path, "", "")
			require.Equal(t, testCase.wantCode, w.Code)
			assert.Len(t, decodeBody[[]json.RawMessage](t, w), testCase.wantCount)
		})
	}

	w := s.do(t, "GET", "/api/menu/wagyu-embers", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, "GET", "/api/menu/ghost", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"menu item not found"}`, w.Body.String())
}

func TestAdminHandlers_Guard(t *testing.T) {
	s := newTestServer(t)
	s.do(t, "POST", "/api/auth/signup", "member", `{"fullName":"Priya Raman","email":"priya@example.com","password":"saffron-1"}`)

	for _, clientID := range []string{"anonymous", "member"} {
		w := s.do(t, "GET", "/api/admin/orders", clientID, "")
		assert.Equal(t, http.StatusForbidden, w.Code, clientID)
	}

	s.loginAdmin(t, "admin")
	w := s.do(t, "GET", "/api/admin/users", "admin", "")
	require.Equal(t, http.StatusOK, w.Code)
	users := decodeBody[[]domain.UserProfile](t, w)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}

func TestClientID_HeaderlessRequestsAreIsolated(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/auth/login", "", `{"email":"admin@cafenine.com","password":"`+adminPassword+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	minted := w.Header().Get(httpapi.ClientIDHeader)
	require.NotEmpty(t, minted)

	w = s.do(t, "GET", "/api/admin/users", "", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotEmpty(t, w.Header().Get(httpapi.ClientIDHeader))
	assert.NotEqual(t, minted, w.Header().Get(httpapi.ClientIDHeader))

	w = s.do(t, "GET", "/api/admin/users", minted, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, minted, w.Header().Get(httpapi.ClientIDHeader))

	w = s.do(t, "POST", "/api/cart/items", "", `{"itemId":"lantern-scallops"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, "GET", "/api/cart", "", "")
	assert.NotContains(t, w.Body.String(), "lantern-scallops")
}

func TestAdminHandlers_Mutations(t *testing.T) {
	s := newTestServer(t)
	s.loginAdmin(t, "admin")

	w := s.do(t, "POST", "/api/admin/menu", "admin", `{"name":"Yuzu Tart","category":"desserts","price":14}`)
	require.Equal(t, http.StatusCreated, w.Code)
	item := decodeBody[domain.MenuItem](t, w)

	order, err := s.catalog.CreateOrder(context.Background(), domain.Order{UserID: "guest"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
	}{
		{name: "create menu item without name", method: "POST", path: "/api/admin/menu", body: `{"category":"mains"}`, wantCode: http.StatusBadRequest},
		{name: "update menu item", method: "PUT", path: "/api/admin/menu/" + item.ID, body: `{"price":15}`, wantCode: http.StatusNoContent},
		{name: "update unknown menu item", method: "PUT", path: "/api/admin/menu/ghost", body: `{"price":15}`, wantCode: http.StatusNotFound},
		{name: "delete menu item", method: "DELETE", path: "/api/admin/menu/" + item.ID, wantCode: http.StatusNoContent},
		{name: "create promotion", method: "POST", path: "/api/admin/promotions", body: `{"title":"Late Lunch","isActive":true}`, wantCode: http.StatusCreated},
		{name: "update promotion", method: "PUT", path: "/api/admin/promotions/golden-hour", body: `{"isActive":false}`, wantCode: http.StatusNoContent},
		{name: "delete unknown promotion", method: "DELETE", path: "/api/admin/promotions/ghost", wantCode: http.StatusNotFound},
		{name: "resolve ticket", method: "PUT", path: "/api/admin/support-tickets/ticket-welcome", body: `{"status":"resolved"}`, wantCode: http.StatusNoContent},
		{name: "order status", method: "PUT", path: "/api/admin/orders/" + order.ID + "/status", body: `{"status":"en-route"}`, wantCode: http.StatusNoContent},
		{name: "invalid order status", method: "PUT", path: "/api/admin/orders/" + order.ID + "/status", body: `{"status":"lost"}`, wantCode: http.StatusBadRequest},
		{name: "unknown reservation", method: "PUT", path: "/api/admin/reservations/ghost/status", body: `{"status":"cancelled"}`, wantCode: http.StatusNotFound},
		{name: "analytics", method: "GET", path: "/api/admin/analytics", wantCode: http.StatusOK},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			w := s.do(t, testCase.method, testCase.path, "admin", testCase.body)
			assert.Equal(t, testCase.wantCode, w.Code, w.Body.String())
		})
	}

	got, ok := s.catalog.Order(order.ID)
	require.True(t, ok)
	assert.Equal(t, domain.OrderEnRoute, got.Status)
	assert.Len(t, s.catalog.ActivePromotions(), 2)
	assert.Equal(t, domain.TicketResolved, s.catalog.SupportTickets()[0].Status)
}

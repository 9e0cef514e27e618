package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"cafenine/storefront-svc/internal/domain"
	"cafenine/storefront-svc/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const ClientIDHeader = "X-Client-ID"

type Handler struct {
	Carts    service.CartProvider
	Accounts service.AccountsInterface
	Catalog  service.CatalogServiceInterface
	Checkout service.CheckoutServiceInterface
	QR       service.QRGenerator
}

func NewHandler(carts service.CartProvider, accounts service.AccountsInterface, catalog service.CatalogServiceInterface, checkout service.CheckoutServiceInterface, qr service.QRGenerator) *Handler {
	return &Handler{
		Carts:    carts,
		Accounts: accounts,
		Catalog:  catalog,
		Checkout: checkout,
		QR:       qr,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(assignClientID)

	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{itemId}", h.updateCartItem).Methods("PUT")
	r.HandleFunc("/api/cart/items/{itemId}", h.removeCartItem).Methods("DELETE")

	r.HandleFunc("/api/auth/signup", h.signup).Methods("POST")
	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.HandleFunc("/api/auth/logout", h.logout).Methods("POST")
	r.HandleFunc("/api/auth/me", h.me).Methods("GET")

	r.HandleFunc("/api/account/profile", h.updateProfile).Methods("PUT")
	r.HandleFunc("/api/account/addresses", h.addAddress).Methods("POST")
	r.HandleFunc("/api/account/addresses/{id}", h.updateAddress).Methods("PUT")
	r.HandleFunc("/api/account/addresses/{id}/default", h.setDefaultAddress).Methods("PUT")
	r.HandleFunc("/api/account/payment-methods", h.addPaymentMethod).Methods("POST")
	r.HandleFunc("/api/account/payment-methods/{id}/default", h.setDefaultPaymentMethod).Methods("PUT")
	r.HandleFunc("/api/account/favorites/{itemId}", h.toggleFavorite).Methods("POST")
	r.HandleFunc("/api/account/wishlist/{itemId}", h.toggleWishlist).Methods("POST")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu/{id}", h.getMenuItem).Methods("GET")
	r.HandleFunc("/api/categories", h.getCategories).Methods("GET")
	r.HandleFunc("/api/chefs", h.getChefs).Methods("GET")
	r.HandleFunc("/api/branches", h.getBranches).Methods("GET")
	r.HandleFunc("/api/testimonials", h.getTestimonials).Methods("GET")
	r.HandleFunc("/api/hero-images", h.getHeroImages).Methods("GET")
	r.HandleFunc("/api/promotions", h.getActivePromotions).Methods("GET")

	r.HandleFunc("/api/checkout", h.checkout).Methods("POST")
	r.HandleFunc("/api/orders", h.getMyOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/reservations", h.createReservation).Methods("POST")
	r.HandleFunc("/api/reservations", h.getMyReservations).Methods("GET")

	r.HandleFunc("/api/support-tickets", h.createSupportTicket).Methods("POST")

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(h.requireAdmin)
	h.registerAdminRoutes(admin)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "storefront-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// assignClientID gives header-less requests a fresh client id and echoes the id
// back, so a client's cart and session are never shared with anyone else.
func assignClientID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(ClientIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		r.Header.Set(ClientIDHeader, id)
		w.Header().Set(ClientIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func clientID(r *http.Request) string {
	return r.Header.Get(ClientIDHeader)
}

func (h *Handler) session(r *http.Request) service.SessionInterface {
	return h.Accounts.Session(r.Context(), clientID(r))
}

// currentUser returns the signed-in profile or nil for guests.
func (h *Handler) currentUser(r *http.Request) *domain.UserProfile {
	u, ok := h.session(r).User()
	if !ok {
		return nil
	}
	return &u
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[storefront-svc] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

func internalError(w http.ResponseWriter, err error) {
	log.Printf("[storefront-svc] %v", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

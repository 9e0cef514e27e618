package httpapi

import (
	"errors"
	"net/http"

	"cafenine/storefront-svc/internal/domain"
	"cafenine/storefront-svc/internal/service"

	"github.com/gorilla/mux"
)

type orderStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

type reservationStatusRequest struct {
	Status domain.ReservationStatus `json:"status"`
}

func (h *Handler) registerAdminRoutes(r *mux.Router) {
	r.HandleFunc("/analytics", h.getAnalytics).Methods("GET")

	r.HandleFunc("/menu", h.listMenu).Methods("GET")
	r.HandleFunc("/menu", h.createMenuItem).Methods("POST")
	r.HandleFunc("/menu/{id}", h.updateMenuItem).Methods("PUT")
	r.HandleFunc("/menu/{id}", h.deleteMenuItem).Methods("DELETE")

	r.HandleFunc("/promotions", h.listPromotions).Methods("GET")
	r.HandleFunc("/promotions", h.createPromotion).Methods("POST")
	r.HandleFunc("/promotions/{id}", h.updatePromotion).Methods("PUT")
	r.HandleFunc("/promotions/{id}", h.deletePromotion).Methods("DELETE")

	r.HandleFunc("/support-tickets", h.listSupportTickets).Methods("GET")
	r.HandleFunc("/support-tickets/{id}", h.updateSupportTicket).Methods("PUT")

	r.HandleFunc("/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/orders/{id}/status", h.updateOrderStatus).Methods("PUT")

	r.HandleFunc("/reservations", h.listReservations).Methods("GET")
	r.HandleFunc("/reservations/{id}/status", h.updateReservationStatus).Methods("PUT")

	r.HandleFunc("/users", h.listUsers).Methods("GET")
}

func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := h.currentUser(r)
		if u == nil || u.Role != domain.RoleAdmin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeMutation maps the (found, err) result of an update or delete to a response.
func writeMutation(w http.ResponseWriter, found bool, err error, what string) {
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		internalError(w, err)
	case !found:
		writeError(w, http.StatusNotFound, what+" not found")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) getAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Analytics())
}

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.MenuItems())
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if !decode(w, r, &item) {
		return
	}
	if item.Name == "" || item.Category == "" {
		writeError(w, http.StatusBadRequest, "name and category are required")
		return
	}
	created, err := h.Catalog.AddMenuItem(r.Context(), item)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var update domain.MenuItemUpdate
	if !decode(w, r, &update) {
		return
	}
	found, err := h.Catalog.UpdateMenuItem(r.Context(), mux.Vars(r)["id"], update)
	writeMutation(w, found, err, "menu item")
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	found, err := h.Catalog.RemoveMenuItem(r.Context(), mux.Vars(r)["id"])
	writeMutation(w, found, err, "menu item")
}

func (h *Handler) listPromotions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Promotions())
}

func (h *Handler) createPromotion(w http.ResponseWriter, r *http.Request) {
	var promo domain.Promotion
	if !decode(w, r, &promo) {
		return
	}
	if promo.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	created, err := h.Catalog.AddPromotion(r.Context(), promo)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updatePromotion(w http.ResponseWriter, r *http.Request) {
	var update domain.PromotionUpdate
	if !decode(w, r, &update) {
		return
	}
	found, err := h.Catalog.UpdatePromotion(r.Context(), mux.Vars(r)["id"], update)
	writeMutation(w, found, err, "promotion")
}

func (h *Handler) deletePromotion(w http.ResponseWriter, r *http.Request) {
	found, err := h.Catalog.RemovePromotion(r.Context(), mux.Vars(r)["id"])
	writeMutation(w, found, err, "promotion")
}

func (h *Handler) listSupportTickets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.SupportTickets())
}

func (h *Handler) updateSupportTicket(w http.ResponseWriter, r *http.Request) {
	var update domain.SupportTicketUpdate
	if !decode(w, r, &update) {
		return
	}
	found, err := h.Catalog.UpdateSupportTicket(r.Context(), mux.Vars(r)["id"], update)
	writeMutation(w, found, err, "support ticket")
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Orders())
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	if !decode(w, r, &req) {
		return
	}
	found, err := h.Catalog.UpdateOrderStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	writeMutation(w, found, err, "order")
}

func (h *Handler) listReservations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Reservations())
}

func (h *Handler) updateReservationStatus(w http.ResponseWriter, r *http.Request) {
	var req reservationStatusRequest
	if !decode(w, r, &req) {
		return
	}
	found, err := h.Catalog.UpdateReservationStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	writeMutation(w, found, err, "reservation")
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Accounts.Users())
}

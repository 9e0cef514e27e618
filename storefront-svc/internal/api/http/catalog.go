package httpapi

import (
	"errors"
	"net/http"

	"cafenine/storefront-svc/internal/domain"
	"cafenine/storefront-svc/internal/service"

	"github.com/gorilla/mux"
)

type orderResponse struct {
	domain.Order
	QRCode string `json:"qrCode"`
}

func qrPath(orderID string) string {
	return "/api/orders/" + orderID + "/qrcode"
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := h.Catalog.FilterMenu(q.Get("category"), q.Get("featured") == "true", q.Get("chef") == "true")
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.Catalog.MenuItem(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Categories())
}

func (h *Handler) getChefs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Chefs())
}

func (h *Handler) getBranches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Branches())
}

func (h *Handler) getTestimonials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Testimonials())
}

func (h *Handler) getHeroImages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.HeroImages())
}

func (h *Handler) getActivePromotions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.ActivePromotions())
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest
	if !decode(w, r, &req) {
		return
	}
	if req.BranchID != "" {
		if _, ok := h.Catalog.Branch(req.BranchID); !ok {
			writeError(w, http.StatusBadRequest, "unknown branch")
			return
		}
	}
	cart := h.Carts.Open(r.Context(), clientID(r))
	order, err := h.Checkout.PlaceOrder(r.Context(), cart, h.currentUser(r), req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, orderResponse{Order: order, QRCode: qrPath(order.ID)})
}

// getMyOrders lists orders for the signed-in member, or guest orders otherwise.
func (h *Handler) getMyOrders(w http.ResponseWriter, r *http.Request) {
	userID := service.GuestUserID
	if u := h.currentUser(r); u != nil {
		userID = u.ID
	}
	writeJSON(w, http.StatusOK, h.Catalog.OrdersForUser(userID))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.Catalog.Order(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, orderResponse{Order: order, QRCode: qrPath(order.ID)})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	order, ok := h.Catalog.Order(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	png, err := h.QR.Generate(order.ID)
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var req service.ReservationRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Date == "" || req.Time == "" || req.Guests <= 0 {
		writeError(w, http.StatusBadRequest, "date, time and guests are required")
		return
	}
	if req.BranchID != "" {
		if _, ok := h.Catalog.Branch(req.BranchID); !ok {
			writeError(w, http.StatusBadRequest, "unknown branch")
			return
		}
	}
	res, err := h.Checkout.BookReservation(r.Context(), h.currentUser(r), req)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) getMyReservations(w http.ResponseWriter, r *http.Request) {
	userID := service.GuestUserID
	if u := h.currentUser(r); u != nil {
		userID = u.ID
	}
	writeJSON(w, http.StatusOK, h.Catalog.ReservationsForUser(userID))
}

func (h *Handler) createSupportTicket(w http.ResponseWriter, r *http.Request) {
	var req service.SupportRequest
	if !decode(w, r, &req) {
		return
	}
	ticket, err := service.NewSupportTicket(h.currentUser(r), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.Catalog.AddSupportTicket(r.Context(), ticket)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

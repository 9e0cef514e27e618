package httpapi

import (
	"net/http"

	"cafenine/storefront-svc/internal/domain"
	"cafenine/storefront-svc/internal/service"

	"github.com/gorilla/mux"
)

type cartResponse struct {
	Items  []domain.CartLine `json:"items"`
	Totals domain.CartTotals `json:"totals"`
}

type addCartItemRequest struct {
	ItemID   string   `json:"itemId"`
	Quantity *int     `json:"quantity,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	AddOns   []string `json:"addOns,omitempty"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func writeCart(w http.ResponseWriter, cart service.CartServiceInterface) {
	writeJSON(w, http.StatusOK, cartResponse{Items: cart.Lines(), Totals: cart.Totals()})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	writeCart(w, h.Carts.Open(r.Context(), clientID(r)))
}

// addCartItem prices the line from the menu so clients cannot set their own price.
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if !decode(w, r, &req) {
		return
	}
	item, ok := h.Catalog.MenuItem(req.ItemID)
	if !ok {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}
	if item.Availability == domain.AvailabilitySoldOut {
		writeError(w, http.StatusConflict, "menu item is sold out")
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	cart := h.Carts.Open(r.Context(), clientID(r))
	line := domain.CartLine{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  qty,
		Image:     item.Image,
		Category:  item.Category,
		Notes:     req.Notes,
		AddOns:    req.AddOns,
	}
	if err := cart.AddItem(r.Context(), line); err != nil {
		internalError(w, err)
		return
	}
	writeCart(w, cart)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if !decode(w, r, &req) {
		return
	}
	cart := h.Carts.Open(r.Context(), clientID(r))
	if err := cart.UpdateQuantity(r.Context(), mux.Vars(r)["itemId"], req.Quantity); err != nil {
		internalError(w, err)
		return
	}
	writeCart(w, cart)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	cart := h.Carts.Open(r.Context(), clientID(r))
	if err := cart.RemoveItem(r.Context(), mux.Vars(r)["itemId"]); err != nil {
		internalError(w, err)
		return
	}
	writeCart(w, cart)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	cart := h.Carts.Open(r.Context(), clientID(r))
	if err := cart.Clear(r.Context()); err != nil {
		internalError(w, err)
		return
	}
	writeCart(w, cart)
}

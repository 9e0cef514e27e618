package httpapi

import (
	"errors"
	"net/http"

	"cafenine/storefront-svc/internal/domain"
	"cafenine/storefront-svc/internal/service"

	"github.com/gorilla/mux"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func authStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrDuplicateAccount):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrMissingFields):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.session(r).Signup(r.Context(), req)
	if err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, user.Public())
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.session(r).Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, authStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user.Public())
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session(r).Logout(r.Context()); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.session(r).User()
	if !ok {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	writeJSON(w, http.StatusOK, user.Public())
}

// withSession runs fn for a signed-in client and answers with the refreshed profile.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, fn func(s service.SessionInterface) (interface{}, error)) {
	sess := h.session(r)
	if _, ok := sess.User(); !ok {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	body, err := fn(sess)
	if err != nil {
		internalError(w, err)
		return
	}
	if body == nil {
		user, _ := sess.User()
		body = user.Public()
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var update domain.ProfileUpdate
	if !decode(w, r, &update) {
		return
	}
	h.withSession(w, r, func(s service.SessionInterface) (interface{}, error) {
		return nil, s.UpdateProfile(r.Context(), update)
	})
}

func (h *Handler) addAddress(w http.ResponseWriter, r *http.Request) {
	var addr domain.Address
	if !decode(w, r, &addr) {
		return
	}
	h.withSession(w, r, func(s service.SessionInterface) (interface{}, error) {
		created, err := s.AddAddress(r.Context(), addr)
		if err != nil {
			return nil, err
		}
		return created, nil
	})
}

func (h *Handler) updateAddress(w http.ResponseWriter, r *http.Request) {
	var update domain.AddressUpdate
	if !decode(w, r, &update) {
		return
	}
	h.withSession(w, r, func(s service.SessionInterface) (interface{}, error) {
		return nil, s.UpdateAddress(r.Context(), mux.Vars(r)["id"], update)
	})
}

func (h *Handler) setDefaultAddress(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s service.SessionInterface) (interface{}, error) {
		return nil, s.SetDefaultAddress(r.Context(), mux.Vars(r)["id"])
	})
}

func (h *Handler) addPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var pm domain.PaymentMethod
	if !decode(w, r, &pm) {
		return
	}
	h.withSession(w, r, func(s service.SessionInterface) (interface{}, error) {
		created, err := s.AddPaymentMethod(r.Context(), pm)
		if err != nil {
			return nil, err
		}
		return created, nil
	})
}

func (h *Handler) setDefaultPaymentMethod(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s service.SessionInterface) (interface{}, error) {
		return nil, s.SetDefaultPaymentMethod(r.Context(), mux.Vars(r)["id"])
	})
}

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s service.SessionInterface) (interface{}, error) {
		return nil, s.ToggleFavorite(r.Context(), mux.Vars(r)["itemId"])
	})
}

func (h *Handler) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s service.SessionInterface) (interface{}, error) {
		return nil, s.ToggleWishlist(r.Context(), mux.Vars(r)["itemId"])
	})
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
)

var ErrKeyNotFound = errors.New("key not found")

const (
	UsersKey        = "cafenine.users"
	MenuKey         = "cafenine.menu"
	PromotionsKey   = "cafenine.promotions"
	SupportKey      = "cafenine.support"
	ReservationsKey = "cafenine.reservations"
	OrdersKey       = "cafenine.orders"

	activeUserPrefix = "cafenine.activeUser:"
	cartPrefix       = "cafenine.cart:"
)

// KeyValueStore persists whole serialized values under string keys, last write wins.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

func ActiveUserKey(clientID string) string {
	return activeUserPrefix + clientID
}

func CartKey(clientID string) string {
	return cartPrefix + clientID
}

// SharedKeys lists every key that is not scoped to a client.
func SharedKeys() []string {
	return []string{UsersKey, MenuKey, PromotionsKey, SupportKey, ReservationsKey, OrdersKey}
}

// ReadJSON decodes the value under key into out. A missing key, a backend error or
// malformed JSON all report false and leave out untouched.
func ReadJSON(ctx context.Context, kv KeyValueStore, key string, out any) bool {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			log.Printf("[storage] read %s: %v", key, err)
		}
		return false
	}
	if len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("[storage] discarding malformed value under %s: %v", key, err)
		return false
	}
	return true
}

func WriteJSON(ctx context.Context, kv KeyValueStore, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, payload)
}

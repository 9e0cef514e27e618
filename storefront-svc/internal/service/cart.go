package service

import (
	"context"
	"sync"

	"cafenine/storefront-svc/internal/domain"
	"cafenine/storefront-svc/internal/storage"
)

const TaxRate = 0.08

// Carts opens per-client carts over a shared key-value store.
type Carts struct {
	kv storage.KeyValueStore
}

func NewCarts(kv storage.KeyValueStore) *Carts {
	return &Carts{kv: kv}
}

func (c *Carts) Open(ctx context.Context, clientID string) CartServiceInterface {
	return NewCartService(ctx, c.kv, storage.CartKey(clientID))
}

var _ CartProvider = (*Carts)(nil)

// CartService holds the lines of one in-progress order. Every mutation writes the
// full line list back under its key.
type CartService struct {
	kv  storage.KeyValueStore
	key string

	mu    sync.Mutex
	lines []domain.CartLine
}

func NewCartService(ctx context.Context, kv storage.KeyValueStore, key string) *CartService {
	c := &CartService{kv: kv, key: key}
	var lines []domain.CartLine
	if storage.ReadJSON(ctx, kv, key, &lines) {
		c.lines = sanitizeLines(lines)
	}
	return c
}

// sanitizeLines drops non-positive quantities and merges duplicate item ids that a
// hand-edited or corrupted value may contain.
func sanitizeLines(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines))
	seen := make(map[string]int, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 || line.ItemID == "" {
			continue
		}
		if i, ok := seen[line.ItemID]; ok {
			out[i].Quantity += line.Quantity
			continue
		}
		seen[line.ItemID] = len(out)
		out = append(out, line)
	}
	return out
}

func (c *CartService) indexOf(itemID string) int {
	for i, line := range c.lines {
		if line.ItemID == itemID {
			return i
		}
	}
	return -1
}

func (c *CartService) persist(ctx context.Context) error {
	lines := c.lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return storage.WriteJSON(ctx, c.kv, c.key, lines)
}

func (c *CartService) AddItem(ctx context.Context, line domain.CartLine) error {
	if line.Quantity <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(line.ItemID); i >= 0 {
		c.lines[i].Quantity += line.Quantity
	} else {
		line.AddOns = append([]string(nil), line.AddOns...)
		c.lines = append(c.lines, line)
	}
	return c.persist(ctx)
}

func (c *CartService) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(itemID)
	if i < 0 {
		return nil
	}
	if quantity <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	} else {
		c.lines[i].Quantity = quantity
	}
	return c.persist(ctx)
}

func (c *CartService) RemoveItem(ctx context.Context, itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(itemID)
	if i < 0 {
		return nil
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return c.persist(ctx)
}

func (c *CartService) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	return c.persist(ctx)
}

func (c *CartService) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *CartService) Totals() domain.CartTotals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return computeTotals(c.lines)
}

func computeTotals(lines []domain.CartLine) domain.CartTotals {
	var totals domain.CartTotals
	for _, line := range lines {
		totals.ItemCount += line.Quantity
		totals.Subtotal += line.UnitPrice * float64(line.Quantity)
	}
	totals.Taxes = totals.Subtotal * TaxRate
	totals.Total = totals.Subtotal + totals.Taxes
	return totals
}

var _ CartServiceInterface = (*CartService)(nil)

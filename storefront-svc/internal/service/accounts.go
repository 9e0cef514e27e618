package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"cafenine/storefront-svc/internal/domain"
	"cafenine/storefront-svc/internal/storage"

	"github.com/google/uuid"
)

type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type writeJob struct {
	fn   func(ctx context.Context) error
	ctx  context.Context
	done chan error
}

// Accounts owns the user roster. Reads take the read lock; every roster mutation is
// queued to a single writer goroutine so that check-then-append sequences such as the
// duplicate email check in Signup cannot interleave.
type Accounts struct {
	kv     storage.KeyValueStore
	hasher PasswordHasher
	now    func() time.Time

	mu     sync.RWMutex
	roster []domain.UserProfile

	writes    chan writeJob
	closed    chan struct{}
	closeOnce sync.Once
}

// NewAccounts rehydrates the roster from kv, falling back to seed when the stored
// value is missing, unreadable or empty. Call Close to stop the writer.
func NewAccounts(ctx context.Context, kv storage.KeyValueStore, hasher PasswordHasher, seed []domain.UserProfile) *Accounts {
	a := &Accounts{
		kv:     kv,
		hasher: hasher,
		now:    time.Now,
		writes: make(chan writeJob),
		closed: make(chan struct{}),
	}

	var stored []domain.UserProfile
	if storage.ReadJSON(ctx, kv, storage.UsersKey, &stored) && len(stored) > 0 {
		a.roster = stored
	} else {
		for _, u := range seed {
			a.roster = append(a.roster, u.Clone())
		}
	}

	go a.run()
	return a
}

// SetClock replaces the time source. Intended for tests.
func (a *Accounts) SetClock(now func() time.Time) {
	a.now = now
}

func (a *Accounts) Close() {
	a.closeOnce.Do(func() { close(a.closed) })
}

func (a *Accounts) run() {
	for {
		select {
		case job := <-a.writes:
			a.mu.Lock()
			err := job.fn(job.ctx)
			a.mu.Unlock()
			job.done <- err
		case <-a.closed:
			return
		}
	}
}

// write runs fn on the writer goroutine holding the write lock. Once the writer has
// taken the job its result is always returned, even if ctx ends meanwhile.
func (a *Accounts) write(ctx context.Context, fn func(ctx context.Context) error) error {
	select {
	case <-a.closed:
		return ErrAccountsClosed
	default:
	}
	job := writeJob{fn: fn, ctx: context.WithoutCancel(ctx), done: make(chan error, 1)}
	select {
	case a.writes <- job:
	case <-a.closed:
		return ErrAccountsClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-job.done
}

func (a *Accounts) persistRoster(ctx context.Context) error {
	return storage.WriteJSON(ctx, a.kv, storage.UsersKey, a.roster)
}

func (a *Accounts) indexByID(id string) int {
	for i := range a.roster {
		if a.roster[i].ID == id {
			return i
		}
	}
	return -1
}

func (a *Accounts) indexByEmail(email string) int {
	for i := range a.roster {
		if a.roster[i].Email == email {
			return i
		}
	}
	return -1
}

func (a *Accounts) lookup(id string) (domain.UserProfile, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if i := a.indexByID(id); i >= 0 {
		return a.roster[i].Clone(), true
	}
	return domain.UserProfile{}, false
}

// Users lists the roster without password hashes.
func (a *Accounts) Users() []domain.UserProfile {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]domain.UserProfile, 0, len(a.roster))
	for _, u := range a.roster {
		out = append(out, u.Public())
	}
	return out
}

// Session resolves the active user persisted for clientID. A pointer to an account
// that is no longer in the roster yields an unauthenticated session.
func (a *Accounts) Session(ctx context.Context, clientID string) SessionInterface {
	s := &Session{accounts: a, clientID: clientID}
	raw, err := a.kv.Get(ctx, storage.ActiveUserKey(clientID))
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			log.Printf("[storefront-svc] read active session for %s: %v", clientID, err)
		}
		return s
	}
	if _, ok := a.lookup(string(raw)); ok {
		s.userID = string(raw)
	}
	return s
}

var _ AccountsInterface = (*Accounts)(nil)

// Session is the per-client view of Accounts: at most one active user.
type Session struct {
	accounts *Accounts
	clientID string

	mu     sync.Mutex
	userID string
}

func (s *Session) activeID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Session) setActive(ctx context.Context, id string) error {
	s.mu.Lock()
	s.userID = id
	s.mu.Unlock()

	key := storage.ActiveUserKey(s.clientID)
	if id == "" {
		return s.accounts.kv.Delete(ctx, key)
	}
	return s.accounts.kv.Set(ctx, key, []byte(id))
}

// User returns a copy of the active profile, or false when nobody is signed in.
func (s *Session) User() (domain.UserProfile, bool) {
	id := s.activeID()
	if id == "" {
		return domain.UserProfile{}, false
	}
	return s.accounts.lookup(id)
}

func (s *Session) Signup(ctx context.Context, req SignupRequest) (domain.UserProfile, error) {
	a := s.accounts
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" || req.FullName == "" {
		return domain.UserProfile{}, ErrMissingFields
	}

	a.mu.RLock()
	exists := a.indexByEmail(email) >= 0
	a.mu.RUnlock()
	if exists {
		return domain.UserProfile{}, ErrDuplicateAccount
	}

	hash, err := a.hasher.Hash(email, req.Password)
	if err != nil {
		return domain.UserProfile{}, err
	}

	var created domain.UserProfile
	err = a.write(ctx, func(ctx context.Context) error {
		if a.indexByEmail(email) >= 0 {
			return ErrDuplicateAccount
		}
		created = domain.UserProfile{
			ID:             uuid.NewString(),
			FullName:       req.FullName,
			Email:          email,
			Phone:          req.Phone,
			Role:           domain.RoleMember,
			PasswordHash:   hash,
			Favorites:      []string{},
			Wishlist:       []string{},
			Addresses:      []domain.Address{},
			PaymentMethods: []domain.PaymentMethod{},
			CreatedAt:      a.now().UTC(),
		}
		a.roster = append(a.roster, created)
		if err := a.persistRoster(ctx); err != nil {
			a.roster = a.roster[:len(a.roster)-1]
			return err
		}
		return nil
	})
	if err != nil {
		return domain.UserProfile{}, err
	}

	if err := s.setActive(context.WithoutCancel(ctx), created.ID); err != nil {
		return domain.UserProfile{}, err
	}
	log.Printf("[storefront-svc] account created id=%s", created.ID)
	return created.Clone(), nil
}

func (s *Session) Login(ctx context.Context, email, password string) (domain.UserProfile, error) {
	a := s.accounts
	email = normalizeEmail(email)

	a.mu.RLock()
	var candidate domain.UserProfile
	found := false
	if i := a.indexByEmail(email); i >= 0 {
		candidate = a.roster[i].Clone()
		found = true
	}
	a.mu.RUnlock()

	if !found || !a.hasher.Verify(candidate.PasswordHash, email, password) {
		return domain.UserProfile{}, ErrInvalidCredentials
	}

	var signedIn domain.UserProfile
	err := a.write(ctx, func(ctx context.Context) error {
		i := a.indexByID(candidate.ID)
		if i < 0 {
			return ErrInvalidCredentials
		}
		now := a.now().UTC()
		a.roster[i].LastLogin = &now
		signedIn = a.roster[i].Clone()
		return a.persistRoster(ctx)
	})
	if err != nil {
		return domain.UserProfile{}, err
	}

	if err := s.setActive(context.WithoutCancel(ctx), signedIn.ID); err != nil {
		return domain.UserProfile{}, err
	}
	return signedIn, nil
}

// Logout clears the active session marker; the roster is left untouched.
func (s *Session) Logout(ctx context.Context) error {
	return s.setActive(ctx, "")
}

// mutate applies fn to the active user's roster entry on the writer goroutine and
// persists the roster. Without an active session it does nothing.
func (s *Session) mutate(ctx context.Context, fn func(u *domain.UserProfile) error) error {
	id := s.activeID()
	if id == "" {
		return nil
	}
	a := s.accounts
	return a.write(ctx, func(ctx context.Context) error {
		i := a.indexByID(id)
		if i < 0 {
			return nil
		}
		before := a.roster[i].Clone()
		if err := fn(&a.roster[i]); err != nil {
			a.roster[i] = before
			return err
		}
		if err := a.persistRoster(ctx); err != nil {
			a.roster[i] = before
			return err
		}
		return nil
	})
}

func (s *Session) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) error {
	return s.mutate(ctx, func(u *domain.UserProfile) error {
		if update.FullName != nil {
			u.FullName = *update.FullName
		}
		if update.Phone != nil {
			u.Phone = *update.Phone
		}
		if update.AvatarColor != nil {
			u.AvatarColor = *update.AvatarColor
		}
		if update.Preferences != nil {
			p := *update.Preferences
			u.Preferences = &p
		}
		return nil
	})
}

func clearDefaultAddresses(u *domain.UserProfile) {
	for i := range u.Addresses {
		u.Addresses[i].IsDefault = false
	}
}

func (s *Session) AddAddress(ctx context.Context, address domain.Address) (domain.Address, error) {
	if address.ID == "" {
		address.ID = uuid.NewString()
	}
	err := s.mutate(ctx, func(u *domain.UserProfile) error {
		if address.IsDefault {
			clearDefaultAddresses(u)
		}
		u.Addresses = append(u.Addresses, address)
		return nil
	})
	return address, err
}

func (s *Session) UpdateAddress(ctx context.Context, addressID string, update domain.AddressUpdate) error {
	return s.mutate(ctx, func(u *domain.UserProfile) error {
		for i := range u.Addresses {
			if u.Addresses[i].ID != addressID {
				continue
			}
			if update.IsDefault != nil && *update.IsDefault {
				clearDefaultAddresses(u)
			}
			applyAddressUpdate(&u.Addresses[i], update)
		}
		return nil
	})
}

func applyAddressUpdate(addr *domain.Address, update domain.AddressUpdate) {
	if update.Label != nil {
		addr.Label = *update.Label
	}
	if update.Line1 != nil {
		addr.Line1 = *update.Line1
	}
	if update.Line2 != nil {
		addr.Line2 = *update.Line2
	}
	if update.City != nil {
		addr.City = *update.City
	}
	if update.State != nil {
		addr.State = *update.State
	}
	if update.PostalCode != nil {
		addr.PostalCode = *update.PostalCode
	}
	if update.Country != nil {
		addr.Country = *update.Country
	}
	if update.IsDefault != nil {
		addr.IsDefault = *update.IsDefault
	}
}

// SetDefaultAddress marks addressID as the only default. Unknown ids change nothing.
func (s *Session) SetDefaultAddress(ctx context.Context, addressID string) error {
	return s.mutate(ctx, func(u *domain.UserProfile) error {
		if !hasAddress(u.Addresses, addressID) {
			return nil
		}
		for i := range u.Addresses {
			u.Addresses[i].IsDefault = u.Addresses[i].ID == addressID
		}
		return nil
	})
}

func hasAddress(addresses []domain.Address, id string) bool {
	for _, a := range addresses {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (s *Session) AddPaymentMethod(ctx context.Context, method domain.PaymentMethod) (domain.PaymentMethod, error) {
	if method.ID == "" {
		method.ID = uuid.NewString()
	}
	err := s.mutate(ctx, func(u *domain.UserProfile) error {
		if method.IsDefault {
			for i := range u.PaymentMethods {
				u.PaymentMethods[i].IsDefault = false
			}
		}
		u.PaymentMethods = append(u.PaymentMethods, method)
		return nil
	})
	return method, err
}

// SetDefaultPaymentMethod clears the default flag on every other method before
// setting it on methodID. Unknown ids change nothing.
func (s *Session) SetDefaultPaymentMethod(ctx context.Context, methodID string) error {
	return s.mutate(ctx, func(u *domain.UserProfile) error {
		known := false
		for _, m := range u.PaymentMethods {
			if m.ID == methodID {
				known = true
				break
			}
		}
		if !known {
			return nil
		}
		for i := range u.PaymentMethods {
			u.PaymentMethods[i].IsDefault = u.PaymentMethods[i].ID == methodID
		}
		return nil
	})
}

func toggle(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}

func (s *Session) ToggleFavorite(ctx context.Context, menuItemID string) error {
	return s.mutate(ctx, func(u *domain.UserProfile) error {
		u.Favorites = toggle(u.Favorites, menuItemID)
		return nil
	})
}

func (s *Session) ToggleWishlist(ctx context.Context, menuItemID string) error {
	return s.mutate(ctx, func(u *domain.UserProfile) error {
		u.Wishlist = toggle(u.Wishlist, menuItemID)
		return nil
	})
}

var _ SessionInterface = (*Session)(nil)

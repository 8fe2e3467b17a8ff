package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Lixing-Zhang/pos-checkout/internal/cart"
	"github.com/Lixing-Zhang/pos-checkout/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrSessionNotFound  = errors.New("checkout session not found")
	ErrInvalidDelta     = errors.New("delta must be non-zero")
	ErrInvalidIndex     = cart.ErrInvalidIndex
	ErrQuantityOverflow = cart.ErrQuantityOverflow
)

// RegisterClaimer reserves and frees registers for checkout sessions
type RegisterClaimer interface {
	Claim(ctx context.Context, id int) (*models.Register, error)
	Release(ctx context.Context, id int) error
}

// SeedRepository supplies the initial items of every new cart
type SeedRepository interface {
	SeedItems(ctx context.Context) ([]cart.LineItem, error)
}

// CheckoutSession is one open checkout on a register. It exclusively owns
// its cart store for its whole lifetime.
type CheckoutSession struct {
	ID         string
	RegisterID int
	OpenedAt   time.Time

	store       *cart.Store
	unsubscribe func()
}

// Cart returns the current cart of the session
func (s *CheckoutSession) Cart() cart.Cart {
	return s.store.Snapshot()
}

// Total returns the current order total of the session
func (s *CheckoutSession) Total() decimal.Decimal {
	return s.store.Total()
}

// AdjustOutcome is the result of a quantity adjustment together with the
// cart and total after it.
type AdjustOutcome struct {
	Result cart.Result
	Cart   cart.Cart
	Total  decimal.Decimal
}

// Summary is the order summary of a session
type Summary struct {
	ItemCount     int
	TotalQuantity int
	Total         decimal.Decimal
}

// CheckoutService owns every open checkout session
type CheckoutService struct {
	registers RegisterClaimer
	seeds     SeedRepository
	log       *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*CheckoutSession
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(registers RegisterClaimer, seeds SeedRepository, log *slog.Logger) *CheckoutService {
	return &CheckoutService{
		registers: registers,
		seeds:     seeds,
		log:       log,
		sessions:  make(map[string]*CheckoutSession),
	}
}

// OpenSession claims the register and starts a checkout with the seed cart
func (s *CheckoutService) OpenSession(ctx context.Context, registerID int) (*CheckoutSession, error) {
	if _, err := s.registers.Claim(ctx, registerID); err != nil {
		return nil, err
	}

	seed, err := s.seedCart(ctx)
	if err != nil {
		if releaseErr := s.registers.Release(ctx, registerID); releaseErr != nil {
			s.log.Error("failed to release register", "register_id", registerID, "error", releaseErr)
		}
		return nil, err
	}

	session := &CheckoutSession{
		ID:         uuid.New().String(),
		RegisterID: registerID,
		OpenedAt:   time.Now().UTC(),
		store:      cart.NewStore(seed),
	}
	session.unsubscribe = session.store.Subscribe(s.cartChanged(session.ID))

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.log.Info("checkout session opened",
		"session_id", session.ID,
		"register_id", registerID,
		"items_count", seed.Len(),
		"total", cart.FormatMoney(cart.Total(seed)),
	)

	return session, nil
}

// GetSession returns an open session by ID
func (s *CheckoutService) GetSession(ctx context.Context, id string) (*CheckoutSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// AdjustQuantity changes the quantity of the line item at index by delta.
// A change that would drop the quantity below one is reported as
// cart.RejectedBelowMinimum with a nil error.
func (s *CheckoutService) AdjustQuantity(ctx context.Context, sessionID string, index, delta int) (*AdjustOutcome, error) {
	if delta == 0 {
		return nil, ErrInvalidDelta
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	current, result, err := session.store.Adjust(index, delta)
	if err != nil {
		return nil, err
	}

	return &AdjustOutcome{
		Result: result,
		Cart:   current,
		Total:  cart.Total(current),
	}, nil
}

// Summary returns the order summary of a session
func (s *CheckoutService) Summary(ctx context.Context, sessionID string) (*Summary, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	current := session.store.Snapshot()
	return &Summary{
		ItemCount:     current.Len(),
		TotalQuantity: current.TotalQuantity(),
		Total:         cart.Total(current),
	}, nil
}

// CloseSession discards the session cart and frees its register
func (s *CheckoutService) CloseSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	session.unsubscribe()

	if err := s.registers.Release(ctx, session.RegisterID); err != nil {
		return fmt.Errorf("failed to release register %d: %w", session.RegisterID, err)
	}

	s.log.Info("checkout session closed", "session_id", sessionID, "register_id", session.RegisterID)
	return nil
}

func (s *CheckoutService) seedCart(ctx context.Context) (cart.Cart, error) {
	items, err := s.seeds.SeedItems(ctx)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("failed to load seed items: %w", err)
	}

	seed, err := cart.New(items...)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("invalid seed cart: %w", err)
	}
	return seed, nil
}

// cartChanged logs the re-derived total after every applied adjustment
func (s *CheckoutService) cartChanged(sessionID string) func(cart.Cart) {
	return func(c cart.Cart) {
		s.log.Debug("cart updated",
			"session_id", sessionID,
			"items_count", c.Len(),
			"total_quantity", c.TotalQuantity(),
			"total", cart.FormatMoney(cart.Total(c)),
		)
	}
}

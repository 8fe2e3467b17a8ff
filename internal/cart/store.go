package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Store owns the cart of one checkout session. Adjust is the only way to
// change it; everything else reads snapshots.
type Store struct {
	mu        sync.Mutex
	cart      Cart
	observers map[int]func(Cart)
	order     []int
	nextID    int
}

// NewStore creates a store seeded with the given cart
func NewStore(seed Cart) *Store {
	return &Store{
		cart:      seed,
		observers: make(map[int]func(Cart)),
	}
}

// Snapshot returns the current cart
func (s *Store) Snapshot() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// Total returns the order total of the current cart
func (s *Store) Total() decimal.Decimal {
	return Total(s.Snapshot())
}

// Adjust applies a quantity change to the line item at index and returns
// the cart as it stands afterwards. Observers are notified only when the
// change is applied.
func (s *Store) Adjust(index, delta int) (Cart, Result, error) {
	s.mu.Lock()
	next, result, err := Adjust(s.cart, index, delta)
	if err != nil || result != Applied {
		s.mu.Unlock()
		return next, result, err
	}
	s.cart = next
	observers := s.snapshotObservers()
	s.mu.Unlock()

	for _, fn := range observers {
		fn(next)
	}
	return next, result, nil
}

// Subscribe registers fn to be called with the new cart after every
// applied adjustment. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Cart)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.order = append(s.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.observers, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// must hold s.mu
func (s *Store) snapshotObservers() []func(Cart) {
	fns := make([]func(Cart), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.observers[id])
	}
	return fns
}

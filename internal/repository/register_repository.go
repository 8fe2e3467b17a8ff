package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Lixing-Zhang/pos-checkout/internal/models"
)

var (
	ErrRegisterNotFound = errors.New("register not found")
)

// RegisterRepository defines the interface for register data access
type RegisterRepository interface {
	GetAll(ctx context.Context) ([]models.Register, error)
	GetByID(ctx context.Context, id int) (*models.Register, error)
	SetStatus(ctx context.Context, id int, status models.RegisterStatus) error
	// CompareAndSetStatus sets status to next only if it is currently want
	CompareAndSetStatus(ctx context.Context, id int, want, next models.RegisterStatus) (bool, error)
}

// InMemoryRegisterRepository implements RegisterRepository with in-memory storage
type InMemoryRegisterRepository struct {
	mu        sync.RWMutex
	registers map[int]models.Register
}

// NewInMemoryRegisterRepository creates a repository with count registers
// named "Register 1".."Register N". IDs in inUse start out in use.
func NewInMemoryRegisterRepository(count int, inUse []int) *InMemoryRegisterRepository {
	busy := make(map[int]bool, len(inUse))
	for _, id := range inUse {
		busy[id] = true
	}

	registers := make(map[int]models.Register, count)
	for id := 1; id <= count; id++ {
		status := models.RegisterAvailable
		if busy[id] {
			status = models.RegisterInUse
		}
		registers[id] = models.Register{
			ID:     id,
			Name:   fmt.Sprintf("Register %d", id),
			Status: status,
		}
	}

	return &InMemoryRegisterRepository{
		registers: registers,
	}
}

// GetAll returns all registers ordered by ID
func (r *InMemoryRegisterRepository) GetAll(ctx context.Context) ([]models.Register, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	registers := make([]models.Register, 0, len(r.registers))
	for _, register := range r.registers {
		registers = append(registers, register)
	}
	sort.Slice(registers, func(i, j int) bool {
		return registers[i].ID < registers[j].ID
	})
	return registers, nil
}

// GetByID returns a register by its ID
func (r *InMemoryRegisterRepository) GetByID(ctx context.Context, id int) (*models.Register, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	register, exists := r.registers[id]
	if !exists {
		return nil, ErrRegisterNotFound
	}
	return &register, nil
}

// SetStatus updates the status of a register
func (r *InMemoryRegisterRepository) SetStatus(ctx context.Context, id int, status models.RegisterStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	register, exists := r.registers[id]
	if !exists {
		return ErrRegisterNotFound
	}
	register.Status = status
	r.registers[id] = register
	return nil
}

// CompareAndSetStatus atomically moves a register from want to next.
// It returns false without changing anything if the current status is not want.
func (r *InMemoryRegisterRepository) CompareAndSetStatus(ctx context.Context, id int, want, next models.RegisterStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	register, exists := r.registers[id]
	if !exists {
		return false, ErrRegisterNotFound
	}
	if register.Status != want {
		return false, nil
	}
	register.Status = next
	r.registers[id] = register
	return true, nil
}

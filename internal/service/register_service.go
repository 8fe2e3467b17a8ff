package service

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/pos-checkout/internal/models"
	"github.com/Lixing-Zhang/pos-checkout/internal/repository"
)

var (
	ErrRegisterNotFound = repository.ErrRegisterNotFound
	ErrRegisterInUse    = errors.New("register is already in use")
)

// RegisterService handles register selection
type RegisterService struct {
	repo repository.RegisterRepository
}

// NewRegisterService creates a new register service
func NewRegisterService(repo repository.RegisterRepository) *RegisterService {
	return &RegisterService{
		repo: repo,
	}
}

// ListRegisters returns every register with its current status
func (s *RegisterService) ListRegisters(ctx context.Context) ([]models.Register, error) {
	return s.repo.GetAll(ctx)
}

// Claim marks an available register as in use
func (s *RegisterService) Claim(ctx context.Context, id int) (*models.Register, error) {
	ok, err := s.repo.CompareAndSetStatus(ctx, id, models.RegisterAvailable, models.RegisterInUse)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRegisterInUse
	}
	return s.repo.GetByID(ctx, id)
}

// Release marks a register as available again
func (s *RegisterService) Release(ctx context.Context, id int) error {
	return s.repo.SetStatus(ctx, id, models.RegisterAvailable)
}

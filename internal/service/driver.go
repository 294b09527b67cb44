package service

import (
	"context"
	"fmt"

	"github.com/boxbox-club/boxbox-api/internal/domain"
	"github.com/boxbox-club/boxbox-api/internal/repository"
)

var (
	ErrDriverNotFound      = repository.ErrDriverNotFound
	ErrConstructorNotFound = repository.ErrConstructorNotFound
)

type DriverRepository interface {
	Create(ctx context.Context, driver domain.Driver) (domain.Driver, error)
	FindByCode(ctx context.Context, code string) (domain.Driver, error)
	FindAll(ctx context.Context) ([]domain.Driver, error)
	CreateConstructor(ctx context.Context, constructor domain.Constructor) (domain.Constructor, error)
	FindConstructorByID(ctx context.Context, id uint) (domain.Constructor, error)
}

type DriverService struct {
	repo DriverRepository
}

func NewDriverService(repo DriverRepository) *DriverService {
	return &DriverService{
		repo: repo,
	}
}

func (s *DriverService) CreateDriver(ctx context.Context, driver domain.Driver) (domain.Driver, error) {
	if driver.Constructor != nil {
		constructor, err := s.repo.FindConstructorByID(ctx, driver.Constructor.ID)
		if err != nil {
			return domain.Driver{}, fmt.Errorf("s.repo.FindConstructorByID -> %w", err)
		}
		driver.Constructor = &constructor
	}

	created, err := s.repo.Create(ctx, driver)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *DriverService) GetDriver(ctx context.Context, code string) (domain.Driver, error) {
	driver, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("s.repo.FindByCode -> %w", err)
	}

	return driver, nil
}

func (s *DriverService) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	drivers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return drivers, nil
}

func (s *DriverService) CreateConstructor(ctx context.Context, constructor domain.Constructor) (domain.Constructor, error) {
	created, err := s.repo.CreateConstructor(ctx, constructor)
	if err != nil {
		return domain.Constructor{}, fmt.Errorf("s.repo.CreateConstructor -> %w", err)
	}

	return created, nil
}

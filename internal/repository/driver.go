package repository

import (
	"context"
	"fmt"

	"github.com/boxbox-club/boxbox-api/internal/domain"
	"github.com/boxbox-club/boxbox-api/internal/repository/dao"
)

var (
	ErrDriverNotFound      = dao.ErrDriverNotFound
	ErrConstructorNotFound = dao.ErrConstructorNotFound
)

type DriverDAO interface {
	Insert(ctx context.Context, driver dao.Driver) (dao.Driver, error)
	FindByCode(ctx context.Context, code string) (dao.Driver, error)
	FindAll(ctx context.Context) ([]dao.Driver, error)
	CountByCodes(ctx context.Context, codes []string) (int64, error)
	InsertConstructor(ctx context.Context, constructor dao.Constructor) (dao.Constructor, error)
	FindConstructorByID(ctx context.Context, id uint) (dao.Constructor, error)
}

type DriverRepository struct {
	dao DriverDAO
}

func NewDriverRepository(dao DriverDAO) *DriverRepository {
	return &DriverRepository{
		dao: dao,
	}
}

func (r *DriverRepository) Create(ctx context.Context, driver domain.Driver) (domain.Driver, error) {
	daoDriver := dao.Driver{
		Code:        driver.Code,
		Name:        driver.Name,
		Nationality: driver.Nationality,
		Number:      driver.Number,
	}
	if driver.Constructor != nil {
		daoDriver.ConstructorID = &driver.Constructor.ID
	}

	created, err := r.dao.Insert(ctx, daoDriver)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *DriverRepository) FindByCode(ctx context.Context, code string) (domain.Driver, error) {
	found, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("r.dao.FindByCode -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *DriverRepository) FindAll(ctx context.Context) ([]domain.Driver, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	drivers := make([]domain.Driver, 0, len(found))
	for _, d := range found {
		drivers = append(drivers, r.daoToDomain(d))
	}

	return drivers, nil
}

// AllExist reports whether every given code names a known driver.
func (r *DriverRepository) AllExist(ctx context.Context, codes []string) (bool, error) {
	if len(codes) == 0 {
		return true, nil
	}

	distinct := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		distinct[c] = struct{}{}
	}
	unique := make([]string, 0, len(distinct))
	for c := range distinct {
		unique = append(unique, c)
	}

	count, err := r.dao.CountByCodes(ctx, unique)
	if err != nil {
		return false, fmt.Errorf("r.dao.CountByCodes -> %w", err)
	}

	return count == int64(len(unique)), nil
}

func (r *DriverRepository) CreateConstructor(ctx context.Context, constructor domain.Constructor) (domain.Constructor, error) {
	created, err := r.dao.InsertConstructor(ctx, dao.Constructor{
		Name:    constructor.Name,
		Country: constructor.Country,
	})
	if err != nil {
		return domain.Constructor{}, fmt.Errorf("r.dao.InsertConstructor -> %w", err)
	}

	return domain.Constructor{ID: created.ID, Name: created.Name, Country: created.Country}, nil
}

func (r *DriverRepository) FindConstructorByID(ctx context.Context, id uint) (domain.Constructor, error) {
	found, err := r.dao.FindConstructorByID(ctx, id)
	if err != nil {
		return domain.Constructor{}, fmt.Errorf("r.dao.FindConstructorByID -> %w", err)
	}

	return domain.Constructor{ID: found.ID, Name: found.Name, Country: found.Country}, nil
}

func (r *DriverRepository) daoToDomain(d dao.Driver) domain.Driver {
	driver := domain.Driver{
		Code:        d.Code,
		Name:        d.Name,
		Nationality: d.Nationality,
		Number:      d.Number,
	}
	if d.Constructor != nil {
		driver.Constructor = &domain.Constructor{
			ID:      d.Constructor.ID,
			Name:    d.Constructor.Name,
			Country: d.Constructor.Country,
		}
	}

	return driver
}

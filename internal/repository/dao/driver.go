package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrDriverNotFound      = errors.New("driver not found")
	ErrConstructorNotFound = errors.New("constructor not found")
)

type Driver struct {
	Code string `gorm:"primaryKey;size:64"`

	Name        string `gorm:"not null"`
	Nationality string
	Number      int

	ConstructorID *uint
	Constructor   *Constructor `gorm:"foreignKey:ConstructorID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Constructor struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"unique;not null"`
	Country string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type DriverDAO struct {
	db *gorm.DB
}

func NewDriverDAO(db *gorm.DB) *DriverDAO {
	return &DriverDAO{
		db: db,
	}
}

func (d *DriverDAO) Insert(ctx context.Context, driver Driver) (Driver, error) {
	result := d.db.WithContext(ctx).Create(&driver)
	if result.Error != nil {
		return Driver{}, result.Error
	}

	return driver, nil
}

func (d *DriverDAO) FindByCode(ctx context.Context, code string) (Driver, error) {
	var driver Driver

	result := d.db.WithContext(ctx).Preload("Constructor").First(&driver, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Driver{}, ErrDriverNotFound
		}

		return Driver{}, result.Error
	}

	return driver, nil
}

func (d *DriverDAO) FindAll(ctx context.Context) ([]Driver, error) {
	var drivers []Driver

	result := d.db.WithContext(ctx).Preload("Constructor").Order("code").Find(&drivers)
	if result.Error != nil {
		return nil, result.Error
	}

	return drivers, nil
}

// CountByCodes returns how many of the given codes exist, for cheap
// existence checks over a whole guess at once.
func (d *DriverDAO) CountByCodes(ctx context.Context, codes []string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Driver{}).Where("code IN ?", codes).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *DriverDAO) InsertConstructor(ctx context.Context, constructor Constructor) (Constructor, error) {
	result := d.db.WithContext(ctx).Create(&constructor)
	if result.Error != nil {
		return Constructor{}, result.Error
	}

	return constructor, nil
}

func (d *DriverDAO) FindConstructorByID(ctx context.Context, id uint) (Constructor, error) {
	var constructor Constructor

	result := d.db.WithContext(ctx).First(&constructor, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Constructor{}, ErrConstructorNotFound
		}

		return Constructor{}, result.Error
	}

	return constructor, nil
}

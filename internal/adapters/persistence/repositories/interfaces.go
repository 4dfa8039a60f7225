package repositories

import (
	"context"

	"fuelpass/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// OrderFilters carries the optional fuel-order query filters. Nil / empty
// fields impose no constraint; set fields combine with logical AND.
type OrderFilters struct {
	CreatedByID *uint
	Status      *models.OrderStatus
	AirportIcao string
	TailNumber  string // substring match
}

// OrderRepository defines fuel order repository interface
type OrderRepository interface {
	Create(ctx context.Context, order *models.FuelOrder) error
	GetByID(ctx context.Context, id string) (*models.FuelOrder, error)
	List(ctx context.Context, filters OrderFilters, offset, limit int, sortBy, sortDir string) ([]*models.FuelOrder, int64, error)
	// UpdateStatus performs a compare-and-set of the order status keyed on
	// the current status. Returns the number of rows updated: zero means a
	// concurrent writer moved the order first (or the order is gone).
	UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error)
}

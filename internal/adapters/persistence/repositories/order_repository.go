package repositories

import (
	"context"
	"time"

	"fuelpass/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// sortColumns whitelists the columns orders may be sorted by. Requests
// asking for anything else fall back to created_at.
var sortColumns = map[string]string{
	"created_at":            "created_at",
	"updated_at":            "updated_at",
	"status":                "status",
	"tail_number":           "tail_number",
	"airport_icao_code":     "airport_icao_code",
	"requested_fuel_volume": "requested_fuel_volume",
	"delivery_window_start": "delivery_window_start",
}

// orderRepository implements OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new fuel order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create creates a new fuel order
func (r *orderRepository) Create(ctx context.Context, order *models.FuelOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// GetByID gets a fuel order by ID with its creator
func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.FuelOrder, error) {
	var order models.FuelOrder
	err := r.db.WithContext(ctx).Preload("Creator").Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List lists fuel orders matching the filters, with pagination and sorting
func (r *orderRepository) List(ctx context.Context, filters OrderFilters, offset, limit int, sortBy, sortDir string) ([]*models.FuelOrder, int64, error) {
	var orders []*models.FuelOrder
	var total int64

	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.FuelOrder{}), filters)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	if sortDir != "asc" {
		sortDir = "desc"
	}

	err := r.applyFilters(r.db.WithContext(ctx), filters).
		Preload("Creator").
		Order(column + " " + sortDir).
		Offset(offset).
		Limit(limit).
		Find(&orders).Error

	return orders, total, err
}

// UpdateStatus compare-and-sets the order status keyed on the current status
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.FuelOrder{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// Count counts all fuel orders
func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FuelOrder{}).Count(&count).Error
	return count, err
}

// CountByStatus counts fuel orders in the given status
func (r *orderRepository) CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FuelOrder{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// applyFilters adds the optional filter clauses to a query
func (r *orderRepository) applyFilters(query *gorm.DB, filters OrderFilters) *gorm.DB {
	if filters.CreatedByID != nil {
		query = query.Where("created_by_id = ?", *filters.CreatedByID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.AirportIcao != "" {
		query = query.Where("airport_icao_code = ?", filters.AirportIcao)
	}
	if filters.TailNumber != "" {
		query = query.Where("tail_number LIKE ?", "%"+filters.TailNumber+"%")
	}
	return query
}

package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"fuelpass/internal/adapters/persistence/models"
	"fuelpass/internal/adapters/persistence/repositories"
	"fuelpass/internal/core/domain"

	"gorm.io/gorm"
)

// MaxDeliveryWindow is the longest allowed delivery window. A span of
// exactly 24h is valid; anything longer is rejected.
const MaxDeliveryWindow = 24 * time.Hour

// MaxFuelVolume is the largest orderable fuel volume in gallons.
const MaxFuelVolume = 100000.0

// OrderService handles the fuel order lifecycle
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new fuel order service
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// CreateOrderInput represents fuel order creation input
type CreateOrderInput struct {
	TailNumber          string    `json:"tail_number"`
	AirportIcaoCode     string    `json:"airport_icao_code"`
	RequestedFuelVolume float64   `json:"requested_fuel_volume"`
	DeliveryWindowStart time.Time `json:"delivery_window_start"`
	DeliveryWindowEnd   time.Time `json:"delivery_window_end"`
	Notes               string    `json:"notes"`
}

// ListOptions carries the caller-supplied query options for order listings.
type ListOptions struct {
	Status      string
	AirportIcao string
	TailNumber  string
	Offset      int
	Limit       int
	SortBy      string
	SortDir     string
}

// Create validates the delivery window and creates a PENDING order owned by
// the given user. Creation is open to any authenticated principal;
// only status transitions are manager-gated.
func (s *OrderService) Create(ctx context.Context, input *CreateOrderInput, user *models.User) (*models.FuelOrder, error) {
	if !input.DeliveryWindowEnd.After(input.DeliveryWindowStart) {
		return nil, domain.NewValidationError("delivery_window_end", "must be after delivery window start")
	}
	if input.DeliveryWindowEnd.Sub(input.DeliveryWindowStart) > MaxDeliveryWindow {
		return nil, domain.NewValidationError("delivery_window_end", "delivery window cannot exceed 24 hours")
	}
	if input.RequestedFuelVolume <= 0 || input.RequestedFuelVolume > MaxFuelVolume {
		return nil, domain.NewValidationError("requested_fuel_volume", "must be greater than 0 and at most 100000")
	}

	order := &models.FuelOrder{
		TailNumber:          input.TailNumber,
		AirportIcaoCode:     input.AirportIcaoCode,
		RequestedFuelVolume: input.RequestedFuelVolume,
		DeliveryWindowStart: input.DeliveryWindowStart,
		DeliveryWindowEnd:   input.DeliveryWindowEnd,
		Status:              models.StatusPending,
		CreatedByID:         user.ID,
		Notes:               input.Notes,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("fuel order created: %s (%s at %s) by user %d",
		order.ID, order.TailNumber, order.AirportIcaoCode, user.ID)

	return order, nil
}

// Get fetches an order by ID, enforcing ownership for operators. An
// operator asking for another operator's order gets an access-denied
// outcome, not a not-found one.
func (s *OrderService) Get(ctx context.Context, id string, user *models.User) (*models.FuelOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if user.IsOperator() && order.CreatedByID != user.ID {
		return nil, domain.ErrAccessDenied
	}

	return order, nil
}

// List queries orders with the supplied filters, scoped by role: operators
// only ever see their own orders regardless of the filters they pass,
// managers see everything.
func (s *OrderService) List(ctx context.Context, opts ListOptions, user *models.User) ([]*models.FuelOrder, int64, error) {
	filters, err := s.buildFilters(opts, user)
	if err != nil {
		return nil, 0, err
	}
	return s.orderRepo.List(ctx, filters, opts.Offset, opts.Limit, opts.SortBy, opts.SortDir)
}

// ListMine lists the orders created by the user.
func (s *OrderService) ListMine(ctx context.Context, opts ListOptions, user *models.User) ([]*models.FuelOrder, int64, error) {
	filters := repositories.OrderFilters{CreatedByID: &user.ID}
	return s.orderRepo.List(ctx, filters, opts.Offset, opts.Limit, opts.SortBy, opts.SortDir)
}

// Transition moves an order to a new status. The (current, new) pair must
// appear in the transition table, and the write is a compare-and-set on the
// current status so concurrent transitions on the same order cannot
// silently overwrite each other: the losing writer gets ErrConflict.
func (s *OrderService) Transition(ctx context.Context, id string, newStatus models.OrderStatus, user *models.User) (*models.FuelOrder, error) {
	if !newStatus.IsValid() {
		return nil, domain.NewValidationError("status", "unknown order status")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return nil, &domain.IllegalTransitionError{From: order.Status, To: newStatus}
	}

	rows, err := s.orderRepo.UpdateStatus(ctx, id, order.Status, newStatus)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrConflict
	}

	log.Printf("fuel order %s: %s -> %s by user %d", id, order.Status, newStatus, user.ID)

	return s.orderRepo.GetByID(ctx, id)
}

// Statistics returns total and per-status order counts.
func (s *OrderService) Statistics(ctx context.Context) (map[string]int64, error) {
	total, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := map[string]int64{"total_orders": total}
	for _, status := range []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusCompleted,
		models.StatusCancelled,
	} {
		count, err := s.orderRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats[strings.ToLower(string(status))+"_orders"] = count
	}

	return stats, nil
}

func (s *OrderService) buildFilters(opts ListOptions, user *models.User) (repositories.OrderFilters, error) {
	filters := repositories.OrderFilters{
		AirportIcao: opts.AirportIcao,
		TailNumber:  opts.TailNumber,
	}

	if opts.Status != "" {
		status := models.OrderStatus(opts.Status)
		if !status.IsValid() {
			return filters, domain.NewValidationError("status", "unknown order status")
		}
		filters.Status = &status
	}

	// Operators never see other operators' orders, even when they supply
	// an explicit creator filter.
	if user.IsOperator() {
		filters.CreatedByID = &user.ID
	}

	return filters, nil
}

package handlers

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"fuelpass/internal/adapters/http/middleware"
	"fuelpass/internal/adapters/persistence/models"
	"fuelpass/internal/core/domain"
	"fuelpass/internal/core/services"
	"fuelpass/internal/pkg/pagination"
	"fuelpass/internal/pkg/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
)

var (
	tailNumberPattern = regexp.MustCompile(`^[A-Z0-9-]{1,10}$`)
	icaoCodePattern   = regexp.MustCompile(`^[A-Z]{4}$`)
)

// OrderHandler handles fuel order endpoints
type OrderHandler struct {
	orderService *services.OrderService
}

// NewOrderHandler creates a new fuel order handler
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrderRequest represents fuel order creation request body
type CreateOrderRequest struct {
	TailNumber          string    `json:"tail_number"`
	AirportIcaoCode     string    `json:"airport_icao_code"`
	RequestedFuelVolume float64   `json:"requested_fuel_volume"`
	DeliveryWindowStart time.Time `json:"delivery_window_start"`
	DeliveryWindowEnd   time.Time `json:"delivery_window_end"`
	Notes               string    `json:"notes"`
}

// Validate validates the creation request fields
func (r CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TailNumber, validation.Required,
			validation.Match(tailNumberPattern).Error("must be 1-10 uppercase letters, digits or dashes")),
		validation.Field(&r.AirportIcaoCode, validation.Required,
			validation.Match(icaoCodePattern).Error("must be a 4-letter ICAO code")),
		validation.Field(&r.RequestedFuelVolume, validation.Required,
			validation.Min(0.0).Exclusive(), validation.Max(services.MaxFuelVolume)),
		validation.Field(&r.DeliveryWindowStart, validation.Required),
		validation.Field(&r.DeliveryWindowEnd, validation.Required),
		validation.Field(&r.Notes, validation.Length(0, 500)),
	)
}

// UpdateStatusRequest represents a status transition request body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Validate validates the transition request fields
func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required),
	)
}

// Create handles fuel order creation
// @Summary Create fuel order
// @Description Create a new PENDING fuel order owned by the caller
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateOrderRequest true "Order details"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.TailNumber = strings.ToUpper(strings.TrimSpace(req.TailNumber))
	req.AirportIcaoCode = strings.ToUpper(strings.TrimSpace(req.AirportIcaoCode))
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, err.Error())
	}

	input := &services.CreateOrderInput{
		TailNumber:          req.TailNumber,
		AirportIcaoCode:     req.AirportIcaoCode,
		RequestedFuelVolume: req.RequestedFuelVolume,
		DeliveryWindowStart: req.DeliveryWindowStart,
		DeliveryWindowEnd:   req.DeliveryWindowEnd,
		Notes:               req.Notes,
	}

	order, err := h.orderService.Create(c.Context(), input, middleware.CurrentUser(c))
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return response.BadRequest(c, vErr.Error())
		}
		return response.InternalServerError(c, "Failed to create order")
	}

	return response.Created(c, "Order created successfully", order)
}

// List handles fuel order listing with filters and pagination
// @Summary List fuel orders
// @Description List orders; operators only see their own
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Filter by status"
// @Param airport_icao_code query string false "Filter by airport"
// @Param tail_number query string false "Filter by tail number"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	opts := services.ListOptions{
		Status:      c.Query("status"),
		AirportIcao: strings.ToUpper(c.Query("airport_icao_code")),
		TailNumber:  strings.ToUpper(c.Query("tail_number")),
		Offset:      params.Offset,
		Limit:       params.Limit,
		SortBy:      params.SortBy,
		SortDir:     params.SortDir,
	}

	orders, total, err := h.orderService.List(c.Context(), opts, middleware.CurrentUser(c))
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return response.BadRequest(c, vErr.Error())
		}
		return response.InternalServerError(c, "Failed to list orders")
	}

	return response.Success(c, "Orders retrieved successfully",
		pagination.NewResponse(orders, params, total))
}

// MyOrders lists the caller's own orders
// @Summary List my fuel orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /orders/my [get]
func (h *OrderHandler) MyOrders(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	opts := services.ListOptions{
		Offset:  params.Offset,
		Limit:   params.Limit,
		SortBy:  params.SortBy,
		SortDir: params.SortDir,
	}

	orders, total, err := h.orderService.ListMine(c.Context(), opts, middleware.CurrentUser(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to list orders")
	}

	return response.Success(c, "Orders retrieved successfully",
		pagination.NewResponse(orders, params, total))
}

// GetByID handles fetching one order
// @Summary Get fuel order by ID
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")

	order, err := h.orderService.Get(c.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Order not found")
		case errors.Is(err, domain.ErrAccessDenied):
			return response.Forbidden(c, "You don't have access to this order")
		default:
			return response.InternalServerError(c, "Failed to get order")
		}
	}

	return response.Success(c, "Order retrieved successfully", order)
}

// UpdateStatus handles status transitions
// @Summary Update order status
// @Description Transition an order along the allowed lifecycle
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, err.Error())
	}

	newStatus := models.OrderStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	order, err := h.orderService.Transition(c.Context(), id, newStatus, middleware.CurrentUser(c))
	if err != nil {
		var vErr *domain.ValidationError
		var tErr *domain.IllegalTransitionError
		switch {
		case errors.As(err, &vErr):
			return response.BadRequest(c, vErr.Error())
		case errors.As(err, &tErr):
			return response.BadRequest(c, tErr.Error())
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Order not found")
		case errors.Is(err, domain.ErrConflict):
			return response.Conflict(c, "Order was modified concurrently, please retry")
		default:
			return response.InternalServerError(c, "Failed to update order status")
		}
	}

	return response.Success(c, "Order status updated successfully", order)
}

// Statistics returns order counts by status
// @Summary Get order statistics
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /orders/statistics [get]
func (h *OrderHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.orderService.Statistics(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", stats)
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleAircraftOperator  = "AIRCRAFT_OPERATOR"
	RoleOperationsManager = "OPERATIONS_MANAGER"
)

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:30;not null" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsOperator reports whether the user holds the aircraft operator role.
func (u *User) IsOperator() bool {
	return u.Role == RoleAircraftOperator
}

// IsManager reports whether the user holds the operations manager role.
func (u *User) IsManager() bool {
	return u.Role == RoleOperationsManager
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// OrderStatus is the lifecycle state of a fuel order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// orderTransitions is the allowed-transition table. COMPLETED and CANCELLED
// are terminal; a status not present as a key has no outgoing transitions.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// IsValid reports whether s is one of the known order statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the transition s -> next is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// FuelOrder represents fuel_orders table
type FuelOrder struct {
	ID                  string      `gorm:"type:char(36);primaryKey" json:"id"`
	TailNumber          string      `gorm:"size:10;not null;index" json:"tail_number"`
	AirportIcaoCode     string      `gorm:"size:4;not null;index" json:"airport_icao_code"`
	RequestedFuelVolume float64     `gorm:"not null" json:"requested_fuel_volume"`
	DeliveryWindowStart time.Time   `gorm:"not null" json:"delivery_window_start"`
	DeliveryWindowEnd   time.Time   `gorm:"not null" json:"delivery_window_end"`
	Status              OrderStatus `gorm:"size:20;not null;index" json:"status"`
	CreatedByID         uint        `gorm:"not null;index" json:"created_by_id"`
	Notes               string      `gorm:"size:500" json:"notes"`
	CreatedAt           time.Time   `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt           time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Creator *User `gorm:"foreignKey:CreatedByID" json:"creator,omitempty"`
}

func (FuelOrder) TableName() string {
	return "fuel_orders"
}

// BeforeCreate assigns a UUID primary key when none is set.
func (o *FuelOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&FuelOrder{},
	)
}

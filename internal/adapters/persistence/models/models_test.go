package models_test

import (
	"testing"

	"fuelpass/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusIsValid(t *testing.T) {
	for _, status := range []models.OrderStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled,
	} {
		assert.True(t, status.IsValid())
	}

	assert.False(t, models.OrderStatus("SHIPPED").IsValid())
	assert.False(t, models.OrderStatus("pending").IsValid())
	assert.False(t, models.OrderStatus("").IsValid())
}

func TestOrderStatusTransitions(t *testing.T) {
	allowed := map[models.OrderStatus][]models.OrderStatus{
		models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
		models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled},
	}

	all := []models.OrderStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled,
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, terminal := range []models.OrderStatus{models.StatusCompleted, models.StatusCancelled} {
		for _, to := range []models.OrderStatus{
			models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled,
		} {
			assert.False(t, terminal.CanTransitionTo(to), "%s must be terminal", terminal)
		}
	}
}

func TestUserRoleHelpers(t *testing.T) {
	operator := &models.User{Role: models.RoleAircraftOperator}
	manager := &models.User{Role: models.RoleOperationsManager}

	assert.True(t, operator.IsOperator())
	assert.False(t, operator.IsManager())
	assert.True(t, manager.IsManager())
	assert.False(t, manager.IsOperator())
}

func TestUserToResponseOmitsPassword(t *testing.T) {
	user := &models.User{
		ID:       1,
		Email:    "operator@example.com",
		Password: "hashed",
		Role:     models.RoleAircraftOperator,
		IsActive: true,
	}

	resp := user.ToResponse()
	assert.Equal(t, user.Email, resp.Email)
	assert.Equal(t, user.Role, resp.Role)
}

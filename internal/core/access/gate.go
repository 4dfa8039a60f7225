package access

import (
	"fmt"

	"fuelpass/internal/adapters/persistence/models"
	"fuelpass/internal/core/domain"
)

// Gated operations. Each operation appears once in the required-role table;
// routes consult the table instead of re-checking roles per call site.
const (
	OpOrderCreate     = "order.create"
	OpOrderList       = "order.list"
	OpOrderGet        = "order.get"
	OpOrderTransition = "order.transition"
	OpOrderStatistics = "order.statistics"
	OpMyOrders        = "order.my-orders"
	OpUserManage      = "user.manage"
)

// AnyRole marks an operation that only requires an authenticated principal.
const AnyRole = ""

// requiredRoles maps each gated operation to the role it requires.
// Order creation is deliberately open to every authenticated user:
// operators submit requests, managers approve them.
var requiredRoles = map[string]string{
	OpOrderCreate:     AnyRole,
	OpOrderList:       AnyRole,
	OpOrderGet:        AnyRole,
	OpOrderTransition: models.RoleOperationsManager,
	OpOrderStatistics: models.RoleOperationsManager,
	OpMyOrders:        models.RoleAircraftOperator,
	OpUserManage:      models.RoleOperationsManager,
}

// RequiredRole returns the role required for an operation, or AnyRole when
// the operation only needs authentication. Unknown operations require a
// role no user holds, so they always deny.
func RequiredRole(operation string) string {
	role, ok := requiredRoles[operation]
	if !ok {
		return "UNKNOWN_OPERATION"
	}
	return role
}

// Check decides whether the principal may perform the operation.
// Returns nil on allow; domain.ErrUnauthenticated when no principal was
// resolved; domain.ErrAccessDenied (wrapped with both roles) on a role
// mismatch. Stateless and side-effect free.
func Check(user *models.User, operation string) error {
	if user == nil {
		return domain.ErrUnauthenticated
	}

	need := RequiredRole(operation)
	if need == AnyRole || user.Role == need {
		return nil
	}

	return fmt.Errorf("%w: role %s required, have %s", domain.ErrAccessDenied, need, user.Role)
}

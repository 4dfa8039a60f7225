package repositories_test

import (
	"context"
	"testing"
	"time"

	"fuelpass/internal/adapters/persistence/models"
	"fuelpass/internal/adapters/persistence/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestOrderRepositoryCreate(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := repositories.NewOrderRepository(gdb)

	mock.ExpectExec("INSERT INTO `fuel_orders`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	order := &models.FuelOrder{
		TailNumber:          "N123AB",
		AirportIcaoCode:     "KJFK",
		RequestedFuelVolume: 5000,
		DeliveryWindowStart: time.Now(),
		DeliveryWindowEnd:   time.Now().Add(4 * time.Hour),
		Status:              models.StatusPending,
		CreatedByID:         1,
	}

	err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID, "creating must assign a UUID primary key")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryGetByID(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := repositories.NewOrderRepository(gdb)

	id := "6b2f7f64-0f1e-4b5a-9c1d-7a8e9f0a1b2c"
	now := time.Now()

	mock.ExpectQuery("SELECT \\* FROM `fuel_orders` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tail_number", "airport_icao_code", "requested_fuel_volume",
			"delivery_window_start", "delivery_window_end", "status",
			"created_by_id", "notes", "created_at", "updated_at",
		}).AddRow(id, "N123AB", "KJFK", 5000.0, now, now.Add(4*time.Hour), "PENDING", 7, "", now, now))

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE `users`.`id` = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "is_active"}).
			AddRow(7, "operator@example.com", models.RoleAircraftOperator, true))

	order, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	require.NotNil(t, order.Creator)
	assert.Equal(t, "operator@example.com", order.Creator.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryGetByIDNotFound(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := repositories.NewOrderRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `fuel_orders` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := repositories.NewOrderRepository(gdb)

	mock.ExpectExec("UPDATE `fuel_orders` SET .+ WHERE id = \\? AND status = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.UpdateStatus(context.Background(), "abc", models.StatusPending, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The compare-and-set misses when another writer already moved the order.
func TestOrderRepositoryUpdateStatusMiss(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := repositories.NewOrderRepository(gdb)

	mock.ExpectExec("UPDATE `fuel_orders` SET .+ WHERE id = \\? AND status = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := repo.UpdateStatus(context.Background(), "abc", models.StatusPending, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestOrderRepositoryCountByStatus(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := repositories.NewOrderRepository(gdb)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `fuel_orders` WHERE status = \\?").
		WithArgs("PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(4))

	count, err := repo.CountByStatus(context.Background(), models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestOrderRepositoryListFiltersByCreator(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := repositories.NewOrderRepository(gdb)

	creatorID := uint(7)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `fuel_orders` WHERE created_by_id = \\?").
		WithArgs(creatorID).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `fuel_orders` WHERE created_by_id = \\? ORDER BY created_at desc").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tail_number", "airport_icao_code", "requested_fuel_volume",
			"delivery_window_start", "delivery_window_end", "status",
			"created_by_id", "notes", "created_at", "updated_at",
		}).AddRow("abc", "N123AB", "KJFK", 5000.0, now, now, "PENDING", creatorID, "", now, now))

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE `users`.`id` = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "is_active"}).
			AddRow(creatorID, "operator@example.com", models.RoleAircraftOperator, true))

	orders, total, err := repo.List(context.Background(),
		repositories.OrderFilters{CreatedByID: &creatorID}, 0, 20, "created_at", "desc")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, creatorID, orders[0].CreatedByID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Unknown sort columns fall back to created_at instead of reaching the SQL.
func TestOrderRepositoryListRejectsUnknownSortColumn(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := repositories.NewOrderRepository(gdb)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `fuel_orders`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	mock.ExpectQuery("SELECT \\* FROM `fuel_orders` ORDER BY created_at desc").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := repo.List(context.Background(),
		repositories.OrderFilters{}, 0, 20, "password; DROP TABLE users", "desc")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

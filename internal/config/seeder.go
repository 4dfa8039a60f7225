package config

import (
	"log"

	"fuelpass/internal/adapters/persistence/models"
	"fuelpass/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedDemoUsers creates the demo accounts when the users table is empty.
// Dev convenience only; skipped as soon as any user exists.
func SeedDemoUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demo := []struct {
		email string
		role  string
	}{
		{"operator@fuelpass.com", models.RoleAircraftOperator},
		{"manager@fuelpass.com", models.RoleOperationsManager},
	}

	for _, d := range demo {
		hashed, err := password.Hash("FuelPass123!")
		if err != nil {
			return err
		}

		user := &models.User{
			Email:    d.email,
			Password: hashed,
			Role:     d.role,
			IsActive: true,
		}
		if err := db.Create(user).Error; err != nil {
			return err
		}
		log.Printf("seeded demo user: %s (%s)", d.email, d.role)
	}

	return nil
}

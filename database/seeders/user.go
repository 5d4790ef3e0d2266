package seeders

import (
	"context"
	"errors"

	"doktor.link/configs/configslog"
	"doktor.link/models"
	"doktor.link/services"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DemoPassword password of the seeded demo accounts.
const DemoPassword = "password123"

// SeedDemoUsers makes sure doctor_a and patient_b exist. Existing users are left untouched.
func SeedDemoUsers(db *gorm.DB, bcryptCost int) error {
	credentials := services.NewCredentialService(db, bcryptCost)
	ctx := context.Background()

	usersToSeed := []struct {
		Username string
		Role     models.Role
	}{
		{"doctor_a", models.RoleDoctor},
		{"patient_b", models.RolePatient},
	}

	var createdCount int
	errorOccurred := false

	configslog.SLog.Info("Demo user seeding started...")

	for _, u := range usersToSeed {
		_, err := credentials.ProvisionUser(ctx, u.Username, DemoPassword, u.Role)
		if err == nil {
			createdCount++
			continue
		}
		if errors.Is(err, services.ErrDuplicateUsername) {
			configslog.SLog.Debugf("User '%s' already exists, skipping.", u.Username)
			continue
		}
		configslog.Log.Error("Demo user could not be created", zap.String("username", u.Username), zap.Error(err))
		errorOccurred = true
	}

	if errorOccurred {
		return errors.New("at least one demo user could not be seeded")
	}
	configslog.SLog.Infof("Demo user seeding finished, %d created.", createdCount)
	return nil
}

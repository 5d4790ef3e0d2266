package database

import (
	"doktor.link/configs/configslog"
	"doktor.link/database/migrations"
	"doktor.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize runs migrations and/or seeders inside one transaction.
func Initialize(db *gorm.DB, migrate bool, seed bool, bcryptCost int) error {
	if !migrate && !seed {
		configslog.SLog.Info("Neither migrate nor seed flag given, nothing to do.")
		return nil
	}

	configslog.SLog.Info("Database initialization starting...")

	err := db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			if err := RunMigrationsInOrder(tx); err != nil {
				configslog.Log.Error("Migration failed", zap.Error(err))
				return err
			}
		} else {
			configslog.SLog.Info("Migrate flag not given, skipping migrations.")
		}

		if seed {
			if err := CheckAndRunSeeders(tx, bcryptCost); err != nil {
				configslog.Log.Error("Seeding failed", zap.Error(err))
				return err
			}
		} else {
			configslog.SLog.Info("Seed flag not given, skipping seeders.")
		}
		return nil
	})
	if err != nil {
		configslog.Log.Error("Database initialization rolled back", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Database initialization completed successfully")
	return nil
}

// RunMigrationsInOrder migrates parents before children so foreign keys resolve.
func RunMigrationsInOrder(db *gorm.DB) error {
	steps := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"users", migrations.MigrateUsersTable},
		{"availability_slots", migrations.MigrateAvailabilitySlotsTable},
		{"appointments", migrations.MigrateAppointmentsTable},
	}

	for _, step := range steps {
		configslog.SLog.Infof(" -> %s migration running...", step.name)
		if err := step.run(db); err != nil {
			return err
		}
	}
	configslog.SLog.Info("All migrations completed.")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB, bcryptCost int) error {
	configslog.SLog.Info(" -> Demo user seeder running...")
	if err := seeders.SeedDemoUsers(db, bcryptCost); err != nil {
		return err
	}
	configslog.SLog.Info("All seeders completed.")
	return nil
}

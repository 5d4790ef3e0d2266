package migrations

import (
	"doktor.link/configs/configslog"
	"doktor.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateAvailabilitySlotsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating availability_slots table...")
	if err := db.AutoMigrate(&models.AvailabilitySlot{}); err != nil {
		configslog.Log.Error("Failed to migrate availability_slots table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Availability_slots table migrated successfully")
	return nil
}

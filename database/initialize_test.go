package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"doktor.link/configs/configsdatabase"
	"doktor.link/database"
	"doktor.link/database/seeders"
	"doktor.link/models"
	"doktor.link/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openEmpty(t *testing.T) *gorm.DB {
	t.Helper()
	opts := configsdatabase.Options()
	opts.Logger = logger.Default.LogMode(logger.Silent)
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "init.db")+"?_foreign_keys=on"), opts)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestInitializeNothingToDo(t *testing.T) {
	db := openEmpty(t)
	require.NoError(t, database.Initialize(db, false, false, bcrypt.MinCost))
	assert.False(t, db.Migrator().HasTable(&models.User{}))
}

func TestInitializeMigrateAndSeed(t *testing.T) {
	db := openEmpty(t)
	require.NoError(t, database.Initialize(db, true, true, bcrypt.MinCost))

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.AvailabilitySlot{}))
	assert.True(t, db.Migrator().HasTable(&models.Appointment{}))

	creds := services.NewCredentialService(db, bcrypt.MinCost)
	u, err := creds.Authenticate(context.Background(), "doctor_a", seeders.DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDoctor, u.Role)

	// seeding again leaves the existing users alone
	require.NoError(t, database.Initialize(db, false, true, bcrypt.MinCost))
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

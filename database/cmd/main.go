package main

import (
	"context"
	"flag"
	"os"

	"doktor.link/configs"
	"doktor.link/configs/configsdatabase"
	"doktor.link/configs/configslog"
	"doktor.link/database"
	"doktor.link/models"
	"doktor.link/services"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "Run database migrations")
	seedFlag := flag.Bool("seed", false, "Seed the demo users (doctor_a, patient_b)")
	createUser := flag.Bool("create-user", false, "Provision a single user from -username, -password and -role")
	username := flag.String("username", "", "Username for -create-user")
	password := flag.String("password", "", "Password for -create-user")
	role := flag.String("role", string(models.RolePatient), "Role for -create-user (doctor|patient)")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		configslog.Log.Fatal("DATABASE_URL is required")
	}
	cost := bcrypt.DefaultCost
	if cfg, err := configs.LoadConfig(); err == nil {
		cost = cfg.BcryptCost
	}

	configsdatabase.InitDB(dsn)
	defer configsdatabase.CloseDB()
	db := configsdatabase.GetDB()

	configslog.SLog.Info("Running database initialization...")
	if err := database.Initialize(db, *migrateFlag, *seedFlag, cost); err != nil {
		configslog.Log.Error("Database initialization failed", zap.Error(err))
		return
	}

	if *createUser {
		credentials := services.NewCredentialService(db, cost)
		u, err := credentials.ProvisionUser(context.Background(), *username, *password, models.Role(*role))
		if err != nil {
			configslog.Log.Error("User could not be created", zap.String("username", *username), zap.Error(err))
			return
		}
		configslog.Log.Info("User created", zap.Uint("id", u.ID), zap.String("username", u.Username), zap.String("role", string(u.Role)))
	}

	configslog.SLog.Info("Database initialization finished.")
}

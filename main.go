package main

import (
	"os"
	"os/signal"
	"syscall"

	"doktor.link/configs"
	"doktor.link/configs/configsdatabase"
	"doktor.link/configs/configslog"
	"doktor.link/configs/configssession"
	"doktor.link/routes"

	"go.uber.org/zap"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg, err := configs.LoadConfig()
	if err != nil {
		configslog.Log.Fatal("Invalid configuration", zap.Error(err))
	}

	configsdatabase.InitDB(cfg.DatabaseURL)
	defer configsdatabase.CloseDB()

	sessions, err := configssession.SetupSession(cfg)
	if err != nil {
		configslog.Log.Fatal("Session store could not be initialized", zap.Error(err))
	}

	app := routes.NewApp(routes.Dependencies{
		DB:         configsdatabase.GetDB(),
		Sessions:   sessions,
		SecretKey:  cfg.SecretKey,
		BcryptCost: cfg.BcryptCost,
		LoginRate:  cfg.LoginRate,
		LoginBurst: cfg.LoginBurst,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Server listening on %s", cfg.Addr())
	if err := app.Listen(cfg.Addr()); err != nil {
		configslog.Log.Error("Server stopped with error", zap.Error(err))
	}
}

package main

import (
	"log"
	"os"

	"github.com/AlfahrezaRico/backend/internal/app"
	"github.com/AlfahrezaRico/backend/internal/bootstrap"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func buildLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	// .env opsional; di deployment env sudah diinject dari luar.
	_ = godotenv.Load()

	logger, err := buildLogger()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	application, err := app.BuildApp(logger)
	if err != nil {
		logger.Fatal("application bootstrap failed", zap.Error(err))
	}

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":8080"
	}

	if err := bootstrap.RunServer(application.Engine, addr, logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

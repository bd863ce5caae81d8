package main

import (
	stdlog "log"

	"github.com/joho/godotenv"

	"findigest/cmd"
	"findigest/internal/config"
	"findigest/internal/logger"
)

func main() {
	// Load environment variables; a missing .env file is fine.
	if err := godotenv.Load(); err != nil {
		stdlog.Printf("Warning: Could not load .env file: %v", err)
	}

	// Configure logging from the environment. A config load failure here is
	// not fatal: the command itself reloads the configuration after --env is
	// applied and reports the real error.
	if cfg, err := config.Load(); err != nil {
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			stdlog.Fatalf("Failed to initialize logger: %v", err)
		}
	} else {
		if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
			stdlog.Fatalf("Failed to initialize logger: %v", err)
		}
	}

	cmd.Execute()
}

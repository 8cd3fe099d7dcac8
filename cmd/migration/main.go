package main

import (
	"flag"
	"fmt"
	"os"

	"coutupro/cmd/migration/initialize"
	"coutupro/cmd/migration/seed"
	"coutupro/config"
	"coutupro/internal/database"
	"coutupro/internal/logger"
)

func main() {
	steps := flag.Int("steps", 1, "number of migrations to revert with down (0 reverts all)")
	flag.Parse()

	if err := run(flag.Arg(0), *steps); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(command string, steps int) error {
	config, err := config.InitConfig()
	if err != nil {
		return err
	}
	logger.Setup(config.LogLevel, config.LogFormat)
	log := logger.New("migration").Function("run")

	db, err := database.New(config)
	if err != nil {
		return log.Err("failed to open database", err)
	}
	defer db.Close()

	switch command {
	case "", "up":
		applied, err := db.Migrate()
		if err != nil {
			return log.Err("failed to apply migrations", err)
		}
		log.Info("Migrations applied", "count", applied)
		return initialize.InitializeTables(db.SQL, config, log)
	case "down":
		reverted, err := db.Rollback(steps)
		if err != nil {
			return log.Err("failed to revert migrations", err)
		}
		log.Info("Migrations reverted", "count", reverted)
		return nil
	case "seed":
		if !config.IsDevelopment() {
			return log.Error("seed is only available in development", "environment", config.Environment)
		}
		if _, err := db.Migrate(); err != nil {
			return log.Err("failed to apply migrations", err)
		}
		return seed.Seed(db.SQL, config, log)
	default:
		return log.Error("unknown command, expected up, down or seed", "command", command)
	}
}

package main

import (
	"flag"
	"log"

	"quizdeck/internal/config"
	"quizdeck/internal/database"
	"quizdeck/internal/logger"

	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "rollback the most recent migration instead of applying")
	dir := flag.String("dir", "database/migrations", "path to the migrations directory")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Logger)
	l := logger.Get()
	defer l.Sync()

	dsn := cfg.GetDSN()
	if *down {
		if err := database.RollbackMigration(dsn, *dir); err != nil {
			l.Fatal("Failed to rollback migration", zap.Error(err))
		}
		l.Info("Rolled back most recent migration")
		return
	}

	if err := database.RunMigrations(dsn, *dir); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
	l.Info("Migrations completed successfully")
}

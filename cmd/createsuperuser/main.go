// Command createsuperuser provisions a staff account with full
// privileges, for operators rather than the HTTP API.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/services"
)

func main() {
	logging.Setup()

	email := flag.String("email", "", "email address for the new superuser")
	password := flag.String("password", "", "password for the new superuser")
	flag.Parse()

	if *email == "" || *password == "" {
		slog.Error("both -email and -password are required")
		os.Exit(1)
	}

	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	user, err := services.NewUserService(database.DB).CreateSuperuser(*email, *password)
	if err != nil {
		slog.Error("failed to create superuser", "error", err)
		os.Exit(1)
	}

	slog.Info("superuser created", "id", user.ID, "email", user.Email)
}

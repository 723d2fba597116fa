// Command adduser creates the admin account used to sign in.
//
// Usage:
//
//	ADMIN_PASSWORD=... adduser -username admin [-db ./data/konta.db]
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/mmynk/konta/internal/auth"
	"github.com/mmynk/konta/internal/config"
	"github.com/mmynk/konta/internal/storage/sqlite"
	"github.com/mmynk/konta/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	dbPath := flag.String("db", cfg.DBPath, "path to the SQLite database")
	username := flag.String("username", "", "admin username")
	password := flag.String("password", "", "admin password (defaults to $ADMIN_PASSWORD)")
	flag.Parse()

	if *password == "" {
		*password = os.Getenv("ADMIN_PASSWORD")
	}
	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Error("Failed to open storage", "database", *dbPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	user, err := auth.NewPasswordAuthenticator(store).Register(context.Background(), *username, *password)
	if err != nil {
		logger.Error("Failed to create user", "username", *username, "error", err)
		store.Close()
		os.Exit(1)
	}
	logger.Info("User created", "user_id", user.ID, "username", user.Username)
}

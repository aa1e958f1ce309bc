// Command create-admin seeds the initial admin account.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/Ibramnsh/backend-sidokepung/internal/auth/models"
	authService "github.com/Ibramnsh/backend-sidokepung/internal/auth/service"
	userStore "github.com/Ibramnsh/backend-sidokepung/internal/auth/store/user"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/config"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/logger"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/postgres"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/sentinel"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "admin123", "admin password")
	flag.Parse()

	log := logger.New()
	if err := run(*username, *password, log); err != nil {
		log.Error("create admin failed", "error", err)
		os.Exit(1)
	}
}

func run(username, password string, log *slog.Logger) error {
	cfg := config.FromEnv()
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db, userStore.Schema); err != nil {
		return err
	}

	users := userStore.NewPostgres(db)
	if _, err := users.FindByUsername(ctx, username); err == nil {
		log.Info("admin user already exists", "username", username)
		return nil
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return err
	}

	svc := authService.New(users, nil, nil, authService.WithLogger(log))
	user, err := svc.CreateAdmin(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}
	log.Info("admin user created", "username", user.Username, "user_id", user.ID)
	return nil
}

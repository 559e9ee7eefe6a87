package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"

	"github.com/gestao-escolar/escolar-backend/internal/users"
	"github.com/gestao-escolar/escolar-backend/pkg/config"
	"github.com/gestao-escolar/escolar-backend/pkg/db"
	"github.com/gestao-escolar/escolar-backend/pkg/db/models"
	"github.com/gestao-escolar/escolar-backend/pkg/enums"
	"github.com/gestao-escolar/escolar-backend/pkg/logger"
	"github.com/gestao-escolar/escolar-backend/pkg/security"
)

const minPasswordLen = 8

// bootstrap-admin creates the first administrator login. It is a deliberate
// operator action: the API never seeds credentials on its own, and this
// command refuses to run without an explicit password.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "bootstrap-admin"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	username := cfg.Bootstrap.AdminUsername
	password := cfg.Bootstrap.AdminPassword
	if password == "" {
		logg.Error(ctx, "refusing to bootstrap", errMissingPassword)
		os.Exit(1)
	}
	if len(password) < minPasswordLen {
		logg.Error(ctx, "refusing to bootstrap", errWeakPassword)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to connect to database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	repo := users.NewRepository(dbClient.DB())

	existing, err := repo.FindByUsername(ctx, username)
	if err != nil {
		logg.Error(ctx, "failed to check existing user", err)
		os.Exit(1)
	}
	if existing != nil {
		logg.Warn(logg.WithUsername(ctx, username), "user already exists, nothing to do")
		return
	}

	hash, err := security.HashPassword(password, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}

	user, err := repo.Create(ctx, &models.User{
		Username: username,
		Password: hash,
		Nivel:    enums.NivelAdmin,
	})
	if err != nil {
		logg.Error(ctx, "failed to create admin user", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
	logg.Info(ctx, "administrator created")
}

var (
	errMissingPassword = errors.New("ESCOLAR_BOOTSTRAP_ADMIN_PASSWORD is not set")
	errWeakPassword    = errors.New("bootstrap password must have at least 8 characters")
)

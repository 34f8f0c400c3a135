package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/examguard/config"
	"github.com/lshigami/examguard/database"
	"github.com/lshigami/examguard/internal/auth"
	"github.com/lshigami/examguard/internal/repository"
	"github.com/lshigami/examguard/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func CreateUser(c *cli.Context) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := database.NewDatabase(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	ctx, cancel := context.WithTimeout(c.Context, 30*time.Second)
	defer cancel()

	svc := service.NewAuthService(repository.NewUserRepository(db), auth.NewTokenManager(cfg))
	user, err := svc.CreateUser(ctx, c.String("username"), c.String("password"), c.Bool("superuser"))
	if err != nil {
		return fmt.Errorf("create user %q: %w", c.String("username"), err)
	}
	log.Info().Uint("userID", user.ID).Str("username", user.Username).Bool("superuser", user.IsSuperuser).Msg("Done")
	return nil
}

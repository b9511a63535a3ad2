package helper

import (
	"carrental/config"
	"carrental/infras/otel"
	"carrental/infras/postgres"
	userModel "carrental/internal/domains/user/model"
	userRepository "carrental/internal/domains/user/repository"
	"carrental/shared/password"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var ErrAdminExists = errors.New("username already taken")

// SeedAdmin creates the first Admin account so the back office can be entered
// after a fresh migration.
func SeedAdmin(ctx context.Context, cfg *config.Config, username, plain, email string) error {
	repo := userRepository.New(postgres.New(cfg), otel.New(cfg))

	return seedAdmin(ctx, repo, username, plain, email)
}

func seedAdmin(ctx context.Context, repo userRepository.User, username, plain, email string) error {
	exists, err := repo.ExistUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("error checking username: %w", err)
	}

	if exists {
		return fmt.Errorf("%w: %s", ErrAdminExists, username)
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return err
	}

	id, err := repo.Add(ctx, userModel.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Role:         userModel.RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		return fmt.Errorf("error creating admin: %w", err)
	}

	log.Info().Int64("id", id).Str("username", username).Msg("Admin account created")

	return nil
}

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/models"
)

// EnsureAdminUser creates the operator account when no user has the username.
// The password is stored as a bcrypt hash. An existing account is never
// rewritten. It reports whether a user was created.
func EnsureAdminUser(ctx context.Context, users database.UserStore, username, password string) (*models.User, bool, error) {
	in := models.UserInput{Username: username, Password: password}
	if err := in.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		if !CheckPassword(existing, password) {
			log.Warn().Str("username", username).Msg("Admin user already exists with a different password, ADMIN_PASSWORD ignored")
		}
		return existing, false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("hashing admin password: %w", err)
	}
	in.Password = string(hash)

	user, err := users.CreateUser(ctx, in)
	if err != nil {
		return nil, false, err
	}
	log.Info().Str("username", username).Msg("Created admin user")
	return user, true, nil
}

// CheckPassword reports whether password matches the user's stored hash.
func CheckPassword(user *models.User, password string) bool {
	if user == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

package userRepo

import (
	"context"

	"apptreminders/models"
)

// UserRepository defines read access to reminder receivers.
type UserRepository interface {
	// GetByID returns nil, nil when the user does not exist.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

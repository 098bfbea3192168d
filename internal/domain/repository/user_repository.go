package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
)

// UserRepository persists operator accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

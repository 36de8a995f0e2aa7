package repository

import (
	"boutique/internal/domain/model"
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

// Comptes du dashboard.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//mise à jour du dernier login notamment
	Update(ctx context.Context, user *model.User) error
}

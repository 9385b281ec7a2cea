package repository

import (
	"context"

	"github.com/jsresto/convenios-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Upsert(ctx context.Context, user *entity.User) error
}

package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"github.com/jsresto/convenios-api/internal/application/dto"
	"github.com/jsresto/convenios-api/internal/domain"
	"github.com/jsresto/convenios-api/internal/domain/entity"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

// UserUseCase administración de operadores (solo ADMIN).
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// List lista los operadores ordenados por nombre, sin credenciales.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserResponse{
			ID:       u.ID,
			Name:     u.Name,
			Username: u.Username,
			Role:     u.Role,
		})
	}
	return out, nil
}

// Upsert crea o actualiza un operador. El password se almacena como hash
// bcrypt; en un update con password vacío se conserva el hash existente.
func (uc *UserUseCase) Upsert(ctx context.Context, operatorID string, in dto.UpsertUserRequest) (*dto.UserResponse, error) {
	if in.Name == "" || in.Username == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Role != entity.RoleAdmin && in.Role != entity.RoleOperator {
		return nil, domain.ErrInvalidInput
	}
	if in.ID == "" && in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	u := &entity.User{
		ID:       in.ID,
		Name:     in.Name,
		Username: in.Username,
		Role:     in.Role,
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash de password: %w", err)
		}
		u.PasswordHash = string(hash)
	} else {
		existing, err := uc.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing == nil || existing.ID != u.ID {
			return nil, domain.ErrInvalidInput
		}
		u.PasswordHash = existing.PasswordHash
	}

	if err := uc.userRepo.Upsert(ctx, u); err != nil {
		return nil, err
	}
	return &dto.UserResponse{ID: u.ID, Name: u.Name, Username: u.Username, Role: u.Role}, nil
}

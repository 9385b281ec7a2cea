package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jsresto/convenios-api/internal/application/dto"
	"github.com/jsresto/convenios-api/internal/domain"
	"github.com/jsresto/convenios-api/internal/domain/entity"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

// ProductUseCase CRUD del catálogo de productos del restaurante.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// List lista el catálogo ordenado por nombre.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Upsert inserta o reemplaza un producto por ID.
func (uc *ProductUseCase) Upsert(ctx context.Context, operatorID string, in dto.UpsertProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	unit := in.Unit
	if unit == "" {
		unit = entity.UnitUN
	}
	if unit != entity.UnitUN && unit != entity.UnitKG {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	p := &entity.Product{
		ID:        in.ID,
		Code:      in.Code,
		Name:      in.Name,
		Category:  in.Category,
		Price:     in.Price,
		Cost:      in.Cost,
		Stock:     in.Stock,
		Active:    in.Active,
		Unit:      unit,
		Image:     in.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if err := uc.productRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete borra un producto del catálogo.
func (uc *ProductUseCase) Delete(ctx context.Context, operatorID, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.productRepo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:       p.ID,
		Code:     p.Code,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Cost:     p.Cost,
		Stock:    p.Stock,
		Active:   p.Active,
		Unit:     p.Unit,
		Image:    p.Image,
	}
}

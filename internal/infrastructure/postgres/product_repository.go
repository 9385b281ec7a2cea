package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jsresto/convenios-api/internal/domain/entity"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, code, name, category, price, cost, stock, active, unit, image, created_at, updated_at`

// List devuelve el catálogo ordenado por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetByID devuelve el producto o nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Upsert inserta o reemplaza un producto por ID.
func (r *ProductRepo) Upsert(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, code, name, category, price, cost, stock, active, unit, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			code = EXCLUDED.code, name = EXCLUDED.name, category = EXCLUDED.category,
			price = EXCLUDED.price, cost = EXCLUDED.cost, stock = EXCLUDED.stock,
			active = EXCLUDED.active, unit = EXCLUDED.unit, image = EXCLUDED.image,
			updated_at = CURRENT_TIMESTAMP`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Name, nullIfEmpty(p.Category), p.Price, p.Cost, p.Stock,
		p.Active, p.Unit, nullIfEmpty(p.Image), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

// Delete borra un producto.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// AdjustStock suma delta (negativo para descontar) al stock del producto.
func (r *ProductRepo) AdjustStock(ctx context.Context, productID string, delta decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET stock = stock + $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		delta, productID,
	)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var category, image *string
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &category, &p.Price, &p.Cost, &p.Stock,
		&p.Active, &p.Unit, &image, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Category = derefStr(category)
	p.Image = derefStr(image)
	return &p, nil
}

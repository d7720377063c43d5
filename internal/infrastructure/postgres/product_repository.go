package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sklad-ledger/internal/domain/entity"
	"github.com/jhoicas/sklad-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de buckets. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo bucket.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, category_id, quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CategoryID, product.Quantity, product.UnitPrice,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetBucketForUpdate busca el bucket por (categoría, precio) con igualdad
// decimal exacta y bloquea la fila (SELECT FOR UPDATE). (nil, nil) si no existe.
func (r *ProductRepo) GetBucketForUpdate(categoryID string, unitPrice decimal.Decimal) (*entity.Product, error) {
	query := `
		SELECT id, category_id, quantity, unit_price, created_at, updated_at
		FROM products WHERE category_id = $1 AND unit_price = $2
		FOR UPDATE`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, categoryID, unitPrice).Scan(
		&p.ID, &p.CategoryID, &p.Quantity, &p.UnitPrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bucket for update: %w", err)
	}
	return &p, nil
}

// GetForUpdateByIDAndOwner obtiene un bucket dentro del alcance del dueño
// (join transitivo por categoría) y bloquea solo la fila del bucket.
// (nil, nil) si no existe o es ajeno.
func (r *ProductRepo) GetForUpdateByIDAndOwner(id, ownerID string) (*entity.Product, error) {
	query := `
		SELECT p.id, p.category_id, p.quantity, p.unit_price, p.created_at, p.updated_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1 AND c.owner_id = $2
		FOR UPDATE OF p`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id, ownerID).Scan(
		&p.ID, &p.CategoryID, &p.Quantity, &p.UnitPrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return &p, nil
}

// UpdateQuantity fija la cantidad del bucket (el caller ya tiene la fila
// bloqueada dentro de la transacción).
func (r *ProductRepo) UpdateQuantity(id string, quantity int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// ListByOwner lista buckets con stock (> 0) del dueño con los datos de su
// categoría, filtrando por tipo de almacén si kind no es vacío.
func (r *ProductRepo) ListByOwner(ownerID, kind string, limit, offset int) ([]repository.ProductRow, error) {
	query := `
		SELECT p.id, c.id, c.name, c.kind, p.quantity, p.unit_price
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE c.owner_id = $1 AND p.quantity > 0 AND ($2 = '' OR c.kind = $2)
		ORDER BY c.name, p.unit_price
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, ownerID, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductRow
	for rows.Next() {
		var row repository.ProductRow
		if err := rows.Scan(&row.ID, &row.CategoryID, &row.CategoryName, &row.Kind,
			&row.Quantity, &row.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

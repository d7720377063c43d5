package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sklad-ledger/internal/domain"
	"github.com/jhoicas/sklad-ledger/internal/domain/entity"
	"github.com/jhoicas/sklad-ledger/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL
// (usable con pool o tx). Toda consulta lleva el filtro de dueño en el WHERE:
// una fila ajena simplemente no aparece.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, owner_id, kind, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.OwnerID, category.Kind, category.Name,
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByIDAndOwner obtiene una categoría del dueño, o (nil, nil) si no existe
// o pertenece a otro usuario.
func (r *CategoryRepo) GetByIDAndOwner(id, ownerID string) (*entity.Category, error) {
	query := `
		SELECT id, owner_id, kind, name, created_at, updated_at
		FROM categories WHERE id = $1 AND owner_id = $2`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id, ownerID).Scan(
		&c.ID, &c.OwnerID, &c.Kind, &c.Name, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// ListByOwner lista categorías del dueño con paginación, filtrando por tipo
// de almacén si kind no es vacío.
func (r *CategoryRepo) ListByOwner(ownerID, kind string, limit, offset int) ([]*entity.Category, error) {
	query := `
		SELECT id, owner_id, kind, name, created_at, updated_at
		FROM categories
		WHERE owner_id = $1 AND ($2 = '' OR kind = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, ownerID, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Kind, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza una categoría (solo dentro del alcance del dueño).
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories SET name = $3, updated_at = $4
		WHERE id = $1 AND owner_id = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		category.ID, category.OwnerID, category.Name, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una categoría del dueño. Los buckets caen en cascada; los
// asientos del libro quedan con category_id en NULL (ON DELETE SET NULL).
func (r *CategoryRepo) Delete(id, ownerID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM categories WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

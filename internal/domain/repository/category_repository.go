package repository

import "github.com/jhoicas/sklad-ledger/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Todas las lecturas y escrituras están acotadas al dueño: una categoría
// ajena se comporta como inexistente (nil, nil), nunca como prohibida.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByIDAndOwner(id, ownerID string) (*entity.Category, error)
	ListByOwner(ownerID, kind string, limit, offset int) ([]*entity.Category, error)
	Update(category *entity.Category) error
	// Delete elimina la categoría y, en cascada, sus buckets de stock.
	// Los asientos del libro se conservan con category_id en NULL.
	Delete(id, ownerID string) error
}

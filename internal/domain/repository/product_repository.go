package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sklad-ledger/internal/domain/entity"
)

// ProductRow es el modelo de lectura de un bucket para listados: incluye los
// datos de la categoría que la vista necesita mostrar.
type ProductRow struct {
	ID           string
	CategoryID   string
	CategoryName string
	Kind         string
	Quantity     int64
	UnitPrice    decimal.Decimal
}

// ProductRepository define el puerto de persistencia para buckets de stock (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	// GetBucketForUpdate busca el bucket por (categoría, precio unitario) con
	// igualdad decimal exacta y bloquea la fila (SELECT FOR UPDATE).
	// Devuelve (nil, nil) si no existe.
	GetBucketForUpdate(categoryID string, unitPrice decimal.Decimal) (*entity.Product, error)
	// GetForUpdateByIDAndOwner resuelve el bucket dentro del alcance del dueño
	// (join transitivo por categoría) y bloquea la fila. (nil, nil) si no
	// existe o es ajeno.
	GetForUpdateByIDAndOwner(id, ownerID string) (*entity.Product, error)
	UpdateQuantity(id string, quantity int64) error
	// ListByOwner lista buckets con stock (> 0) del dueño, filtrando por tipo
	// de almacén si kind no es vacío.
	ListByOwner(ownerID, kind string, limit, offset int) ([]ProductRow, error)
}

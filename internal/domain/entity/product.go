package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un bucket de stock: la unidad de mercancía fusionable,
// identificada por el par (categoría, precio unitario). Dos buckets que
// difieren un solo centavo de precio son lotes distintos y nunca se fusionan.
// Quantity >= 0 se garantiza en el caso de uso y con CHECK en la tabla.
type Product struct {
	ID         string
	CategoryID *string // nil si la categoría fue eliminada
	Quantity   int64
	UnitPrice  decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

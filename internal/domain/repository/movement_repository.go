package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sklad-ledger/internal/domain/entity"
)

// LedgerFilter acota un listado del libro de movimientos. Todos los campos
// son opcionales salvo la paginación.
type LedgerFilter struct {
	Kind       string // raw, finished, vacío = ambos
	Direction  string // RECEIVED, SOLD, vacío = ambas
	CategoryID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// LedgerRow es el modelo de lectura de un asiento para listados y reportes.
// CategoryName queda vacío si la categoría de origen fue eliminada.
type LedgerRow struct {
	ID           string
	CategoryID   string
	CategoryName string
	Kind         string
	Quantity     int64
	Direction    string
	UnitPrice    decimal.Decimal
	CreatedAt    time.Time
}

// MovementRepository define el puerto de persistencia del libro de
// movimientos. Solo inserción y lectura: el libro es append-only.
type MovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByOwner(ownerID string, filter LedgerFilter) ([]LedgerRow, error)
}

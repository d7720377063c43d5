package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de movimiento. La dirección es siempre explícita: el sistema
// original asumía SOLD cuando faltaba, lo cual ocultaba asientos mal formados.
const (
	DirectionReceived = "RECEIVED" // entrada de stock
	DirectionSold     = "SOLD"     // salida de stock
)

// ValidDirection reporta si d es una dirección conocida.
func ValidDirection(d string) bool {
	return d == DirectionReceived || d == DirectionSold
}

// StockMovement es un asiento del libro de movimientos: append-only, nunca se
// actualiza ni se borra. OwnerID se desnormaliza para que el asiento conserve
// su alcance aunque la categoría de origen sea eliminada (el libro sobrevive
// al catálogo; CategoryID pasa a nil).
type StockMovement struct {
	ID         string
	OwnerID    string
	CategoryID *string
	Quantity   int64
	Direction  string // RECEIVED, SOLD
	UnitPrice  decimal.Decimal
	CreatedAt  time.Time // solo fecha a nivel de presentación
}

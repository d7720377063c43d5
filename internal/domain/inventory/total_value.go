package inventory

import "github.com/shopspring/decimal"

// Line es una fila valuable: cantidad por precio unitario. La usan tanto los
// buckets de stock como los asientos del libro.
type Line struct {
	Quantity  int64
	UnitPrice decimal.Decimal
}

// TotalValue calcula el valor agregado de un conjunto de filas (servicio de
// dominio, puro): Σ cantidad × precio unitario. Devuelve 0 para la secuencia
// vacía.
func TotalValue(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total
}

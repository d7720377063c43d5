package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sklad-ledger/internal/domain/entity"
)

// Etiquetas de almacén para los mensajes del canal.
func kindLabel(kind string) string {
	if kind == entity.KindFinished {
		return "2 - Almacén (producto terminado)"
	}
	return "1 - Almacén (materia prima)"
}

// receiveMessage formatea el aviso de entrada de stock.
func receiveMessage(kind, categoryName string, price decimal.Decimal, received, total int64) string {
	return fmt.Sprintf(
		"🛒 *%s — Entrada*\n"+
			"📦 Categoría: %s\n"+
			"💸 Precio: %s\n"+
			"↘️ Recibido: %d\n"+
			"🔢 Total: %d",
		kindLabel(kind), categoryName, price.StringFixed(2), received, total,
	)
}

// sellMessage formatea el aviso de salida de stock.
func sellMessage(kind, categoryName string, price decimal.Decimal, sold, remaining int64) string {
	return fmt.Sprintf(
		"🛒 *%s — Salida*\n"+
			"📦 Categoría: %s\n"+
			"💸 Precio: %s\n"+
			"↗️ Vendido: %d\n"+
			"🔢 Quedan: %d",
		kindLabel(kind), categoryName, price.StringFixed(2), sold, remaining,
	)
}

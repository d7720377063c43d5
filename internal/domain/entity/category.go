package entity

import "time"

// Tipos de almacén. Los dos almacenes paralelos del sistema original
// (materia prima y producto terminado) se modelan con un discriminador
// en lugar de duplicar tipos espejo.
const (
	KindRaw      = "raw"      // almacén 1: materia prima
	KindFinished = "finished" // almacén 2: producto terminado
)

// ValidKind reporta si k es un tipo de almacén conocido.
func ValidKind(k string) bool {
	return k == KindRaw || k == KindFinished
}

// Category representa una categoría de inventario, propiedad de un usuario.
// El nombre es texto libre y no requiere unicidad.
type Category struct {
	ID        string
	OwnerID   string
	Kind      string // raw, finished
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package entity

import "time"

// User representa un dueño de catálogo. Cada categoría, bucket y asiento del
// libro le pertenece transitivamente a través de sus categorías.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

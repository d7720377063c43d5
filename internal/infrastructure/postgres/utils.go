package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE de PostgreSQL para violación de constraint UNIQUE.
const uniqueViolationCode = "23505"

// isUniqueViolation reporta si err es un rechazo del servidor por clave
// duplicada (email de usuario, bucket (categoría, precio)). pgx entrega los
// errores del servidor como *pgconn.PgError, no hace falta mirar el texto.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sklad-ledger/internal/domain/entity"
	"github.com/jhoicas/sklad-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL
// (usable con pool o tx). El libro es append-only: este adaptador no expone
// UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del libro de movimientos.
// Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create asienta un movimiento.
func (r *MovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, owner_id, category_id, quantity, direction, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.OwnerID, movement.CategoryID, movement.Quantity,
		movement.Direction, movement.UnitPrice, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByOwner lista asientos del dueño con los datos de su categoría (si aún
// existe), aplicando los filtros del reporte. El alcance va por owner_id
// desnormalizado, así los asientos huérfanos siguen siendo visibles para su
// dueño.
func (r *MovementRepo) ListByOwner(ownerID string, f repository.LedgerFilter) ([]repository.LedgerRow, error) {
	query := `
		SELECT m.id,
		       COALESCE(m.category_id::TEXT, ''),
		       COALESCE(c.name, ''),
		       COALESCE(c.kind, ''),
		       m.quantity, m.direction, m.unit_price, m.created_at
		FROM stock_movements m
		LEFT JOIN categories c ON c.id = m.category_id
		WHERE m.owner_id = $1
		  AND ($2 = '' OR c.kind = $2)
		  AND ($3 = '' OR m.direction = $3)
		  AND ($4 = '' OR m.category_id::TEXT = $4)
		  AND ($5::TIMESTAMPTZ IS NULL OR m.created_at >= $5)
		  AND ($6::TIMESTAMPTZ IS NULL OR m.created_at <= $6)
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $7 OFFSET $8`
	rows, err := r.q.Query(context.Background(), query,
		ownerID, f.Kind, f.Direction, f.CategoryID, f.From, f.To, f.Limit, f.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []repository.LedgerRow
	for rows.Next() {
		var row repository.LedgerRow
		if err := rows.Scan(&row.ID, &row.CategoryID, &row.CategoryName, &row.Kind,
			&row.Quantity, &row.Direction, &row.UnitPrice, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

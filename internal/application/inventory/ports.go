package inventory

import (
	"context"

	"github.com/jhoicas/sklad-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la verificación de stock, la
// mutación del bucket y el asiento del libro se confirmen o reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		categoryRepo repository.CategoryRepository,
	) error) error
}

// Notifier entrega un mensaje de texto al canal configurado. Colaborador
// externo best-effort: el caller registra el fallo y nunca lo propaga.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

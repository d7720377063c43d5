package reports

import (
	"context"
	"time"

	"github.com/jhoicas/sklad-ledger/internal/application/dto"
	"github.com/jhoicas/sklad-ledger/internal/domain"
	"github.com/jhoicas/sklad-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/sklad-ledger/internal/domain/inventory"
	"github.com/jhoicas/sklad-ledger/internal/domain/repository"
)

// dateLayout formato de fechas en filtros y respuestas (el libro registra
// solo la fecha del movimiento).
const dateLayout = "2006-01-02"

// LedgerPDFGenerator genera la representación PDF de un listado del libro.
type LedgerPDFGenerator interface {
	GenerateLedgerPDF(ctx context.Context, title string, rows []repository.LedgerRow, total string) ([]byte, error)
}

// ReportsUseCase vistas de lectura del libro de movimientos: listado
// filtrado, valor agregado del conjunto visible y exportación PDF.
type ReportsUseCase struct {
	movementRepo repository.MovementRepository
	pdfGenerator LedgerPDFGenerator
}

// NewReportsUseCase construye el caso de uso. pdfGenerator puede ser nil si
// la exportación no está habilitada.
func NewReportsUseCase(movementRepo repository.MovementRepository, pdfGenerator LedgerPDFGenerator) *ReportsUseCase {
	return &ReportsUseCase{movementRepo: movementRepo, pdfGenerator: pdfGenerator}
}

// Ledger devuelve el listado filtrado del libro del dueño con el valor total
// del conjunto visible (equivalente al encabezado de totales del panel
// original).
func (uc *ReportsUseCase) Ledger(ownerID string, q dto.LedgerQuery) (*dto.LedgerResponse, error) {
	filter, err := toFilter(q)
	if err != nil {
		return nil, err
	}
	rows, err := uc.movementRepo.ListByOwner(ownerID, filter)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LedgerEntryResponse, 0, len(rows))
	lines := make([]domaininv.Line, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, dto.LedgerEntryResponse{
			ID:           r.ID,
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			Kind:         r.Kind,
			Quantity:     r.Quantity,
			Direction:    r.Direction,
			UnitPrice:    r.UnitPrice,
			CreatedAt:    r.CreatedAt.Format(dateLayout),
		})
		lines = append(lines, domaininv.Line{Quantity: r.Quantity, UnitPrice: r.UnitPrice})
	}
	return &dto.LedgerResponse{
		Entries:    entries,
		TotalValue: domaininv.TotalValue(lines),
		Page:       dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: len(entries)},
	}, nil
}

// LedgerPDF exporta el listado filtrado como PDF.
func (uc *ReportsUseCase) LedgerPDF(ctx context.Context, ownerID string, q dto.LedgerQuery) ([]byte, error) {
	if uc.pdfGenerator == nil {
		return nil, domain.ErrNotFound
	}
	filter, err := toFilter(q)
	if err != nil {
		return nil, err
	}
	rows, err := uc.movementRepo.ListByOwner(ownerID, filter)
	if err != nil {
		return nil, err
	}
	lines := make([]domaininv.Line, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, domaininv.Line{Quantity: r.Quantity, UnitPrice: r.UnitPrice})
	}
	total := domaininv.TotalValue(lines).StringFixed(2)
	return uc.pdfGenerator.GenerateLedgerPDF(ctx, pdfTitle(filter), rows, total)
}

func pdfTitle(f repository.LedgerFilter) string {
	switch f.Kind {
	case entity.KindRaw:
		return "Libro de movimientos — 1 - Almacén"
	case entity.KindFinished:
		return "Libro de movimientos — 2 - Almacén"
	default:
		return "Libro de movimientos"
	}
}

func toFilter(q dto.LedgerQuery) (repository.LedgerFilter, error) {
	var f repository.LedgerFilter
	if q.Kind != "" && !entity.ValidKind(q.Kind) {
		return f, domain.ErrInvalidInput
	}
	if q.Direction != "" && !entity.ValidDirection(q.Direction) {
		return f, domain.ErrInvalidInput
	}
	q.DefaultPage()
	f = repository.LedgerFilter{
		Kind:       q.Kind,
		Direction:  q.Direction,
		CategoryID: q.CategoryID,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
	if q.From != "" {
		from, err := time.Parse(dateLayout, q.From)
		if err != nil {
			return f, domain.ErrInvalidInput
		}
		f.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(dateLayout, q.To)
		if err != nil {
			return f, domain.ErrInvalidInput
		}
		// Rango inclusivo: el filtro superior abarca todo el día
		to = to.Add(24*time.Hour - time.Nanosecond)
		f.To = &to
	}
	return f, nil
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sklad-ledger/internal/application/dto"
	"github.com/jhoicas/sklad-ledger/internal/application/reports"
)

// ReportsHandler maneja las vistas de lectura del libro (protegido).
type ReportsHandler struct {
	uc *reports.ReportsUseCase
}

// NewReportsHandler construye el handler.
func NewReportsHandler(uc *reports.ReportsUseCase) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

// Ledger godoc
// @Summary      Listado filtrado del libro con su valor agregado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        kind         query  string  false  "raw | finished"
// @Param        direction    query  string  false  "RECEIVED | SOLD"
// @Param        category_id  query  string  false  "UUID de categoría"
// @Param        from         query  string  false  "YYYY-MM-DD"
// @Param        to           query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.LedgerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/ledger [get]
func (h *ReportsHandler) Ledger(c *fiber.Ctx) error {
	ownerID := GetUserID(c)
	if ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var q dto.LedgerQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Ledger(ownerID, q)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// LedgerPDF godoc
// @Summary      Exportar el listado filtrado del libro como PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        kind       query  string  false  "raw | finished"
// @Param        direction  query  string  false  "RECEIVED | SOLD"
// @Param        from       query  string  false  "YYYY-MM-DD"
// @Param        to         query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/ledger/pdf [get]
func (h *ReportsHandler) LedgerPDF(c *fiber.Ctx) error {
	ownerID := GetUserID(c)
	if ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var q dto.LedgerQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	pdfBytes, err := h.uc.LedgerPDF(c.Context(), ownerID, q)
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="libro-movimientos.pdf"`)
	return c.Send(pdfBytes)
}

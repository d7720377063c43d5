package dto

import "github.com/shopspring/decimal"

// LedgerQuery filtros para GET /api/reports/ledger.
type LedgerQuery struct {
	Kind       string `query:"kind"`
	Direction  string `query:"direction"`
	CategoryID string `query:"category_id"`
	From       string `query:"from"` // YYYY-MM-DD
	To         string `query:"to"`   // YYYY-MM-DD
	PageRequest
}

// LedgerEntryResponse asiento del libro para respuestas.
type LedgerEntryResponse struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Kind         string          `json:"kind,omitempty"`
	Quantity     int64           `json:"quantity"`
	Direction    string          `json:"direction"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CreatedAt    string          `json:"created_at"` // YYYY-MM-DD
}

// LedgerResponse listado filtrado del libro con su valor agregado.
type LedgerResponse struct {
	Entries    []LedgerEntryResponse `json:"entries"`
	TotalValue decimal.Decimal       `json:"total_value"`
	Page       PageResponse          `json:"page"`
}

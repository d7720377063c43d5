package dto

import "github.com/shopspring/decimal"

// ReceiveStockRequest body para POST /api/inventory/receive.
type ReceiveStockRequest struct {
	CategoryID string          `json:"category_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// SellStockRequest body para POST /api/inventory/sell.
type SellStockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// StockOperationResponse resultado de recibir o vender stock.
type StockOperationResponse struct {
	Success     bool   `json:"success"`
	ProductID   string `json:"product_id"`
	NewQuantity int64  `json:"new_quantity"`
}

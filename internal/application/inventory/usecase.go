package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sklad-ledger/internal/application/dto"
	"github.com/jhoicas/sklad-ledger/internal/domain"
	"github.com/jhoicas/sklad-ledger/internal/domain/entity"
	"github.com/jhoicas/sklad-ledger/internal/domain/repository"
)

// StockUseCase implementa las dos operaciones de inventario (recibir y
// vender) de forma transaccional, con bloqueo de fila sobre el bucket para
// que la verificación de suficiencia y la mutación sean atómicas frente a
// operaciones concurrentes sobre la misma fila.
type StockUseCase struct {
	txRunner TxRunner
	notifier Notifier
}

// NewStockUseCase construye el caso de uso. notifier puede ser nil (sin
// notificaciones).
func NewStockUseCase(txRunner TxRunner, notifier Notifier) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, notifier: notifier}
}

// ReceiveStockInput entrada para recibir stock en un bucket.
type ReceiveStockInput struct {
	CategoryID string
	Quantity   int64
	UnitPrice  decimal.Decimal
}

// SellStockInput entrada para vender stock de un bucket existente.
type SellStockInput struct {
	ProductID string
	Quantity  int64
}

// ReceiveStock suma stock al bucket (categoría, precio unitario) del dueño,
// creándolo si no existe, y registra el asiento RECEIVED. El match del bucket
// es por igualdad decimal exacta: precios distintos son lotes distintos.
// La notificación se intenta después del commit y nunca afecta el resultado.
func (uc *StockUseCase) ReceiveStock(ctx context.Context, ownerID string, in ReceiveStockInput) (*dto.StockOperationResponse, error) {
	if in.CategoryID == "" || in.Quantity <= 0 || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	// Un ID que ni siquiera es UUID se comporta como inexistente, sin tocar
	// la base (la columna es UUID y el encode fallaría con un error opaco).
	if uuid.Validate(in.CategoryID) != nil {
		return nil, domain.ErrNotFound
	}

	var (
		productID string
		newQty    int64
		category  *entity.Category
	)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		categoryRepo repository.CategoryRepository,
	) error {
		var err error
		category, err = categoryRepo.GetByIDAndOwner(in.CategoryID, ownerID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}

		// Bucket por (categoría, precio), fila bloqueada hasta el commit
		bucket, err := productRepo.GetBucketForUpdate(category.ID, in.UnitPrice)
		if err != nil {
			return err
		}
		now := time.Now()
		if bucket != nil {
			newQty = bucket.Quantity + in.Quantity
			if err := productRepo.UpdateQuantity(bucket.ID, newQty); err != nil {
				return err
			}
			productID = bucket.ID
		} else {
			categoryID := category.ID
			product := &entity.Product{
				ID:         uuid.New().String(),
				CategoryID: &categoryID,
				Quantity:   in.Quantity,
				UnitPrice:  in.UnitPrice,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := productRepo.Create(product); err != nil {
				return err
			}
			productID = product.ID
			newQty = in.Quantity
		}

		categoryID := category.ID
		return movementRepo.Create(&entity.StockMovement{
			ID:         uuid.New().String(),
			OwnerID:    ownerID,
			CategoryID: &categoryID,
			Quantity:   in.Quantity,
			Direction:  entity.DirectionReceived,
			UnitPrice:  in.UnitPrice,
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.notifyAsync(receiveMessage(category.Kind, category.Name, in.UnitPrice, in.Quantity, newQty))
	return &dto.StockOperationResponse{Success: true, ProductID: productID, NewQuantity: newQty}, nil
}

// SellStock descuenta stock de un bucket del dueño y registra el asiento
// SOLD. Si la cantidad pedida excede la disponible no muta nada y devuelve
// ErrInsufficientStock (condición corregible por el usuario, no una falla).
func (uc *StockUseCase) SellStock(ctx context.Context, ownerID string, in SellStockInput) (*dto.StockOperationResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if uuid.Validate(in.ProductID) != nil {
		return nil, domain.ErrNotFound
	}

	var (
		newQty    int64
		unitPrice decimal.Decimal
		category  *entity.Category
	)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		categoryRepo repository.CategoryRepository,
	) error {
		// Fila bloqueada: la verificación y el descuento son atómicos
		product, err := productRepo.GetForUpdateByIDAndOwner(in.ProductID, ownerID)
		if err != nil {
			return err
		}
		if product == nil || product.CategoryID == nil {
			return domain.ErrNotFound
		}
		if in.Quantity > product.Quantity {
			return domain.ErrInsufficientStock
		}

		category, err = categoryRepo.GetByIDAndOwner(*product.CategoryID, ownerID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}

		newQty = product.Quantity - in.Quantity
		unitPrice = product.UnitPrice
		if err := productRepo.UpdateQuantity(product.ID, newQty); err != nil {
			return err
		}

		categoryID := category.ID
		return movementRepo.Create(&entity.StockMovement{
			ID:         uuid.New().String(),
			OwnerID:    ownerID,
			CategoryID: &categoryID,
			Quantity:   in.Quantity,
			Direction:  entity.DirectionSold,
			UnitPrice:  unitPrice,
			CreatedAt:  time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	uc.notifyAsync(sellMessage(category.Kind, category.Name, unitPrice, in.Quantity, newQty))
	return &dto.StockOperationResponse{Success: true, ProductID: in.ProductID, NewQuantity: newQty}, nil
}

// notifyAsync entrega la notificación fuera de la transacción y sin bloquear
// la respuesta. El efecto durable ya está confirmado: un fallo de entrega
// solo se registra.
func (uc *StockUseCase) notifyAsync(text string) {
	if uc.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.notifier.Send(ctx, text); err != nil {
			log.Warn().Err(err).Msg("entrega de notificación fallida")
		}
	}()
}

package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/sklad-ledger/internal/application/dto"
	"github.com/jhoicas/sklad-ledger/internal/domain"
	"github.com/jhoicas/sklad-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/sklad-ledger/internal/domain/inventory"
	"github.com/jhoicas/sklad-ledger/internal/domain/repository"
)

// CatalogUseCase administra categorías y el listado de buckets. Toda
// operación recibe el dueño autenticado y solo ve sus propias filas.
type CatalogUseCase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{categoryRepo: categoryRepo, productRepo: productRepo}
}

// CreateCategory crea una categoría del dueño. Kind debe ser raw o finished;
// el nombre es texto libre sin unicidad.
func (uc *CatalogUseCase) CreateCategory(ownerID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" || !entity.ValidKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Kind:      in.Kind,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetCategory devuelve una categoría del dueño o ErrNotFound.
func (uc *CatalogUseCase) GetCategory(ownerID, id string) (*dto.CategoryResponse, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	category, err := uc.categoryRepo.GetByIDAndOwner(id, ownerID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// ListCategories lista las categorías del dueño, filtrando por tipo de
// almacén si kind no es vacío.
func (uc *CatalogUseCase) ListCategories(ownerID, kind string, page dto.PageRequest) ([]dto.CategoryResponse, error) {
	if kind != "" && !entity.ValidKind(kind) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	categories, err := uc.categoryRepo.ListByOwner(ownerID, kind, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// UpdateCategory renombra una categoría del dueño.
func (uc *CatalogUseCase) UpdateCategory(ownerID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	category, err := uc.categoryRepo.GetByIDAndOwner(id, ownerID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	category.Name = in.Name
	category.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// DeleteCategory elimina una categoría del dueño junto con sus buckets.
// Los asientos del libro se conservan huérfanos (category_id en NULL).
func (uc *CatalogUseCase) DeleteCategory(ownerID, id string) error {
	if uuid.Validate(id) != nil {
		return domain.ErrNotFound
	}
	return uc.categoryRepo.Delete(id, ownerID)
}

// ListProducts lista los buckets con stock del dueño junto con el valor
// total del conjunto visible (Σ cantidad × precio).
func (uc *CatalogUseCase) ListProducts(ownerID, kind string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if kind != "" && !entity.ValidKind(kind) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	rows, err := uc.productRepo.ListByOwner(ownerID, kind, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	products := make([]dto.ProductResponse, 0, len(rows))
	lines := make([]domaininv.Line, 0, len(rows))
	for _, r := range rows {
		products = append(products, dto.ProductResponse{
			ID:           r.ID,
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			Kind:         r.Kind,
			Quantity:     r.Quantity,
			UnitPrice:    r.UnitPrice,
		})
		lines = append(lines, domaininv.Line{Quantity: r.Quantity, UnitPrice: r.UnitPrice})
	}
	return &dto.ProductListResponse{
		Products:   products,
		TotalValue: domaininv.TotalValue(lines),
		Page:       dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(products)},
	}, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        c.ID,
		Kind:      c.Kind,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

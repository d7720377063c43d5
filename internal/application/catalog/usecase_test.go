package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sklad-ledger/internal/application/dto"
	"github.com/jhoicas/sklad-ledger/internal/domain"
	"github.com/jhoicas/sklad-ledger/internal/domain/entity"
	"github.com/jhoicas/sklad-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByIDAndOwner(id, ownerID string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) ListByOwner(ownerID, kind string, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		if c.OwnerID != ownerID {
			continue
		}
		if kind != "" && c.Kind != kind {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(id, ownerID string) error {
	c, ok := r.categories[id]
	if !ok || c.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

type fakeProductRepo struct {
	rows []repository.ProductRow
}

func (r *fakeProductRepo) Create(*entity.Product) error { return nil }
func (r *fakeProductRepo) GetBucketForUpdate(string, decimal.Decimal) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) GetForUpdateByIDAndOwner(string, string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) UpdateQuantity(string, int64) error { return nil }

func (r *fakeProductRepo) ListByOwner(ownerID, kind string, limit, offset int) ([]repository.ProductRow, error) {
	var out []repository.ProductRow
	for _, row := range r.rows {
		if kind != "" && row.Kind != kind {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func newCatalogUC(rows ...repository.ProductRow) (*CatalogUseCase, *fakeCategoryRepo) {
	catRepo := newFakeCategoryRepo()
	return NewCatalogUseCase(catRepo, &fakeProductRepo{rows: rows}), catRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateCategory_KindInvalido(t *testing.T) {
	uc, _ := newCatalogUC()
	_, err := uc.CreateCategory("owner-1", dto.CreateCategoryRequest{Name: "Harina", Kind: "bodega"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateCategory_NombreVacio(t *testing.T) {
	uc, _ := newCatalogUC()
	_, err := uc.CreateCategory("owner-1", dto.CreateCategoryRequest{Name: "", Kind: entity.KindRaw})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateCategory_NombreDuplicadoPermitido(t *testing.T) {
	// El nombre es texto libre: dos categorías con el mismo nombre conviven.
	uc, _ := newCatalogUC()
	a, err := uc.CreateCategory("owner-1", dto.CreateCategoryRequest{Name: "Harina", Kind: entity.KindRaw})
	require.NoError(t, err)
	b, err := uc.CreateCategory("owner-1", dto.CreateCategoryRequest{Name: "Harina", Kind: entity.KindRaw})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGetCategory_AjenaSeComportaComoInexistente(t *testing.T) {
	uc, _ := newCatalogUC()
	created, err := uc.CreateCategory("owner-1", dto.CreateCategoryRequest{Name: "Harina", Kind: entity.KindRaw})
	require.NoError(t, err)

	_, err = uc.GetCategory("owner-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"una categoría ajena debe verse como inexistente, no como prohibida")

	got, err := uc.GetCategory("owner-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harina", got.Name)
}

func TestListCategories_FiltraPorKindYDueno(t *testing.T) {
	uc, _ := newCatalogUC()
	_, err := uc.CreateCategory("owner-1", dto.CreateCategoryRequest{Name: "Harina", Kind: entity.KindRaw})
	require.NoError(t, err)
	_, err = uc.CreateCategory("owner-1", dto.CreateCategoryRequest{Name: "Pan", Kind: entity.KindFinished})
	require.NoError(t, err)
	_, err = uc.CreateCategory("owner-2", dto.CreateCategoryRequest{Name: "Azúcar", Kind: entity.KindRaw})
	require.NoError(t, err)

	raws, err := uc.ListCategories("owner-1", entity.KindRaw, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "Harina", raws[0].Name)

	all, err := uc.ListCategories("owner-1", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2, "no debe ver las categorías de otro dueño")

	_, err = uc.ListCategories("owner-1", "bodega", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateCategory_Renombra(t *testing.T) {
	uc, _ := newCatalogUC()
	created, err := uc.CreateCategory("owner-1", dto.CreateCategoryRequest{Name: "Harina", Kind: entity.KindRaw})
	require.NoError(t, err)

	updated, err := uc.UpdateCategory("owner-1", created.ID, dto.UpdateCategoryRequest{Name: "Harina integral"})
	require.NoError(t, err)
	assert.Equal(t, "Harina integral", updated.Name)
	assert.Equal(t, entity.KindRaw, updated.Kind, "el kind no cambia al renombrar")
}

func TestCategoria_IDMalformadoEsNotFound(t *testing.T) {
	// Un path param que no es UUID nunca llega al repositorio: se resuelve
	// como inexistente igual que una fila ajena.
	uc, catRepo := newCatalogUC()
	_, err := uc.CreateCategory("owner-1", dto.CreateCategoryRequest{Name: "Harina", Kind: entity.KindRaw})
	require.NoError(t, err)

	_, err = uc.GetCategory("owner-1", "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateCategory("owner-1", "abc", dto.UpdateCategoryRequest{Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.DeleteCategory("owner-1", "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, catRepo.categories, 1, "nada debe mutarse")
}

func TestUpdateCategory_AjenaRetornaNotFound(t *testing.T) {
	uc, _ := newCatalogUC()
	created, err := uc.CreateCategory("owner-1", dto.CreateCategoryRequest{Name: "Harina", Kind: entity.KindRaw})
	require.NoError(t, err)

	_, err = uc.UpdateCategory("owner-2", created.ID, dto.UpdateCategoryRequest{Name: "Robada"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCategory_SoloDelDueno(t *testing.T) {
	uc, catRepo := newCatalogUC()
	created, err := uc.CreateCategory("owner-1", dto.CreateCategoryRequest{Name: "Harina", Kind: entity.KindRaw})
	require.NoError(t, err)

	err = uc.DeleteCategory("owner-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.DeleteCategory("owner-1", created.ID))
	assert.Empty(t, catRepo.categories)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de listado de buckets
// ──────────────────────────────────────────────────────────────────────────────

func TestListProducts_TotalDelConjuntoVisible(t *testing.T) {
	rows := []repository.ProductRow{
		{ID: "p1", CategoryName: "Harina", Kind: entity.KindRaw, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{ID: "p2", CategoryName: "Pan", Kind: entity.KindFinished, Quantity: 1, UnitPrice: decimal.RequireFromString("5.50")},
	}
	uc, _ := newCatalogUC(rows...)

	out, err := uc.ListProducts("owner-1", "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Products, 2)
	assert.True(t, out.TotalValue.Equal(decimal.RequireFromString("25.50")),
		"total esperado 25.50, obtenido %s", out.TotalValue)
}

func TestListProducts_FiltroPorKindRecalculaTotal(t *testing.T) {
	rows := []repository.ProductRow{
		{ID: "p1", CategoryName: "Harina", Kind: entity.KindRaw, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{ID: "p2", CategoryName: "Pan", Kind: entity.KindFinished, Quantity: 1, UnitPrice: decimal.RequireFromString("5.50")},
	}
	uc, _ := newCatalogUC(rows...)

	out, err := uc.ListProducts("owner-1", entity.KindFinished, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.True(t, out.TotalValue.Equal(decimal.RequireFromString("5.50")),
		"el total debe cubrir solo el conjunto filtrado")
}

func TestListProducts_VacioTotalCero(t *testing.T) {
	uc, _ := newCatalogUC()
	out, err := uc.ListProducts("owner-1", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Products)
	assert.True(t, out.TotalValue.IsZero())
	assert.Equal(t, "0", strings.TrimSpace(out.TotalValue.String()))
}

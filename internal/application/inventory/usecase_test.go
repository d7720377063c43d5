package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/sklad-ledger/internal/application/inventory"
	"github.com/jhoicas/sklad-ledger/internal/domain"
	"github.com/jhoicas/sklad-ledger/internal/domain/entity"
	"github.com/jhoicas/sklad-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un almacén compartido protegido por mutex. El TxRunner
// fake toma el lock por toda la transacción, que es la misma garantía de
// serialización que da el SELECT FOR UPDATE real sobre la fila del bucket.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu         sync.Mutex
	categories map[string]*entity.Category
	products   map[string]*entity.Product
	movements  []*entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{
		categories: map[string]*entity.Category{},
		products:   map[string]*entity.Product{},
	}
}

type memTxRunner struct{ store *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	categoryRepo repository.CategoryRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(&memProductRepo{r.store}, &memMovementRepo{r.store}, &memCategoryRepo{r.store})
}

type memCategoryRepo struct{ store *memStore }

func (r *memCategoryRepo) Create(c *entity.Category) error {
	r.store.categories[c.ID] = c
	return nil
}

func (r *memCategoryRepo) GetByIDAndOwner(id, ownerID string) (*entity.Category, error) {
	c, ok := r.store.categories[id]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	return c, nil
}

func (r *memCategoryRepo) ListByOwner(ownerID, kind string, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.store.categories {
		if c.OwnerID == ownerID && (kind == "" || c.Kind == kind) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) Update(c *entity.Category) error { return nil }
func (r *memCategoryRepo) Delete(id, ownerID string) error { return nil }

type memProductRepo struct{ store *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetBucketForUpdate(categoryID string, unitPrice decimal.Decimal) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID && p.UnitPrice.Equal(unitPrice) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetForUpdateByIDAndOwner(id, ownerID string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok || p.CategoryID == nil {
		return nil, nil
	}
	c, ok := r.store.categories[*p.CategoryID]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) UpdateQuantity(id string, quantity int64) error {
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *memProductRepo) ListByOwner(ownerID, kind string, limit, offset int) ([]repository.ProductRow, error) {
	return nil, nil
}

type memMovementRepo struct{ store *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByOwner(ownerID string, f repository.LedgerFilter) ([]repository.LedgerRow, error) {
	return nil, nil
}

// recordingNotifier captura los mensajes enviados; failingNotifier siempre falla.

type recordingNotifier struct {
	sent chan string
}

func (n *recordingNotifier) Send(_ context.Context, text string) error {
	n.sent <- text
	return nil
}

type failingNotifier struct{}

func (failingNotifier) Send(context.Context, string) error {
	return errors.New("canal no disponible")
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerA = "owner-a"
	ownerB = "owner-b"

	// IDs de fixtures: UUIDs válidos, los casos de uso rechazan el resto.
	catID  = "00000000-0000-0000-0000-0000000000c1"
	prodID = "00000000-0000-0000-0000-0000000000b1"
)

func seedCategory(store *memStore, id, ownerID, kind, name string) {
	store.categories[id] = &entity.Category{ID: id, OwnerID: ownerID, Kind: kind, Name: name}
}

func seedProduct(store *memStore, id, categoryID string, qty int64, price string) {
	cid := categoryID
	store.products[id] = &entity.Product{
		ID:         id,
		CategoryID: &cid,
		Quantity:   qty,
		UnitPrice:  decimal.RequireFromString(price),
	}
}

func newUseCase(store *memStore, notifier appinv.Notifier) *appinv.StockUseCase {
	return appinv.NewStockUseCase(&memTxRunner{store: store}, notifier)
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveStock
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveStock_CreaBucketNuevo(t *testing.T) {
	store := newMemStore()
	seedCategory(store, catID, ownerA, entity.KindRaw, "Harina")
	uc := newUseCase(store, nil)

	out, err := uc.ReceiveStock(context.Background(), ownerA, appinv.ReceiveStockInput{
		CategoryID: catID, Quantity: 5, UnitPrice: price("10.00"),
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, int64(5), out.NewQuantity)

	require.Len(t, store.movements, 1, "debe haber exactamente un asiento")
	mov := store.movements[0]
	assert.Equal(t, entity.DirectionReceived, mov.Direction)
	assert.Equal(t, int64(5), mov.Quantity)
	assert.True(t, mov.UnitPrice.Equal(price("10.00")))
	assert.Equal(t, ownerA, mov.OwnerID)
}

func TestReceiveStock_FusionaEnBucketExistente(t *testing.T) {
	store := newMemStore()
	seedCategory(store, catID, ownerA, entity.KindRaw, "Harina")
	seedProduct(store, prodID, catID, 3, "10.00")
	uc := newUseCase(store, nil)

	out, err := uc.ReceiveStock(context.Background(), ownerA, appinv.ReceiveStockInput{
		CategoryID: catID, Quantity: 5, UnitPrice: price("10.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, prodID, out.ProductID, "mismo precio exacto debe fusionar en el bucket existente")
	assert.Equal(t, int64(8), out.NewQuantity)
	assert.Equal(t, int64(8), store.products[prodID].Quantity)
	assert.Len(t, store.movements, 1)
}

// Un centavo de diferencia en el precio crea un lote separado, nunca fusiona.
func TestReceiveStock_PrecioDistintoCreaOtroBucket(t *testing.T) {
	store := newMemStore()
	seedCategory(store, catID, ownerA, entity.KindRaw, "Harina")
	uc := newUseCase(store, nil)

	out1, err := uc.ReceiveStock(context.Background(), ownerA, appinv.ReceiveStockInput{
		CategoryID: catID, Quantity: 5, UnitPrice: price("10.00"),
	})
	require.NoError(t, err)
	out2, err := uc.ReceiveStock(context.Background(), ownerA, appinv.ReceiveStockInput{
		CategoryID: catID, Quantity: 3, UnitPrice: price("10.01"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, out1.ProductID, out2.ProductID)
	assert.Len(t, store.products, 2)
	assert.Equal(t, int64(5), out1.NewQuantity)
	assert.Equal(t, int64(3), out2.NewQuantity)
}

func TestReceiveStock_CantidadInvalida(t *testing.T) {
	store := newMemStore()
	seedCategory(store, catID, ownerA, entity.KindRaw, "Harina")
	uc := newUseCase(store, nil)

	for _, qty := range []int64{0, -4} {
		_, err := uc.ReceiveStock(context.Background(), ownerA, appinv.ReceiveStockInput{
			CategoryID: catID, Quantity: qty, UnitPrice: price("10.00"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d debe rechazarse", qty)
	}
	assert.Empty(t, store.movements, "una operación rechazada no asienta nada")
}

func TestReceiveStock_CategoriaAjenaEsNotFound(t *testing.T) {
	store := newMemStore()
	seedCategory(store, catID, ownerA, entity.KindRaw, "Harina")
	uc := newUseCase(store, nil)

	// El dueño B ve la categoría de A como inexistente, nunca como prohibida
	_, err := uc.ReceiveStock(context.Background(), ownerB, appinv.ReceiveStockInput{
		CategoryID: catID, Quantity: 5, UnitPrice: price("10.00"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.products)
	assert.Empty(t, store.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// SellStock
// ──────────────────────────────────────────────────────────────────────────────

func TestSellStock_DescuentaYAsienta(t *testing.T) {
	store := newMemStore()
	seedCategory(store, catID, ownerA, entity.KindFinished, "Pan")
	seedProduct(store, prodID, catID, 10, "2.50")
	uc := newUseCase(store, nil)

	out, err := uc.SellStock(context.Background(), ownerA, appinv.SellStockInput{
		ProductID: prodID, Quantity: 4,
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, int64(6), out.NewQuantity)
	assert.Equal(t, int64(6), store.products[prodID].Quantity)

	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.DirectionSold, mov.Direction)
	assert.Equal(t, int64(4), mov.Quantity)
	assert.True(t, mov.UnitPrice.Equal(price("2.50")), "el asiento toma el precio del bucket")
}

func TestSellStock_StockInsuficienteNoMutaNada(t *testing.T) {
	store := newMemStore()
	seedCategory(store, catID, ownerA, entity.KindFinished, "Pan")
	seedProduct(store, prodID, catID, 3, "2.50")
	uc := newUseCase(store, nil)

	_, err := uc.SellStock(context.Background(), ownerA, appinv.SellStockInput{
		ProductID: prodID, Quantity: 4,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), store.products[prodID].Quantity, "el stock no debe cambiar")
	assert.Empty(t, store.movements, "no debe asentarse nada")
}

func TestSellStock_ProductoAjenoEsNotFound(t *testing.T) {
	store := newMemStore()
	seedCategory(store, catID, ownerA, entity.KindFinished, "Pan")
	seedProduct(store, prodID, catID, 10, "2.50")
	uc := newUseCase(store, nil)

	_, err := uc.SellStock(context.Background(), ownerB, appinv.SellStockInput{
		ProductID: prodID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(10), store.products[prodID].Quantity)
}

func TestSellStock_ProductoInexistente(t *testing.T) {
	uc := newUseCase(newMemStore(), nil)
	_, err := uc.SellStock(context.Background(), ownerA, appinv.SellStockInput{
		ProductID: "00000000-0000-0000-0000-0000000000ff", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un ID que ni siquiera es UUID se comporta como inexistente: NotFound sin
// tocar el almacén (antes llegaba a la columna UUID y explotaba como 500).
func TestSellStock_IDMalformadoEsNotFound(t *testing.T) {
	store := newMemStore()
	seedCategory(store, catID, ownerA, entity.KindFinished, "Pan")
	seedProduct(store, prodID, catID, 10, "2.50")
	uc := newUseCase(store, nil)

	for _, malformed := range []string{"abc", "prod-1", "00000000-0000"} {
		_, err := uc.SellStock(context.Background(), ownerA, appinv.SellStockInput{
			ProductID: malformed, Quantity: 1,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound, "id %q debe verse como inexistente", malformed)
	}
	assert.Equal(t, int64(10), store.products[prodID].Quantity)
	assert.Empty(t, store.movements)
}

func TestReceiveStock_CategoriaMalformadaEsNotFound(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(store, nil)

	_, err := uc.ReceiveStock(context.Background(), ownerA, appinv.ReceiveStockInput{
		CategoryID: "cat-1", Quantity: 5, UnitPrice: price("10.00"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.products)
	assert.Empty(t, store.movements)
}

func TestSellStock_CantidadInvalida(t *testing.T) {
	store := newMemStore()
	seedCategory(store, catID, ownerA, entity.KindFinished, "Pan")
	seedProduct(store, prodID, catID, 10, "2.50")
	uc := newUseCase(store, nil)

	_, err := uc.SellStock(context.Background(), ownerA, appinv.SellStockInput{
		ProductID: prodID, Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: dos ventas simultáneas de 6 sobre un bucket de 10. Como la
// verificación y el descuento corren bajo la misma transacción serializada,
// exactamente una debe ganar y el stock final es 4, nunca negativo.
// ──────────────────────────────────────────────────────────────────────────────

func TestSellStock_VentasConcurrentesNoSobrevenden(t *testing.T) {
	store := newMemStore()
	seedCategory(store, catID, ownerA, entity.KindRaw, "Harina")
	seedProduct(store, prodID, catID, 10, "1.00")
	uc := newUseCase(store, nil)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.SellStock(context.Background(), ownerA, appinv.SellStockInput{
				ProductID: prodID, Quantity: 6,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, insufficient int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactamente una venta debe pasar")
	assert.Equal(t, 1, insufficient, "la otra debe fallar por stock insuficiente")
	assert.Equal(t, int64(4), store.products[prodID].Quantity)
	assert.Len(t, store.movements, 1, "solo la venta ganadora asienta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificaciones: best-effort, desacopladas del resultado durable.
// ──────────────────────────────────────────────────────────────────────────────

func TestNotificacion_SeEnviaTrasElCommit(t *testing.T) {
	store := newMemStore()
	seedCategory(store, catID, ownerA, entity.KindRaw, "Harina")
	notifier := &recordingNotifier{sent: make(chan string, 1)}
	uc := newUseCase(store, notifier)

	_, err := uc.ReceiveStock(context.Background(), ownerA, appinv.ReceiveStockInput{
		CategoryID: catID, Quantity: 5, UnitPrice: price("10.00"),
	})
	require.NoError(t, err)

	select {
	case text := <-notifier.sent:
		assert.Contains(t, text, "Harina")
		assert.Contains(t, text, "Entrada")
		assert.Contains(t, text, "10.00")
	case <-time.After(2 * time.Second):
		t.Fatal("la notificación nunca se envió")
	}
}

func TestNotificacion_FalloNoAfectaLaOperacion(t *testing.T) {
	store := newMemStore()
	seedCategory(store, catID, ownerA, entity.KindFinished, "Pan")
	seedProduct(store, prodID, catID, 10, "2.50")
	uc := newUseCase(store, failingNotifier{})

	out, err := uc.SellStock(context.Background(), ownerA, appinv.SellStockInput{
		ProductID: prodID, Quantity: 4,
	})
	require.NoError(t, err, "el fallo del canal no debe propagarse: la mutación ya está confirmada")
	assert.True(t, out.Success)
	assert.Equal(t, int64(6), store.products[prodID].Quantity)
	assert.Len(t, store.movements, 1)
}

// Varias recepciones seguidas acumulan correctamente (propiedad aritmética).
func TestReceiveStock_AcumulaSobreElMismoBucket(t *testing.T) {
	store := newMemStore()
	seedCategory(store, catID, ownerA, entity.KindRaw, "Azúcar")
	uc := newUseCase(store, nil)

	var last int64
	for i := 1; i <= 5; i++ {
		out, err := uc.ReceiveStock(context.Background(), ownerA, appinv.ReceiveStockInput{
			CategoryID: catID, Quantity: int64(i), UnitPrice: price("7.25"),
		})
		require.NoError(t, err, fmt.Sprintf("recepción %d", i))
		last = out.NewQuantity
	}
	assert.Equal(t, int64(15), last, "1+2+3+4+5")
	assert.Len(t, store.movements, 5, "un asiento por operación")
}

// seed pobla la base de datos con un usuario demo, categorías de ambos
// almacenes y algunos movimientos de stock iniciales.
//
// Uso: go run ./cmd/seed
// Idempotente: si el usuario demo ya existe, reutiliza su cuenta y solo
// agrega los movimientos.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sklad-ledger/internal/application/dto"
	"github.com/jhoicas/sklad-ledger/internal/application/inventory"
	"github.com/jhoicas/sklad-ledger/internal/domain/entity"
	"github.com/jhoicas/sklad-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/sklad-ledger/pkg/config"
)

const (
	demoEmail    = "demo@sklad-ledger.local"
	demoPassword = "demo-password-123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	stockUC := inventory.NewStockUseCase(txRunner, nil)

	// Usuario demo (idempotente)
	user, err := userRepo.FindByEmail(demoEmail)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Buscar usuario demo: %v\n", err)
		os.Exit(1)
	}
	if user == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Hash de contraseña: %v\n", err)
			os.Exit(1)
		}
		now := time.Now()
		user = &entity.User{
			ID:           uuid.New().String(),
			Email:        demoEmail,
			PasswordHash: string(hash),
			Name:         "Usuario Demo",
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(user); err != nil {
			fmt.Fprintf(os.Stderr, "Crear usuario demo: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Usuario demo creado: %s / %s\n", demoEmail, demoPassword)
	} else {
		fmt.Printf("Usuario demo existente: %s\n", demoEmail)
	}

	// Categorías de ambos almacenes
	seedCategories := []struct {
		kind, name string
	}{
		{entity.KindRaw, "Harina"},
		{entity.KindRaw, "Azúcar"},
		{entity.KindFinished, "Pan"},
		{entity.KindFinished, "Galletas"},
	}
	categoryIDs := make(map[string]string)
	for _, c := range seedCategories {
		now := time.Now()
		category := &entity.Category{
			ID:        uuid.New().String(),
			OwnerID:   user.ID,
			Kind:      c.kind,
			Name:      c.name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := categoryRepo.Create(category); err != nil {
			fmt.Fprintf(os.Stderr, "Crear categoría %q: %v\n", c.name, err)
			os.Exit(1)
		}
		categoryIDs[c.name] = category.ID
		fmt.Printf("Categoría creada: %s (%s)\n", c.name, c.kind)
	}

	// Movimientos iniciales: recepciones que crean o fusionan buckets.
	seedStock := []struct {
		category string
		quantity int64
		price    string
	}{
		{"Harina", 100, "2.50"},
		{"Azúcar", 60, "3.10"},
		{"Pan", 40, "1.20"},
		{"Pan", 10, "1.20"}, // se fusiona con el bucket anterior
		{"Galletas", 25, "4.75"},
	}
	var resp *dto.StockOperationResponse
	for _, s := range seedStock {
		resp, err = stockUC.ReceiveStock(ctx, user.ID, inventory.ReceiveStockInput{
			CategoryID: categoryIDs[s.category],
			Quantity:   s.quantity,
			UnitPrice:  decimal.RequireFromString(s.price),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Recibir stock %q: %v\n", s.category, err)
			os.Exit(1)
		}
		fmt.Printf("Stock recibido: %s x%d @ %s (bucket %s, total %d)\n",
			s.category, s.quantity, s.price, resp.ProductID, resp.NewQuantity)
	}

	fmt.Println("Seed completado.")
}

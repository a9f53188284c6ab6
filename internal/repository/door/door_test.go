package door

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DanillS/doors-web/internal/domain"
	"github.com/DanillS/doors-web/internal/migrate"
)

func TestPostgres_CreateListGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	repo := NewPostgres(pool, nil)

	base := int64(12500)
	created, err := repo.Create(ctx, domain.Door{
		Name:      "Дверь классическая 'Венеция'",
		Price:     12500,
		BasePrice: &base,
		Material:  "Массив дуба",
		Glass:     domain.DefaultGlass,
		TearType:  domain.DefaultTearType,
		Images:    []string{"/doors/door1.jpg"},
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id, got %+v", created)
	}

	inactive, err := repo.Create(ctx, domain.Door{
		Name:     "Дверь скрытая",
		Price:    9000,
		Glass:    domain.DefaultGlass,
		TearType: domain.DefaultTearType,
		Images:   []string{},
		IsActive: false,
	})
	if err != nil {
		t.Fatalf("create inactive: %v", err)
	}

	public, err := repo.List(ctx, false)
	if err != nil {
		t.Fatalf("list public: %v", err)
	}
	for _, d := range public {
		if d.ID == inactive.ID {
			t.Fatalf("inactive door leaked into public listing")
		}
	}

	all, err := repo.List(ctx, true)
	if err != nil {
		t.Fatalf("list admin: %v", err)
	}
	if len(all) != len(public)+1 {
		t.Fatalf("expected admin listing to add the inactive row: public=%d all=%d", len(public), len(all))
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.BasePrice == nil || *got.BasePrice != base {
		t.Fatalf("base price lost: %+v", got.BasePrice)
	}
	if len(got.Images) != 1 {
		t.Fatalf("images lost: %+v", got.Images)
	}

	if _, err := repo.GetByID(ctx, 999999999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_PricingRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	repo := NewPostgres(pool, nil)

	created, err := repo.Create(ctx, domain.Door{
		Name:     "Дверь для переоценки",
		Price:    10000,
		Glass:    domain.DefaultGlass,
		TearType: domain.DefaultTearType,
		Images:   []string{},
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.UpdatePrice(ctx, created.ID, 11000); err != nil {
		t.Fatalf("update price: %v", err)
	}

	rows, err := repo.ListPricing(ctx)
	if err != nil {
		t.Fatalf("list pricing: %v", err)
	}
	found := false
	for _, row := range rows {
		if row.ID == created.ID {
			found = true
			if row.Price != 11000 {
				t.Fatalf("expected price 11000, got %d", row.Price)
			}
		}
	}
	if !found {
		t.Fatalf("created door missing from pricing projection")
	}

	if err := repo.UpdatePrice(ctx, 999999999, 100); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE doors RESTART IDENTITY`); err != nil {
		t.Fatalf("truncate doors: %v", err)
	}
	return pool
}

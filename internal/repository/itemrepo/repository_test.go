package itemrepo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopantry/internal/domain"
	apperror "gopantry/internal/errors"
	"gopantry/internal/pkg/logger"
)

// testTx abre uma transação com uma tabela items temporária; tudo é
// descartado no rollback. Pula o teste quando não há Postgres disponível.
func testTx(t *testing.T) pgx.Tx {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL não definido; pulando teste de integração")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("Postgres indisponível: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("Postgres indisponível: %v", err)
	}

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = tx.Rollback(ctx)
		pool.Close()
	})

	_, err = tx.Exec(ctx, `
        CREATE TEMP TABLE items (
            id                  TEXT PRIMARY KEY,
            name                TEXT NOT NULL,
            quantity            DOUBLE PRECISION NOT NULL CHECK (quantity >= 0),
            unit                TEXT NOT NULL,
            low_stock_threshold DOUBLE PRECISION NOT NULL DEFAULT 5,
            created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
        ) ON COMMIT DROP`)
	require.NoError(t, err)
	return tx
}

func TestItemRepository_RoundTrip(t *testing.T) {
	tx := testTx(t)
	repo := NewItemRepository(tx, 5*time.Second, logger.NewNopLogger())
	ctx := context.Background()

	older := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	_, err := repo.Insert(ctx, domain.Item{ID: "a", Name: "Tomatoes", Quantity: 12, Unit: "pieces", LowStockThreshold: 5, LastUpdated: older})
	require.NoError(t, err)
	stored, err := repo.Insert(ctx, domain.Item{ID: "b", Name: "Olive Oil", Quantity: 2.5, Unit: "liters", LowStockThreshold: 1, LastUpdated: newer})
	require.NoError(t, err)
	assert.Equal(t, "Olive Oil", stored.Name)
	assert.Equal(t, 2.5, stored.Quantity)

	items, err := repo.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID, "mais recente primeiro")

	later := newer.Add(time.Hour)
	require.NoError(t, repo.UpdateQuantity(ctx, "a", 11, later))
	items, err = repo.SelectAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, 11.0, items[0].Quantity)
	assert.True(t, later.Equal(items[0].LastUpdated))

	require.NoError(t, repo.Delete(ctx, "a"))
	items, err = repo.SelectAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestItemRepository_MissingRowsAndDuplicates(t *testing.T) {
	tx := testTx(t)
	repo := NewItemRepository(tx, 5*time.Second, logger.NewNopLogger())
	ctx := context.Background()

	err := repo.UpdateQuantity(ctx, "ghost", 1, time.Now())
	assert.IsType(t, &apperror.NotFoundError{}, err)

	err = repo.Delete(ctx, "ghost")
	assert.IsType(t, &apperror.NotFoundError{}, err)

	item := domain.Item{ID: "dup", Name: "Salt", Quantity: 0, Unit: "kg", LowStockThreshold: 0.5, LastUpdated: time.Now()}
	_, err = repo.Insert(ctx, item)
	require.NoError(t, err)
	_, err = repo.Insert(ctx, item)
	assert.IsType(t, &apperror.ConflictError{}, err)
}

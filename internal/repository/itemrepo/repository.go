package itemrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"gopantry/internal/domain"
	apperror "gopantry/internal/errors"
	"gopantry/internal/pkg/logger"
)

// uniqueViolation é o SQLSTATE do PostgreSQL para chave duplicada.
const uniqueViolation = "23505"

// DBTX é o subconjunto do *pgxpool.Pool (ou pgx.Tx) usado pelo repositório.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ItemRepository é o Persistence Adapter sobre PostgreSQL.
type ItemRepository struct {
	DB        DBTX
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewItemRepository cria e retorna uma nova instância do Repositório de Itens.
func NewItemRepository(db DBTX, dbTimeout time.Duration, logger logger.Logger) *ItemRepository {
	return &ItemRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

const itemColumns = `id, name, quantity, unit, low_stock_threshold, updated_at`

// Insert persiste um novo item e devolve a linha gravada.
func (r *ItemRepository) Insert(ctx context.Context, item domain.Item) (domain.Item, error) {
	r.logger.Debug("Iniciando Insert de item no repositório.", map[string]interface{}{"item_id": item.ID, "name": item.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO items (id, name, quantity, unit, low_stock_threshold, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $6)
        RETURNING ` + itemColumns

	var stored domain.Item
	err := r.DB.QueryRow(ctxTimeout, query,
		item.ID, item.Name, item.Quantity, item.Unit, item.LowStockThreshold, item.LastUpdated,
	).Scan(
		&stored.ID, &stored.Name, &stored.Quantity, &stored.Unit, &stored.LowStockThreshold, &stored.LastUpdated,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Warn("Item já existe no DB.", map[string]interface{}{"item_id": item.ID})
			return domain.Item{}, apperror.NewConflictError(fmt.Sprintf("Item com ID %s já existe.", item.ID))
		}
		r.logger.Error("Falha ao inserir item no DB.", err)
		return domain.Item{}, apperror.NewDBError("Falha ao inserir item", err)
	}

	r.logger.Info("Item inserido com sucesso.", map[string]interface{}{"item_id": stored.ID})
	return stored, nil
}

// SelectAll busca a coleção completa, mais recentes primeiro (updated_at DESC).
func (r *ItemRepository) SelectAll(ctx context.Context) ([]domain.Item, error) {
	r.logger.Debug("Iniciando SelectAll no repositório.", nil)

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + itemColumns + ` FROM items ORDER BY updated_at DESC, id`

	rows, err := r.DB.Query(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao executar SelectAll query.", err)
		return nil, apperror.NewDBError("Falha ao buscar itens", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.Unit, &it.LowStockThreshold, &it.LastUpdated); err != nil {
			r.logger.Error("Falha ao mapear linha de item.", err)
			return nil, apperror.NewDBError("Falha ao ler item", err)
		}
		it.LastUpdated = it.LastUpdated.UTC()
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Erro durante a iteração de itens.", err)
		return nil, apperror.NewDBError("Falha ao iterar itens", err)
	}

	r.logger.Info("Itens carregados do DB.", map[string]interface{}{"count": len(items)})
	return items, nil
}

// UpdateQuantity grava a nova quantidade e o carimbo de tempo do item.
// Devolve NotFoundError quando a linha não existe.
func (r *ItemRepository) UpdateQuantity(ctx context.Context, id string, quantity float64, updatedAt time.Time) error {
	r.logger.Debug("Iniciando UpdateQuantity no repositório.", map[string]interface{}{"item_id": id, "quantity": quantity})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `UPDATE items SET quantity = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.DB.Exec(ctxTimeout, query, quantity, updatedAt, id)
	if err != nil {
		r.logger.Error("Falha ao atualizar quantidade no DB.", err)
		return apperror.NewDBError("Falha ao atualizar quantidade", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Info("Item não encontrado para atualização.", map[string]interface{}{"item_id": id})
		return apperror.NewNotFoundError(fmt.Sprintf("Item com ID %s não existe na base de dados.", id))
	}
	return nil
}

// Delete remove o item. Devolve NotFoundError quando a linha não existe.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debug("Iniciando Delete de item no repositório.", map[string]interface{}{"item_id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tag, err := r.DB.Exec(ctxTimeout, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover item no DB.", err)
		return apperror.NewDBError("Falha ao remover item", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Info("Item não encontrado para remoção.", map[string]interface{}{"item_id": id})
		return apperror.NewNotFoundError(fmt.Sprintf("Item com ID %s não existe na base de dados.", id))
	}

	r.logger.Info("Item removido com sucesso.", map[string]interface{}{"item_id": id})
	return nil
}

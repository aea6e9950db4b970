package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/catalogs/product"
	"stockmaster/internal/infrastructure/storage/postgres"
)

var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"products",
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// ListInStock returns sellable products ordered by name.
func (r *ProductRepo) ListInStock(ctx context.Context) ([]*product.Product, error) {
	return r.FindMany(ctx, r.inStockQuery())
}

func (r *ProductRepo) inStockQuery() squirrel.SelectBuilder {
	return r.baseSelect().
		Where(squirrel.Gt{"stock_quantity": 0}).
		OrderBy("name ASC", "id ASC")
}

// DecrementStock subtracts qty in one guarded statement so stock can never
// go below zero, whatever the caller checked before.
func (r *ProductRepo) DecrementStock(ctx context.Context, productID id.ID, qty int) error {
	sql, args, err := r.decrementQuery(productID, qty).ToSql()
	if err != nil {
		return fmt.Errorf("build stock decrement: %w", err)
	}

	querier := r.Querier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return r.mapWriteError(err, "decrement stock")
	}
	if result.RowsAffected() == 1 {
		return nil
	}

	var available int
	if err := querier.QueryRow(ctx, "SELECT stock_quantity FROM products WHERE id = $1", productID).Scan(&available); err != nil {
		return stockLookupError(productID, err)
	}
	return apperror.NewInsufficientStock(productID.String(), qty, available)
}

func stockLookupError(productID id.ID, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFound(product.EntityName, productID)
	}
	return fmt.Errorf("read stock of %s: %w", productID, err)
}

func (r *ProductRepo) decrementQuery(productID id.ID, qty int) squirrel.UpdateBuilder {
	return r.Builder().
		Update(r.tableName).
		Set("stock_quantity", squirrel.Expr("stock_quantity - ?", qty)).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": productID}).
		Where(squirrel.GtOrEq{"stock_quantity": qty})
}

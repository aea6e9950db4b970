// Package document_repo provides PostgreSQL implementations for document repositories.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/catalogs/product"
	"stockmaster/internal/domain/documents/sale"
	"stockmaster/internal/infrastructure/storage/postgres"
)

var (
	_ sale.Repository     = (*SaleRepo)(nil)
	_ product.SalesLedger = (*SaleRepo)(nil)
)

const salesTable = "sales"

// SaleRepo implements sale.Repository. Sales are never updated.
type SaleRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
	columns   []string
}

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txManager *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		columns:   postgres.ExtractDBColumns[sale.Sale](),
	}
}

// Create inserts a sale.
func (r *SaleRepo) Create(ctx context.Context, s *sale.Sale) error {
	sql, args, err := r.insertQuery(s).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) insertQuery(s *sale.Sale) squirrel.InsertBuilder {
	data := postgres.StructToMap(s)
	values := make([]any, 0, len(r.columns))
	for _, col := range r.columns {
		values = append(values, data[col])
	}
	return r.builder.
		Insert(salesTable).
		Columns(r.columns...).
		Values(values...)
}

// CountByProduct counts the sales of a product.
func (r *SaleRepo) CountByProduct(ctx context.Context, productID id.ID) (int64, error) {
	sql, args, err := r.builder.
		Select("COUNT(*)").
		From(salesTable).
		Where(squirrel.Eq{"product_id": productID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int64
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

// DeleteByProduct removes every sale of a product.
func (r *SaleRepo) DeleteByProduct(ctx context.Context, productID id.ID) (int64, error) {
	sql, args, err := r.builder.
		Delete(salesTable).
		Where(squirrel.Eq{"product_id": productID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete sales: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockmaster/internal/domain/reports"
	"stockmaster/internal/infrastructure/storage/postgres"
)

var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// SalesTotals aggregates revenue at each product's current selling price
// together with the recorded profit.
func (r *ReportRepo) SalesTotals(ctx context.Context, p reports.Period) (reports.Totals, error) {
	totals := reports.Totals{Period: p}

	sql, args, err := r.totalsQuery(p).ToSql()
	if err != nil {
		return totals, fmt.Errorf("build totals query: %w", err)
	}

	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).
		Scan(&totals.SaleCount, &totals.Revenue, &totals.Profit)
	if err != nil {
		return totals, fmt.Errorf("sales totals: %w", err)
	}
	return totals, nil
}

func (r *ReportRepo) totalsQuery(p reports.Period) squirrel.SelectBuilder {
	return r.builder.
		Select(
			"COUNT(*)",
			"COALESCE(SUM(p.selling_price * s.quantity_sold), 0)",
			"COALESCE(SUM(s.profit_recorded), 0)",
		).
		From("sales s").
		Join("products p ON p.id = s.product_id").
		Where(squirrel.GtOrEq{"s.sale_date": p.From}).
		Where(squirrel.LtOrEq{"s.sale_date": p.To})
}

// RecentSales returns the newest sales with their product names.
func (r *ReportRepo) RecentSales(ctx context.Context, limit int) ([]reports.RecentSale, error) {
	sql, args, err := r.recentQuery(limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent sales query: %w", err)
	}

	items := make([]reports.RecentSale, 0, limit)
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}
	return items, nil
}

func (r *ReportRepo) recentQuery(limit int) squirrel.SelectBuilder {
	return r.builder.
		Select(
			"s.id", "s.number", "s.product_id", "p.name AS product_name",
			"s.quantity_sold", "s.unit_price", "p.selling_price AS current_price",
			"s.profit_recorded", "s.sale_date",
		).
		From("sales s").
		Join("products p ON p.id = s.product_id").
		OrderBy("s.sale_date DESC", "s.id DESC").
		Limit(uint64(limit))
}

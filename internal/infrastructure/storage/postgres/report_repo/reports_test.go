package report_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmaster/internal/domain/reports"
)

func TestReportRepo_TotalsQuery(t *testing.T) {
	repo := NewReportRepo(nil)
	p := reports.LastWeek(time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC))

	sql, args, err := repo.totalsQuery(p).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT COUNT(*), COALESCE(SUM(p.selling_price * s.quantity_sold), 0), COALESCE(SUM(s.profit_recorded), 0) "+
			"FROM sales s JOIN products p ON p.id = s.product_id WHERE s.sale_date >= $1 AND s.sale_date <= $2",
		sql)
	assert.Equal(t, []any{p.From, p.To}, args)
}

func TestReportRepo_RecentQuery(t *testing.T) {
	sql, args, err := NewReportRepo(nil).recentQuery(5).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT s.id, s.number, s.product_id, p.name AS product_name, s.quantity_sold, s.unit_price, p.selling_price AS current_price, s.profit_recorded, s.sale_date "+
			"FROM sales s JOIN products p ON p.id = s.product_id ORDER BY s.sale_date DESC, s.id DESC LIMIT 5",
		sql)
	assert.Empty(t, args)
}

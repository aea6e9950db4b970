package catalog_repo

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/catalogs/product"
)

const productCols = "id, version, created_at, updated_at, name, stock_quantity, buying_price, selling_price"

func newTestProductRepo() *ProductRepo {
	return NewProductRepo(nil)
}

func TestProductRepo_Columns(t *testing.T) {
	repo := newTestProductRepo()
	assert.Equal(t,
		[]string{"id", "version", "created_at", "updated_at", "name", "stock_quantity", "buying_price", "selling_price"},
		repo.selectCols)
}

func TestProductRepo_ByIDQuery(t *testing.T) {
	repo := newTestProductRepo()
	productID := id.New()

	sql, args, err := repo.byIDQuery(productID, false).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT "+productCols+" FROM products WHERE id = $1 LIMIT 1", sql)
	assert.Equal(t, []any{productID}, args)

	sql, _, err = repo.byIDQuery(productID, true).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT "+productCols+" FROM products WHERE id = $1 FOR UPDATE", sql)
}

func TestProductRepo_InsertQuery(t *testing.T) {
	repo := newTestProductRepo()
	p := product.NewProduct(product.Fields{
		Name:          "Rice",
		StockQuantity: 4,
		BuyingPrice:   decimal.RequireFromString("100"),
		SellingPrice:  decimal.RequireFromString("150"),
	})

	sql, args, err := repo.insertQuery(p).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO products (buying_price,created_at,id,name,selling_price,stock_quantity,updated_at,version) "+
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8)",
		sql)
	require.Len(t, args, 8)
	assert.Equal(t, p.ID, args[2])
	assert.Equal(t, "Rice", args[3])
	assert.Equal(t, 4, args[5])
	assert.Equal(t, 1, args[7])
}

func TestProductRepo_UpdateQuery_OptimisticLock(t *testing.T) {
	repo := newTestProductRepo()
	p := product.NewProduct(product.Fields{Name: "Rice", StockQuantity: 4})
	p.Version = 3
	p.UpdatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	q, entityID, err := repo.updateQuery(p)
	require.NoError(t, err)
	assert.Equal(t, p.ID, entityID)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"UPDATE products SET buying_price = $1, name = $2, selling_price = $3, stock_quantity = $4, updated_at = $5, "+
			"version = version + 1 WHERE id = $6 AND version = $7",
		sql)
	assert.Equal(t, p.ID, args[5])
	assert.Equal(t, 3, args[6])
}

func TestProductRepo_DecrementQuery_Guarded(t *testing.T) {
	repo := newTestProductRepo()
	productID := id.New()

	sql, args, err := repo.decrementQuery(productID, 3).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE products SET stock_quantity = stock_quantity - $1, version = version + 1, updated_at = now() "+
			"WHERE id = $2 AND stock_quantity >= $3",
		sql)
	assert.Equal(t, []any{3, productID, 3}, args)
}

func TestStockLookupError(t *testing.T) {
	productID := id.New()

	err := stockLookupError(productID, fmt.Errorf("scan: %w", pgx.ErrNoRows))
	assert.True(t, apperror.IsNotFound(err))

	dbErr := errors.New("connection reset by peer")
	err = stockLookupError(productID, dbErr)
	assert.False(t, apperror.IsNotFound(err))
	assert.ErrorIs(t, err, dbErr)
	assert.ErrorContains(t, err, productID.String())
}

func TestProductRepo_InStockQuery(t *testing.T) {
	sql, args, err := newTestProductRepo().inStockQuery().ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT "+productCols+" FROM products WHERE stock_quantity > $1 ORDER BY name ASC, id ASC", sql)
	assert.Equal(t, []any{0}, args)
}

func TestProductRepo_ListQuery(t *testing.T) {
	repo := newTestProductRepo()
	filter := domain.ListFilter{Search: " rice ", OrderBy: "-stock_quantity", Limit: 20, Offset: 40}

	q, err := repo.pagedSelect(repo.filteredSelect(filter), filter)
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT "+productCols+" FROM products WHERE name ILIKE $1 ORDER BY stock_quantity DESC, id ASC LIMIT 20 OFFSET 40",
		sql)
	assert.Equal(t, []any{"%rice%"}, args)
}

func TestProductRepo_ListQuery_EscapesWildcards(t *testing.T) {
	repo := newTestProductRepo()

	sql, args, err := repo.filteredSelect(domain.ListFilter{Search: `50%_off\`}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE name ILIKE $1")
	assert.Equal(t, []any{`%50\%\_off\\%`}, args)
}

func TestProductRepo_ParseOrderBy(t *testing.T) {
	repo := newTestProductRepo()

	got, err := repo.parseOrderBy("")
	require.NoError(t, err)
	assert.Equal(t, "name ASC", got)

	got, err = repo.parseOrderBy("+selling_price")
	require.NoError(t, err)
	assert.Equal(t, "selling_price ASC", got)

	_, err = repo.parseOrderBy("name; DROP TABLE products")
	assert.Error(t, err)
}

package postgres

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
)

type stubItem struct {
	entity.BaseEntity
	Name     string          `db:"name"`
	Price    decimal.Decimal `db:"price"`
	Internal string          `db:"-"`
	Untagged string
}

func TestExtractDBColumns_Order(t *testing.T) {
	cols := ExtractDBColumns[stubItem]()

	assert.Equal(t, []string{"id", "version", "created_at", "updated_at", "name", "price"}, cols)
}

func TestExtractDBColumns_Pointer(t *testing.T) {
	assert.Equal(t, ExtractDBColumns[stubItem](), ExtractDBColumns[*stubItem]())
}

func TestStructToMap_FlattensEmbedded(t *testing.T) {
	now := time.Now().UTC()
	item := &stubItem{
		BaseEntity: entity.BaseEntity{
			ID:        id.New(),
			Version:   3,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     "Rice 25kg",
		Price:    decimal.RequireFromString("1500.00"),
		Internal: "hidden",
	}

	m := StructToMap(item)

	assert.Equal(t, item.ID, m["id"])
	assert.Equal(t, 3, m["version"])
	assert.Equal(t, "Rice 25kg", m["name"])
	assert.True(t, item.Price.Equal(m["price"].(decimal.Decimal)))
	assert.NotContains(t, m, "Internal")
	assert.NotContains(t, m, "Untagged")
	assert.Len(t, m, 6)
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap((*stubItem)(nil)))
}

func TestOmitColumns(t *testing.T) {
	src := map[string]any{"id": 1, "version": 2, "name": "x"}
	out := OmitColumns(src, "id", "version")

	assert.Equal(t, map[string]any{"name": "x"}, out)
	assert.Len(t, src, 3)
}

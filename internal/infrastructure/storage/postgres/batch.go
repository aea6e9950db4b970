package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// BulkInserter loads many rows at once with the COPY protocol. It must run
// inside RunInTransaction.
type BulkInserter struct {
	txManager *TxManager
}

// NewBulkInserter creates a new bulk inserter.
func NewBulkInserter(txManager *TxManager) *BulkInserter {
	return &BulkInserter{txManager: txManager}
}

// CopyFromSlice copies rows into table. Each row holds values in the order
// of columns.
func (b *BulkInserter) CopyFromSlice(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	tx := b.txManager.GetTx(ctx)
	if tx == nil {
		return 0, fmt.Errorf("CopyFromSlice requires transaction context")
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("copy into %s: %w", table, err)
	}
	return n, nil
}

// CopyStructs copies db-tagged structs into table, one column per tag.
func CopyStructs[T any](ctx context.Context, b *BulkInserter, table string, items []T) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	columns, rows := structRows(items)
	return b.CopyFromSlice(ctx, table, columns, rows)
}

func structRows[T any](items []T) ([]string, [][]any) {
	columns := ExtractDBColumns[T]()
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		values := StructToMap(item)
		row := make([]any, len(columns))
		for i, col := range columns {
			row[i] = values[col]
		}
		rows = append(rows, row)
	}
	return columns, rows
}

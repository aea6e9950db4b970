package postgres

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmaster/internal/core/id"
)

func newTestAuditStore(t *testing.T) *AuditStore {
	t.Helper()
	s, err := NewAuditStore(nil)
	require.NoError(t, err)
	return s
}

func TestAuditStore_EncodeSmallPayloadStaysPlain(t *testing.T) {
	s := newTestAuditStore(t)
	payload := []byte(`{"name":{"old":"Rice","new":"Rice 25kg"}}`)

	plain, compressed, algo := s.encode(payload)

	assert.Equal(t, CompressionNone, algo)
	assert.Equal(t, payload, plain)
	assert.Nil(t, compressed)
}

func TestAuditStore_EncodeLargePayloadRoundTrips(t *testing.T) {
	s := newTestAuditStore(t)
	big, err := json.Marshal(map[string]string{"note": strings.Repeat("stock ", 2000)})
	require.NoError(t, err)

	plain, compressed, algo := s.encode(big)
	require.Equal(t, CompressionZstd, algo)
	assert.Nil(t, plain)
	assert.Less(t, len(compressed), len(big))

	out, err := s.decode(plain, compressed, algo)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(big, out))
}

func TestAuditStore_HistoryQuery(t *testing.T) {
	s := newTestAuditStore(t)
	productID := id.New()

	sql, args, err := s.historyQuery("product", productID, 20).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, entity_type, entity_id, action, COALESCE(request_id, ''), changes, changes_compressed, compression_algo, created_at "+
			"FROM sys_audit WHERE entity_id = $1 AND entity_type = $2 ORDER BY created_at DESC, id DESC LIMIT 20",
		sql)
	assert.Equal(t, []any{productID, "product"}, args)
}

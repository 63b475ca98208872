package audit

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/db/kvdb"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/db/sqldb"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/sec"
)

// memList is a kvdb.Client backed by in-memory lists
type memList struct {
	lists map[string][]string
	fail  error
}

func newMemList() *memList { return &memList{lists: map[string][]string{}} }

func (m *memList) Init() error { return nil }
func (m *memList) Close() error { return nil }
func (m *memList) GetConf() *kvdb.Conf { return &kvdb.Conf{Type: "mem"} }
func (m *memList) Ping(context.Context) error { return m.fail }

func (m *memList) PushHead(_ context.Context, key string, value string) error {
	if m.fail != nil {
		return m.fail
	}
	m.lists[key] = append([]string{value}, m.lists[key]...)
	return nil
}

func (m *memList) Len(_ context.Context, key string) (int64, error) {
	return int64(len(m.lists[key])), nil
}

func (m *memList) Range(_ context.Context, key string, start int64, stop int64) ([]string, error) {
	l := m.lists[key]
	if stop >= int64(len(l)) {
		stop = int64(len(l)) - 1
	}
	if start > stop {
		return []string{}, nil
	}
	return append([]string(nil), l[start:stop+1]...), nil
}

func (m *memList) Trim(ctx context.Context, key string, start int64, stop int64) error {
	kept, _ := m.Range(ctx, key, start, stop)
	m.lists[key] = kept
	return nil
}

func record(id string, at time.Time) Record {
	return Record{RequestID: id, At: at, ReportNo: "R-" + id, Status: StatusOK, Pages: 9}
}

func TestKVStore_NewestFirstAndBounded(t *testing.T) {
	ctx := context.Background()
	client := newMemList()
	s := NewKVStore(client, "", 3, nil)
	t0 := time.Unix(1_700_000_000, 0).UTC()

	for i, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.Record(ctx, record(id, t0.Add(time.Duration(i)*time.Second))))
	}
	n, _ := client.Len(ctx, DefaultKey)
	assert.Equal(t, int64(3), n)

	recent, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	ids := make([]string, len(recent))
	for i, r := range recent {
		ids[i] = r.RequestID
	}
	assert.Equal(t, []string{"d", "c", "b"}, ids)
	assert.Equal(t, "R-d", recent[0].ReportNo)

	recent, err = s.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	recent, err = s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestKVStore_Sealed(t *testing.T) {
	ctx := context.Background()
	cipher, err := sec.NewXChaCha20Poly1305CipherBase64([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	client := newMemList()
	s := NewKVStore(client, "k", 10, cipher)

	require.NoError(t, s.Record(ctx, record("secret", time.Now())))
	stored := client.lists["k"][0]
	assert.False(t, strings.Contains(stored, "R-secret"))

	// a record written without the key is skipped, not fatal
	client.lists["k"] = append(client.lists["k"], `{"request_id":"plain"}`)

	recent, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "R-secret", recent[0].ReportNo)
}

func TestKVStore_PushError(t *testing.T) {
	client := newMemList()
	client.fail = errors.New("connection refused")
	err := NewKVStore(client, "", 0, nil).Record(context.Background(), record("x", time.Now()))
	assert.ErrorContains(t, err, "connection refused")
}

// memTable is a sqldb.Client that understands the statements of SQLStore
type memTable struct {
	dbType string
	stmts  []string
	rows   map[string]memRow
}

type memRow struct {
	createdAt int64
	payload   string
}

func newMemTable(dbType string) *memTable {
	return &memTable{dbType: dbType, rows: map[string]memRow{}}
}

func (m *memTable) Init() error { return nil }
func (m *memTable) Close() error { return nil }
func (m *memTable) GetConf() *sqldb.Conf { return &sqldb.Conf{Type: m.dbType} }
func (m *memTable) GetDSN() string { return "" }
func (m *memTable) Ping(context.Context) error { return nil }

type affected int64

func (a affected) RowsAffected() (int64, error) { return int64(a), nil }

func (m *memTable) Exec(_ context.Context, query string, args ...any) (sqldb.Result, error) {
	m.stmts = append(m.stmts, query)
	switch {
	case strings.HasPrefix(query, "INSERT"):
		m.rows[args[0].(string)] = memRow{createdAt: args[1].(int64), payload: args[4].(string)}
		return affected(1), nil
	case strings.HasPrefix(query, "DELETE"):
		n := 0
		for id, r := range m.rows {
			if r.createdAt < args[0].(int64) {
				delete(m.rows, id)
				n++
			}
		}
		return affected(n), nil
	}
	return affected(0), nil
}

func (m *memTable) newestFirst() []string {
	ids := make([]string, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return m.rows[ids[i]].createdAt > m.rows[ids[j]].createdAt })
	return ids
}

func (m *memTable) QueryRows(_ context.Context, query string, args ...any) (sqldb.Rows, error) {
	m.stmts = append(m.stmts, query)
	ids := m.newestFirst()
	var out [][]any
	switch {
	case strings.Contains(query, "OFFSET"):
		if off := args[0].(int); off < len(ids) {
			out = append(out, []any{m.rows[ids[off]].createdAt})
		}
	default:
		for i, id := range ids {
			if i >= args[0].(int) {
				break
			}
			out = append(out, []any{id, m.rows[id].payload})
		}
	}
	return &memRows{rows: out, i: -1}, nil
}

type memRows struct {
	rows [][]any
	i    int
}

func (r *memRows) Next() bool {
	r.i++
	return r.i < len(r.rows)
}
func (r *memRows) Close() error { return nil }
func (r *memRows) Err() error { return nil }

func (r *memRows) Scan(dest ...any) error {
	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = r.rows[r.i][i].(int64)
		case *string:
			*v = r.rows[r.i][i].(string)
		}
	}
	return nil
}

func TestSQLStore(t *testing.T) {
	ctx := context.Background()
	db := newMemTable("pgsql")
	s := NewSQLStore(db, 2, nil)
	require.NoError(t, s.EnsureSchema(ctx))
	assert.Len(t, db.stmts, 2)

	t0 := time.Unix(1_700_000_000, 0).UTC()
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Record(ctx, record(id, t0.Add(time.Duration(i)*time.Minute))))
	}
	assert.Len(t, db.rows, 2, "pruned to max records")

	recent, err := s.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].RequestID)
	assert.Equal(t, "b", recent[1].RequestID)
	assert.True(t, recent[0].At.Equal(t0.Add(2*time.Minute)))
}

func TestSQLStore_MySQLSchemaAndUnknownType(t *testing.T) {
	ctx := context.Background()
	db := newMemTable("mysql")
	require.NoError(t, NewSQLStore(db, 0, nil).EnsureSchema(ctx))
	require.Len(t, db.stmts, 1)
	assert.Contains(t, db.stmts[0], "INDEX idx_qir_merges_created_at")

	assert.Error(t, NewSQLStore(newMemTable("oracle"), 0, nil).EnsureSchema(ctx))
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Record(context.Background(), Record{}))
	_, err := Nop{}.Recent(context.Background(), 5)
	assert.ErrorIs(t, err, ErrDisabled)
}

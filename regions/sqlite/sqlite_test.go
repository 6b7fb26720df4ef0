package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hupe1980/hexpatch/cell"
	"github.com/hupe1980/hexpatch/codec"
	"github.com/hupe1980/hexpatch/regions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type district struct {
	Name    string  `json:"name"`
	Density float64 `json:"density"`
}

func testTable(t *testing.T, n int) *regions.Table[district] {
	t.Helper()

	ids := make([]cell.ID, n)
	rows := make([]district, n)
	for i := range n {
		ids[i] = cell.MustNew(1, 9, i, -i)
		rows[i] = district{Name: string(rune('a' + i)), Density: float64(i) * 1.5}
	}

	table, err := regions.New(ids, rows)
	require.NoError(t, err)
	return table
}

func openTestDB(t *testing.T, optFns ...func(o *Options)) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "regions.db"), optFns...)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func requireTablesEqual(t *testing.T, want, got *regions.Table[district]) {
	t.Helper()

	require.Equal(t, want.Len(), got.Len())
	for slot, id := range want.All() {
		gotID, ok := got.Cell(slot)
		require.True(t, ok)
		assert.Equal(t, id, gotID)

		wantRow, _ := want.Row(slot)
		gotRow, _ := got.Row(slot)
		assert.Equal(t, wantRow, gotRow)
	}
}

func TestDB_SaveLoad(t *testing.T) {
	db := openTestDB(t)
	table := testTable(t, 5)

	require.NoError(t, Save(context.Background(), db, "downtown", table))

	got, err := Load[district](context.Background(), db, "downtown")
	require.NoError(t, err)
	requireTablesEqual(t, table, got)
}

func TestDB_Overwrite(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Save(context.Background(), db, "downtown", testTable(t, 8)))

	smaller := testTable(t, 3)
	require.NoError(t, Save(context.Background(), db, "downtown", smaller))

	got, err := Load[district](context.Background(), db, "downtown")
	require.NoError(t, err)
	requireTablesEqual(t, smaller, got)
}

func TestDB_LoadMissing(t *testing.T) {
	db := openTestDB(t)

	_, err := Load[district](context.Background(), db, "nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDB_ListDelete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Save(ctx, db, "harbor", testTable(t, 2)))
	require.NoError(t, Save(ctx, db, "downtown", testTable(t, 2)))

	names, err := db.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"downtown", "harbor"}, names)

	require.NoError(t, db.Delete(ctx, "downtown"))
	require.NoError(t, db.Delete(ctx, "downtown")) // Idempotent

	names, err = db.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"harbor"}, names)

	_, err = Load[district](ctx, db, "downtown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDB_CodecRecorded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.db")
	table := testTable(t, 4)

	// Save with the stdlib JSON codec
	db, err := Open(path, func(o *Options) {
		o.Codec = codec.JSON{}
	})
	require.NoError(t, err)
	require.NoError(t, Save(context.Background(), db, "downtown", table))
	require.NoError(t, db.Close())

	// Reopen with the default codec; Load must use the recorded one
	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	var codecName string
	require.NoError(t, db.conn.Get(&codecName, "SELECT codec FROM region_sets WHERE name = ?", "downtown"))
	assert.Equal(t, "json", codecName)

	got, err := Load[district](context.Background(), db, "downtown")
	require.NoError(t, err)
	requireTablesEqual(t, table, got)
}

func TestDB_EmptyTable(t *testing.T) {
	db := openTestDB(t)

	empty, err := regions.New([]cell.ID{}, []district{})
	require.NoError(t, err)

	require.NoError(t, Save(context.Background(), db, "empty", empty))

	got, err := Load[district](context.Background(), db, "empty")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestDB_MultipleSets(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	coarse := testTable(t, 3)
	fine := testTable(t, 9)

	require.NoError(t, Save(ctx, db, "city-r8", coarse))
	require.NoError(t, Save(ctx, db, "city-r9", fine))

	gotCoarse, err := Load[district](ctx, db, "city-r8")
	require.NoError(t, err)
	requireTablesEqual(t, coarse, gotCoarse)

	gotFine, err := Load[district](ctx, db, "city-r9")
	require.NoError(t, err)
	requireTablesEqual(t, fine, gotFine)
}

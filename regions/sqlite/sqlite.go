// Package sqlite persists region tables in a SQLite file.
//
// Tables are stored as named sets so one file can hold several dataset
// variants (for instance the same city at two resolutions). Payload rows
// are serialized with a codec.Codec and the codec name is recorded per
// set, so a file written with one codec is always read back with the same
// one. The driver is modernc.org/sqlite, pure Go, no cgo.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/hupe1980/hexpatch/cell"
	"github.com/hupe1980/hexpatch/codec"
	"github.com/hupe1980/hexpatch/regions"
)

// ErrNotFound is returned by Load when no set with the given name exists.
var ErrNotFound = errors.New("region set not found")

// Options configures a DB.
type Options struct {
	// Codec serializes payload rows on Save. Loads always use the codec
	// recorded with the set.
	// Default: codec.Default
	Codec codec.Codec

	// BusyTimeout is how long a connection waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration
}

// DB wraps a SQLite connection holding region sets.
type DB struct {
	conn  *sqlx.DB
	codec codec.Codec
}

// Open opens or creates a SQLite database at the given path and runs the
// schema migration. The connection uses WAL journaling so readers do not
// block the writer.
func Open(path string, optFns ...func(o *Options)) (*DB, error) {
	opts := Options{
		Codec:       codec.Default,
		BusyTimeout: 5 * time.Second,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", path, opts.BusyTimeout.Milliseconds())

	conn, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, codec: opts.Codec}
	if err := db.Migrate(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Migrate creates the schema. It is idempotent and already run by Open.
func (db *DB) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS region_sets (
		name  TEXT PRIMARY KEY,
		codec TEXT NOT NULL,
		cells INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS regions (
		set_name TEXT NOT NULL REFERENCES region_sets(name) ON DELETE CASCADE,
		slot     INTEGER NOT NULL,
		cell     TEXT NOT NULL,
		payload  BLOB,
		PRIMARY KEY (set_name, slot),
		UNIQUE (set_name, cell)
	);
	`
	_, err := db.conn.ExecContext(ctx, schema)
	return err
}

// List returns the names of all stored region sets.
func (db *DB) List(ctx context.Context) ([]string, error) {
	var names []string
	err := db.conn.SelectContext(ctx, &names, "SELECT name FROM region_sets ORDER BY name")
	return names, err
}

// Delete removes a region set and its rows. Deleting a missing set is not
// an error.
func (db *DB) Delete(ctx context.Context, name string) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM regions WHERE set_name = ?", name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM region_sets WHERE name = ?", name); err != nil {
		return err
	}

	return tx.Commit()
}

// Save writes a region table as the named set (full replace) in a single
// transaction. Slots are stored explicitly so the dense order survives the
// round trip.
func Save[T any](ctx context.Context, db *DB, name string, t *regions.Table[T]) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM regions WHERE set_name = ?", name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO region_sets (name, codec, cells) VALUES (?, ?, ?)",
		name, db.codec.Name(), t.Len(),
	); err != nil {
		return err
	}

	stmt, err := tx.PreparexContext(ctx,
		"INSERT INTO regions (set_name, slot, cell, payload) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for slot, id := range t.All() {
		row, _ := t.Row(slot)

		payload, err := db.codec.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshal payload for cell %s: %w", id, err)
		}

		if _, err := stmt.ExecContext(ctx, name, slot, id.String(), payload); err != nil {
			return fmt.Errorf("insert cell %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// Load reads the named set back into a region table, decoding payloads with
// the codec recorded at save time. Rows come back in slot order, so the
// rebuilt table assigns every cell its original slot.
func Load[T any](ctx context.Context, db *DB, name string) (*regions.Table[T], error) {
	var codecName string
	err := db.conn.GetContext(ctx, &codecName, "SELECT codec FROM region_sets WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("unknown payload codec %q for set %s", codecName, name)
	}

	type regionRow struct {
		Slot    int64  `db:"slot"`
		Cell    string `db:"cell"`
		Payload []byte `db:"payload"`
	}

	var dbRows []regionRow
	if err := db.conn.SelectContext(ctx, &dbRows,
		"SELECT slot, cell, payload FROM regions WHERE set_name = ? ORDER BY slot", name,
	); err != nil {
		return nil, err
	}

	ids := make([]cell.ID, len(dbRows))
	rows := make([]T, len(dbRows))

	for i, r := range dbRows {
		if int(r.Slot) != i {
			return nil, fmt.Errorf("set %s: non-contiguous slot %d at position %d", name, r.Slot, i)
		}

		id, err := cell.Parse(r.Cell)
		if err != nil {
			return nil, fmt.Errorf("set %s slot %d: %w", name, r.Slot, err)
		}
		ids[i] = id

		if err := c.Unmarshal(r.Payload, &rows[i]); err != nil {
			return nil, fmt.Errorf("unmarshal payload for cell %s: %w", id, err)
		}
	}

	return regions.New(ids, rows)
}

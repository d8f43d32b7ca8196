// Package sqlite persists the master dataset in a SQLite database.
//
// One row per entry, keyed by identity key. Save replaces the whole table in
// a single transaction, so readers observe either the prior dataset or the
// new one.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/constants"
	"github.com/RolandGoud/bikescraper/pkg/errors"
)

const backend = "sqlite"

// Store manages dataset persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the dataset database and creates the
// schema when missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return nil, errors.NewStoreError("open", backend, path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStoreError("open", backend, path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, errors.NewStoreError("open", backend, path, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.createSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS entries (
        key          TEXT PRIMARY KEY,
        brand        TEXT NOT NULL,
        model        TEXT NOT NULL,
        variant      TEXT NOT NULL DEFAULT '',
        color        TEXT NOT NULL DEFAULT '',
        sku          TEXT NOT NULL DEFAULT '',
        price        TEXT NOT NULL DEFAULT '',
        category     TEXT NOT NULL DEFAULT '',
        url          TEXT NOT NULL DEFAULT '',
        description  TEXT NOT NULL DEFAULT '',
        specs_json   TEXT NOT NULL DEFAULT '{}',
        images_json  TEXT NOT NULL DEFAULT '[]',
        status       TEXT NOT NULL,
        first_seen   TEXT NOT NULL,
        last_seen    TEXT NOT NULL,
        last_updated TEXT NOT NULL
    )`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return errors.NewStoreError("open", backend, s.path, err)
	}
	return nil
}

// Load reads every entry ordered by key. An empty table yields an empty
// dataset.
func (s *Store) Load(ctx context.Context) (*catalog.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY key`)
	if err != nil {
		return nil, errors.NewStoreError("load", backend, s.path, err)
	}
	defer rows.Close()

	dataset := catalog.NewDataset()
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, errors.NewStoreError("load", backend, s.path, err)
		}
		dataset.Put(entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("load", backend, s.path, err)
	}
	return dataset, nil
}

// Save replaces the entries table with the dataset in one transaction.
func (s *Store) Save(ctx context.Context, dataset *catalog.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreError("save", backend, s.path, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return errors.NewStoreError("save", backend, s.path, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries (`+entryColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.NewStoreError("save", backend, s.path, err)
	}
	defer stmt.Close()

	for _, entry := range dataset.List() {
		specsJSON, err := json.Marshal(entry.Record.Specs)
		if err != nil {
			return errors.NewStoreError("save", backend, s.path, err)
		}
		imagesJSON, err := json.Marshal(entry.Record.Images)
		if err != nil {
			return errors.NewStoreError("save", backend, s.path, err)
		}

		if _, err := stmt.ExecContext(
			ctx,
			entry.Key,
			entry.Record.Brand,
			entry.Record.Model,
			entry.Record.Variant,
			entry.Record.Color,
			entry.Record.SKU,
			entry.Record.Price,
			entry.Record.Category,
			entry.Record.URL,
			entry.Record.Description,
			string(specsJSON),
			string(imagesJSON),
			string(entry.Status),
			entry.FirstSeen.String(),
			entry.LastSeen.String(),
			entry.LastUpdated.String(),
		); err != nil {
			return errors.NewStoreError("save", backend, s.path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStoreError("save", backend, s.path, err)
	}
	return nil
}

const entryColumns = "key, brand, model, variant, color, sku, price, category, url, description, specs_json, images_json, status, first_seen, last_seen, last_updated"

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*catalog.Entry, error) {
	var (
		key, brand, model, variant, color, sku    string
		price, category, url, description         string
		specsJSON, imagesJSON, status             string
		firstSeenRaw, lastSeenRaw, lastUpdatedRaw string
	)

	if err := scanner.Scan(
		&key,
		&brand,
		&model,
		&variant,
		&color,
		&sku,
		&price,
		&category,
		&url,
		&description,
		&specsJSON,
		&imagesJSON,
		&status,
		&firstSeenRaw,
		&lastSeenRaw,
		&lastUpdatedRaw,
	); err != nil {
		return nil, err
	}

	entry := &catalog.Entry{
		Key: key,
		Record: catalog.Record{
			Brand:       brand,
			Model:       model,
			Variant:     variant,
			Color:       color,
			SKU:         sku,
			Price:       price,
			Category:    category,
			URL:         url,
			Description: description,
		},
		Status: catalog.Status(status),
	}

	if specsJSON != "" {
		if err := json.Unmarshal([]byte(specsJSON), &entry.Record.Specs); err != nil {
			return nil, errors.WrapParse("json", "specs_json", err)
		}
	}
	if imagesJSON != "" {
		if err := json.Unmarshal([]byte(imagesJSON), &entry.Record.Images); err != nil {
			return nil, errors.WrapParse("json", "images_json", err)
		}
	}

	dates := []struct {
		raw  string
		into *catalog.Date
	}{
		{firstSeenRaw, &entry.FirstSeen},
		{lastSeenRaw, &entry.LastSeen},
		{lastUpdatedRaw, &entry.LastUpdated},
	}
	for _, d := range dates {
		parsed, err := catalog.ParseDate(d.raw)
		if err != nil {
			return nil, err
		}
		*d.into = parsed
	}
	return entry, nil
}

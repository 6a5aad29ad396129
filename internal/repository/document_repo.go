package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DocumentSQL stores JSON documents of all collections in the documents table.
type DocumentSQL struct {
	db     *sql.DB
	rebind placeholderRebinder
}

func NewDocumentSQL(db *sql.DB, driver string) *DocumentSQL {
	return &DocumentSQL{db: db, rebind: rebinderFor(driver)}
}

// Ensure implementation of DocumentRepo interface at compile time.
var _ DocumentRepo = (*DocumentSQL)(nil)

const (
	insertDocumentSQL = `INSERT INTO documents (collection, id, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`

	selectDocumentsSQL     = `SELECT id, body, created_at, updated_at FROM documents WHERE collection = ? ORDER BY seq ASC`
	selectDocumentByIDSQL  = `SELECT id, body, created_at, updated_at FROM documents WHERE collection = ? AND id = ?`
	selectFirstDocumentSQL = `SELECT id, body, created_at, updated_at FROM documents WHERE collection = ? ORDER BY seq ASC LIMIT 1`

	updateDocumentSQL   = `UPDATE documents SET body = ?, updated_at = ? WHERE collection = ? AND id = ?`
	deleteDocumentSQL   = `DELETE FROM documents WHERE collection = ? AND id = ?`
	deleteCollectionSQL = `DELETE FROM documents WHERE collection = ?`

	countDocumentsSQL = `SELECT collection, COUNT(*) FROM documents GROUP BY collection`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec  Record
		body string
	)
	if err := row.Scan(&rec.ID, &body, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return Record{}, err
	}
	rec.Body = []byte(body)
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return rec, nil
}

// Insert adds a new document to the collection.
func (r *DocumentSQL) Insert(ctx context.Context, collection string, rec Record) error {
	_, err := r.db.ExecContext(ctx, r.rebind(insertDocumentSQL),
		collection,
		rec.ID,
		string(rec.Body),
		rec.CreatedAt.UTC(),
		rec.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert %s document: %w", collection, err)
	}
	return nil
}

// Find returns every document of the collection in insertion order.
func (r *DocumentSQL) Find(ctx context.Context, collection string) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(selectDocumentsSQL), collection)
	if err != nil {
		return nil, fmt.Errorf("select %s documents: %w", collection, err)
	}
	defer rows.Close()

	out := make([]Record, 0, 16)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s document: %w", collection, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s documents: %w", collection, err)
	}
	return out, nil
}

// FindByID fetches one document. Returns (nil, nil) if not found.
func (r *DocumentSQL) FindByID(ctx context.Context, collection, id string) (*Record, error) {
	rec, err := scanRecord(r.db.QueryRowContext(ctx, r.rebind(selectDocumentByIDSQL), collection, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select %s document %q: %w", collection, id, err)
	}
	return &rec, nil
}

// Update loads a document, lets mutate produce the replacement and writes it back
// in one transaction. Returns (nil, nil) if not found; mutate errors are returned as-is.
func (r *DocumentSQL) Update(ctx context.Context, collection, id string, mutate MutateFunc) (*Record, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin %s update: %w", collection, err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := scanRecord(tx.QueryRowContext(ctx, r.rebind(selectDocumentByIDSQL), collection, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select %s document %q: %w", collection, id, err)
	}

	next, err := mutate(current)
	if err != nil {
		return nil, err
	}
	if err := r.replace(ctx, tx, collection, current.ID, next); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit %s update: %w", collection, err)
	}
	next.ID = current.ID
	return &next, nil
}

func (r *DocumentSQL) replace(ctx context.Context, tx *sql.Tx, collection, id string, rec Record) error {
	if _, err := tx.ExecContext(ctx, r.rebind(updateDocumentSQL),
		string(rec.Body),
		rec.UpdatedAt.UTC(),
		collection,
		id,
	); err != nil {
		return fmt.Errorf("update %s document %q: %w", collection, id, err)
	}
	return nil
}

// Delete removes one document and reports whether it existed.
func (r *DocumentSQL) Delete(ctx context.Context, collection, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.rebind(deleteDocumentSQL), collection, id)
	if err != nil {
		return false, fmt.Errorf("delete %s document %q: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for %s delete: %w", collection, err)
	}
	return n > 0, nil
}

// DeleteAll empties a collection and returns how many documents were removed.
func (r *DocumentSQL) DeleteAll(ctx context.Context, collection string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.rebind(deleteCollectionSQL), collection)
	if err != nil {
		return 0, fmt.Errorf("purge %s: %w", collection, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for %s purge: %w", collection, err)
	}
	return n, nil
}

// FindOne returns the first document of a singleton collection. Returns (nil, nil) if empty.
func (r *DocumentSQL) FindOne(ctx context.Context, collection string) (*Record, error) {
	rec, err := scanRecord(r.db.QueryRowContext(ctx, r.rebind(selectFirstDocumentSQL), collection))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select %s singleton: %w", collection, err)
	}
	return &rec, nil
}

// Upsert is the singleton write path: mutate receives the current document
// (nil when the collection is empty) and the result is inserted or replaced
// inside one transaction.
func (r *DocumentSQL) Upsert(ctx context.Context, collection string, mutate UpsertFunc) (*Record, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin %s upsert: %w", collection, err)
	}
	defer func() { _ = tx.Rollback() }()

	var current *Record
	rec, err := scanRecord(tx.QueryRowContext(ctx, r.rebind(selectFirstDocumentSQL), collection))
	switch {
	case err == nil:
		current = &rec
	case errors.Is(err, sql.ErrNoRows):
	default:
		return nil, fmt.Errorf("select %s singleton: %w", collection, err)
	}

	next, err := mutate(current)
	if err != nil {
		return nil, err
	}

	if current == nil {
		if _, err := tx.ExecContext(ctx, r.rebind(insertDocumentSQL),
			collection, next.ID, string(next.Body), next.CreatedAt.UTC(), next.UpdatedAt.UTC(),
		); err != nil {
			return nil, fmt.Errorf("insert %s singleton: %w", collection, err)
		}
	} else {
		if err := r.replace(ctx, tx, collection, current.ID, next); err != nil {
			return nil, err
		}
		next.ID = current.ID
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit %s upsert: %w", collection, err)
	}
	return &next, nil
}

// CountByCollection returns document counts keyed by collection name.
func (r *DocumentSQL) CountByCollection(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, countDocumentsSQL)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			collection string
			n          int
		)
		if err := rows.Scan(&collection, &n); err != nil {
			return nil, fmt.Errorf("scan document count: %w", err)
		}
		out[collection] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document counts: %w", err)
	}
	return out, nil
}

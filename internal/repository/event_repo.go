package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio_cms/internal/models"

	"github.com/google/uuid"
)

type EventSQL struct {
	db     *sql.DB
	rebind placeholderRebinder
}

func NewEventSQL(db *sql.DB, driver string) *EventSQL {
	return &EventSQL{db: db, rebind: rebinderFor(driver)}
}

// Ensure implementation of EventRepo interface at compile time.
var _ EventRepo = (*EventSQL)(nil)

const (
	insertEventSQL = `INSERT INTO content_events (id, occurred_at, type, collection, document_id, message, meta) VALUES (?, ?, ?, ?, ?, ?, ?)`

	selectEventsSQL      = `SELECT id, occurred_at, type, collection, document_id, message, meta FROM content_events`
	selectLatestEventSQL = selectEventsSQL + ` ORDER BY occurred_at DESC LIMIT 1`
)

// Append inserts a new event. If EventID or OccurredAt are empty, they're set.
func (r *EventSQL) Append(ctx context.Context, e models.ContentEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, r.rebind(insertEventSQL),
		e.EventID,
		e.OccurredAt,
		strings.ToUpper(strings.TrimSpace(e.Type)),
		nullable(e.Collection),
		nullable(e.DocumentID),
		e.Description,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("insert %s event: %w", e.Type, err)
	}
	return nil
}

// List returns events filtered by [From, To] (inclusive), type and collection, ordered ASC.
func (r *EventSQL) List(ctx context.Context, f EventFilter) ([]models.ContentEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !f.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, f.From.UTC())
	}
	if !f.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, f.To.UTC())
	}
	if typ := strings.ToUpper(strings.TrimSpace(f.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if col := strings.TrimSpace(f.Collection); col != "" {
		conds = append(conds, "collection = ?")
		args = append(args, col)
	}

	q := selectEventsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, r.rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer rows.Close()

	out := make([]models.ContentEvent, 0, 64)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

// Latest returns the most recent event. Returns (nil, nil) if the log is empty.
func (r *EventSQL) Latest(ctx context.Context) (*models.ContentEvent, error) {
	ev, err := scanEvent(r.db.QueryRowContext(ctx, selectLatestEventSQL))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest event: %w", err)
	}
	return &ev, nil
}

func scanEvent(row rowScanner) (models.ContentEvent, error) {
	var (
		ev                   models.ContentEvent
		collection, document sql.NullString
		metaStr              sql.NullString
	)
	if err := row.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &collection, &document, &ev.Description, &metaStr); err != nil {
		return models.ContentEvent{}, err
	}
	ev.OccurredAt = ev.OccurredAt.UTC()
	ev.Collection = collection.String
	ev.DocumentID = document.String

	if metaStr.Valid && metaStr.String != "" {
		var v any
		if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
			ev.Metadata = v
		} else {
			ev.Metadata = metaStr.String // keep raw if malformed
		}
	}
	return ev, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

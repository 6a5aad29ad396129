package repository

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"portfolio_cms/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var eventColumns = []string{"id", "occurred_at", "type", "collection", "document_id", "message", "meta"}

func TestAppend_Success_WithDefaults(t *testing.T) {
	t.Parallel()

	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewEventSQL(db, "sqlite")

	// Generated id and timestamp are unknown, the rest is normalized.
	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(),
			"CREATE", "skills", "doc-1", "hello",
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), models.ContentEvent{
		Type:        "  create ",
		Collection:  "skills",
		DocumentID:  "doc-1",
		Description: "hello",
		Metadata:    map[string]any{"a": 1},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestAppend_LoginHasNoCollection(t *testing.T) {
	t.Parallel()

	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewEventSQL(db, "sqlite")
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WithArgs("ev-1", at, "LOGIN", nil, nil, "admin logged in", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), models.ContentEvent{
		EventID:     "ev-1",
		OccurredAt:  at,
		Type:        models.EventLogin,
		Description: "admin logged in",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestAppend_DBError(t *testing.T) {
	t.Parallel()

	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewEventSQL(db, "sqlite")

	mock.ExpectExec("INSERT INTO content_events").
		WillReturnError(errors.New("down"))

	err := repo.Append(ctx(t), models.ContentEvent{
		Type:        "delete",
		Description: "x",
		Metadata:    map[string]string{"k": "v"},
	})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
}

func TestList_NoFilters_And_MetadataParsing(t *testing.T) {
	t.Parallel()

	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewEventSQL(db, "sqlite")

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	js, _ := json.Marshal(map[string]any{"a": "b"})

	rows := sqlmock.NewRows(eventColumns).
		AddRow("1", now, "CREATE", "skills", "d1", "m1", string(js)).
		AddRow("2", now.Add(time.Hour), "LOGIN", nil, nil, "m2", nil)

	mock.ExpectQuery(regexp.QuoteMeta(selectEventsSQL + ` ORDER BY occurred_at ASC`)).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), EventFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2, got %d", len(got))
	}
	if got[0].EventID != "1" || got[0].Collection != "skills" || got[0].DocumentID != "d1" {
		t.Fatalf("unexpected first event: %+v", got[0])
	}
	b1, _ := json.Marshal(got[0].Metadata)
	if string(b1) != string(js) {
		t.Fatalf("metadata mismatch: %s vs %s", string(b1), string(js))
	}
	if got[1].Collection != "" || got[1].Metadata != nil {
		t.Fatalf("expected empty collection and nil meta, got %+v", got[1])
	}
}

func TestList_WithFilters_OrderAndArgs(t *testing.T) {
	t.Parallel()

	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewEventSQL(db, "sqlite")

	from := time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	query := selectEventsSQL + ` WHERE occurred_at >= ? AND occurred_at <= ? AND type = ? AND collection = ? ORDER BY occurred_at ASC`

	rows := sqlmock.NewRows(eventColumns).
		AddRow("2", from, "UPDATE", "books", "b1", "b", nil).
		AddRow("3", to, "UPDATE", "books", "b2", "c", nil)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(from, to, "UPDATE", "books").
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), EventFilter{From: from, To: to, Type: " update ", Collection: "books"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].EventID != "2" || got[1].EventID != "3" {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestList_ScanError(t *testing.T) {
	t.Parallel()

	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := NewEventSQL(db, "sqlite")

	rows := sqlmock.NewRows(eventColumns).
		// occurred_at wrong type to force scan error
		AddRow("x", 123, "CREATE", "skills", "d", "msg", nil)

	mock.ExpectQuery(regexp.QuoteMeta(selectEventsSQL + ` ORDER BY occurred_at ASC`)).
		WillReturnRows(rows)

	if _, err := repo.List(ctx(t), EventFilter{}); err == nil {
		t.Fatalf("expected scan error, got nil")
	}
}

func TestLatest(t *testing.T) {
	t.Parallel()

	t.Run("empty log", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectLatestEventSQL)).
			WillReturnRows(sqlmock.NewRows(eventColumns))

		ev, err := NewEventSQL(db, "sqlite").Latest(ctx(t))
		if err != nil || ev != nil {
			t.Fatalf("expected (nil, nil), got (%+v, %v)", ev, err)
		}
	})

	t.Run("most recent", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		at := time.Date(2025, 2, 2, 8, 0, 0, 0, time.UTC)
		mock.ExpectQuery(regexp.QuoteMeta(selectLatestEventSQL)).
			WillReturnRows(sqlmock.NewRows(eventColumns).AddRow("9", at, "DELETE", "tools", "t1", "gone", nil))

		ev, err := NewEventSQL(db, "sqlite").Latest(ctx(t))
		if err != nil {
			t.Fatalf("Latest: %v", err)
		}
		if ev == nil || ev.EventID != "9" || !ev.OccurredAt.Equal(at) {
			t.Fatalf("unexpected event: %+v", ev)
		}
	})
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"portfolio_cms/internal/models"
)

// Record is a stored document: its id, raw JSON body and system timestamps.
type Record struct {
	ID        string
	Body      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MutateFunc turns the stored record into its replacement.
type MutateFunc func(current Record) (Record, error)

// UpsertFunc receives the current singleton (nil when none exists yet).
type UpsertFunc func(current *Record) (Record, error)

// EventFilter narrows an activity listing. Zero values mean no filter.
type EventFilter struct {
	From       time.Time
	To         time.Time
	Type       string
	Collection string
}

type Authorization interface {
	Create(ctx context.Context, u models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type DocumentRepo interface {
	Insert(ctx context.Context, collection string, rec Record) error
	Find(ctx context.Context, collection string) ([]Record, error)
	FindByID(ctx context.Context, collection, id string) (*Record, error)
	Update(ctx context.Context, collection, id string, mutate MutateFunc) (*Record, error)
	Delete(ctx context.Context, collection, id string) (bool, error)
	DeleteAll(ctx context.Context, collection string) (int64, error)
	FindOne(ctx context.Context, collection string) (*Record, error)
	Upsert(ctx context.Context, collection string, mutate UpsertFunc) (*Record, error)
	CountByCollection(ctx context.Context) (map[string]int, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.ContentEvent) error
	List(ctx context.Context, f EventFilter) ([]models.ContentEvent, error)
	Latest(ctx context.Context) (*models.ContentEvent, error)
}

type Repository struct {
	Documents DocumentRepo
	EventRepo EventRepo
	Auth      Authorization
}

// NewRepository wires every store to the same database; driver is the
// database/sql driver name returned by db.InitDB.
func NewRepository(db *sql.DB, driver string) *Repository {
	return &Repository{
		Documents: NewDocumentSQL(db, driver),
		EventRepo: NewEventSQL(db, driver),
		Auth:      NewUserRepository(db, driver),
	}
}

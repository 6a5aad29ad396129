package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"portfolio_cms/internal/logger"
	"portfolio_cms/internal/models"
	"portfolio_cms/internal/repository"

	"github.com/google/uuid"
)

// Resource is the five-operation contract served for every content collection.
type Resource[P any] interface {
	List(ctx context.Context) ([]P, error)
	Get(ctx context.Context, id string) (P, error)
	Create(ctx context.Context, body []byte) (P, error)
	Update(ctx context.Context, id string, patch []byte) (P, error)
	Delete(ctx context.Context, id string) error
}

// Importer bulk-loads raw documents into a collection; used by the seeder.
type Importer interface {
	CollectionName() string
	Import(ctx context.Context, items []json.RawMessage) (int, error)
	Purge(ctx context.Context) (int64, error)
}

// ContentService stores documents of type E in one collection.
// P is *E; it is spelled out so the service can reach the embedded models.Base.
type ContentService[E any, P interface {
	*E
	models.Document
}] struct {
	collection string
	docs       repository.DocumentRepo
	activity   activityRecorder
	now        func() time.Time
}

// Ensure implementation of the interfaces at compile time.
var (
	_ Resource[*models.Skill] = (*ContentService[models.Skill, *models.Skill])(nil)
	_ Importer                = (*ContentService[models.Skill, *models.Skill])(nil)
)

func NewContentService[E any, P interface {
	*E
	models.Document
}](collection string, docs repository.DocumentRepo, events repository.EventRepo, log *logger.Logger) *ContentService[E, P] {
	return &ContentService[E, P]{
		collection: collection,
		docs:       docs,
		activity:   activityRecorder{events: events, log: log},
		now:        utcNow,
	}
}

func utcNow() time.Time {
	// Postgres keeps microseconds; truncating keeps responses identical across drivers.
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (s *ContentService[E, P]) CollectionName() string { return s.collection }

func (s *ContentService[E, P]) List(ctx context.Context) ([]P, error) {
	recs, err := s.docs.Find(ctx, s.collection)
	if err != nil {
		return nil, err
	}
	out := make([]P, 0, len(recs))
	for _, rec := range recs {
		doc, err := s.fromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *ContentService[E, P]) Get(ctx context.Context, id string) (P, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	rec, err := s.docs.FindByID(ctx, s.collection, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return s.fromRecord(*rec)
}

// Create validates body and stores it under a new id.
func (s *ContentService[E, P]) Create(ctx context.Context, body []byte) (P, error) {
	doc, err := s.insert(ctx, body)
	if err != nil {
		return nil, err
	}
	meta := doc.Meta()
	s.activity.record(ctx, documentEvent(models.EventCreate, s.collection, meta.ID, meta.CreatedAt))
	return doc, nil
}

func (s *ContentService[E, P]) insert(ctx context.Context, body []byte) (P, error) {
	doc := P(new(E))
	if err := decodeDocument(s.collection, body, doc); err != nil {
		return nil, err
	}
	if d, ok := any(doc).(models.Defaulter); ok {
		d.ApplyDefaults()
	}
	if err := validateDocument(s.collection, doc); err != nil {
		return nil, err
	}

	now := s.now()
	meta := doc.Meta()
	meta.ID = uuid.NewString()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s document: %w", s.collection, err)
	}
	if err := s.docs.Insert(ctx, s.collection, repository.Record{
		ID:        meta.ID,
		Body:      raw,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return nil, err
	}
	return doc, nil
}

// Update overlays patch onto the stored document and re-validates the merged result.
// Id and createdAt cannot be changed through the patch.
func (s *ContentService[E, P]) Update(ctx context.Context, id string, patch []byte) (P, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	var updated P
	rec, err := s.docs.Update(ctx, s.collection, id, func(cur repository.Record) (repository.Record, error) {
		doc, err := s.fromRecord(cur)
		if err != nil {
			return repository.Record{}, err
		}
		if err := decodeDocument(s.collection, patch, doc); err != nil {
			return repository.Record{}, err
		}

		meta := doc.Meta()
		meta.ID = cur.ID
		meta.CreatedAt = cur.CreatedAt
		meta.UpdatedAt = s.now()

		if err := validateDocument(s.collection, doc); err != nil {
			return repository.Record{}, err
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return repository.Record{}, fmt.Errorf("encode %s document: %w", s.collection, err)
		}
		updated = doc
		return repository.Record{ID: cur.ID, Body: raw, CreatedAt: cur.CreatedAt, UpdatedAt: meta.UpdatedAt}, nil
	})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	s.activity.record(ctx, documentEvent(models.EventUpdate, s.collection, id, updated.Meta().UpdatedAt))
	return updated, nil
}

func (s *ContentService[E, P]) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	ok, err := s.docs.Delete(ctx, s.collection, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.activity.record(ctx, documentEvent(models.EventDelete, s.collection, id, s.now()))
	return nil
}

// Import stores every item as a new document, stopping at the first failure.
// Seeded documents are not written to the activity log.
func (s *ContentService[E, P]) Import(ctx context.Context, items []json.RawMessage) (int, error) {
	for i, item := range items {
		if _, err := s.insert(ctx, item); err != nil {
			return i, fmt.Errorf("import %s item %d: %w", s.collection, i, err)
		}
	}
	return len(items), nil
}

func (s *ContentService[E, P]) Purge(ctx context.Context) (int64, error) {
	return s.docs.DeleteAll(ctx, s.collection)
}

func (s *ContentService[E, P]) fromRecord(rec repository.Record) (P, error) {
	doc := P(new(E))
	if err := json.Unmarshal(rec.Body, doc); err != nil {
		return nil, fmt.Errorf("decode %s document %q: %w", s.collection, rec.ID, err)
	}
	meta := doc.Meta()
	meta.ID = rec.ID
	meta.CreatedAt = rec.CreatedAt
	meta.UpdatedAt = rec.UpdatedAt
	return doc, nil
}

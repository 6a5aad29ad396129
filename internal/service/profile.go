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

// ProfileService manages the singleton profile document.
type ProfileService struct {
	docs     repository.DocumentRepo
	activity activityRecorder
	now      func() time.Time
}

func NewProfileService(docs repository.DocumentRepo, events repository.EventRepo, log *logger.Logger) *ProfileService {
	return &ProfileService{
		docs:     docs,
		activity: activityRecorder{events: events, log: log},
		now:      utcNow,
	}
}

// GetSingleton returns the profile, or nil when none has been saved yet.
func (s *ProfileService) GetSingleton(ctx context.Context) (*models.Profile, error) {
	rec, err := s.docs.FindOne(ctx, models.CollectionProfile)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return profileFromRecord(*rec)
}

// UpsertSingleton merges patch into the profile, creating it with defaults on first write.
func (s *ProfileService) UpsertSingleton(ctx context.Context, patch []byte) (*models.Profile, error) {
	var saved *models.Profile
	_, err := s.docs.Upsert(ctx, models.CollectionProfile, func(cur *repository.Record) (repository.Record, error) {
		p := &models.Profile{}
		if cur != nil {
			loaded, err := profileFromRecord(*cur)
			if err != nil {
				return repository.Record{}, err
			}
			p = loaded
		}
		if err := decodeDocument(models.CollectionProfile, patch, p); err != nil {
			return repository.Record{}, err
		}

		now := s.now()
		if cur == nil {
			p.ApplyDefaults()
			p.ID = uuid.NewString()
			p.CreatedAt = now
		} else {
			p.ID = cur.ID
			p.CreatedAt = cur.CreatedAt
		}
		p.UpdatedAt = now

		if err := validateDocument(models.CollectionProfile, p); err != nil {
			return repository.Record{}, err
		}
		raw, err := json.Marshal(p)
		if err != nil {
			return repository.Record{}, fmt.Errorf("encode profile: %w", err)
		}
		saved = p
		return repository.Record{ID: p.ID, Body: raw, CreatedAt: p.CreatedAt, UpdatedAt: now}, nil
	})
	if err != nil {
		return nil, err
	}
	s.activity.record(ctx, documentEvent(models.EventUpdate, models.CollectionProfile, saved.ID, saved.UpdatedAt))
	return saved, nil
}

// Import replaces the stored profile with the seeded one.
func (s *ProfileService) Import(ctx context.Context, items []json.RawMessage) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if len(items) > 1 {
		return 0, fmt.Errorf("import profile: expected one document, got %d", len(items))
	}
	if _, err := s.UpsertSingleton(ctx, items[0]); err != nil {
		return 0, fmt.Errorf("import profile: %w", err)
	}
	return 1, nil
}

func (s *ProfileService) Purge(ctx context.Context) (int64, error) {
	return s.docs.DeleteAll(ctx, models.CollectionProfile)
}

func (s *ProfileService) CollectionName() string { return models.CollectionProfile }

func profileFromRecord(rec repository.Record) (*models.Profile, error) {
	var p models.Profile
	if err := json.Unmarshal(rec.Body, &p); err != nil {
		return nil, fmt.Errorf("decode profile %q: %w", rec.ID, err)
	}
	p.ID = rec.ID
	p.CreatedAt = rec.CreatedAt
	p.UpdatedAt = rec.UpdatedAt
	return &p, nil
}

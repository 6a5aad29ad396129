package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"portfolio_cms/internal/logger"
	"portfolio_cms/internal/models"
	"portfolio_cms/internal/repository"
)

// LogFilter supports activity filtering by time range, type and collection.
type LogFilter struct {
	From       time.Time // inclusive; zero means no lower bound
	To         time.Time // inclusive; zero means no upper bound
	Type       string    // "", "CREATE", "UPDATE", "DELETE", "LOGIN"
	Collection string    // "", or a collection name such as "skills"
}

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var (
	ErrInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (repository.EventFilter, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return repository.EventFilter{}, ErrInvalidTimeRange
	}

	return repository.EventFilter{
		From:       from,
		To:         to,
		Type:       normalizeEventType(f.Type),
		Collection: strings.TrimSpace(f.Collection),
	}, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.ContentEvent, error) {
	filter, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, filter)
}

// activityRecorder appends audit events on behalf of the mutating services.
// A failed append is logged and otherwise ignored; the mutation already happened.
type activityRecorder struct {
	events repository.EventRepo
	log    *logger.Logger
}

func (r activityRecorder) record(ctx context.Context, ev models.ContentEvent) {
	if r.events == nil {
		return
	}
	if err := r.events.Append(ctx, ev); err != nil && r.log != nil {
		r.log.Warnw("activity_append_failed",
			"err", err,
			"type", ev.Type,
			"collection", ev.Collection,
			"document_id", ev.DocumentID,
		)
	}
}

func documentEvent(typ, collection, id string, at time.Time) models.ContentEvent {
	verb := map[string]string{
		models.EventCreate: "created",
		models.EventUpdate: "updated",
		models.EventDelete: "deleted",
	}[typ]
	return models.ContentEvent{
		OccurredAt:  at,
		Type:        typ,
		Collection:  collection,
		DocumentID:  id,
		Description: collection + " document " + verb,
	}
}

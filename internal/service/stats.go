package service

import (
	"context"
	"time"

	"portfolio_cms/internal/models"
	"portfolio_cms/internal/repository"
)

// StatsService summarizes how much content each collection holds.
type StatsService struct {
	docs        repository.DocumentRepo
	eventRepo   repository.EventRepo
	collections []string
	now         func() time.Time
}

func NewStatsService(docs repository.DocumentRepo, eventRepo repository.EventRepo, collections []string) *StatsService {
	return &StatsService{docs: docs, eventRepo: eventRepo, collections: collections, now: utcNow}
}

// Snapshot reports document counts for every known collection, zero included,
// and the most recent activity event.
func (s *StatsService) Snapshot(ctx context.Context) (models.ContentStats, error) {
	counts, err := s.docs.CountByCollection(ctx)
	if err != nil {
		return models.ContentStats{}, err
	}

	stats := models.ContentStats{
		Collections: make(map[string]int, len(s.collections)),
		GeneratedAt: s.now(),
	}
	for _, name := range s.collections {
		stats.Collections[name] = 0
	}
	for name, n := range counts {
		stats.Collections[name] = n
		stats.Total += n
	}

	last, err := s.eventRepo.Latest(ctx)
	if err != nil {
		return models.ContentStats{}, err
	}
	stats.LastActivity = last
	return stats, nil
}

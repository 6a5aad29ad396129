package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio_cms/internal/models"
	"portfolio_cms/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Snapshot(t *testing.T) {
	docs := newMemDocs()
	docs.data["skills"] = []repository.Record{{ID: "a"}, {ID: "b"}}
	docs.data["books"] = []repository.Record{{ID: "c"}}

	last := &models.ContentEvent{EventID: "e1", Type: models.EventCreate, Collection: "books"}
	svc := NewStatsService(docs, &fakeEventRepo{latest: last}, []string{"skills", "books", "tools"})
	fixed := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	got, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"skills": 2, "books": 1, "tools": 0}, got.Collections)
	assert.Equal(t, 3, got.Total)
	assert.Same(t, last, got.LastActivity)
	assert.Equal(t, fixed, got.GeneratedAt)
}

func TestStatsService_PropagatesErrors(t *testing.T) {
	docs := newMemDocs()
	docs.err = errors.New("count failed")
	_, err := NewStatsService(docs, &fakeEventRepo{}, nil).Snapshot(context.Background())
	assert.ErrorIs(t, err, docs.err)

	events := &fakeEventRepo{err: errors.New("latest failed")}
	_, err = NewStatsService(newMemDocs(), events, nil).Snapshot(context.Background())
	assert.ErrorIs(t, err, events.err)
}

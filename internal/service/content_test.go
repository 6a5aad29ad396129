package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"portfolio_cms/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSkillService(t *testing.T) (*ContentService[models.Skill, *models.Skill], *memDocs, *fakeEventRepo) {
	t.Helper()
	docs, events := newMemDocs(), &fakeEventRepo{}
	svc := NewContentService[models.Skill](models.CollectionSkills, docs, events, nil)

	clock := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, docs, events
}

func TestContentService_CreateGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, events := newSkillService(t)

	created, err := svc.Create(ctx, []byte(`{"category":"LANGUAGES","name":"Go","level":3,"xp":"1 Yr"}`))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.True(t, validID(created.ID))
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := svc.Update(ctx, created.ID, []byte(`{"xp":"2 Yrs"}`))
	require.NoError(t, err)
	assert.Equal(t, "2 Yrs", updated.XP)
	assert.Equal(t, "Go", updated.Name)
	assert.Equal(t, models.FlexInt(3), updated.Level)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound, "second delete must report not found")

	assert.Equal(t, []string{models.EventCreate, models.EventUpdate, models.EventDelete}, events.types())
}

func TestContentService_CreateAppliesDefaultsAndIgnoresClientMeta(t *testing.T) {
	svc, _, _ := newSkillService(t)

	doc, err := svc.Create(context.Background(), []byte(`{
		"_id": "client-chosen",
		"createdAt": "1999-01-01T00:00:00Z",
		"category": "TOOLS", "name": "Docker", "level": 2, "unknown": true
	}`))
	require.NoError(t, err)
	assert.NotEqual(t, "client-chosen", doc.ID)
	assert.Equal(t, 2025, doc.CreatedAt.Year())
	assert.Equal(t, "0 Yrs", doc.XP)
}

func TestContentService_CreateValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantReason string
	}{
		{name: "missing name", body: `{"category":"LANGUAGES","level":3}`, wantReason: "name is required"},
		{name: "level out of range", body: `{"category":"LANGUAGES","name":"Go","level":9}`, wantReason: "level must be at most 5"},
		{name: "wrong type", body: `{"category":"LANGUAGES","name":"Go","level":"high"}`, wantReason: "level must be of type int"},
		{name: "array body", body: `[{"name":"Go"}]`, wantReason: "request body must be a JSON object"},
		{name: "malformed", body: `{"name":`, wantReason: "malformed JSON"},
		{name: "empty", body: ``, wantReason: "request body must be a JSON object"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, docs, events := newSkillService(t)

			_, err := svc.Create(context.Background(), []byte(tt.body))

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, models.CollectionSkills, ve.Collection)
			assert.Contains(t, ve.Reason, tt.wantReason)
			assert.Equal(t, "skills validation failed: "+ve.Reason, err.Error())
			assert.Empty(t, docs.data[models.CollectionSkills])
			assert.Empty(t, events.types())
		})
	}
}

func TestContentService_UpdateRevalidatesMergedDocument(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSkillService(t)

	created, err := svc.Create(ctx, []byte(`{"category":"LANGUAGES","name":"Go","level":3}`))
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, []byte(`{"name":"","level":0}`))
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", stored.Name, "failed update must not change the stored document")
}

func TestContentService_UpdateCannotMoveIdentity(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSkillService(t)

	created, err := svc.Create(ctx, []byte(`{"category":"LANGUAGES","name":"Go","level":3}`))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, []byte(`{"_id":"`+uuid.NewString()+`","createdAt":"2001-01-01T00:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestContentService_UnknownAndMalformedIDs(t *testing.T) {
	ctx := context.Background()
	svc, docs, _ := newSkillService(t)
	docs.err = errors.New("store must not be called")

	for _, id := range []string{"", "123", "not-a-uuid", "507f1f77bcf86cd799439011"} {
		_, err := svc.Get(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound, "get %q", id)
		_, err = svc.Update(ctx, id, []byte(`{}`))
		assert.ErrorIs(t, err, ErrNotFound, "update %q", id)
		assert.ErrorIs(t, svc.Delete(ctx, id), ErrNotFound, "delete %q", id)
	}

	docs.err = nil
	missing := uuid.NewString()
	_, err := svc.Get(ctx, missing)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Update(ctx, missing, []byte(`{"xp":"1"}`))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentService_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSkillService(t)

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, name := range []string{"Go", "Rust", "SQL"} {
		_, err := svc.Create(ctx, []byte(`{"category":"LANGUAGES","level":1,"name":"`+name+`"}`))
		require.NoError(t, err)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Go", all[0].Name)
	assert.Equal(t, "SQL", all[2].Name)
}

func TestContentService_StoreErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	svc, docs, _ := newSkillService(t)
	boom := errors.New("db down")
	docs.err = boom

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = svc.Create(ctx, []byte(`{"category":"LANGUAGES","name":"Go","level":3}`))
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsValidation(err))
}

func TestContentService_ActivityFailureDoesNotFailMutation(t *testing.T) {
	svc, _, events := newSkillService(t)
	events.appendErr = errors.New("log table locked")

	_, err := svc.Create(context.Background(), []byte(`{"category":"LANGUAGES","name":"Go","level":3}`))
	require.NoError(t, err)
}

func TestContentService_ImportAndPurge(t *testing.T) {
	ctx := context.Background()
	svc, _, events := newSkillService(t)

	n, err := svc.Import(ctx, []json.RawMessage{
		json.RawMessage(`{"category":"LANGUAGES","name":"Go","level":5}`),
		json.RawMessage(`{"category":"LANGUAGES","name":"Zig","level":1}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, events.types(), "seeding is not activity")

	n, err = svc.Import(ctx, []json.RawMessage{
		json.RawMessage(`{"category":"LANGUAGES","name":"C","level":2}`),
		json.RawMessage(`{"category":"LANGUAGES"}`),
	})
	require.Error(t, err)
	assert.Equal(t, 1, n)

	removed, err := svc.Purge(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)
}

func TestRoadmapValidationReportsNestedRequiredSlice(t *testing.T) {
	svc := NewContentService[models.Roadmap](models.CollectionRoadmaps, newMemDocs(), nil, nil)

	_, err := svc.Create(context.Background(), []byte(`{"title":"Backend","level":"Beginner"}`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "steps is required", ve.Reason)

	doc, err := svc.Create(context.Background(), []byte(`{"title":"Backend","level":"Beginner","steps":[]}`))
	require.NoError(t, err)
	assert.NotNil(t, doc.Steps)
}

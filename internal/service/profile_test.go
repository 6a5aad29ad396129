package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"portfolio_cms/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetSingletonEmpty(t *testing.T) {
	svc := NewProfileService(newMemDocs(), &fakeEventRepo{}, nil)

	p, err := svc.GetSingleton(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProfileService_UpsertCreatesWithDefaultsThenMerges(t *testing.T) {
	ctx := context.Background()
	docs, events := newMemDocs(), &fakeEventRepo{}
	svc := NewProfileService(docs, events, nil)

	first, err := svc.UpsertSingleton(ctx, []byte(`{"header":{"avatar":"/me.png"},"stats":[{"label":"Years","value":"7"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", first.Header.Name)
	assert.Equal(t, "FULL_STACK_ARCHITECT", first.Header.Role)
	assert.Equal(t, "/me.png", first.Header.Avatar)
	assert.Equal(t, "Download Resume", first.Resume.Label)
	require.NotEmpty(t, first.ID)

	second, err := svc.UpsertSingleton(ctx, []byte(`{"header":{"name":"Ada"}}`))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "singleton keeps its identity")
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "Ada", second.Header.Name)
	assert.Equal(t, "/me.png", second.Header.Avatar, "fields not in the patch survive")
	assert.Len(t, second.Stats, 1)

	assert.Len(t, docs.data[models.CollectionProfile], 1)

	got, err := svc.GetSingleton(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	assert.Equal(t, []string{models.EventUpdate, models.EventUpdate}, events.types())
}

func TestProfileService_UpsertRejectsBadBody(t *testing.T) {
	svc := NewProfileService(newMemDocs(), nil, nil)

	_, err := svc.UpsertSingleton(context.Background(), []byte(`{"stats":"many"}`))
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	p, err := svc.GetSingleton(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProfileService_StoreError(t *testing.T) {
	docs := newMemDocs()
	docs.err = errors.New("db down")
	svc := NewProfileService(docs, nil, nil)

	_, err := svc.GetSingleton(context.Background())
	assert.ErrorIs(t, err, docs.err)
	_, err = svc.UpsertSingleton(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, docs.err)
}

func TestProfileService_Import(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(newMemDocs(), nil, nil)

	n, err := svc.Import(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = svc.Import(ctx, []json.RawMessage{json.RawMessage(`{}`), json.RawMessage(`{}`)})
	require.Error(t, err)

	n, err = svc.Import(ctx, []json.RawMessage{json.RawMessage(`{"header":{"name":"Seeded"}}`)})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, err := svc.GetSingleton(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Seeded", p.Header.Name)
}

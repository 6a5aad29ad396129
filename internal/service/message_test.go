package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageService_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := NewMessageService(newMemDocs(), &fakeEventRepo{}, nil)

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	for _, who := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, []byte(`{"name":"`+who+`","message":"hi"}`))
		require.NoError(t, err)
	}

	msgs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "third", msgs[0].Name)
	assert.Equal(t, "first", msgs[2].Name)
}

func TestMessageService_RequiresNameAndMessage(t *testing.T) {
	svc := NewMessageService(newMemDocs(), nil, nil)

	_, err := svc.Create(context.Background(), []byte(`{"name":"anon"}`))
	require.Error(t, err)
	assert.EqualError(t, err, "messages validation failed: message is required")
}

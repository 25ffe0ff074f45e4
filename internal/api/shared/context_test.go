package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestIdentityRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := GetIdentity(ctx)
	assert.False(t, ok)

	want := Identity{UserID: uuid.New(), Email: "a@example.com"}
	ctx = WithIdentity(ctx, want)

	got, ok := GetIdentity(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestTaskRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := GetTask(ctx)
	assert.False(t, ok)

	task, err := domain.NewTask("title", "description", "a@example.com", "")
	require.NoError(t, err)
	ctx = WithTask(ctx, task)

	got, ok := GetTask(ctx)
	require.True(t, ok)
	assert.Same(t, task, got)
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = SetTraceID(ctx)
	first := GetTraceID(ctx)
	assert.Len(t, first, TraceIDLength*2)

	second := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, first, second)
}

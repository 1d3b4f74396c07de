package service

import (
	"context"
	"errors"
	"testing"

	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViewCounter(t *testing.T) (*ViewCounterService, *testutil.LabTestRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := testutil.NewLabTestRepo()
	svc := NewViewCounterService(testutil.NewDryRunDB(t), client, testLogger(), repo)
	return svc, repo, mr
}

func seedLabTest(t *testing.T, repo *testutil.LabTestRepo, code string) uuid.UUID {
	t.Helper()
	lt := &entity.LabTest{Name: "Test " + code, Code: code, Category: "blood-test", IsActive: true}
	require.NoError(t, repo.Create(nil, lt))
	return lt.ID
}

func TestViewCounterIncrAndFlush(t *testing.T) {
	ctx := context.Background()
	svc, repo, mr := newViewCounter(t)
	a := seedLabTest(t, repo, "CBC")
	b := seedLabTest(t, repo, "LIPID")

	for i := 0; i < 3; i++ {
		_, err := svc.Incr(ctx, a)
		require.NoError(t, err)
	}
	n, err := svc.Incr(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	pending, err := svc.Pending(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pending)
	assert.True(t, mr.Exists(ViewDirtySetKey))

	flushed, err := svc.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, flushed)

	assert.Equal(t, int64(3), repo.Tests[a].ViewCount)
	assert.Equal(t, int64(1), repo.Tests[b].ViewCount)
	assert.False(t, mr.Exists(viewKey(a.String())))
	assert.False(t, mr.Exists(ViewDirtySetKey))

	pending, err = svc.Pending(ctx, a)
	require.NoError(t, err)
	assert.Zero(t, pending)

	flushed, err = svc.Flush(ctx)
	require.NoError(t, err)
	assert.Zero(t, flushed)
}

func TestViewCounterFlushRestoresOnFailure(t *testing.T) {
	ctx := context.Background()
	svc, repo, mr := newViewCounter(t)
	id := seedLabTest(t, repo, "THY-3")

	for i := 0; i < 2; i++ {
		_, err := svc.Incr(ctx, id)
		require.NoError(t, err)
	}

	repo.Err = errors.New("connection reset")
	_, err := svc.Flush(ctx)
	require.Error(t, err)

	mr.CheckGet(t, viewKey(id.String()), "2")
	assert.True(t, mr.Exists(ViewDirtySetKey))

	repo.Err = nil
	flushed, err := svc.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, flushed)
	assert.Equal(t, int64(2), repo.Tests[id].ViewCount)
}

package session

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"github.com/uber/bp-engine/src/bpengine/entity"
	"github.com/uber/bp-engine/src/bpengine/internal/errors"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSessionRepository(t *testing.T) {
	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	t.Run("should Set and Get successfully", func(t *testing.T) {
		id := uuid.Must(uuid.NewV4())
		s := &entity.Session{
			UUID:    id,
			Project: "payments",
		}

		repository := New(testScope)

		err := repository.Set(context.Background(), s)
		require.NoError(t, err)
		val, err := repository.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, val.UUID)
		assert.Equal(t, "payments", val.Project)
	})

	t.Run("should fail to get something that was not Set", func(t *testing.T) {
		repository := New(testScope)

		id := uuid.Must(uuid.NewV4())
		_, err := repository.Get(context.Background(), id)
		require.Error(t, err)
		var nf *errors.UUIDNotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, id, nf.UUID)
	})

	t.Run("should not save a nil session", func(t *testing.T) {
		repository := New(testScope)
		assert.Error(t, repository.Set(context.Background(), nil))
	})
}

func TestGetFromContext(t *testing.T) {
	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	t.Run("should get when uuid is in context", func(t *testing.T) {
		var id uuid.UUID
		s := &entity.Session{
			UUID: id,
		}

		repository := New(testScope)
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, id)
		err := repository.Set(ctx, s)
		require.NoError(t, err)
		val, err := repository.GetFromContext(ctx)
		assert.NoError(t, err)
		assert.Equal(t, id, val.UUID)
	})

	t.Run("should fail when uuid is missing from context", func(t *testing.T) {
		repository := New(testScope)

		_, err := repository.GetFromContext(context.Background())
		var noSession *errors.NoSessionFoundError
		assert.ErrorAs(t, err, &noSession)
	})

	t.Run("should fail in context is not set in repository", func(t *testing.T) {
		var id uuid.UUID
		repository := New(testScope)
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, id)
		_, err := repository.GetFromContext(ctx)
		assert.Error(t, err)
	})
}

func TestDeleteAndCount(t *testing.T) {
	ctx := context.Background()
	testScope := tally.NewTestScope("", nil)
	repository := New(testScope)

	first := &entity.Session{UUID: uuid.Must(uuid.NewV4())}
	second := &entity.Session{UUID: uuid.Must(uuid.NewV4())}
	require.NoError(t, repository.Set(ctx, first))
	require.NoError(t, repository.Set(ctx, second))

	count, err := repository.SessionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repository.Delete(ctx, first.UUID))
	count, err = repository.SessionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = repository.Get(ctx, first.UUID)
	assert.Error(t, err)

	for _, g := range testScope.Snapshot().Gauges() {
		if g.Name() == "active_connections" {
			assert.Equal(t, float64(1), g.Value())
		}
	}
}

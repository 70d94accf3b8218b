package user

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usermgmt/internal/db/repository"
	"usermgmt/internal/logging"
)

type mapCache struct {
	data map[string][]byte
}

func (c *mapCache) GetByID(ctx context.Context, id string) ([]byte, error) {
	return c.data[id], nil
}

func (c *mapCache) Set(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	c.data[id] = data
	return nil
}

func (c *mapCache) Delete(ctx context.Context, id string) error {
	delete(c.data, id)
	return nil
}

type recordedEvents struct {
	created, updated, deleted []string
}

func (e *recordedEvents) UserCreated(ctx context.Context, u *UserDto) error {
	e.created = append(e.created, u.ID)
	return nil
}

func (e *recordedEvents) UserUpdated(ctx context.Context, u *UserDto) error {
	e.updated = append(e.updated, u.ID)
	return nil
}

func (e *recordedEvents) UserDeleted(ctx context.Context, id string) error {
	e.deleted = append(e.deleted, id)
	return nil
}

func newTestService() (Service, *mapCache, *recordedEvents) {
	c := &mapCache{data: map[string][]byte{}}
	ev := &recordedEvents{}
	return NewService(repository.NewMemoryUserRepository(), c, ev, logging.NewNop()), c, ev
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, c, ev := newTestService()

	created, err := svc.Create(ctx, CreateUserInput{FirstName: "Ann", LastName: "Lee", Phone: "5551234567", Email: "a@b.com"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, []string{created.ID}, ev.created)
	assert.Contains(t, c.data, created.ID)

	updated, err := svc.Update(ctx, UpdateUserInput{
		ID:              created.ID,
		CreateUserInput: CreateUserInput{FirstName: "Ann", LastName: "Moss", Phone: "5551234567", Email: "a@b.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Moss", updated.LastName)
	assert.Equal(t, []string{created.ID}, ev.updated)

	var cached UserDto
	require.NoError(t, json.Unmarshal(c.data[created.ID], &cached))
	assert.Equal(t, "Moss", cached.LastName)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Moss", got.LastName)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.NotContains(t, c.data, created.ID)
	assert.Equal(t, []string{created.ID}, ev.deleted)
}

func TestServiceNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, ev := newTestService()

	_, err := svc.GetByID(ctx, "missing")
	assert.True(t, IsNotFound(err))

	_, err = svc.Update(ctx, UpdateUserInput{ID: "missing"})
	assert.True(t, IsNotFound(err))

	assert.True(t, IsNotFound(svc.Delete(ctx, "missing")))
	assert.Empty(t, ev.updated)
	assert.Empty(t, ev.deleted)
}

func TestServiceGetByIDPrefersCache(t *testing.T) {
	ctx := context.Background()
	svc, c, _ := newTestService()
	c.data["cached"] = []byte(`{"id":"cached","firstName":"From","lastName":"Cache"}`)

	got, err := svc.GetByID(ctx, "cached")
	require.NoError(t, err)
	assert.Equal(t, "Cache", got.LastName)
}

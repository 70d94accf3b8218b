package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appuser "usermgmt/internal/app/user"
	"usermgmt/internal/config"
	"usermgmt/internal/logging"
)

type published struct {
	topic, msgType string
	payload        any
}

type recordingBus struct {
	msgs []published
}

func (b *recordingBus) Publish(ctx context.Context, topic, msgType string, payload any) error {
	b.msgs = append(b.msgs, published{topic, msgType, payload})
	return nil
}

func TestUserEventsPublishToUsersTopic(t *testing.T) {
	bus := &recordingBus{}
	ev := NewUserEvents(bus, config.KafkaConfig{TopicPrefix: "dev."}, logging.NewNop())
	ctx := context.Background()

	require.NoError(t, ev.UserCreated(ctx, &appuser.UserDto{ID: "1"}))
	require.NoError(t, ev.UserUpdated(ctx, &appuser.UserDto{ID: "1"}))
	require.NoError(t, ev.UserDeleted(ctx, "1"))

	require.Len(t, bus.msgs, 3)
	for _, m := range bus.msgs {
		assert.Equal(t, "dev.users", m.topic)
	}
	assert.Equal(t, UserCreatedType, bus.msgs[0].msgType)
	assert.Equal(t, UserUpdatedType, bus.msgs[1].msgType)
	assert.Equal(t, UserDeletedType, bus.msgs[2].msgType)

	raw, err := json.Marshal(bus.msgs[2].payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(raw))
}

func TestDisabledKafkaIsInert(t *testing.T) {
	bus, closeFn, err := NewBus(config.KafkaConfig{}, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), "users", UserCreatedType, nil))
	require.NoError(t, closeFn(context.Background()))

	r, err := NewRouter(context.Background(), config.KafkaConfig{}, logging.NewNop(), nil)
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))
	require.NoError(t, r.Close(context.Background()))
}

func TestNewEnvelopeCarriesRequestID(t *testing.T) {
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")

	env, err := NewEnvelope(ctx, UserCreatedType, map[string]string{"id": "1"})
	require.NoError(t, err)
	assert.Equal(t, "req-42", env.CorrelationID)
	assert.NotEmpty(t, env.MessageID)
	assert.JSONEq(t, `{"id":"1"}`, string(env.Payload))
}

func TestDispatch(t *testing.T) {
	var got []Envelope
	handle := func(ctx context.Context, env Envelope) error {
		got = append(got, env)
		return nil
	}

	env, err := NewEnvelope(context.Background(), UserDeletedType, map[string]string{"id": "9"})
	require.NoError(t, err)
	body, err := json.Marshal(env)
	require.NoError(t, err)

	require.NoError(t, dispatch(context.Background(), body, handle, logging.NewNop()))
	require.Len(t, got, 1)
	assert.Equal(t, UserDeletedType, got[0].Type)

	// garbage is acked, not handed on
	require.NoError(t, dispatch(context.Background(), []byte("{"), handle, logging.NewNop()))
	assert.Len(t, got, 1)

	boom := errors.New("boom")
	err = dispatch(context.Background(), body, func(context.Context, Envelope) error { return boom }, logging.NewNop())
	assert.ErrorIs(t, err, boom)
}

func TestEnvelopeDecode(t *testing.T) {
	env, err := NewEnvelope(context.Background(), UserUpdatedType, &appuser.UserDto{ID: "7", FirstName: "Ada"})
	require.NoError(t, err)

	var ref UserRef
	require.NoError(t, env.Decode(&ref))
	assert.Equal(t, "7", ref.ID)

	assert.Error(t, Envelope{Type: UserDeletedType}.Decode(&ref))
	assert.Error(t, Envelope{Type: UserDeletedType, Payload: []byte(`"x"`)}.Decode(&ref))
}

func TestIsUserEvent(t *testing.T) {
	assert.True(t, IsUserEvent(UserCreatedType))
	assert.True(t, IsUserEvent(UserUpdatedType))
	assert.True(t, IsUserEvent(UserDeletedType))
	assert.False(t, IsUserEvent("OrderPlaced"))
	assert.False(t, IsUserEvent(""))
}

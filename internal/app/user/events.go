package user

import "context"

// Events announces committed changes to the collection. The web UI listens
// for them to mark every session's list stale.
type Events interface {
	UserCreated(ctx context.Context, u *UserDto) error
	UserUpdated(ctx context.Context, u *UserDto) error
	UserDeleted(ctx context.Context, id string) error
}

// NoopEvents drops every event; used when Kafka is off and in tests.
type NoopEvents struct{}

var _ Events = NoopEvents{}

func (NoopEvents) UserCreated(context.Context, *UserDto) error { return nil }
func (NoopEvents) UserUpdated(context.Context, *UserDto) error { return nil }
func (NoopEvents) UserDeleted(context.Context, string) error   { return nil }

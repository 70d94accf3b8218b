package kafka

import (
	"context"
	"fmt"

	appuser "usermgmt/internal/app/user"
	"usermgmt/internal/config"
	"usermgmt/internal/logging"
)

const (
	UserCreatedType = "UserCreated"
	UserUpdatedType = "UserUpdated"
	UserDeletedType = "UserDeleted"
)

// UserRef is the payload of UserDeleted and the common subset of every
// user event payload.
type UserRef struct {
	ID string `json:"id"`
}

// IsUserEvent reports whether t is one of the user change event types.
func IsUserEvent(t string) bool {
	switch t {
	case UserCreatedType, UserUpdatedType, UserDeletedType:
		return true
	}
	return false
}

// UsersTopic is the topic user change events are published to.
func UsersTopic(cfg config.KafkaConfig) string {
	return cfg.TopicPrefix + "users"
}

type userEvents struct {
	bus    Bus
	topic  string
	logger logging.Logger
}

func NewUserEvents(bus Bus, cfg config.KafkaConfig, logger logging.Logger) appuser.Events {
	return &userEvents{
		bus:    bus,
		topic:  UsersTopic(cfg),
		logger: logger.With("component", "user_events"),
	}
}

func (e *userEvents) UserCreated(ctx context.Context, u *appuser.UserDto) error {
	if err := e.bus.Publish(ctx, e.topic, UserCreatedType, u); err != nil {
		return fmt.Errorf("publish UserCreated: %w", err)
	}
	return nil
}

func (e *userEvents) UserUpdated(ctx context.Context, u *appuser.UserDto) error {
	if err := e.bus.Publish(ctx, e.topic, UserUpdatedType, u); err != nil {
		return fmt.Errorf("publish UserUpdated: %w", err)
	}
	return nil
}

func (e *userEvents) UserDeleted(ctx context.Context, id string) error {
	if err := e.bus.Publish(ctx, e.topic, UserDeletedType, UserRef{ID: id}); err != nil {
		return fmt.Errorf("publish UserDeleted: %w", err)
	}
	return nil
}

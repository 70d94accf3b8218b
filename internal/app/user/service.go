package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"usermgmt/internal/cache"
	dom "usermgmt/internal/domain/user"
	"usermgmt/internal/logging"
)

type Service interface {
	List(ctx context.Context) ([]UserDto, error)
	GetByID(ctx context.Context, id string) (*UserDto, error)
	Create(ctx context.Context, input CreateUserInput) (*UserDto, error)
	Update(ctx context.Context, input UpdateUserInput) (*UserDto, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   dom.Repository
	cache  cache.UserCache
	events Events
	logger logging.Logger
}

const defaultUserCacheTTL = 5 * time.Minute

func NewService(
	repo dom.Repository,
	cache cache.UserCache,
	events Events,
	logger logging.Logger,
) Service {
	return &service{
		repo:   repo,
		cache:  cache,
		events: events,
		logger: logger.With("component", "user_service"),
	}
}

func (s *service) List(ctx context.Context) ([]UserDto, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("list users: %w", err)
	}

	return toDTOs(users), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*UserDto, error) {
	// 1) Check cache
	data, err := s.cache.GetByID(ctx, id)
	switch {
	case err != nil:
		s.logger.Error("failed to get user from cache", "error", err, "id", id)
	case data != nil:
		var dto UserDto
		if err := json.Unmarshal(data, &dto); err != nil {
			s.logger.Error("failed to unmarshal user from cache", "error", err, "id", id)
			break
		}
		return &dto, nil
	}

	// 2) Fallback to DB
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toDTO(u)
	s.cacheUser(ctx, dto, "get")
	return dto, nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDto, error) {
	u := &dom.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Email:     input.Email,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", input.Email)
		return nil, fmt.Errorf("create user: %w", err)
	}

	dto := toDTO(u)
	s.cacheUser(ctx, dto, "create")

	if err := s.events.UserCreated(ctx, dto); err != nil {
		s.logger.Error("failed to publish UserCreated event", "error", err, "id", dto.ID)
	}

	return dto, nil
}

func (s *service) Update(ctx context.Context, input UpdateUserInput) (*UserDto, error) {
	u := &dom.User{
		ID:        input.ID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Email:     input.Email,
	}

	if err := s.repo.Update(ctx, u); err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to update user", "error", err, "id", input.ID)
		return nil, fmt.Errorf("update user: %w", err)
	}

	dto := toDTO(u)
	s.cacheUser(ctx, dto, "update")

	if err := s.events.UserUpdated(ctx, dto); err != nil {
		s.logger.Error("failed to publish UserUpdated event", "error", err, "id", dto.ID)
	}

	return dto, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user cache after delete", "error", err, "id", id)
	}

	if err := s.events.UserDeleted(ctx, id); err != nil {
		s.logger.Error("failed to publish UserDeleted event", "error", err, "id", id)
	}

	return nil
}

// cacheUser writes dto to the cache; failures are logged and ignored.
func (s *service) cacheUser(ctx context.Context, dto *UserDto, op string) {
	data, err := json.Marshal(dto)
	if err != nil {
		s.logger.Error("failed to marshal user for cache", "error", err, "id", dto.ID, "op", op)
		return
	}
	if err := s.cache.Set(ctx, dto.ID, data, defaultUserCacheTTL); err != nil {
		s.logger.Error("failed to set user cache", "error", err, "id", dto.ID, "op", op)
	}
}

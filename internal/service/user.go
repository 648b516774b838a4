package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/user-service/internal/lib/job"
	"github.com/deppfellow/user-service/internal/model"
	"github.com/deppfellow/user-service/internal/repository"
	"github.com/rs/zerolog"
)

// UserStore is the storage the user service runs on. Lookups and
// conditional writes report a missing row as repository.ErrNotFound.
type UserStore interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindByName(ctx context.Context, name string) ([]model.User, error)
	UpdateByID(ctx context.Context, id int64, u *model.User) (*model.User, error)
	DeleteByID(ctx context.Context, id int64) (*model.User, error)
}

// EventPublisher receives user lifecycle events.
type EventPublisher interface {
	PublishUserEvent(ctx context.Context, eventType job.UserEventType, userID int64, name string) error
}

// publishTimeout bounds how long a request waits on the event queue.
const publishTimeout = 2 * time.Second

type UserService struct {
	logger *zerolog.Logger
	store  UserStore
	events EventPublisher
}

// NewUserService builds the service. events may be nil, in which case no
// lifecycle events are published.
func NewUserService(logger *zerolog.Logger, store UserStore, events EventPublisher) *UserService {
	return &UserService{
		logger: logger,
		store:  store,
		events: events,
	}
}

// CreateUser stores candidate and returns it with its assigned id.
func (s *UserService) CreateUser(ctx context.Context, candidate *model.User) (*model.User, error) {
	if candidate.HasBlankAttributes() {
		return nil, ErrInvalidAttributes
	}

	created, err := s.store.Create(ctx, candidate)
	if err != nil {
		return nil, err
	}

	s.log(ctx).Info().Int64("user_id", created.ID).Msg("user created")
	s.publish(ctx, job.UserCreated, created)

	return created, nil
}

// GetAllUsers returns every user in ascending id order, or an empty slice.
func (s *UserService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *UserService) FindUserByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// FindByName returns the users with exactly this name. An empty match is
// ErrUserNotFound.
func (s *UserService) FindByName(ctx context.Context, name string) ([]model.User, error) {
	users, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return users, nil
}

func (s *UserService) DeleteUserByID(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return notFound(err)
	}

	s.log(ctx).Info().Int64("user_id", id).Msg("user deleted")
	s.publish(ctx, job.UserDeleted, deleted)

	return nil
}

// UpdateUserByID overwrites name and password of the user at id. Any id on
// update is ignored.
func (s *UserService) UpdateUserByID(ctx context.Context, update *model.User, id int64) (*model.User, error) {
	if update.HasBlankAttributes() {
		return nil, ErrInvalidAttributes
	}

	updated, err := s.store.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, notFound(err)
	}

	s.log(ctx).Info().Int64("user_id", updated.ID).Msg("user updated")
	s.publish(ctx, job.UserUpdated, updated)

	return updated, nil
}

// publish sends a lifecycle event. Failures are logged only.
func (s *UserService) publish(ctx context.Context, eventType job.UserEventType, u *model.User) {
	if s.events == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := s.events.PublishUserEvent(ctx, eventType, u.ID, u.Name); err != nil {
		s.log(ctx).Warn().
			Err(err).
			Str("event", string(eventType)).
			Int64("user_id", u.ID).
			Msg("failed to publish user event")
	}
}

// log prefers the request-scoped logger carried by ctx.
func (s *UserService) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.logger
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

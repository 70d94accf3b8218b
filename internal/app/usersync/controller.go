// Package usersync keeps a session's local copy of the users collection in
// step with the remote resource.
package usersync

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"

	dom "usermgmt/internal/domain/user"
	"usermgmt/internal/logging"
	"usermgmt/internal/telemetry"
)

// Remote is the users collection resource.
type Remote interface {
	List(ctx context.Context) ([]dom.User, error)
	Create(ctx context.Context, u dom.User) (dom.User, error)
	Update(ctx context.Context, id string, u dom.User) (dom.User, error)
	Delete(ctx context.Context, id string) error
}

type Controller struct {
	remote  Remote
	logger  logging.Logger
	metrics *telemetry.RemoteMetrics
}

// NewController records remote call metrics on the global meter provider.
func NewController(remote Remote, logger logging.Logger) *Controller {
	return &Controller{
		remote:  remote,
		logger:  logger.With("component", "user_sync"),
		metrics: telemetry.NewRemoteMetrics(otel.GetMeterProvider()),
	}
}

// Refresh replaces the local list with the remote one.
func (c *Controller) Refresh(ctx context.Context, st *State) error {
	start := time.Now()
	users, err := c.remote.List(ctx)
	c.metrics.Record(ctx, "list", start, err)
	if err != nil {
		return c.keepLastKnownGood(st, "refresh", err)
	}

	if users == nil {
		users = []dom.User{}
	}
	st.Users = users
	st.LastError = ""
	return nil
}

// Sync refreshes st if its list predates generation. Used for the initial
// load and after the change feed reports a remote modification.
func (c *Controller) Sync(ctx context.Context, st *State, generation uint64) error {
	if st.Generation >= generation {
		return nil
	}
	if err := c.Refresh(ctx, st); err != nil {
		return err
	}
	st.Generation = generation
	return nil
}

// Submit creates candidate, or updates the record editingID when it is set.
// On success the form is closed and the list shown. Editing a record that has
// no id leaves st untouched: there is nothing to update server-side.
func (c *Controller) Submit(ctx context.Context, st *State, candidate dom.User, editingID string) error {
	if editingID == "" && st.Editing != nil {
		c.logger.Debug("update ignored, record has no id")
		return nil
	}
	if editingID != "" {
		start := time.Now()
		updated, err := c.remote.Update(ctx, editingID, candidate)
		c.metrics.Record(ctx, "update", start, err)
		if err != nil {
			return c.keepLastKnownGood(st, "update", err)
		}
		if i := st.indexOf(updated.ID); i >= 0 {
			st.Users[i] = updated
		}
		c.logger.Info("user updated", "id", updated.ID)
	} else {
		candidate.ID = ""
		start := time.Now()
		created, err := c.remote.Create(ctx, candidate)
		c.metrics.Record(ctx, "create", start, err)
		if err != nil {
			return c.keepLastKnownGood(st, "create", err)
		}
		st.Users = append(st.Users, created)
		c.logger.Info("user created", "id", created.ID)
	}

	st.LastError = ""
	st.Editing = nil
	st.View = ViewList
	return nil
}

// Remove deletes the record id. Records without an id, or not in the local
// list, have nothing to target and are ignored.
func (c *Controller) Remove(ctx context.Context, st *State, id string) error {
	if id == "" || st.indexOf(id) < 0 {
		c.logger.Debug("remove ignored", "id", id)
		return nil
	}

	start := time.Now()
	err := c.remote.Delete(ctx, id)
	c.metrics.Record(ctx, "delete", start, err)
	if err != nil {
		return c.keepLastKnownGood(st, "delete", err)
	}

	kept := make([]dom.User, 0, len(st.Users))
	for _, u := range st.Users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	st.Users = kept
	st.LastError = ""
	c.logger.Info("user deleted", "id", id)
	return nil
}

// BeginEdit opens the form on a copy of u.
func (c *Controller) BeginEdit(st *State, u dom.User) {
	edit := u
	st.Editing = &edit
	st.View = ViewForm
}

func (c *Controller) SwitchView(st *State, v View) {
	st.Editing = nil
	st.View = v
}

// keepLastKnownGood is the only failure policy: local state stays as the last
// successful response left it and the error is recorded. Nothing is
// fabricated locally for a request the server did not acknowledge.
func (c *Controller) keepLastKnownGood(st *State, op string, err error) error {
	c.logger.Error("remote users call failed", "op", op, "error", err)
	st.LastError = fmt.Sprintf("%s failed: %v", op, err)
	return fmt.Errorf("%s: %w", op, err)
}

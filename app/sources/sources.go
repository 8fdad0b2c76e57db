// Package sources manages job sources, i.e. the boards and channels a job listing or a resume
// experience entry is attributed to. Every operation takes the caller identity explicitly and
// reports failures as *Error with the kind of the failure and a human-readable message.
package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/jobsrc/app/enums"
	"github.com/umputun/jobsrc/app/persistence"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Store defines storage operations used by Manager
type Store interface {
	Sources(ctx context.Context, owner string) ([]persistence.JobSource, error)
	UpsertSource(ctx context.Context, src persistence.JobSource) (persistence.JobSource, error)
	CountJobs(ctx context.Context, sourceID string) (int, error)
	CountWorkExperiences(ctx context.Context, sourceID string) (int, error)
	DeleteSource(ctx context.Context, id, owner string) (persistence.JobSource, error)
}

// User is the authenticated caller. Empty ID means no authenticated user.
type User struct {
	ID string
}

// Manager implements job source operations on top of Store
type Manager struct {
	Store Store
}

const (
	msgListFailed   = "Failed to fetch job source list."
	msgCreateFailed = "Failed to create job source."
	msgDeleteFailed = "Failed to delete job source."
)

var errNotAuthenticated = errors.New("not authenticated")

// ListForUser returns job sources created by the user
func (m *Manager) ListForUser(ctx context.Context, user User) (res []persistence.JobSource, err error) {
	defer m.recover(&err, msgListFailed)

	if user.ID == "" {
		return nil, newError(enums.ErrorKindAuthentication, msgListFailed, errNotAuthenticated)
	}
	res, err = m.Store.Sources(ctx, user.ID)
	if err != nil {
		return nil, newError(enums.ErrorKindUnexpected, msgListFailed, err)
	}
	return res, nil
}

// ListAll returns every job source regardless of owner, no authentication required
func (m *Manager) ListAll(ctx context.Context) (res []persistence.JobSource, err error) {
	defer m.recover(&err, msgListFailed)

	res, err = m.Store.Sources(ctx, "")
	if err != nil {
		return nil, newError(enums.ErrorKindUnexpected, msgListFailed, err)
	}
	return res, nil
}

// CreateOrUpdate upserts the user's job source keyed by the normalized label.
// Labels normalizing to the same value end up in one row with the label of the latest call.
// A value already owned by another user is refused with a conflict error.
func (m *Manager) CreateOrUpdate(ctx context.Context, user User, label string) (res persistence.JobSource, err error) {
	defer m.recover(&err, msgCreateFailed)

	if user.ID == "" {
		return persistence.JobSource{}, newError(enums.ErrorKindAuthentication, msgCreateFailed, errNotAuthenticated)
	}

	value := Normalize(label)
	if value == "" {
		return persistence.JobSource{}, newError(enums.ErrorKindValidation, msgCreateFailed, errors.New("label is empty"))
	}

	src := persistence.JobSource{Label: strings.TrimSpace(label), Value: value, CreatedBy: user.ID}
	res, err = m.Store.UpsertSource(ctx, src)
	if errors.Is(err, persistence.ErrConflict) {
		return persistence.JobSource{}, newError(enums.ErrorKindConflict, msgCreateFailed,
			fmt.Errorf("job source %q already exists", value))
	}
	if err != nil {
		return persistence.JobSource{}, newError(enums.ErrorKindUnexpected, msgCreateFailed, err)
	}
	log.Printf("[DEBUG] job source %s upserted, value %q, label %q", res.ID, res.Value, res.Label)
	return res, nil
}

// DeleteByID removes the user's job source if nothing references it and returns the removed row.
// Sources used by a resume work experience or by any job are refused with a conflict error.
func (m *Manager) DeleteByID(ctx context.Context, user User, id string) (res persistence.JobSource, err error) {
	defer m.recover(&err, msgDeleteFailed)

	if user.ID == "" {
		return persistence.JobSource{}, newError(enums.ErrorKindAuthentication, msgDeleteFailed, errNotAuthenticated)
	}

	experiences, err := m.Store.CountWorkExperiences(ctx, id)
	if err != nil {
		return persistence.JobSource{}, newError(enums.ErrorKindUnexpected, msgDeleteFailed, err)
	}
	if experiences > 0 {
		return persistence.JobSource{}, newError(enums.ErrorKindConflict, msgDeleteFailed,
			errors.New("Job source cannot be deleted due to its use in experience section of one of the resume!"))
	}

	jobs, err := m.Store.CountJobs(ctx, id)
	if err != nil {
		return persistence.JobSource{}, newError(enums.ErrorKindUnexpected, msgDeleteFailed, err)
	}
	if jobs > 0 {
		return persistence.JobSource{}, newError(enums.ErrorKindConflict, msgDeleteFailed,
			fmt.Errorf("Job source cannot be deleted due to %d number of associated jobs!", jobs))
	}

	res, err = m.Store.DeleteSource(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.JobSource{}, newError(enums.ErrorKindNotFound, msgDeleteFailed, err)
		}
		return persistence.JobSource{}, newError(enums.ErrorKindUnexpected, msgDeleteFailed, err)
	}
	log.Printf("[INFO] job source %s (%s) deleted by %s", id, res.Value, user.ID)
	return res, nil
}

// Normalize makes the unique lookup key for a label
func Normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// recover turns a panic in the store into an unexpected error, callers never see a panic
func (m *Manager) recover(err *error, msg string) {
	if x := recover(); x != nil {
		*err = newError(enums.ErrorKindUnexpected, msg, fmt.Errorf("panic: %v", x))
	}
}

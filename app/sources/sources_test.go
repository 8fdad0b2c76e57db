package sources

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/jobsrc/app/enums"
	"github.com/umputun/jobsrc/app/persistence"
	"github.com/umputun/jobsrc/app/sources/mocks"
)

// newTestManager makes manager with sqlite store, returns db path for direct access
func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := persistence.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return &Manager{Store: store}, dbPath
}

func requireKind(t *testing.T, err error, kind enums.ErrorKind) *Error {
	t.Helper()
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e), "expected *sources.Error, got %T", err)
	assert.Equal(t, kind, e.Kind)
	return e
}

func TestNormalize(t *testing.T) {
	tests := []struct{ name, in, want string }{
		{"already normalized", "linkedin", "linkedin"},
		{"mixed case with spaces", "  LinkedIn ", "linkedin"},
		{"tabs and newlines", "\tIndeed\n", "indeed"},
		{"inner spaces kept", " Angel List ", "angel list"},
		{"blank", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestManager_CreateOrUpdate(t *testing.T) {
	ctx := context.Background()
	user := User{ID: "user1"}

	t.Run("creates normalized source", func(t *testing.T) {
		m, _ := newTestManager(t)
		src, err := m.CreateOrUpdate(ctx, user, "  LinkedIn ")
		require.NoError(t, err)
		assert.Equal(t, "LinkedIn", src.Label)
		assert.Equal(t, "linkedin", src.Value)
		assert.Equal(t, "user1", src.CreatedBy)
		assert.NotEmpty(t, src.ID)
	})

	t.Run("idempotent on normalized value, latest label wins", func(t *testing.T) {
		m, _ := newTestManager(t)
		first, err := m.CreateOrUpdate(ctx, user, "  LinkedIn ")
		require.NoError(t, err)
		second, err := m.CreateOrUpdate(ctx, user, "linkedin")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "linkedin", second.Label)

		all, err := m.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "linkedin", all[0].Label)
		assert.Equal(t, "linkedin", all[0].Value)
	})

	t.Run("value owned by another user is a conflict", func(t *testing.T) {
		m, _ := newTestManager(t)
		alices, err := m.CreateOrUpdate(ctx, User{ID: "alice"}, "LinkedIn")
		require.NoError(t, err)

		_, err = m.CreateOrUpdate(ctx, User{ID: "bob"}, "LINKEDIN")
		e := requireKind(t, err, enums.ErrorKindConflict)
		assert.Equal(t, `Failed to create job source. job source "linkedin" already exists`, e.Message)

		res, err := m.ListForUser(ctx, User{ID: "alice"})
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, alices.ID, res[0].ID)
		assert.Equal(t, "LinkedIn", res[0].Label, "other user can't rename alice's source")

		res, err = m.ListForUser(ctx, User{ID: "bob"})
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("requires authentication", func(t *testing.T) {
		m, _ := newTestManager(t)
		_, err := m.CreateOrUpdate(ctx, User{}, "LinkedIn")
		e := requireKind(t, err, enums.ErrorKindAuthentication)
		assert.Equal(t, "Failed to create job source. not authenticated", e.Error())

		all, err := m.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("blank label rejected", func(t *testing.T) {
		m, _ := newTestManager(t)
		_, err := m.CreateOrUpdate(ctx, user, "   ")
		requireKind(t, err, enums.ErrorKindValidation)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &mocks.StoreMock{
			UpsertSourceFunc: func(context.Context, persistence.JobSource) (persistence.JobSource, error) {
				return persistence.JobSource{}, errors.New("disk full")
			},
		}
		m := &Manager{Store: store}
		_, err := m.CreateOrUpdate(ctx, user, "LinkedIn")
		e := requireKind(t, err, enums.ErrorKindUnexpected)
		assert.Equal(t, "Failed to create job source. disk full", e.Message)
		require.Len(t, store.UpsertSourceCalls(), 1)
		assert.Equal(t, persistence.JobSource{Label: "LinkedIn", Value: "linkedin", CreatedBy: "user1"},
			store.UpsertSourceCalls()[0].Src)
	})
}

func TestManager_ListForUser(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.CreateOrUpdate(ctx, User{ID: "user1"}, "LinkedIn")
	require.NoError(t, err)
	_, err = m.CreateOrUpdate(ctx, User{ID: "user1"}, "Indeed")
	require.NoError(t, err)
	_, err = m.CreateOrUpdate(ctx, User{ID: "user2"}, "Glassdoor")
	require.NoError(t, err)

	t.Run("only own sources", func(t *testing.T) {
		res, err := m.ListForUser(ctx, User{ID: "user1"})
		require.NoError(t, err)
		require.Len(t, res, 2)
		for _, src := range res {
			assert.Equal(t, "user1", src.CreatedBy)
		}

		res, err = m.ListForUser(ctx, User{ID: "user2"})
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "glassdoor", res[0].Value)
	})

	t.Run("requires authentication", func(t *testing.T) {
		res, err := m.ListForUser(ctx, User{})
		e := requireKind(t, err, enums.ErrorKindAuthentication)
		assert.Equal(t, "Failed to fetch job source list. not authenticated", e.Message)
		assert.Nil(t, res)
	})

	t.Run("list all ignores owner", func(t *testing.T) {
		res, err := m.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, res, 3)
	})
}

func TestManager_ListErrors(t *testing.T) {
	ctx := context.Background()
	store := &mocks.StoreMock{
		SourcesFunc: func(context.Context, string) ([]persistence.JobSource, error) {
			return nil, errors.New("db is locked")
		},
	}
	m := &Manager{Store: store}

	_, err := m.ListAll(ctx)
	e := requireKind(t, err, enums.ErrorKindUnexpected)
	assert.Equal(t, "Failed to fetch job source list. db is locked", e.Message)

	_, err = m.ListForUser(ctx, User{ID: "user1"})
	requireKind(t, err, enums.ErrorKindUnexpected)

	require.Len(t, store.SourcesCalls(), 2)
	assert.Equal(t, "", store.SourcesCalls()[0].Owner)
	assert.Equal(t, "user1", store.SourcesCalls()[1].Owner)
}

func TestManager_DeleteByID(t *testing.T) {
	ctx := context.Background()
	user := User{ID: "user1"}

	t.Run("unreferenced source deleted", func(t *testing.T) {
		m, _ := newTestManager(t)
		src, err := m.CreateOrUpdate(ctx, user, "LinkedIn")
		require.NoError(t, err)

		deleted, err := m.DeleteByID(ctx, user, src.ID)
		require.NoError(t, err)
		assert.Equal(t, src.ID, deleted.ID)
		assert.Equal(t, "LinkedIn", deleted.Label)

		res, err := m.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("blocked by work experience", func(t *testing.T) {
		m, dbPath := newTestManager(t)
		src, err := m.CreateOrUpdate(ctx, user, "LinkedIn")
		require.NoError(t, err)
		addReference(t, dbPath, "work_experiences", src.ID)

		_, err = m.DeleteByID(ctx, user, src.ID)
		e := requireKind(t, err, enums.ErrorKindConflict)
		assert.Equal(t, "Failed to delete job source. Job source cannot be deleted due to its use in "+
			"experience section of one of the resume!", e.Message)

		res, err := m.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, res, 1, "source must stay")
	})

	t.Run("blocked by jobs", func(t *testing.T) {
		m, dbPath := newTestManager(t)
		src, err := m.CreateOrUpdate(ctx, user, "LinkedIn")
		require.NoError(t, err)
		addReference(t, dbPath, "jobs", src.ID)
		addReference(t, dbPath, "jobs", src.ID)

		_, err = m.DeleteByID(ctx, user, src.ID)
		e := requireKind(t, err, enums.ErrorKindConflict)
		assert.Contains(t, e.Message, "due to 2 number of associated jobs")

		res, err := m.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, res, 1, "source must stay")
	})

	t.Run("someone else's source", func(t *testing.T) {
		m, _ := newTestManager(t)
		src, err := m.CreateOrUpdate(ctx, user, "LinkedIn")
		require.NoError(t, err)

		_, err = m.DeleteByID(ctx, User{ID: "user2"}, src.ID)
		requireKind(t, err, enums.ErrorKindNotFound)

		res, err := m.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("requires authentication", func(t *testing.T) {
		store := &mocks.StoreMock{}
		m := &Manager{Store: store}
		_, err := m.DeleteByID(ctx, User{}, "id1")
		requireKind(t, err, enums.ErrorKindAuthentication)
		assert.Empty(t, store.CountWorkExperiencesCalls())
	})

	t.Run("count failure", func(t *testing.T) {
		store := &mocks.StoreMock{
			CountWorkExperiencesFunc: func(context.Context, string) (int, error) { return 0, nil },
			CountJobsFunc:            func(context.Context, string) (int, error) { return 0, errors.New("io error") },
		}
		m := &Manager{Store: store}
		_, err := m.DeleteByID(ctx, user, "id1")
		e := requireKind(t, err, enums.ErrorKindUnexpected)
		assert.Equal(t, "Failed to delete job source. io error", e.Message)
		assert.Empty(t, store.DeleteSourceCalls())
	})

	t.Run("store panic is reported as unexpected error", func(t *testing.T) {
		m := &Manager{Store: &mocks.StoreMock{}} // no funcs set, mock panics on call
		_, err := m.DeleteByID(ctx, user, "id1")
		e := requireKind(t, err, enums.ErrorKindUnexpected)
		assert.Contains(t, e.Message, "Failed to delete job source. panic:")
	})
}

func TestError(t *testing.T) {
	cause := errors.New("boom")
	e := newError(enums.ErrorKindUnexpected, msgListFailed, cause)
	assert.Equal(t, "Failed to fetch job source list. boom", e.Error())
	assert.ErrorIs(t, e, cause)

	e = newError(enums.ErrorKindValidation, "bad input", nil)
	assert.Equal(t, "bad input", e.Error())
}

// addReference inserts a row referencing the source into jobs or work_experiences table
func addReference(t *testing.T, dbPath, table, sourceID string) {
	t.Helper()
	db, err := sqlx.Open("sqlite", "file:"+dbPath+"?_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec("INSERT INTO "+table+" (id, job_source_id) VALUES (?, ?)", uuid.NewString(), sourceID)
	require.NoError(t, err)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/notify"
	"jobhub_backend/pkg/apperrors"
)

func TestRegisterAndLogin(t *testing.T) {
	for _, backend := range testBackends {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			repos, _ := newTestRepos(t, backend)
			notifier := &recordingNotifier{}
			auth := newAuthForTest(t, repos, notifier)

			ok := auth.Register(ctx, "Alice", "a@x.com", "secret", "")
			require.True(t, ok)

			// Registration logs the user in with the password stripped.
			current := auth.CurrentUser()
			require.NotNil(t, current)
			assert.Equal(t, "a@x.com", current.Email)
			assert.Equal(t, models.UserRoleJobseeker, current.Role)
			assert.Empty(t, current.Password)

			last, _ := notifier.last()
			assert.Equal(t, "Registration successful", last.Title)

			auth.Logout(ctx)
			assert.Nil(t, auth.CurrentUser())

			assert.False(t, auth.Login(ctx, "a@x.com", "wrong"))
			assert.Nil(t, auth.CurrentUser())
			last, _ = notifier.last()
			assert.Equal(t, notify.SeverityError, last.Severity)
			assert.Equal(t, "Invalid email or password", last.Description)

			assert.False(t, auth.Login(ctx, "nobody@x.com", "secret"))

			require.True(t, auth.Login(ctx, "a@x.com", "secret"))
			current = auth.CurrentUser()
			require.NotNil(t, current)
			assert.Empty(t, current.Password)
			last, _ = notifier.last()
			assert.Equal(t, "Login successful", last.Title)
			assert.Equal(t, "Welcome back, Alice!", last.Description)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	for _, backend := range testBackends {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			repos, _ := newTestRepos(t, backend)
			notifier := &recordingNotifier{}
			auth := newAuthForTest(t, repos, notifier)

			require.True(t, auth.Register(ctx, "Alice", "a@x.com", "secret", ""))
			require.False(t, auth.Register(ctx, "Other", "a@x.com", "different", ""))

			last, _ := notifier.last()
			assert.Equal(t, "Registration failed", last.Title)
			assert.Equal(t, "Email already in use", last.Description)

			// The failed registration leaves the users collection unchanged.
			count, err := auth.CountUsers(ctx)
			require.NoError(t, err)
			assert.EqualValues(t, 1, count)

			users, err := auth.ListUsers(ctx)
			require.NoError(t, err)
			require.Len(t, users, 1)
			assert.Equal(t, "Alice", users[0].Name)
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	repos, _ := newTestRepos(t, testBackends[0])
	notifier := &recordingNotifier{}
	auth := newAuthForTest(t, repos, notifier)
	ctx := context.Background()

	assert.False(t, auth.Register(ctx, "Alice", "not-an-email", "secret", ""))
	assert.False(t, auth.Register(ctx, "", "a@x.com", "secret", ""))
	assert.False(t, auth.Register(ctx, "Alice", "a@x.com", "secret", "superuser"))

	count, err := auth.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestLogoutIsIdempotent(t *testing.T) {
	repos, _ := newTestRepos(t, testBackends[0])
	notifier := &recordingNotifier{}
	auth := newAuthForTest(t, repos, notifier)
	ctx := context.Background()

	require.True(t, auth.Register(ctx, "Alice", "a@x.com", "secret", ""))

	auth.Logout(ctx)
	before := notifier.count()
	auth.Logout(ctx)

	assert.Nil(t, auth.CurrentUser())
	// The second logout still notifies and does not error.
	assert.Equal(t, before+1, notifier.count())
}

func TestSessionRestore(t *testing.T) {
	for _, backend := range testBackends {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			repos, dir := newTestRepos(t, backend)
			auth := newAuthForTest(t, repos, notify.NopNotifier{})

			require.True(t, auth.Register(ctx, "Alice", "a@x.com", "secret", models.UserRoleAdmin))

			// A fresh service over the same durable state restores the session.
			reopened := openRepos(t, backend, dir)
			restoredAuth := newAuthForTest(t, reopened, notify.NopNotifier{})

			current := restoredAuth.CurrentUser()
			require.NotNil(t, current)
			assert.Equal(t, "a@x.com", current.Email)
			assert.Empty(t, current.Password)
			assert.True(t, restoredAuth.IsAdmin())
		})
	}
}

func TestSessionRestoreMalformedData(t *testing.T) {
	repos, dir := newTestRepos(t, testBackends[0])
	auth := newAuthForTest(t, repos, notify.NopNotifier{})
	require.True(t, auth.Register(context.Background(), "Alice", "a@x.com", "secret", ""))

	// Corrupt the persisted session pointer; restoration must treat it as
	// absent rather than fail.
	writeBlobFile(t, dir, "session", []byte("{not json"))

	reopened := openRepos(t, testBackends[0], dir)
	restoredAuth := newAuthForTest(t, reopened, notify.NopNotifier{})
	assert.Nil(t, restoredAuth.CurrentUser())
	assert.False(t, restoredAuth.IsAdmin())
}

func TestToggleUserRole(t *testing.T) {
	for _, backend := range testBackends {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			repos, _ := newTestRepos(t, backend)
			notifier := &recordingNotifier{}
			auth := newAuthForTest(t, repos, notifier)

			require.True(t, auth.Register(ctx, "Admin", "admin@x.com", "secret", models.UserRoleAdmin))
			admin := auth.CurrentUser()
			require.True(t, auth.Register(ctx, "Bob", "b@x.com", "secret", ""))
			bob := auth.CurrentUser()

			// Bob is a jobseeker and may not change roles.
			err := auth.ToggleUserRole(ctx, bob.ID, admin.ID)
			assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

			require.NoError(t, auth.ToggleUserRole(ctx, admin.ID, bob.ID))
			users, err := auth.ListUsers(ctx)
			require.NoError(t, err)
			for _, u := range users {
				if u.ID == bob.ID {
					assert.Equal(t, models.UserRoleAdmin, u.Role)
				}
			}
			// Bob is the current user; the in-memory identity follows.
			assert.True(t, auth.IsAdmin())

			// Toggling again flips back.
			require.NoError(t, auth.ToggleUserRole(ctx, admin.ID, bob.ID))
			assert.False(t, auth.IsAdmin())

			err = auth.ToggleUserRole(ctx, admin.ID, "missing")
			assert.True(t, apperrors.Is(err, apperrors.ErrUserNotFound))
		})
	}
}

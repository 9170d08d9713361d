package services

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "portal/pkg/memcache"
	"portal/pkg/utils"
)

func TestContactInfoRoundTrip(t *testing.T) {
	repo := newFakeAccountRepo()
	sessions := mem.NewSessions()
	store := newPhotoStore(t)
	profile := NewProfileService(repo, store, sessions)

	identity := NewIdentityService(repo, sessions, testConfig())
	_, err := identity.Register(context.Background(), "alice", "secret", "alice@example.com")
	require.NoError(t, err)
	sess, _, err := identity.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	err = profile.UpdateContactInfo(context.Background(), sess, "555-1234", "1 Main St")
	require.NoError(t, err)

	view, err := profile.GetProfile(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "555-1234", view.Phone)
	assert.Equal(t, "1 Main St", view.Address)

	cached, ok := sessions.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, "555-1234", cached.Phone)
	assert.Equal(t, "1 Main St", cached.Address)
}

func TestContactInfoSuperuserStaysInSession(t *testing.T) {
	repo := newFakeAccountRepo()
	sessions := mem.NewSessions()
	profile := NewProfileService(repo, newPhotoStore(t), sessions)

	sess, err := loginSession(repo, sessions, "admin", "admin123")
	require.NoError(t, err)

	err = profile.UpdateContactInfo(context.Background(), sess, " 555-0000 ", " HQ ")
	require.NoError(t, err)

	view, err := profile.GetProfile(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "555-0000", view.Phone)
	assert.Equal(t, "HQ", view.Address)
	assert.Equal(t, 0, repo.count())
}

func TestContactInfoSuperuserExpiredSession(t *testing.T) {
	repo := newFakeAccountRepo()
	sessions := mem.NewSessions()
	profile := NewProfileService(repo, newPhotoStore(t), sessions)

	sess, err := loginSession(repo, sessions, "admin", "admin123")
	require.NoError(t, err)

	sessions.Delete(sess.ID)

	err = profile.UpdateContactInfo(context.Background(), sess, "555-0000", "HQ")
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
}

func TestGetProfileVanishedAccount(t *testing.T) {
	repo := newFakeAccountRepo()
	sessions := mem.NewSessions()
	profile := NewProfileService(repo, newPhotoStore(t), sessions)

	identity := NewIdentityService(repo, sessions, testConfig())
	account, err := identity.Register(context.Background(), "alice", "secret", "alice@example.com")
	require.NoError(t, err)
	sess, _, err := identity.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	// Admin deletes the row while the session is still alive.
	require.NoError(t, repo.Delete(context.Background(), account.ID.String()))

	_, err = profile.GetProfile(context.Background(), sess)
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
}

func TestListAccountsForbiddenForNonAdmin(t *testing.T) {
	repo := newFakeAccountRepo()
	sessions := mem.NewSessions()
	profile := NewProfileService(repo, newPhotoStore(t), sessions)

	identity := NewIdentityService(repo, sessions, testConfig())
	_, err := identity.Register(context.Background(), "alice", "secret", "alice@example.com")
	require.NoError(t, err)
	sess, _, err := identity.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	_, err = profile.ListAccounts(context.Background(), sess)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestListAccountsIgnoresStaleSessionRole(t *testing.T) {
	repo := newFakeAccountRepo()
	sessions := mem.NewSessions()
	profile := NewProfileService(repo, newPhotoStore(t), sessions)

	identity := NewIdentityService(repo, sessions, testConfig())
	_, err := identity.Register(context.Background(), "alice", "secret", "alice@example.com")
	require.NoError(t, err)
	sess, _, err := identity.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	// A tampered or stale session claims admin; the store says otherwise.
	sess.Role = "admin"
	sessions.Update(sess.ID, func(stored *mem.Session) { stored.Role = "admin" })

	_, err = profile.ListAccounts(context.Background(), sess)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestListAccountsSuperuser(t *testing.T) {
	repo := newFakeAccountRepo()
	sessions := mem.NewSessions()
	store := newPhotoStore(t)
	profile := NewProfileService(repo, store, sessions)

	identity := NewIdentityService(repo, sessions, testConfig())
	_, err := identity.Register(context.Background(), "alice", "secret", "alice@example.com")
	require.NoError(t, err)
	bob, err := identity.Register(context.Background(), "bob", "secret", "bob@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.UpdatePhoto(context.Background(), bob.ID.String(), "bob_20240101_120000.jpg"))

	sess, err := loginSession(repo, sessions, "admin", "admin123")
	require.NoError(t, err)

	dashboard, err := profile.ListAccounts(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.TotalUsers)
	assert.Equal(t, 1, dashboard.UsersWithPhotos)
	assert.Len(t, dashboard.Accounts, 2)
	for _, a := range dashboard.Accounts {
		assert.NotEmpty(t, a.Username)
	}
}

func TestDeleteAccountForbiddenLeavesState(t *testing.T) {
	repo := newFakeAccountRepo()
	sessions := mem.NewSessions()
	store := newPhotoStore(t)
	profile := NewProfileService(repo, store, sessions)

	identity := NewIdentityService(repo, sessions, testConfig())
	target, err := identity.Register(context.Background(), "victim", "secret", "victim@example.com")
	require.NoError(t, err)

	photoName := "victim_20240101_120000.jpg"
	require.NoError(t, store.Write(photoName, func(w io.Writer) error {
		_, err := w.Write([]byte("jpegbytes"))
		return err
	}))
	require.NoError(t, repo.UpdatePhoto(context.Background(), target.ID.String(), photoName))

	_, err = identity.Register(context.Background(), "mallory", "secret", "mallory@example.com")
	require.NoError(t, err)
	sess, _, err := identity.Login(context.Background(), "mallory", "secret")
	require.NoError(t, err)

	err = profile.DeleteAccount(context.Background(), sess, target.ID.String())
	assert.ErrorIs(t, err, utils.ErrForbidden)

	still, err := repo.FindById(context.Background(), target.ID.String())
	require.NoError(t, err)
	assert.NotNil(t, still)
	assert.True(t, store.Exists(photoName))
}

func TestDeleteAccountRemovesPhotoAndRow(t *testing.T) {
	repo := newFakeAccountRepo()
	sessions := mem.NewSessions()
	store := newPhotoStore(t)
	profile := NewProfileService(repo, store, sessions)

	identity := NewIdentityService(repo, sessions, testConfig())
	target, err := identity.Register(context.Background(), "victim", "secret", "victim@example.com")
	require.NoError(t, err)

	photoName := "victim_20240101_120000.jpg"
	require.NoError(t, store.Write(photoName, func(w io.Writer) error {
		_, err := w.Write([]byte("jpegbytes"))
		return err
	}))
	require.NoError(t, repo.UpdatePhoto(context.Background(), target.ID.String(), photoName))

	sess, err := loginSession(repo, sessions, "admin", "admin123")
	require.NoError(t, err)

	err = profile.DeleteAccount(context.Background(), sess, target.ID.String())
	require.NoError(t, err)

	gone, err := repo.FindById(context.Background(), target.ID.String())
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.False(t, store.Exists(photoName))
}

func TestDeletedUsernameCanRegisterAgain(t *testing.T) {
	repo := newFakeAccountRepo()
	sessions := mem.NewSessions()
	profile := NewProfileService(repo, newPhotoStore(t), sessions)

	identity := NewIdentityService(repo, sessions, testConfig())
	old, err := identity.Register(context.Background(), "alice", "secret", "alice@example.com")
	require.NoError(t, err)

	sess, err := loginSession(repo, sessions, "admin", "admin123")
	require.NoError(t, err)

	require.NoError(t, profile.DeleteAccount(context.Background(), sess, old.ID.String()))

	// The name is free again once the row is truly gone.
	fresh, err := identity.Register(context.Background(), "alice", "newsecret", "alice2@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, old.ID, fresh.ID)
}

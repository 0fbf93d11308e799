package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracketo/storefront/internal/session"
	"github.com/tracketo/storefront/internal/storage"
)

func TestSession_Login(t *testing.T) {
	tests := []struct {
		name         string
		email        string
		role         session.Role
		wantErr      bool
		wantErrIs    error
		wantName     string
		wantVerified bool
	}{
		{
			name:         "vendor_is_unverified",
			email:        "merchant@x.com",
			role:         session.RoleVendor,
			wantName:     "merchant",
			wantVerified: false,
		},
		{
			name:         "user_is_verified",
			email:        "buyer@x.com",
			role:         session.RoleUser,
			wantName:     "buyer",
			wantVerified: true,
		},
		{
			name:         "admin_is_verified",
			email:        "ops@tracketo.com",
			role:         session.RoleAdmin,
			wantName:     "ops",
			wantVerified: true,
		},
		{
			name:      "guest_rejected",
			email:     "someone@x.com",
			role:      session.RoleGuest,
			wantErr:   true,
			wantErrIs: session.ErrGuestLogin,
		},
		{
			name:    "unknown_role_rejected",
			email:   "someone@x.com",
			role:    session.Role("SUPERUSER"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.New(storage.NewMemory(), 0)

			user, err := sess.Login(context.Background(), tt.email, tt.role)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrIs != nil {
					assert.True(t, errors.Is(err, tt.wantErrIs))
				}
				assert.Nil(t, sess.Current())
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, user.ID)
			assert.Equal(t, tt.wantName, user.Name)
			assert.Equal(t, tt.email, user.Email)
			assert.Equal(t, tt.role, user.Role)
			assert.Equal(t, tt.wantVerified, user.Verified)
			assert.Contains(t, user.Avatar, "ui-avatars.com")

			current := sess.Current()
			require.NotNil(t, current)
			assert.Empty(t, cmp.Diff(*user, *current))
		})
	}
}

func TestSession_RestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	first := session.New(store, 0)
	loggedIn, err := first.Login(ctx, "buyer@x.com", session.RoleUser)
	require.NoError(t, err)

	// A fresh session over the same store adopts the persisted identity.
	second := session.New(store, 0)
	restored, err := second.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Empty(t, cmp.Diff(*loggedIn, *restored))
	assert.Equal(t, session.RoleUser, second.CurrentRole())
}

func TestSession_RestoreWithoutRecord(t *testing.T) {
	sess := session.New(storage.NewMemory(), 0)

	user, err := sess.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, session.RoleGuest, sess.CurrentRole())
}

func TestSession_RestoreCorruptedRecord(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	require.NoError(t, store.Put(ctx, storage.Namespace, "auth", []byte(`{broken`)))

	sess := session.New(store, 0)

	user, err := sess.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	// The corrupted record is cleared, not left to fail again.
	_, err = store.Get(ctx, storage.Namespace, "auth")
	assert.True(t, errors.Is(err, storage.ErrKeyNotFound))
}

func TestSession_Logout(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	sess := session.New(store, 0)

	_, err := sess.Login(ctx, "buyer@x.com", session.RoleUser)
	require.NoError(t, err)

	require.NoError(t, sess.Logout(ctx))
	assert.Nil(t, sess.Current())

	_, err = store.Get(ctx, storage.Namespace, "auth")
	assert.True(t, errors.Is(err, storage.ErrKeyNotFound))
}

func TestParseRole(t *testing.T) {
	role, err := session.ParseRole("VENDOR")
	require.NoError(t, err)
	assert.Equal(t, session.RoleVendor, role)

	_, err = session.ParseRole("vendor")
	assert.Error(t, err)
}

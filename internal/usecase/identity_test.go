package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/minh2003vt/OkiMart/internal/entity"
)

func newIdentityStore(t *testing.T, state StateStore) *IdentityStore {
	t.Helper()
	return NewIdentityStore(context.Background(), state, testLogger())
}

func TestIdentityStore_Register_Validation(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		email   string
		extras  RegisterExtras
		wantErr string
	}{
		{
			name:  "valid registration",
			user:  "Ann",
			email: "a@x.com",
		},
		{
			name:    "digit in name",
			user:    "Ann2",
			email:   "a@x.com",
			wantErr: "name",
		},
		{
			name:    "non-digit phone",
			user:    "Ann",
			email:   "a@x.com",
			extras:  RegisterExtras{Phone: "12a"},
			wantErr: "phone",
		},
		{
			name:   "digits-only phone accepted",
			user:   "Ann",
			email:  "a@x.com",
			extras: RegisterExtras{Phone: "0123456789"},
		},
		{
			name:   "empty phone accepted",
			user:   "Ann",
			email:  "a@x.com",
			extras: RegisterExtras{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := newIdentityStore(t, newMemStore())
			user, err := ids.Register(context.Background(), tt.user, tt.email, "pw", tt.extras)
			if tt.wantErr != "" {
				var vErr *domain.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantErr, vErr.Field)
				_, active := ids.Current()
				assert.False(t, active)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, user.ID)
			current, active := ids.Current()
			require.True(t, active, "registration should set the active identity")
			assert.Equal(t, user.ID, current.ID)
		})
	}
}

func TestIdentityStore_Register_DuplicateEmail(t *testing.T) {
	ids := newIdentityStore(t, newMemStore())
	ctx := context.Background()

	_, err := ids.Register(ctx, "Ann", "a@x.com", "pw", RegisterExtras{})
	require.NoError(t, err)

	_, err = ids.Register(ctx, "Bob", "A@X.COM", "pw2", RegisterExtras{})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr, "duplicate email match is case-insensitive")
	assert.Equal(t, "email", vErr.Field)
}

func TestIdentityStore_Login(t *testing.T) {
	state := newMemStore()
	ids := newIdentityStore(t, state)
	ctx := context.Background()

	ann, err := ids.Register(ctx, "Ann", "a@x.com", "pw", RegisterExtras{})
	require.NoError(t, err)
	ids.Logout(ctx)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "exact match", email: "a@x.com", password: "pw"},
		{name: "email case-insensitive", email: "A@x.COM", password: "pw"},
		{name: "wrong password", email: "a@x.com", password: "PW", wantErr: true},
		{name: "unknown email", email: "b@x.com", password: "pw", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids.Logout(ctx)
			user, err := ids.Login(ctx, tt.email, tt.password)
			if tt.wantErr {
				var aErr *domain.AuthError
				require.ErrorAs(t, err, &aErr)
				_, active := ids.Current()
				assert.False(t, active)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ann.ID, user.ID)
		})
	}
}

func TestIdentityStore_Logout_Idempotent(t *testing.T) {
	ids := newIdentityStore(t, newMemStore())
	ctx := context.Background()

	ids.Logout(ctx) // no active identity, must not panic
	_, err := ids.Register(ctx, "Ann", "a@x.com", "pw", RegisterExtras{})
	require.NoError(t, err)

	ids.Logout(ctx)
	ids.Logout(ctx)
	_, active := ids.Current()
	assert.False(t, active)
	assert.Equal(t, domain.OwnerGuest, ids.OwnerKey())
}

func TestIdentityStore_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("requires active identity", func(t *testing.T) {
		ids := newIdentityStore(t, newMemStore())
		_, err := ids.UpdateProfile(ctx, domain.ProfileUpdate{})
		var aErr *domain.AuthError
		require.ErrorAs(t, err, &aErr)
	})

	t.Run("rejects digit in name", func(t *testing.T) {
		ids := newIdentityStore(t, newMemStore())
		_, err := ids.Register(ctx, "Ann", "a@x.com", "pw", RegisterExtras{})
		require.NoError(t, err)

		bad := "Ann3"
		_, err = ids.UpdateProfile(ctx, domain.ProfileUpdate{Name: &bad})
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("merges provided fields only", func(t *testing.T) {
		ids := newIdentityStore(t, newMemStore())
		_, err := ids.Register(ctx, "Ann", "a@x.com", "pw", RegisterExtras{Address: "old street"})
		require.NoError(t, err)

		phone := "5551234"
		updated, err := ids.UpdateProfile(ctx, domain.ProfileUpdate{Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, "5551234", updated.Phone)
		assert.Equal(t, "old street", updated.Address)
		assert.Equal(t, "Ann", updated.Name)
	})
}

func TestIdentityStore_PersistsAcrossRestart(t *testing.T) {
	state := newMemStore()
	ctx := context.Background()

	ids := newIdentityStore(t, state)
	ann, err := ids.Register(ctx, "Ann", "a@x.com", "pw", RegisterExtras{})
	require.NoError(t, err)

	reloaded := newIdentityStore(t, state)
	current, active := reloaded.Current()
	require.True(t, active, "active identity survives a restart")
	assert.Equal(t, ann.ID, current.ID)

	_, err = reloaded.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err, "registered users survive a restart")
}

func TestIdentityStore_RehydrationToleratesBadState(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
	}{
		{name: "malformed json", blob: []byte("{nope")},
		{name: "wrong shape", blob: []byte(`[1,2,3]`)},
		{name: "missing fields", blob: []byte(`{}`)},
		{name: "dangling active id", blob: []byte(`{"currentUserId":"ghost","users":{}}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newMemStore()
			state.m["okimart:auth"] = tt.blob
			ids := newIdentityStore(t, state)
			_, active := ids.Current()
			assert.False(t, active)
			assert.Equal(t, domain.OwnerGuest, ids.OwnerKey())
		})
	}
}

func TestIdentityStore_WriteFailureDoesNotUnwind(t *testing.T) {
	state := newMemStore()
	state.failWrites = true
	ids := newIdentityStore(t, state)

	user, err := ids.Register(context.Background(), "Ann", "a@x.com", "pw", RegisterExtras{})
	require.NoError(t, err, "persistence is best-effort; in-memory state is authoritative")
	current, active := ids.Current()
	require.True(t, active)
	assert.Equal(t, user.ID, current.ID)
}

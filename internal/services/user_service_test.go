package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/campaign-tracker/backend/internal/auth"
	"github.com/campaign-tracker/backend/internal/models"
	"github.com/campaign-tracker/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserService(t *testing.T) (*UserService, *mockUserStore, *auth.Issuer) {
	t.Helper()
	store := &mockUserStore{}
	t.Cleanup(func() { store.AssertExpectations(t) })
	issuer := auth.NewIssuer("test-secret", time.Minute, time.Hour)
	return NewUserService(store, issuer, zap.NewNop()), store, issuer
}

func TestRegister(t *testing.T) {
	svc, store, _ := newUserService(t)

	store.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	store.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "alice" && u.Email == "a@example.com" &&
			u.PasswordHash != "" && u.PasswordHash != "s3cret" &&
			auth.CheckPassword(u.PasswordHash, "s3cret")
	})).Return(nil)

	u, err := svc.Register(context.Background(), " alice ", "a@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func TestRegisterRequiresCredentials(t *testing.T) {
	svc, _, _ := newUserService(t)

	_, err := svc.Register(context.Background(), "", "", "pw")
	assert.ErrorIs(t, err, ErrCredentialsRequired)

	_, err = svc.Register(context.Background(), "bob", "", "")
	assert.ErrorIs(t, err, ErrCredentialsRequired)
}

func TestRegisterFieldLimits(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		field    string
		msg      string
	}{
		{"long username", strings.Repeat("u", 151), "", "pw", "username", "Ensure this field has no more than 150 characters."},
		{"long email", "bob", strings.Repeat("e", 243) + "@example.com", "pw", "email", "Ensure this field has no more than 254 characters."},
		{"long password", "bob", "", strings.Repeat("x", 73), "password", "Ensure this field has no more than 72 bytes."},
		{"multibyte password", "bob", "", strings.Repeat("é", 37), "password", "Ensure this field has no more than 72 bytes."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newUserService(t)

			_, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.msg, verr.Fields[tt.field])
			assert.Len(t, verr.Fields, 1)
		})
	}
}

func TestRegisterAcceptsFieldsAtLimit(t *testing.T) {
	svc, store, _ := newUserService(t)
	email := strings.Repeat("e", 242) + "@example.com"
	require.Len(t, email, 254)

	store.On("ExistsByUsername", mock.Anything, "bob").Return(false, nil)
	store.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == email
	})).Return(nil)

	_, err := svc.Register(context.Background(), "bob", email, strings.Repeat("x", 72))
	require.NoError(t, err)
}

func TestRegisterDuplicate(t *testing.T) {
	svc, store, _ := newUserService(t)

	store.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil).Once()
	_, err := svc.Register(context.Background(), "alice", "", "pw")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// Lost the race: pre-check passes, the unique index rejects the insert.
	store.On("ExistsByUsername", mock.Anything, "carol").Return(false, nil).Once()
	store.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrUsernameTaken).Once()
	_, err = svc.Register(context.Background(), "carol", "", "pw")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	svc, store, issuer := newUserService(t)

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Username: "alice", PasswordHash: hash}

	store.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
	store.On("GetByUsername", mock.Anything, "ghost").Return(nil, repositories.ErrNotFound)

	pair, err := svc.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	claims, err := issuer.Parse(pair.Access, auth.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ghost", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	svc, _, issuer := newUserService(t)

	pair, err := issuer.IssuePair(uuid.New(), "alice")
	require.NoError(t, err)

	access, err := svc.Refresh(pair.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	_, err = svc.Refresh(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMe(t *testing.T) {
	svc, store, _ := newUserService(t)
	id := uuid.New()

	store.On("GetByID", mock.Anything, id).Return(nil, repositories.ErrNotFound)

	_, err := svc.Me(context.Background(), id)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

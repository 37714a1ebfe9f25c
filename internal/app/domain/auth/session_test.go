package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuslink/campuslink-web/internal/app/api"
	"github.com/campuslink/campuslink-web/internal/app/models"
)

type mockAuthAPI struct {
	mock.Mock
}

func (m *mockAuthAPI) Login(ctx context.Context, email, password string) (string, *models.UserRecord, error) {
	args := m.Called(ctx, email, password)
	var user *models.UserRecord
	if args.Get(1) != nil {
		user = args.Get(1).(*models.UserRecord)
	}
	return args.String(0), user, args.Error(2)
}

func (m *mockAuthAPI) Register(ctx context.Context, req models.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// memStore is an in-memory CredentialStore for tests.
type memStore struct {
	token   string
	user    *models.UserRecord
	saveErr error
}

func (s *memStore) Save(token string, user *models.UserRecord) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.token = token
	s.user = user
	return nil
}

func (s *memStore) Load() (string, *models.UserRecord, bool) {
	if s.token == "" || s.user == nil {
		return "", nil, false
	}
	return s.token, s.user, true
}

func (s *memStore) Clear() error {
	s.token = ""
	s.user = nil
	return nil
}

func studentUser() *models.UserRecord {
	return &models.UserRecord{
		ID:        "u-42",
		Name:      "Ana Silva",
		Email:     "ana@campus.edu",
		Role:      models.RoleStudent,
		CollegeID: "c-1",
	}
}

func TestRestore(t *testing.T) {
	manager := NewManager(&mockAuthAPI{}, zap.NewNop())

	t.Run("stored credential restores to authenticated", func(t *testing.T) {
		store := &memStore{token: "tok-1", user: studentUser()}

		sess := manager.Restore(store)

		assert.Equal(t, StateAuthenticated, sess.State())
		assert.False(t, sess.Loading())
		require.NotNil(t, sess.CurrentUser())
		assert.Equal(t, "u-42", sess.CurrentUser().ID)
	})

	t.Run("empty store restores to anonymous", func(t *testing.T) {
		sess := manager.Restore(&memStore{})

		assert.Equal(t, StateAnonymous, sess.State())
		assert.False(t, sess.Loading())
		assert.Nil(t, sess.CurrentUser())
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success persists the credential and authenticates", func(t *testing.T) {
		mockAPI := &mockAuthAPI{}
		mockAPI.On("Login", mock.Anything, "ana@campus.edu", "pw").
			Return("tok-9", studentUser(), nil)
		manager := NewManager(mockAPI, zap.NewNop())
		store := &memStore{}
		sess := manager.Restore(store)

		err := manager.Login(ctx, store, sess, "ana@campus.edu", "pw")

		require.NoError(t, err)
		assert.True(t, sess.Authenticated())
		assert.False(t, sess.Loading())
		assert.Equal(t, "tok-9", store.token)
		require.NotNil(t, store.user)
		assert.Equal(t, "u-42", store.user.ID)
		mockAPI.AssertExpectations(t)
	})

	t.Run("rejected credentials leave the session anonymous", func(t *testing.T) {
		mockAPI := &mockAuthAPI{}
		mockAPI.On("Login", mock.Anything, "ana@campus.edu", "bad").
			Return("", nil, &api.Error{Status: 400, Message: "Invalid email or password."})
		manager := NewManager(mockAPI, zap.NewNop())
		store := &memStore{}
		sess := manager.Restore(store)

		err := manager.Login(ctx, store, sess, "ana@campus.edu", "bad")

		require.Error(t, err)
		assert.Equal(t, "Invalid email or password.", api.UserMessage(err))
		assert.Equal(t, StateAnonymous, sess.State())
		assert.False(t, sess.Loading())
		assert.Empty(t, store.token)
	})

	t.Run("persist failure does not authenticate", func(t *testing.T) {
		mockAPI := &mockAuthAPI{}
		mockAPI.On("Login", mock.Anything, "ana@campus.edu", "pw").
			Return("tok-9", studentUser(), nil)
		manager := NewManager(mockAPI, zap.NewNop())
		store := &memStore{saveErr: assert.AnError}
		sess := manager.Restore(store)

		err := manager.Login(ctx, store, sess, "ana@campus.edu", "pw")

		require.Error(t, err)
		assert.Equal(t, StateAnonymous, sess.State())
		assert.False(t, sess.Loading())
	})

	t.Run("failed re-login keeps the existing session", func(t *testing.T) {
		mockAPI := &mockAuthAPI{}
		mockAPI.On("Login", mock.Anything, "ana@campus.edu", "bad").
			Return("", nil, &api.Error{Status: 400, Message: "Invalid email or password."})
		manager := NewManager(mockAPI, zap.NewNop())
		store := &memStore{token: "tok-1", user: studentUser()}
		sess := manager.Restore(store)
		require.True(t, sess.Authenticated())

		err := manager.Login(ctx, store, sess, "ana@campus.edu", "bad")

		require.Error(t, err)
		assert.True(t, sess.Authenticated())
		assert.NotNil(t, sess.CurrentUser())
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	req := models.RegisterRequest{
		Name:      "Ana Silva",
		Email:     "ana@campus.edu",
		Password:  "pw",
		Role:      models.RoleStudent,
		CollegeID: "c-1",
	}

	t.Run("success does not sign the visitor in", func(t *testing.T) {
		mockAPI := &mockAuthAPI{}
		mockAPI.On("Register", mock.Anything, req).Return(nil)
		manager := NewManager(mockAPI, zap.NewNop())
		sess := manager.Restore(&memStore{})

		err := manager.Register(ctx, sess, req)

		require.NoError(t, err)
		assert.Equal(t, StateAnonymous, sess.State())
		assert.Nil(t, sess.CurrentUser())
	})

	t.Run("failure reports the upstream message", func(t *testing.T) {
		mockAPI := &mockAuthAPI{}
		mockAPI.On("Register", mock.Anything, req).
			Return(&api.Error{Status: 409, Message: "Email already registered."})
		manager := NewManager(mockAPI, zap.NewNop())
		sess := manager.Restore(&memStore{})

		err := manager.Register(ctx, sess, req)

		require.Error(t, err)
		assert.Equal(t, "Email already registered.", api.UserMessage(err))
		assert.Equal(t, StateAnonymous, sess.State())
	})
}

func TestLogout(t *testing.T) {
	manager := NewManager(&mockAuthAPI{}, zap.NewNop())

	t.Run("drops session and stored credential", func(t *testing.T) {
		store := &memStore{token: "tok-1", user: studentUser()}
		sess := manager.Restore(store)
		require.True(t, sess.Authenticated())

		manager.Logout(store, sess)

		assert.Equal(t, StateAnonymous, sess.State())
		assert.Nil(t, sess.CurrentUser())
		_, _, ok := store.Load()
		assert.False(t, ok)
	})

	t.Run("is idempotent", func(t *testing.T) {
		store := &memStore{}
		sess := manager.Restore(store)

		manager.Logout(store, sess)
		manager.Logout(store, sess)

		assert.Equal(t, StateAnonymous, sess.State())
	})
}

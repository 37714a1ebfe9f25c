package auth

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/campuslink/campuslink-web/internal/app/models"
	"github.com/campuslink/campuslink-web/internal/app/observability/metrics"
)

// State is the session lifecycle phase. Transitions:
// Restoring -> Anonymous | Authenticated (restore), Anonymous ->
// Authenticated (login), Authenticated -> Anonymous (logout). Register never
// changes state.
type State int

const (
	StateRestoring State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Session describes the current visitor. The Manager is its sole mutator;
// everything else reads it through the accessors. A session is never
// observed half-updated: state and user move together, and in-flight
// authentication calls park the session in StateRestoring until they settle.
type Session struct {
	state     State
	prevState State
	user      *models.UserRecord
}

// NewRestoringSession is the boot value: nobody known yet, decision gating
// active until Restore settles it.
func NewRestoringSession() *Session {
	return &Session{state: StateRestoring, prevState: StateAnonymous}
}

func (s *Session) State() State { return s.state }

// Loading reports whether an access decision must be suspended: the initial
// restore or an authentication call is still in flight.
func (s *Session) Loading() bool { return s.state == StateRestoring }

// CurrentUser returns the cached account snapshot, nil when anonymous.
// Callers treat it as read-only; replacing it goes through the Manager.
func (s *Session) CurrentUser() *models.UserRecord { return s.user }

func (s *Session) Authenticated() bool { return s.state == StateAuthenticated }

// beginAuthCall parks the session in StateRestoring for the duration of a
// login/register call, remembering where to fall back to on failure.
func (s *Session) beginAuthCall() {
	s.prevState = s.state
	s.state = StateRestoring
}

// settle releases the loading phase. Runs on every exit path of an
// authentication call so the loading flag can never be left stuck.
func (s *Session) settle() {
	if s.state == StateRestoring {
		s.state = s.prevState
	}
}

func (s *Session) setAuthenticated(user *models.UserRecord) {
	s.user = user
	s.state = StateAuthenticated
	s.prevState = StateAuthenticated
}

func (s *Session) setAnonymous() {
	s.user = nil
	s.state = StateAnonymous
	s.prevState = StateAnonymous
}

// AuthAPI is the slice of the campus API the session manager needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (token string, user *models.UserRecord, err error)
	Register(ctx context.Context, req models.RegisterRequest) error
}

// Manager owns session transitions. It is process-wide and stateless; the
// per-visitor Session and CredentialStore are handed in per request.
type Manager struct {
	api    AuthAPI
	logger *zap.Logger
}

func NewManager(api AuthAPI, logger *zap.Logger) *Manager {
	return &Manager{api: api, logger: logger}
}

// Restore rebuilds the session from the credential store. It runs before any
// access decision for the request and cannot fail: a missing or unreadable
// credential simply restores to Anonymous.
func (m *Manager) Restore(store CredentialStore) *Session {
	sess := NewRestoringSession()
	if _, user, ok := store.Load(); ok {
		sess.setAuthenticated(user)
		return sess
	}
	sess.setAnonymous()
	return sess
}

// Login authenticates against the campus API. On success the credential is
// persisted and the session becomes Authenticated. On failure the session is
// untouched (settles back to its prior state) and the returned error carries
// the upstream message; extract it with api.UserMessage.
func (m *Manager) Login(ctx context.Context, store CredentialStore, sess *Session, email, password string) error {
	sess.beginAuthCall()
	defer sess.settle()

	token, user, err := m.api.Login(ctx, email, password)
	m.countAttempt(ctx, "login", err)
	if err != nil {
		m.logger.Info("Login failed", zap.String("email", email), zap.Error(err))
		return err
	}

	if err := store.Save(token, user); err != nil {
		// The upstream accepted the credentials but we could not persist
		// them; surface it as a failure rather than a half-open session.
		m.logger.Error("Failed to persist credential", zap.Error(err))
		return err
	}
	sess.setAuthenticated(user)

	m.logger.Info("Login successful",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return nil
}

// Register creates an account upstream. Session state is never mutated:
// a freshly registered user still signs in explicitly.
func (m *Manager) Register(ctx context.Context, sess *Session, req models.RegisterRequest) error {
	sess.beginAuthCall()
	defer sess.settle()

	err := m.api.Register(ctx, req)
	m.countAttempt(ctx, "register", err)
	if err != nil {
		m.logger.Info("Registration failed", zap.String("email", req.Email), zap.Error(err))
		return err
	}
	m.logger.Info("Registration successful", zap.String("email", req.Email))
	return nil
}

// Logout drops the session and erases the stored credential. Synchronous,
// cannot fail, safe to call on an already-anonymous session.
func (m *Manager) Logout(store CredentialStore, sess *Session) {
	if sess.Authenticated() {
		m.logger.Info("Logout", zap.String("user_id", sess.user.ID))
	}
	sess.setAnonymous()
	_ = store.Clear()
}

func (m *Manager) countAttempt(ctx context.Context, operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	metrics.Get().AuthAttemptsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

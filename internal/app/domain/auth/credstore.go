package auth

import (
	"encoding/json"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/campuslink/campuslink-web/internal/app/models"
)

// Durable storage keys inside the visitor's cookie session. These are the
// only two values this application persists.
const (
	credTokenKey = "authToken"
	credUserKey  = "currentUser"
)

// CredentialStore persists the (token, cached user) pair across requests.
// Implementations never validate the credential; they only store it.
type CredentialStore interface {
	// Save writes both values, overwriting any prior pair.
	Save(token string, user *models.UserRecord) error
	// Load returns the stored pair. A missing or undecodable value is
	// reported as absent, never as an error.
	Load() (token string, user *models.UserRecord, ok bool)
	// Clear removes both values. Idempotent.
	Clear() error
}

// cookieCredentialStore keeps the credential in the encrypted cookie session
// managed by gin-contrib/sessions.
type cookieCredentialStore struct {
	session sessions.Session
}

// NewCredentialStore returns the credential store bound to the request's
// cookie session. The sessions middleware must already be installed.
func NewCredentialStore(c *gin.Context) CredentialStore {
	return &cookieCredentialStore{session: sessions.Default(c)}
}

func (s *cookieCredentialStore) Save(token string, user *models.UserRecord) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	s.session.Set(credTokenKey, token)
	s.session.Set(credUserKey, string(payload))
	return s.session.Save()
}

func (s *cookieCredentialStore) Load() (string, *models.UserRecord, bool) {
	token, ok := s.session.Get(credTokenKey).(string)
	if !ok || token == "" {
		return "", nil, false
	}
	raw, ok := s.session.Get(credUserKey).(string)
	if !ok || raw == "" {
		// Half a credential is as useless as none; purge the stray token.
		_ = s.Clear()
		return "", nil, false
	}
	var user models.UserRecord
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// Corrupted cache reads as absence. Drop it so the next request
		// does not hit the same decode failure.
		_ = s.Clear()
		return "", nil, false
	}
	if tokenExpired(token) {
		_ = s.Clear()
		return "", nil, false
	}
	return token, &user, true
}

func (s *cookieCredentialStore) Clear() error {
	s.session.Delete(credTokenKey)
	s.session.Delete(credUserKey)
	return s.session.Save()
}

// tokenExpired reports whether token is a JWT whose exp claim is already in
// the past. The signature is not checked here; the campus API remains the
// authority and still answers 401 for anything it dislikes. Opaque non-JWT
// tokens pass through untouched.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

package auth

import "github.com/gin-gonic/gin"

const (
	sessionContextKey = "authSession"
	storeContextKey   = "credentialStore"
)

// ContextWithSession attaches the restored session and its credential store
// to the request context. Installed by the session middleware; everything
// downstream reads through the getters below.
func ContextWithSession(c *gin.Context, sess *Session, store CredentialStore) {
	c.Set(sessionContextKey, sess)
	c.Set(storeContextKey, store)
}

// SessionFromContext returns the request's session, nil when the session
// middleware did not run.
func SessionFromContext(c *gin.Context) *Session {
	v, exists := c.Get(sessionContextKey)
	if !exists {
		return nil
	}
	sess, ok := v.(*Session)
	if !ok {
		return nil
	}
	return sess
}

// StoreFromContext returns the request's credential store, nil when the
// session middleware did not run.
func StoreFromContext(c *gin.Context) CredentialStore {
	v, exists := c.Get(storeContextKey)
	if !exists {
		return nil
	}
	store, ok := v.(CredentialStore)
	if !ok {
		return nil
	}
	return store
}

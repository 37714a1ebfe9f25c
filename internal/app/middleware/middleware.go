package middleware

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/campuslink/campuslink-web/internal/app/api"
	"github.com/campuslink/campuslink-web/internal/app/domain/auth"
	"github.com/campuslink/campuslink-web/internal/app/domain/pages"
	"github.com/campuslink/campuslink-web/internal/app/models"
	"github.com/campuslink/campuslink-web/internal/app/observability/metrics"
)

// Navigation destinations the route guard redirects to.
const (
	LoginPath               = "/login"
	UnauthorizedPath        = "/unauthorized"
	VerificationPendingPath = "/verification-pending"
)

// SessionMiddleware restores the visitor's session from the cookie-backed
// credential store before anything downstream runs. Ordering matters: the
// route guard consults the session and must never see it mid-restore.
func SessionMiddleware(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := auth.NewCredentialStore(c)
		sess := manager.Restore(store)
		auth.ContextWithSession(c, sess, store)
		c.Next()
	}
}

// RequireAccess is the route guard: it maps the pure access decision for the
// request's session onto one navigation effect. Evaluated on every request
// to a guarded route.
func RequireAccess(requirement auth.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := auth.SessionFromContext(c)
		decision := auth.Decide(sess, requirement)

		metrics.Get().GuardDecisionsTotal.Add(c.Request.Context(), 1, metric.WithAttributes(
			attribute.String("decision", decision.String()),
			attribute.String("path", c.FullPath()),
		))

		switch decision {
		case auth.DecisionAllow:
			c.Next()
		case auth.DecisionPending:
			// Neutral placeholder, no navigation, no protected content.
			c.HTML(http.StatusOK, "", pages.LayoutPage(models.LayoutTempl{
				Title:   "Loading - CampusLink",
				Content: pages.LoadingPage(),
				Nav:     models.AnonymousNav,
			}))
			c.Abort()
		case auth.DecisionRedirectLogin:
			authRedirect(c, LoginPath+"?from="+url.QueryEscape(c.Request.URL.RequestURI()))
		case auth.DecisionRedirectUnauthorized:
			authRedirect(c, UnauthorizedPath)
		case auth.DecisionRedirectPending:
			authRedirect(c, VerificationPendingPath)
		}
	}
}

// CurrentUser is a convenience accessor for handlers behind RequireAccess.
func CurrentUser(c *gin.Context) *models.UserRecord {
	sess := auth.SessionFromContext(c)
	if sess == nil {
		return nil
	}
	return sess.CurrentUser()
}

// HandleAPIError applies the cross-cutting authorization-expiry policy: a
// 401/403 from any campus API call drops the session and sends the visitor
// to the sign-in page, regardless of which handler made the call. Returns
// true when the error was consumed.
func HandleAPIError(c *gin.Context, manager *auth.Manager, err error) bool {
	if err == nil {
		return false
	}
	if !api.IsAuthRejection(err) {
		return false
	}
	sess := auth.SessionFromContext(c)
	store := auth.StoreFromContext(c)
	if sess != nil && store != nil {
		manager.Logout(store, sess)
	}
	metrics.Get().ForcedLogoutsTotal.Add(c.Request.Context(), 1)
	authRedirect(c, LoginPath)
	return true
}

// authRedirect handles redirects for both regular and HTMX requests.
func authRedirect(c *gin.Context, redirectURL string) {
	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Redirect", redirectURL)
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Redirect(http.StatusFound, redirectURL)
	c.Abort()
}

// LoginThrottleMiddleware caps sign-in attempts per client IP. Counters are
// TTL entries; an idle client falls out of the cache after the window.
func LoginThrottleMiddleware(logger *zap.Logger, maxAttempts int, window time.Duration) gin.HandlerFunc {
	attempts := gocache.New(window, 2*window)
	return func(c *gin.Context) {
		key := c.ClientIP()
		count := 0
		if v, found := attempts.Get(key); found {
			count = v.(int)
		}
		if count >= maxAttempts {
			logger.Warn("Login throttled",
				zap.String("ip", key),
				zap.Int("attempts", count),
			)
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		attempts.Set(key, count+1, gocache.DefaultExpiration)
		c.Next()
	}
}

// RequestMetricsMiddleware records request count and latency per route.
func RequestMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m := metrics.Get()
		m.HTTPRequestsTotal.Add(c.Request.Context(), 1, metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", path),
			attribute.String("status", strconv.Itoa(c.Writer.Status())),
		))
		m.HTTPRequestDuration.Record(c.Request.Context(), time.Since(start).Seconds(), metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", path),
		))
	}
}

// SecurityMiddleware adds security headers.
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Writer.Header().Set("Content-Security-Policy",
			"default-src 'self'; script-src 'self' https://unpkg.com; img-src 'self' data: https:")
		c.Next()
	}
}

// CORSMiddleware handles CORS headers.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, HX-Request, HX-Target, HX-Current-URL")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

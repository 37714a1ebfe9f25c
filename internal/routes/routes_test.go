package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/campuslink/campuslink-web/internal/app/api"
)

func testEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	client := api.NewClient("http://127.0.0.1:1", time.Second, zap.NewNop())
	Setup(r, client, zap.NewNop())
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestNavigationFallbacks(t *testing.T) {
	t.Run("root redirects to the dashboard", func(t *testing.T) {
		w := get(testEngine(t), "/")

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	})

	t.Run("unknown paths redirect to the dashboard", func(t *testing.T) {
		w := get(testEngine(t), "/no-such-screen")

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	})

	t.Run("the dashboard then bounces anonymous visitors to sign-in", func(t *testing.T) {
		w := get(testEngine(t), "/dashboard")

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login?from=%2Fdashboard", w.Header().Get("Location"))
	})

	t.Run("the sign-in page itself renders", func(t *testing.T) {
		w := get(testEngine(t), "/login")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "login-form")
	})
}

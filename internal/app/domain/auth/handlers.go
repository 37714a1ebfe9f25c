package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campuslink/campuslink-web/internal/app/api"
	"github.com/campuslink/campuslink-web/internal/app/domain/pages"
	"github.com/campuslink/campuslink-web/internal/app/models"
)

type Handlers struct {
	manager *Manager
	logger  *zap.Logger
}

func NewHandlers(manager *Manager, logger *zap.Logger) *Handlers {
	return &Handlers{manager: manager, logger: logger}
}

// ShowAuthScreen renders the combined sign-in / sign-up page. An already
// authenticated visitor is sent straight to the dashboard.
func (h *Handlers) ShowAuthScreen(c *gin.Context) {
	if sess := SessionFromContext(c); sess != nil && sess.Authenticated() {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	h.renderAuthScreen(c, http.StatusOK, AuthScreenProps{From: c.Query("from")})
}

// Login handles the sign-in form. Failures re-render the form with the
// upstream message inline; the session stays anonymous.
func (h *Handlers) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	from := c.PostForm("from")

	if email == "" || password == "" {
		h.renderAuthScreen(c, http.StatusBadRequest, AuthScreenProps{
			From:  from,
			Error: "Email and password are required",
		})
		return
	}

	sess := SessionFromContext(c)
	store := StoreFromContext(c)
	if sess == nil || store == nil {
		h.logger.Error("Login handler reached without session middleware")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if err := h.manager.Login(c.Request.Context(), store, sess, email, password); err != nil {
		h.renderAuthScreen(c, http.StatusUnauthorized, AuthScreenProps{
			From:  from,
			Error: api.UserMessage(err),
		})
		return
	}

	c.Redirect(http.StatusSeeOther, safeReturnPath(from))
}

// Register handles the sign-up form. A successful registration does not sign
// the visitor in; they land back on the sign-in form with a notice.
func (h *Handlers) Register(c *gin.Context) {
	req := models.RegisterRequest{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Email:       strings.TrimSpace(c.PostForm("email")),
		Role:        models.Role(c.PostForm("role")),
		CollegeID:   strings.TrimSpace(c.PostForm("collegeId")),
		Department:  strings.TrimSpace(c.PostForm("department")),
		ContactInfo: strings.TrimSpace(c.PostForm("contactInfo")),
		Password:    c.PostForm("password"),
	}
	if year, err := strconv.Atoi(c.PostForm("year")); err == nil {
		req.Year = year
	}

	if req.Name == "" || req.Email == "" || req.CollegeID == "" || req.Password == "" {
		h.renderAuthScreen(c, http.StatusBadRequest, AuthScreenProps{
			Error: "All required fields must be filled",
		})
		return
	}
	if req.Password != c.PostForm("confirm_password") {
		h.renderAuthScreen(c, http.StatusBadRequest, AuthScreenProps{
			Error: "Passwords do not match",
		})
		return
	}
	// Admin accounts are provisioned out of band, never self-registered.
	if req.Role != models.RoleStudent && req.Role != models.RoleFaculty {
		h.renderAuthScreen(c, http.StatusBadRequest, AuthScreenProps{
			Error: "Choose a student or faculty account",
		})
		return
	}

	sess := SessionFromContext(c)
	if sess == nil {
		sess = NewRestoringSession()
	}
	if err := h.manager.Register(c.Request.Context(), sess, req); err != nil {
		h.renderAuthScreen(c, http.StatusBadRequest, AuthScreenProps{
			Error: api.UserMessage(err),
		})
		return
	}

	h.renderAuthScreen(c, http.StatusOK, AuthScreenProps{
		Notice: "Registration successful. Sign in once your account is ready.",
	})
}

// Logout drops the session and returns to the sign-in page.
func (h *Handlers) Logout(c *gin.Context) {
	sess := SessionFromContext(c)
	store := StoreFromContext(c)
	if sess != nil && store != nil {
		h.manager.Logout(store, sess)
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handlers) renderAuthScreen(c *gin.Context, status int, props AuthScreenProps) {
	c.HTML(status, "", pages.LayoutPage(models.LayoutTempl{
		Title:   "Sign In - CampusLink",
		Content: AuthScreen(props),
		Nav:     models.AnonymousNav,
	}))
}

// safeReturnPath keeps post-login returns on this site. Anything that is not
// a plain local path falls back to the dashboard. Browsers treat both // and
// /\ as protocol-relative, so both are rejected.
func safeReturnPath(from string) string {
	if from == "" || !strings.HasPrefix(from, "/") ||
		strings.HasPrefix(from, "//") || strings.HasPrefix(from, `/\`) {
		return "/dashboard"
	}
	return from
}

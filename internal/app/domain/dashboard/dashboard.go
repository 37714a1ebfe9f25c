package dashboard

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campuslink/campuslink-web/internal/app/api"
	"github.com/campuslink/campuslink-web/internal/app/domain/auth"
	"github.com/campuslink/campuslink-web/internal/app/domain/pages"
	"github.com/campuslink/campuslink-web/internal/app/middleware"
	"github.com/campuslink/campuslink-web/internal/app/models"
)

type Handlers struct {
	client  *api.Client
	manager *auth.Manager
	logger  *zap.Logger
}

func NewHandlers(client *api.Client, manager *auth.Manager, logger *zap.Logger) *Handlers {
	return &Handlers{client: client, manager: manager, logger: logger}
}

// Show dispatches to the role-specific dashboard variant. The route guard
// has already admitted the visitor, so a user is always present; the student
// variant doubles as the defensive fallback for a role this build does not
// recognize.
func (h *Handlers) Show(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	var content templ.Component
	switch user.Role {
	case models.RoleStudent:
		content = h.studentDashboard(c, user)
	case models.RoleFaculty:
		content = FacultyDashboard(user)
	case models.RoleAdmin:
		content = AdminDashboard(user)
	default:
		h.logger.Warn("Unrecognized role on dashboard, using student variant",
			zap.String("user_id", user.ID),
			zap.String("role", string(user.Role)),
		)
		content = h.studentDashboard(c, user)
	}
	if content == nil {
		// A cross-cutting redirect already answered the request.
		return
	}

	c.HTML(http.StatusOK, "", pages.LayoutPage(models.LayoutTempl{
		Title:     "Dashboard - CampusLink",
		Content:   content,
		Nav:       models.NavForRole(user.Role),
		ActiveNav: "Dashboard",
		User:      user,
	}))
}

// studentDashboard enriches the student variant with the portfolio projects
// fetched from the campus API. Returns nil when the credential was rejected
// and the forced-logout redirect took over.
func (h *Handlers) studentDashboard(c *gin.Context, user *models.UserRecord) templ.Component {
	var token string
	if store := auth.StoreFromContext(c); store != nil {
		token, _, _ = store.Load()
	}
	projects, err := h.client.StudentProjects(c.Request.Context(), token)
	if err != nil {
		if middleware.HandleAPIError(c, h.manager, err) {
			return nil
		}
		// Degraded view: the dashboard renders without the project list.
		h.logger.Warn("Failed to fetch student projects", zap.Error(err))
		projects = nil
	}
	return StudentDashboard(user, projects)
}

// StudentDashboard is the student landing view.
func StudentDashboard(user *models.UserRecord, projects []models.StudentProject) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<section id="student-dashboard"><h1>Welcome, %s</h1>`,
			templ.EscapeString(user.Name)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<h2>Your Projects</h2><ul class="projects">`); err != nil {
			return err
		}
		for _, p := range projects {
			if _, err := fmt.Fprintf(w, `<li>%s</li>`, templ.EscapeString(p.Title)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`+
			`<a href="/projects">Browse project board</a> `+
			`<a href="/skills">Skill development</a></section>`)
		return err
	})
}

// FacultyDashboard is the faculty landing view.
func FacultyDashboard(user *models.UserRecord) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section id="faculty-dashboard"><h1>Welcome, %s</h1>`+
				`<a href="/my-posts">My posted projects</a> `+
				`<a href="/applications">Student applications</a></section>`,
			templ.EscapeString(user.Name))
		return err
	})
}

// AdminDashboard is the administrator landing view.
func AdminDashboard(user *models.UserRecord) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section id="admin-dashboard"><h1>Welcome, %s</h1>`+
				`<a href="/admin/verification">User verification</a> `+
				`<a href="/admin/metrics">College metrics</a></section>`,
			templ.EscapeString(user.Name))
		return err
	})
}

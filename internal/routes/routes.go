package routes

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campuslink/campuslink-web/internal/app/api"
	"github.com/campuslink/campuslink-web/internal/app/domain/auth"
	"github.com/campuslink/campuslink-web/internal/app/domain/dashboard"
	"github.com/campuslink/campuslink-web/internal/app/domain/pages"
	"github.com/campuslink/campuslink-web/internal/app/domain/profile"
	"github.com/campuslink/campuslink-web/internal/app/middleware"
	"github.com/campuslink/campuslink-web/internal/app/models"
	"github.com/campuslink/campuslink-web/internal/app/renderer"
)

type AppHandlers struct {
	Auth      *auth.Handlers
	Dashboard *dashboard.Handlers
	Profile   *profile.Handlers
}

// Setup wires the custom templ renderer, the handler graph and the route
// table onto the engine.
func Setup(r *gin.Engine, client *api.Client, log *zap.Logger) {
	// Setup custom templ renderer
	ginHTMLRenderer := r.HTMLRender
	r.HTMLRender = &renderer.HTMLTemplRenderer{FallbackHtmlRenderer: ginHTMLRenderer}

	handlers, manager := setupDependencies(client, log)
	setupRouter(r, handlers, manager, log)
}

func setupDependencies(client *api.Client, log *zap.Logger) (*AppHandlers, *auth.Manager) {
	manager := auth.NewManager(client, log)

	return &AppHandlers{
		Auth:      auth.NewHandlers(manager, log),
		Dashboard: dashboard.NewHandlers(client, manager, log),
		Profile:   profile.NewHandlers(client, manager, log),
	}, manager
}

func setupRouter(r *gin.Engine, h *AppHandlers, manager *auth.Manager, log *zap.Logger) {
	// Every route sees a restored session, guarded or not: the auth screen
	// itself needs to know whether the visitor is already signed in.
	r.Use(middleware.SessionMiddleware(manager))

	// Public surface
	r.GET(middleware.LoginPath, h.Auth.ShowAuthScreen)
	r.POST(middleware.LoginPath, middleware.LoginThrottleMiddleware(log, 10, time.Minute), h.Auth.Login)
	r.POST("/register", h.Auth.Register)
	r.POST("/logout", h.Auth.Logout)
	r.GET(middleware.UnauthorizedPath, statusPage("Unauthorized - CampusLink", http.StatusForbidden, pages.UnauthorizedPage()))
	r.GET(middleware.VerificationPendingPath, statusPage("Verification Pending - CampusLink", http.StatusOK, pages.VerificationPendingPage()))

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})

	// Any signed-in member
	member := r.Group("/", middleware.RequireAccess(auth.Requirement{}))
	{
		member.GET("/dashboard", h.Dashboard.Show)
		member.GET("/profile", h.Profile.Show)
		member.POST("/profile", h.Profile.Update)
		member.GET("/projects", staticPage("projects", "Projects", "Browse and join ongoing projects across campus."))
		member.GET("/projects/:id", staticPage("projects", "Project", "Project details and collaborators."))
		member.GET("/messages", staticPage("messages", "Messages", "Direct messages with students and faculty."))
		member.GET("/networking", staticPage("networking", "Networking", "Find peers and mentors by department and interests."))
		member.GET("/events", staticPage("events", "Events", "Campus events, talks and workshops."))
		member.GET("/achievements", staticPage("achievements", "Achievements", "Badges and milestones you have earned."))
	}

	// Student-only surface
	student := r.Group("/", middleware.RequireAccess(auth.Requirement{
		AllowedRoles: []models.Role{models.RoleStudent},
	}))
	{
		student.GET("/skills", staticPage("skills", "Skills", "Track the skills you are building this term."))
		student.GET("/learning", staticPage("learning", "Learning", "Courses and learning paths recommended for you."))
		student.POST("/projects", h.Profile.AddProject)
		student.POST("/projects/:id/delete", h.Profile.DeleteProject)
	}

	// Faculty profile management; role-gated only, publications belong to
	// the profile rather than the posting surface
	facultyMember := r.Group("/", middleware.RequireAccess(auth.Requirement{
		AllowedRoles: []models.Role{models.RoleFaculty},
	}))
	{
		facultyMember.POST("/publications", h.Profile.AddPublication)
	}

	// Faculty surface; posting requires a verified account
	faculty := r.Group("/", middleware.RequireAccess(auth.Requirement{
		AllowedRoles:        []models.Role{models.RoleFaculty},
		RequireVerification: true,
	}))
	{
		faculty.GET("/my-posts", staticPage("my-posts", "My Posts", "Openings and announcements you have published."))
		faculty.GET("/applications", staticPage("applications", "Applications", "Student applications to your openings."))
	}

	// Admin surface
	admin := r.Group("/admin", middleware.RequireAccess(auth.Requirement{
		AllowedRoles: []models.Role{models.RoleAdmin},
	}))
	{
		admin.GET("/verification", staticPage("admin-verification", "Verification Queue", "Faculty accounts awaiting verification."))
		admin.GET("/metrics", staticPage("admin-metrics", "Platform Metrics", "Signups, activity and engagement across the platform."))
	}

	// Unknown paths land on the dashboard; the guard turns that into a
	// sign-in redirect for anonymous visitors.
	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})
}

// staticPage renders a placeholder section inside the signed-in layout.
func staticPage(id, heading, blurb string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		nav := models.AnonymousNav
		if user != nil {
			nav = models.NavForRole(user.Role)
		}
		c.HTML(http.StatusOK, "", pages.LayoutPage(models.LayoutTempl{
			Title:     heading + " - CampusLink",
			User:      user,
			Nav:       nav,
			ActiveNav: heading,
			Content:   pages.PlaceholderPage(id, heading, blurb),
		}))
	}
}

// statusPage renders a standalone page with a fixed status code. These routes
// are public and carry no session-derived navigation.
func statusPage(title string, status int, content templ.Component) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(status, "", pages.LayoutPage(models.LayoutTempl{
			Title:   title,
			Nav:     models.AnonymousNav,
			Content: content,
		}))
	}
}

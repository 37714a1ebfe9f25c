package profile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

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

func (h *Handlers) token(c *gin.Context) string {
	if store := auth.StoreFromContext(c); store != nil {
		token, _, _ := store.Load()
		return token
	}
	return ""
}

// Show renders the role-specific profile variant. The profile screen
// refreshes the account snapshot from the campus API; if that call fails for
// any reason other than a revoked credential, the cached session copy is
// shown instead.
func (h *Handlers) Show(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	token := h.token(c)
	fresh, err := h.client.GetProfile(c.Request.Context(), token)
	if err != nil {
		if middleware.HandleAPIError(c, h.manager, err) {
			return
		}
		h.logger.Warn("Profile refresh failed, rendering cached snapshot", zap.Error(err))
		fresh = user
	}

	var content templ.Component
	switch fresh.Role {
	case models.RoleStudent:
		content = h.studentProfile(c, token, fresh)
	case models.RoleFaculty:
		content = h.facultyProfile(c, token, fresh)
	case models.RoleAdmin:
		content = AdminProfile(fresh)
	default:
		h.logger.Warn("Unrecognized role on profile, using student variant",
			zap.String("user_id", fresh.ID),
			zap.String("role", string(fresh.Role)),
		)
		content = h.studentProfile(c, token, fresh)
	}
	if content == nil {
		// A cross-cutting redirect already answered the request.
		return
	}

	c.HTML(http.StatusOK, "", pages.LayoutPage(models.LayoutTempl{
		Title:     "Profile - CampusLink",
		Content:   content,
		Nav:       models.NavForRole(user.Role),
		ActiveNav: "Profile",
		User:      user,
	}))
}

// studentProfile loads the portfolio projects alongside the snapshot.
// Returns nil when a revoked credential ended the request.
func (h *Handlers) studentProfile(c *gin.Context, token string, user *models.UserRecord) templ.Component {
	projects, err := h.client.StudentProjects(c.Request.Context(), token)
	if err != nil {
		if middleware.HandleAPIError(c, h.manager, err) {
			return nil
		}
		h.logger.Warn("Failed to fetch portfolio projects", zap.Error(err))
		projects = nil
	}
	return StudentProfile(user, projects)
}

// facultyProfile resolves the publication references on the snapshot into
// full records. Returns nil when a revoked credential ended the request.
func (h *Handlers) facultyProfile(c *gin.Context, token string, user *models.UserRecord) templ.Component {
	var pubs []models.Publication
	if len(user.Publications) > 0 {
		var err error
		pubs, err = h.client.PublicationsByIDs(c.Request.Context(), token, user.Publications)
		if err != nil {
			if middleware.HandleAPIError(c, h.manager, err) {
				return nil
			}
			h.logger.Warn("Failed to fetch publications", zap.Error(err))
			pubs = nil
		}
	}
	return FacultyProfile(user, pubs)
}

// Update saves the role-editable profile fields. The avatar travels as an
// already-hosted image URL and is pointed at first, matching the upstream's
// two-step save.
func (h *Handlers) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}
	token := h.token(c)

	if avatar := strings.TrimSpace(c.PostForm("avatar")); avatar != "" {
		if err := h.client.UpdateAvatar(c.Request.Context(), token, avatar); err != nil {
			if middleware.HandleAPIError(c, h.manager, err) {
				return
			}
			h.logger.Warn("Avatar update failed", zap.Error(err))
		}
	}

	updated := *user
	updated.ContactInfo = strings.TrimSpace(c.PostForm("contactInfo"))

	var err error
	switch user.Role {
	case models.RoleFaculty:
		updated.Department = strings.TrimSpace(c.PostForm("department"))
		updated.ResearchInterests = strings.TrimSpace(c.PostForm("researchInterests"))
		_, err = h.client.UpdateFacultyProfile(c.Request.Context(), token, &updated)
	case models.RoleAdmin:
		// No admin-editable fields on this screen.
	default:
		if year, convErr := strconv.Atoi(c.PostForm("year")); convErr == nil {
			updated.Year = year
		}
		updated.Interests = strings.TrimSpace(c.PostForm("interests"))
		updated.LinkedIn = strings.TrimSpace(c.PostForm("linkedin"))
		updated.GitHub = strings.TrimSpace(c.PostForm("github"))
		updated.Skills = splitList(c.PostForm("skills"))
		_, err = h.client.UpdateStudentProfile(c.Request.Context(), token, &updated)
	}
	if err != nil {
		if middleware.HandleAPIError(c, h.manager, err) {
			return
		}
		h.logger.Warn("Profile update failed", zap.Error(err))
	}

	c.Redirect(http.StatusSeeOther, "/profile")
}

// AddProject appends a portfolio project for the signed-in student.
func (h *Handlers) AddProject(c *gin.Context) {
	project := models.StudentProject{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
		GitHubLink:  strings.TrimSpace(c.PostForm("githubLink")),
		DemoLink:    strings.TrimSpace(c.PostForm("demoLink")),
	}
	if project.Title == "" {
		c.Redirect(http.StatusSeeOther, "/profile")
		return
	}
	if err := h.client.AddStudentProject(c.Request.Context(), h.token(c), project); err != nil {
		if middleware.HandleAPIError(c, h.manager, err) {
			return
		}
		h.logger.Warn("Failed to add project", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/profile")
}

// DeleteProject removes one portfolio project by id.
func (h *Handlers) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if err := h.client.DeleteStudentProject(c.Request.Context(), h.token(c), id); err != nil {
		if middleware.HandleAPIError(c, h.manager, err) {
			return
		}
		h.logger.Warn("Failed to delete project", zap.String("project_id", id), zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/profile")
}

// AddPublication records a new publication for the signed-in faculty member.
func (h *Handlers) AddPublication(c *gin.Context) {
	pub := models.Publication{
		Title:   strings.TrimSpace(c.PostForm("title")),
		FileURL: strings.TrimSpace(c.PostForm("fileUrl")),
	}
	if year, err := strconv.Atoi(c.PostForm("year")); err == nil {
		pub.Year = year
	}
	if pub.Title == "" {
		c.Redirect(http.StatusSeeOther, "/profile")
		return
	}
	if err := h.client.AddFacultyPublication(c.Request.Context(), h.token(c), pub); err != nil {
		if middleware.HandleAPIError(c, h.manager, err) {
			return
		}
		h.logger.Warn("Failed to add publication", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/profile")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// StudentProfile shows the student fields, the portfolio and the edit forms.
func StudentProfile(user *models.UserRecord, projects []models.StudentProject) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := profileHeader(w, "student-profile", user); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<h2>Skills</h2><ul class="skills">`); err != nil {
			return err
		}
		for _, skill := range user.Skills {
			if _, err := fmt.Fprintf(w, `<li>%s</li>`, templ.EscapeString(skill)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `</ul><p>Year: %d</p>`, user.Year); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<h2>Portfolio</h2><ul class="portfolio">`); err != nil {
			return err
		}
		for _, p := range projects {
			if _, err := fmt.Fprintf(w,
				`<li>%s<form method="post" action="/projects/%s/delete"><button type="submit">Remove</button></form></li>`,
				templ.EscapeString(p.Title), templ.EscapeString(p.ID)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w,
			`</ul><form id="add-project-form" method="post" action="/projects">`+
				`<label>Title<input type="text" name="title" required></label>`+
				`<label>Description<input type="text" name="description"></label>`+
				`<label>GitHub<input type="url" name="githubLink"></label>`+
				`<label>Demo<input type="url" name="demoLink"></label>`+
				`<button type="submit">Add Project</button></form>`); err != nil {
			return err
		}
		if err := renderEditForm(w,
			field{"Skills (comma separated)", "skills", strings.Join(user.Skills, ", ")},
			field{"Year", "year", strconv.Itoa(user.Year)},
			field{"Interests", "interests", user.Interests},
			field{"Contact", "contactInfo", user.ContactInfo},
			field{"LinkedIn", "linkedin", user.LinkedIn},
			field{"GitHub", "github", user.GitHub},
			field{"Avatar URL", "avatar", user.Avatar},
		); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

// FacultyProfile shows the faculty fields, resolved publications and the
// edit forms.
func FacultyProfile(user *models.UserRecord, pubs []models.Publication) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := profileHeader(w, "faculty-profile", user); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<p>Department: %s</p>`,
			templ.EscapeString(user.Department)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<p>Research interests: %s</p>`,
			templ.EscapeString(user.ResearchInterests)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<h2>Publications</h2><ul class="publications">`); err != nil {
			return err
		}
		for _, pub := range pubs {
			if _, err := fmt.Fprintf(w, `<li>%s (%d)</li>`,
				templ.EscapeString(pub.Title), pub.Year); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w,
			`</ul><form id="add-publication-form" method="post" action="/publications">`+
				`<label>Title<input type="text" name="title" required></label>`+
				`<label>Year<input type="number" name="year"></label>`+
				`<label>File URL<input type="url" name="fileUrl"></label>`+
				`<button type="submit">Add Publication</button></form>`); err != nil {
			return err
		}
		if err := renderEditForm(w,
			field{"Department", "department", user.Department},
			field{"Research interests", "researchInterests", user.ResearchInterests},
			field{"Contact", "contactInfo", user.ContactInfo},
			field{"Avatar URL", "avatar", user.Avatar},
		); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

// AdminProfile shows the administrator profile.
func AdminProfile(user *models.UserRecord) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := profileHeader(w, "admin-profile", user); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<p>College: %s</p>`,
			templ.EscapeString(user.CollegeName)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

type field struct {
	Label string
	Name  string
	Value string
}

func renderEditForm(w io.Writer, fields ...field) error {
	if _, err := io.WriteString(w, `<form id="edit-profile-form" method="post" action="/profile">`); err != nil {
		return err
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(w, `<label>%s<input type="text" name="%s" value="%s"></label>`,
			templ.EscapeString(f.Label), templ.EscapeString(f.Name), templ.EscapeString(f.Value)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `<button type="submit">Save Profile</button></form>`)
	return err
}

func profileHeader(w io.Writer, id string, user *models.UserRecord) error {
	verified := "No"
	if user.IsVerified {
		verified = "Yes"
	}
	_, err := fmt.Fprintf(w,
		`<section id="%s"><h1>%s</h1><p>%s</p><p>Verified: %s</p>`,
		templ.EscapeString(id),
		templ.EscapeString(user.Name),
		templ.EscapeString(user.Email),
		verified)
	return err
}

package pages

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/campuslink/campuslink-web/internal/app/models"
)

func renderLayout(t *testing.T, l models.LayoutTempl) *goquery.Document {
	t.Helper()
	var sb strings.Builder
	if err := LayoutPage(l).Render(context.Background(), &sb); err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("failed to read rendered HTML: %v", err)
	}
	return doc
}

func TestLayoutPage(t *testing.T) {
	t.Run("it renders the student navigation", func(t *testing.T) {
		doc := renderLayout(t, models.LayoutTempl{
			Title: "Dashboard - CampusLink",
			User:  &models.UserRecord{Name: "Ana Silva", Role: models.RoleStudent},
			Nav:   models.NavForRole(models.RoleStudent),
		})

		if doc.Find("nav a[href='/skills']").Length() == 0 {
			t.Error("expected a skills link in the student navigation, but it wasn't found")
		}
		if doc.Find("nav a[href='/my-posts']").Length() != 0 {
			t.Error("expected no faculty links in the student navigation, but one was found")
		}
	})

	t.Run("it renders the faculty navigation", func(t *testing.T) {
		doc := renderLayout(t, models.LayoutTempl{
			User: &models.UserRecord{Name: "Dr. Reis", Role: models.RoleFaculty},
			Nav:  models.NavForRole(models.RoleFaculty),
		})

		if doc.Find("nav a[href='/my-posts']").Length() == 0 {
			t.Error("expected a my-posts link in the faculty navigation, but it wasn't found")
		}
		if doc.Find("nav a[href='/admin/verification']").Length() != 0 {
			t.Error("expected no admin links in the faculty navigation, but one was found")
		}
	})

	t.Run("it renders the admin navigation", func(t *testing.T) {
		doc := renderLayout(t, models.LayoutTempl{
			User: &models.UserRecord{Name: "Root", Role: models.RoleAdmin},
			Nav:  models.NavForRole(models.RoleAdmin),
		})

		if doc.Find("nav a[href='/admin/verification']").Length() == 0 {
			t.Error("expected a verification link in the admin navigation, but it wasn't found")
		}
	})

	t.Run("it marks the active item", func(t *testing.T) {
		doc := renderLayout(t, models.LayoutTempl{
			Nav:       models.NavForRole(models.RoleStudent),
			ActiveNav: "Dashboard",
		})

		active := doc.Find("nav a.active")
		if active.Length() != 1 {
			t.Fatalf("expected exactly one active nav item, got %d", active.Length())
		}
		if href, _ := active.Attr("href"); href != "/dashboard" {
			t.Errorf(`expected the active item to link to "/dashboard", but got "%s"`, href)
		}
	})

	t.Run("it shows a sign-out button only when signed in", func(t *testing.T) {
		signedIn := renderLayout(t, models.LayoutTempl{
			User: &models.UserRecord{Name: "Ana Silva", Role: models.RoleStudent},
			Nav:  models.NavForRole(models.RoleStudent),
		})
		if signedIn.Find("form[action='/logout'] button").Length() == 0 {
			t.Error("expected a sign-out button for a signed-in user, but it wasn't found")
		}

		anonymous := renderLayout(t, models.LayoutTempl{Nav: models.AnonymousNav})
		if anonymous.Find("form[action='/logout']").Length() != 0 {
			t.Error("expected no sign-out button for an anonymous visitor, but one was found")
		}
	})
}

func TestStandalonePages(t *testing.T) {
	renderComponent := func(t *testing.T, name string, render func(ctx context.Context, w *strings.Builder) error) string {
		t.Helper()
		var sb strings.Builder
		if err := render(context.Background(), &sb); err != nil {
			t.Fatalf("failed to render %s: %v", name, err)
		}
		return sb.String()
	}

	loading := renderComponent(t, "loading", func(ctx context.Context, w *strings.Builder) error {
		return LoadingPage().Render(ctx, w)
	})
	if !strings.Contains(loading, `role="status"`) {
		t.Error("expected the loading placeholder to carry a status role")
	}

	unauthorized := renderComponent(t, "unauthorized", func(ctx context.Context, w *strings.Builder) error {
		return UnauthorizedPage().Render(ctx, w)
	})
	if !strings.Contains(unauthorized, "Access Denied") {
		t.Error("expected the unauthorized page to say access is denied")
	}

	pending := renderComponent(t, "verification pending", func(ctx context.Context, w *strings.Builder) error {
		return VerificationPendingPage().Render(ctx, w)
	})
	if !strings.Contains(pending, "awaiting verification") {
		t.Error("expected the pending page to mention verification")
	}
}

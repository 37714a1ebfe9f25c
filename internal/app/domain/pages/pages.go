package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/campuslink/campuslink-web/internal/app/models"
)

// LayoutPage wraps a page body with the shared chrome: title, navigation and
// the signed-in user's name. Views here are intentionally bare markup; the
// platform's styling is out of scope for this client.
func LayoutPage(l models.LayoutTempl) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title></head><body>`,
			templ.EscapeString(l.Title),
		); err != nil {
			return err
		}
		if err := renderNav(w, l); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main id="content">`); err != nil {
			return err
		}
		if l.Content != nil {
			if err := l.Content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func renderNav(w io.Writer, l models.LayoutTempl) error {
	if _, err := io.WriteString(w, `<nav><ul>`); err != nil {
		return err
	}
	for _, item := range l.Nav.Items {
		class := ""
		if item.Name == l.ActiveNav {
			class = ` class="active"`
		}
		if _, err := fmt.Fprintf(w, `<li><a href="%s"%s>%s</a></li>`,
			templ.EscapeString(item.URL), class, templ.EscapeString(item.Name)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</ul>`); err != nil {
		return err
	}
	if l.User != nil {
		if _, err := fmt.Fprintf(w,
			`<span class="user">%s</span><form method="post" action="/logout"><button type="submit">Sign Out</button></form>`,
			templ.EscapeString(l.User.Name)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</nav>`)
	return err
}

// LoadingPage is the neutral placeholder shown while an access decision is
// suspended. It renders no protected content and triggers no navigation.
func LoadingPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="loading" role="status">Loading…</div>`)
		return err
	})
}

// UnauthorizedPage tells an authenticated visitor their role cannot reach
// the requested view.
func UnauthorizedPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<section id="unauthorized"><h1>Access Denied</h1>`+
				`<p>Your account does not have permission to view this page.</p>`+
				`<a href="/dashboard">Back to dashboard</a></section>`)
		return err
	})
}

// VerificationPendingPage tells an unverified visitor an administrator still
// has to approve their account.
func VerificationPendingPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<section id="verification-pending"><h1>Verification Pending</h1>`+
				`<p>Your account is awaiting verification by your college administrator. `+
				`You will gain access to this area once your account is approved.</p>`+
				`<a href="/dashboard">Back to dashboard</a></section>`)
		return err
	})
}

// PlaceholderPage covers the collaboration screens that are presentational
// collaborators of the session core: messages, networking, events and
// achievements render their headline and wait for their own feature work.
func PlaceholderPage(id, heading, blurb string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section id="%s"><h1>%s</h1><p>%s</p></section>`,
			templ.EscapeString(id), templ.EscapeString(heading), templ.EscapeString(blurb))
		return err
	})
}

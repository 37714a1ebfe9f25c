package models

import "github.com/a-h/templ"

type NavItem struct {
	Name string
	URL  string
	Icon string
}

type Navigation struct {
	Items []NavItem
}

type LayoutTempl struct {
	Title     string
	User      *UserRecord
	Nav       Navigation
	ActiveNav string
	Content   templ.Component
}

// NavForRole returns the navigation bar for an authenticated user.
// Common destinations first, then the role-specific ones.
func NavForRole(role Role) Navigation {
	items := []NavItem{
		{Name: "Dashboard", URL: "/dashboard"},
		{Name: "Projects", URL: "/projects"},
		{Name: "Messages", URL: "/messages"},
		{Name: "Events", URL: "/events"},
		{Name: "Profile", URL: "/profile"},
	}
	switch role {
	case RoleStudent:
		items = append(items,
			NavItem{Name: "Skills", URL: "/skills"},
			NavItem{Name: "Learning", URL: "/learning"},
		)
	case RoleFaculty:
		items = append(items,
			NavItem{Name: "My Posts", URL: "/my-posts"},
			NavItem{Name: "Applications", URL: "/applications"},
		)
	case RoleAdmin:
		items = append(items,
			NavItem{Name: "Verification", URL: "/admin/verification"},
			NavItem{Name: "Metrics", URL: "/admin/metrics"},
		)
	}
	return Navigation{Items: items}
}

var AnonymousNav = Navigation{
	Items: []NavItem{
		{Name: "Sign In", URL: "/login"},
	},
}

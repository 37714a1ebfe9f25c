package auth

import "github.com/campuslink/campuslink-web/internal/app/models"

// Decision is the outcome of an access check for one view.
type Decision int

const (
	// DecisionPending suspends the check: the session is still restoring
	// and redirecting now would bounce a logged-in visitor to the sign-in
	// page for no reason.
	DecisionPending Decision = iota
	DecisionAllow
	DecisionRedirectLogin
	DecisionRedirectUnauthorized
	DecisionRedirectPending
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionAllow:
		return "allow"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectUnauthorized:
		return "redirect_unauthorized"
	case DecisionRedirectPending:
		return "redirect_pending"
	}
	return "unknown"
}

// Requirement is a view's declared precondition. A nil/empty AllowedRoles
// means any authenticated role may enter.
type Requirement struct {
	AllowedRoles        []models.Role
	RequireVerification bool
}

// Decide maps session state and a view requirement to a Decision. Pure; the
// navigation side effects live in the route guard.
//
// The clauses are ordered deliberately: loading is checked before anything
// else so a restore in progress never produces a flash redirect;
// authentication before role so an anonymous visitor is never told "wrong
// role"; role before verification so a wrong-role visitor is never told
// "pending verification".
func Decide(sess *Session, req Requirement) Decision {
	if sess == nil {
		// A missing session degrades to the logged-out path.
		return DecisionRedirectLogin
	}
	if sess.Loading() {
		return DecisionPending
	}
	user := sess.CurrentUser()
	if user == nil {
		return DecisionRedirectLogin
	}
	if len(req.AllowedRoles) > 0 && !roleAllowed(req.AllowedRoles, user.Role) {
		return DecisionRedirectUnauthorized
	}
	if req.RequireVerification && !user.IsVerified {
		return DecisionRedirectPending
	}
	return DecisionAllow
}

func roleAllowed(allowed []models.Role, role models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

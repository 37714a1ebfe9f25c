package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campuslink/campuslink-web/internal/app/models"
)

func restoringSession() *Session {
	return NewRestoringSession()
}

func anonymousSession() *Session {
	s := NewRestoringSession()
	s.setAnonymous()
	return s
}

func authenticatedSession(role models.Role, verified bool) *Session {
	s := NewRestoringSession()
	s.setAuthenticated(&models.UserRecord{
		ID:         "u-1",
		Name:       "Test User",
		Email:      "user@campus.edu",
		Role:       role,
		IsVerified: verified,
	})
	return s
}

func TestDecide(t *testing.T) {
	anyRole := Requirement{}
	facultyOnly := Requirement{AllowedRoles: []models.Role{models.RoleFaculty}}
	verifiedFaculty := Requirement{
		AllowedRoles:        []models.Role{models.RoleFaculty},
		RequireVerification: true,
	}
	adminOnly := Requirement{AllowedRoles: []models.Role{models.RoleAdmin}}

	tests := []struct {
		name string
		sess *Session
		req  Requirement
		want Decision
	}{
		{"nil session degrades to sign-in", nil, anyRole, DecisionRedirectLogin},
		{"restoring suspends the decision", restoringSession(), anyRole, DecisionPending},
		{"restoring suspends even with role requirement", restoringSession(), adminOnly, DecisionPending},
		{"anonymous visitor is sent to sign-in", anonymousSession(), anyRole, DecisionRedirectLogin},
		{"anonymous outranks role mismatch", anonymousSession(), facultyOnly, DecisionRedirectLogin},
		{"authenticated passes an open requirement", authenticatedSession(models.RoleStudent, false), anyRole, DecisionAllow},
		{"wrong role is unauthorized", authenticatedSession(models.RoleStudent, true), facultyOnly, DecisionRedirectUnauthorized},
		{"role mismatch outranks verification", authenticatedSession(models.RoleStudent, false), verifiedFaculty, DecisionRedirectUnauthorized},
		{"right role but unverified is pending verification", authenticatedSession(models.RoleFaculty, false), verifiedFaculty, DecisionRedirectPending},
		{"verified faculty passes", authenticatedSession(models.RoleFaculty, true), verifiedFaculty, DecisionAllow},
		{"admin passes admin requirement", authenticatedSession(models.RoleAdmin, true), adminOnly, DecisionAllow},
		{"verification ignored when not required", authenticatedSession(models.RoleStudent, false), Requirement{AllowedRoles: []models.Role{models.RoleStudent}}, DecisionAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.sess, tt.req))
		})
	}
}

func TestDecideIsReadOnly(t *testing.T) {
	sess := authenticatedSession(models.RoleStudent, true)
	req := Requirement{AllowedRoles: []models.Role{models.RoleFaculty}}

	before := sess.State()
	_ = Decide(sess, req)
	_ = Decide(sess, req)

	assert.Equal(t, before, sess.State())
	assert.NotNil(t, sess.CurrentUser())
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "pending", DecisionPending.String())
	assert.Equal(t, "allow", DecisionAllow.String())
	assert.Equal(t, "redirect_login", DecisionRedirectLogin.String())
	assert.Equal(t, "redirect_unauthorized", DecisionRedirectUnauthorized.String())
	assert.Equal(t, "redirect_pending", DecisionRedirectPending.String())
}

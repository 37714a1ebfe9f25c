package auth

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// AuthScreenProps controls what the combined sign-in / sign-up screen shows.
type AuthScreenProps struct {
	// From is the originally requested path, carried through the form so a
	// successful sign-in can return the visitor where they were headed.
	From string
	// Error is rendered inline above the form that failed.
	Error string
	// Notice is an informational line, e.g. after a successful registration.
	Notice string
}

// AuthScreen renders the sign-in form plus the registration form.
func AuthScreen(props AuthScreenProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section id="auth-screen"><h1>CampusLink</h1>`); err != nil {
			return err
		}
		if props.Error != "" {
			if _, err := fmt.Fprintf(w, `<div class="error" role="alert">%s</div>`,
				templ.EscapeString(props.Error)); err != nil {
				return err
			}
		}
		if props.Notice != "" {
			if _, err := fmt.Fprintf(w, `<div class="notice" role="status">%s</div>`,
				templ.EscapeString(props.Notice)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w,
			`<form id="login-form" method="post" action="/login">`+
				`<input type="hidden" name="from" value="%s">`+
				`<label>Email<input type="email" name="email" required></label>`+
				`<label>Password<input type="password" name="password" required></label>`+
				`<button type="submit">Sign In</button></form>`,
			templ.EscapeString(props.From)); err != nil {
			return err
		}
		if _, err := io.WriteString(w,
			`<form id="register-form" method="post" action="/register">`+
				`<label>Name<input type="text" name="name" required></label>`+
				`<label>Email<input type="email" name="email" required></label>`+
				`<label>Role<select name="role">`+
				`<option value="student">Student</option>`+
				`<option value="faculty">Faculty</option>`+
				`</select></label>`+
				`<label>College ID<input type="text" name="collegeId" required></label>`+
				`<label>Department<input type="text" name="department"></label>`+
				`<label>Password<input type="password" name="password" required></label>`+
				`<label>Confirm Password<input type="password" name="confirm_password" required></label>`+
				`<button type="submit">Create Account</button></form></section>`); err != nil {
			return err
		}
		return nil
	})
}

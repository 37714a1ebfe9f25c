package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeReturnPath(t *testing.T) {
	cases := []struct {
		name string
		from string
		want string
	}{
		{"empty falls back", "", "/dashboard"},
		{"relative path falls back", "projects", "/dashboard"},
		{"local path passes through", "/projects", "/projects"},
		{"local path with query passes through", "/projects?tab=open", "/projects?tab=open"},
		{"protocol-relative is rejected", "//evil.example", "/dashboard"},
		{"backslash protocol-relative is rejected", `/\evil.example`, "/dashboard"},
		{"absolute URL is rejected", "https://evil.example/", "/dashboard"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, safeReturnPath(tc.from))
		})
	}
}

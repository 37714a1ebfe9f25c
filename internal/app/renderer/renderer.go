package renderer

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin/render"
)

// HTMLTemplRenderer lets c.HTML accept a templ.Component directly while
// delegating anything else to gin's stock HTML renderer.
type HTMLTemplRenderer struct {
	FallbackHtmlRenderer render.HTMLRender
}

func (r *HTMLTemplRenderer) Instance(name string, data any) render.Render {
	component, ok := data.(templ.Component)
	if !ok {
		if r.FallbackHtmlRenderer != nil {
			return r.FallbackHtmlRenderer.Instance(name, data)
		}
		return nil
	}
	return &Renderer{Ctx: context.Background(), Component: component}
}

// Renderer adapts one templ.Component to gin's render.Render.
type Renderer struct {
	Ctx       context.Context
	Status    int
	Component templ.Component
}

// New builds a Renderer for handlers that render outside c.HTML.
func New(ctx context.Context, status int, component templ.Component) *Renderer {
	return &Renderer{Ctx: ctx, Status: status, Component: component}
}

func (t Renderer) Render(w http.ResponseWriter) error {
	t.WriteContentType(w)
	if t.Status > 0 {
		w.WriteHeader(t.Status)
	}
	return t.Component.Render(t.Ctx, w)
}

func (t Renderer) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

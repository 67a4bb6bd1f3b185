package obs

import (
	"context"

	"github.com/go-chi/chi/v5"
)

type routeKey struct{}

// WithRoute pins the route label for the request, overriding the chi pattern.
func WithRoute(ctx context.Context, pattern string) context.Context {
	return context.WithValue(ctx, routeKey{}, pattern)
}

// RouteFromContext returns the pinned route, or the pattern chi matched. chi
// fills the pattern in while routing, so middleware must read it after the
// next handler returned.
func RouteFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(routeKey{}).(string); ok && v != "" {
		return v
	}
	if rc := chi.RouteContext(ctx); rc != nil {
		return rc.RoutePattern()
	}
	return ""
}

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"comprasweb/templates"
)

type contextKey string

const NavDataKey contextKey = "navData"

// GetNavData extracts the pre-built NavData from the request context.
func GetNavData(r *http.Request) templates.NavData {
	if val, ok := r.Context().Value(NavDataKey).(templates.NavData); ok {
		return val
	}
	return templates.NavData{ActivePath: r.URL.Path}
}

// NavMiddleware builds the header counters for full-page GET requests and
// stores them in the request context. HTMX fragments and background calls
// never render the header, so they skip the queries.
func NavMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Request.Method != http.MethodGet || isHTMX(e.Request) || isBackground(e.Request) {
			return e.Next()
		}
		nav := BuildNavData(e.Request, app)
		ctx := context.WithValue(e.Request.Context(), NavDataKey, nav)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

// isHTMX reports whether the request was issued by HTMX.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// isBackground reports whether the caller wants a JSON acknowledgement
// instead of markup: script-issued requests and API clients.
func isBackground(r *http.Request) bool {
	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return strings.HasPrefix(r.Header.Get("Accept"), "application/json")
}

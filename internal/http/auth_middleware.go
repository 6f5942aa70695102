package httpx

import (
	"context"
	"net/http"
)

// AuthHeader carries the raw signed token; no Bearer prefix convention.
const AuthHeader = "x-auth-token"

type authContextKey string

const contextKeyUserID authContextKey = "inkpost-user-id"

type contextSetter interface {
	SetContext(context.Context)
}

// requireAuth is the gate every protected route passes through: it verifies
// the token from the auth header and injects the asserted user id into the
// request context. On any failure the wrapped handler never runs.
func (r *Router) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, _, ok := r.ensureAuth(w, req)
		if !ok {
			return
		}
		if setter, ok := w.(contextSetter); ok {
			setter.SetContext(ctx)
		}
		next(w, req.WithContext(ctx))
	}
}

// ensureAuth validates the auth header token and enriches the context.
func (r *Router) ensureAuth(w http.ResponseWriter, req *http.Request) (context.Context, string, bool) {
	token := req.Header.Get(AuthHeader)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "No authentication token, authorization denied")
		return req.Context(), "", false
	}
	userID, err := r.auth.Authorize(token)
	if err != nil {
		r.logger.Warn("token validation failed", "error", err, "path", req.URL.Path)
		writeError(w, http.StatusUnauthorized, "Invalid authentication token")
		return req.Context(), "", false
	}
	ctx := context.WithValue(req.Context(), contextKeyUserID, userID)
	return ctx, userID, true
}

// userIDFromContext extracts the authenticated user id from context.
func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKeyUserID).(string)
	return id, ok && id != ""
}

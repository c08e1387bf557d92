package middleware

import (
	"context"
	"net/http"

	"saletracker-api/internal/auth"
	"saletracker-api/internal/transport/http/response"
)

// identityKey is the context key for the resolved caller identity.
const identityKey contextKey = "identity"

// RequireIdentity returns a middleware that resolves the caller identity and
// stores it in the request context. Requests without a resolvable identity
// are rejected with 401 before reaching any handler.
func RequireIdentity(resolver auth.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := resolver.Resolve(r)
			if err != nil {
				response.Error(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the resolved identity from request context.
// Returns nil outside of RequireIdentity-protected routes.
func IdentityFromContext(ctx context.Context) *auth.Identity {
	if identity, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return identity
	}
	return nil
}

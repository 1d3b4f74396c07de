package middleware

import (
	"net/http"

	"mediquick-api/internal/domain/entity"
	"mediquick-api/pkg/response"
)

// RequireRole admits callers whose token role is one of allowed. It must run
// after Authenticate.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}
			if _, ok := set[role]; !ok {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

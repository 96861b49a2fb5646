package httpx

import (
	"net/http"
)

// RequireRole rejects requests whose token does not carry one of the listed
// default roles. Team-scoped decisions stay in the policy engine; this only
// gates endpoints that are meaningless without a given account capability,
// such as team creation for manager-capable identities.
func RequireRole(allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := want[RoleFromCtx(r.Context())]; !ok {
				WriteJSON(w, http.StatusForbidden, map[string]string{
					"error":             "forbidden",
					"error_description": "insufficient role for this operation",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

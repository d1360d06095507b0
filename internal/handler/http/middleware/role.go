package middleware

import (
	"net/http"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/user"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/handler/http/response"
)

// StaffOnly restricts a route to staff and admin users.
func StaffOnly(next http.Handler) http.Handler {
	return requireRole(next, user.RoleStaff, user.RoleAdmin)
}

// AdminOnly restricts a route to admin users.
func AdminOnly(next http.Handler) http.Handler {
	return requireRole(next, user.RoleAdmin)
}

func requireRole(next http.Handler, roles ...user.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := Claims(r)
		role, _ := claims["role"].(string)

		for _, allowed := range roles {
			if user.Role(role) == allowed {
				next.ServeHTTP(w, r)
				return
			}
		}
		response.Forbidden(w, "Insufficient permissions")
	})
}

package http

import (
	"net/http"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/handler/http/middleware"
)

// Claim accessors for handlers behind AuthRequired. Missing claims return
// empty strings; callers decide whether that is a 401 or a fallback.

func userIDFromRequest(r *http.Request) string {
	id, _ := middleware.Claims(r)["user_id"].(string)
	return id
}

func employeeIDFromRequest(r *http.Request) string {
	id, _ := middleware.Claims(r)["employee_id"].(string)
	return id
}

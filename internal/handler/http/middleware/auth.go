package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/auth"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// Claims pulls the token claims map from the request context. Handlers use it
// for user_id / employee_id / role lookups after AuthRequired has run.
func Claims(r *http.Request) map[string]interface{} {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		return nil
	}
	claims, err := token.AsMap(r.Context())
	if err != nil {
		return nil
	}
	return claims
}

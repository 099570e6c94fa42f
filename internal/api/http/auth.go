package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"eventreg-request-service/internal/security"

	"github.com/gorilla/mux"
)

type claimsKey struct{}

func claimsFromContext(ctx context.Context) *security.UserClaims {
	claims, _ := ctx.Value(claimsKey{}).(*security.UserClaims)
	return claims
}

// authenticate validates the bearer access token and stores its claims in
// the request context.
func authenticate(tokens security.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if len(header) < 8 || !strings.EqualFold(header[:7], "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Status: "Unauthorized", Error: "authorization token is not provided"})
				return
			}
			claims, err := tokens.ValidateToken(header[7:])
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Status: "Unauthorized", Error: err.Error()})
				return
			}
			if claims.Type != security.TokenTypeAccess {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Status: "Unauthorized", Error: security.ErrWrongTokenType.Error()})
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

// requirePathUser lets a caller act only as the user named in the path.
func requirePathUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
		claims := claimsFromContext(r.Context())
		if err != nil || claims == nil || claims.UserID != userID {
			writeJSON(w, http.StatusForbidden, errorResponse{Status: "Forbidden", Error: "token does not belong to this user"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r.Context())
		if claims == nil || !claims.HasRole(security.RoleAdmin) {
			writeJSON(w, http.StatusForbidden, errorResponse{Status: "Forbidden", Error: "admin role required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

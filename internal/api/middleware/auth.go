package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/api/handlers"
)

type contextKey string

// OperatorKey carries the authenticated operator name in the request
// context.
const OperatorKey contextKey = "operator"

const (
	msgMissingToken = "missing or malformed authorization header"
	msgInvalidToken = "invalid or expired token"
)

// Auth verifies the Bearer JWT on admin routes. Tokens are issued by
// the login handler with the same secret.
func Auth(secret []byte) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			claims := jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), OperatorKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Operator returns the operator name stored by Auth, if any.
func Operator(ctx context.Context) string {
	name, _ := ctx.Value(OperatorKey).(string)
	return name
}

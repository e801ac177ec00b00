package restapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const userEmailKey = contextKey("userEmail")

const tokenIssuer = "carecompass"

// createToken signs a session token for the given account
func (api *RestAPI) createToken(userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
		"iss":   tokenIssuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(api.Config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// requireAuth validates the Bearer token and attaches the account email to
// the request context.
func (api *RestAPI) requireAuth(next handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			api.sendUnauthorized(w, r, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			api.sendUnauthorized(w, r, "invalid authorization header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(api.Config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			api.sendUnauthorized(w, r, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			api.sendUnauthorized(w, r, "invalid token claims")
			return
		}

		email, ok := claims["email"].(string)
		if !ok || email == "" {
			api.sendUnauthorized(w, r, "invalid token subject")
			return
		}

		ctx := context.WithValue(r.Context(), userEmailKey, email)
		next(w, r.WithContext(ctx))
	})
}

// userEmail returns the authenticated account's email, or ""
func userEmail(r *http.Request) string {
	if email, ok := r.Context().Value(userEmailKey).(string); ok {
		return email
	}
	return ""
}

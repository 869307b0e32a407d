package middleware

import (
	"errors"
	"net/http"

	"github.com/hung20012004/Nhom373DCTT24-sub003/database"
	"github.com/hung20012004/Nhom373DCTT24-sub003/models"
	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"
)

// resolveSession implements the session credential path: validate the access
// token, then load the user and their role so the gate can compare by name.
func resolveSession(token string) (Identity, error) {
	claims, err := utils.ValidateAccessToken(token)
	if err != nil {
		return Identity{}, err
	}

	var userID uint
	switch v := claims["id"].(type) {
	case float64:
		userID = uint(v)
	case int:
		userID = uint(v)
	}
	if userID == 0 {
		return Identity{}, errors.New("invalid token payload")
	}

	var user models.User
	if err := database.DB.Preload("Role").First(&user, userID).Error; err != nil {
		return Identity{}, errors.New("user not found")
	}
	if user.Status != "Active" {
		return Identity{}, errors.New("account disabled")
	}

	return Identity{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.RoleName(),
		Source: SourceSession,
	}, nil
}

// AuthMiddleware enforces a valid session token on API routes. Invalid or
// missing tokens halt the pipeline with a 401 envelope.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := utils.BearerToken(r)
		if token == "" {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		identity, err := resolveSession(token)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// WebSessionMiddleware resolves a session when one is present but never
// rejects: web routes leave the unauthenticated decision (redirect to login)
// to the policy gate.
func WebSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := utils.BearerToken(r); token != "" {
			if identity, err := resolveSession(token); err == nil {
				r = r.WithContext(WithIdentity(r.Context(), identity))
			}
		}
		next.ServeHTTP(w, r)
	})
}

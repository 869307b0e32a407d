package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hung20012004/Nhom373DCTT24-sub003/database"
	"github.com/hung20012004/Nhom373DCTT24-sub003/models"
	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"

	"gorm.io/gorm"
)

const apiKeyHeader = "x-api-key"

var (
	errMissingAPIKey = errors.New("API key is required")
	errInvalidAPIKey = errors.New("Invalid API key")
)

// resolveAPIKey implements the API-key credential path: read the x-api-key
// header, strip an optional "Bearer " prefix and match the remainder against
// a stored user key. A missing header and a bad key are distinct failures.
func resolveAPIKey(r *http.Request) (Identity, error) {
	header := r.Header.Get(apiKeyHeader)
	if header == "" {
		return Identity{}, errMissingAPIKey
	}
	key := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if key == "" {
		return Identity{}, errInvalidAPIKey
	}

	var user models.User
	err := database.DB.Preload("Role").
		Where("api_key = ? AND status = ?", key, "Active").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Identity{}, errInvalidAPIKey
		}
		return Identity{}, err
	}

	return Identity{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.RoleName(),
		Source: SourceAPIKey,
	}, nil
}

// APIKeyMiddleware guards routes that accept only API-key callers. Both
// failure cases halt the pipeline with a 401 envelope before the handler
// runs.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := resolveAPIKey(r)
		if err != nil {
			writeCredentialError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// CredentialMiddleware guards routes reachable by either credential path.
// When the x-api-key header is present it must validate; otherwise a session
// token is tried. A request with neither proof fails as a missing credential.
func CredentialMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(apiKeyHeader) != "" {
			identity, err := resolveAPIKey(r)
			if err != nil {
				writeCredentialError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
			return
		}

		if token := utils.BearerToken(r); token != "" {
			identity, err := resolveSession(token)
			if err == nil {
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
				return
			}
		}

		writeCredentialError(w, errMissingAPIKey)
	})
}

func writeCredentialError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errMissingAPIKey), errors.Is(err, errInvalidAPIKey):
		utils.WriteError(w, http.StatusUnauthorized, err.Error())
	default:
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
	}
}

package admins

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/hung20012004/Nhom373DCTT24-sub003/database"
	"github.com/hung20012004/Nhom373DCTT24-sub003/models"
	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"

	"gorm.io/gorm"
)

// GET /api/admin/users
func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := database.DB.Preload("Role").Order("id ASC").Find(&users).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Successfully",
		Data:    map[string]interface{}{"users": users},
	})
}

// POST /api/admin/users/{id}/api-key issues (or rotates) the integration API
// key of a user. The plain key is returned exactly once.
func IssueAPIKeyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	key, err := generateAPIKey()
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to generate API key")
		return
	}

	user.ApiKey = &key
	if err := database.DB.Save(&user).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to store API key")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "API key issued",
		Data:    map[string]interface{}{"user_id": user.ID, "api_key": key},
	})
}

func generateAPIKey() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/hung20012004/Nhom373DCTT24-sub003/database"
	"github.com/hung20012004/Nhom373DCTT24-sub003/middleware"
	"github.com/hung20012004/Nhom373DCTT24-sub003/models"
	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwdmin"`
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var appSetting models.Setting
	if err := database.DB.Model(&models.Setting{}).Select("maintenance, name").Take(&appSetting).Error; err == nil && appSetting.Maintenance {
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.APIResponse{
			Status:  utils.StatusError,
			Message: "Hệ thống đang bảo trì. Vui lòng quay lại sau.",
			Data:    map[string]interface{}{"maintenance": true, "application": appSetting.Name},
		})
		return
	}

	db := database.DB

	var user models.User
	if err := db.Preload("Role").Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.WriteError(w, http.StatusUnauthorized, "Email hoặc mật khẩu không đúng")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if strings.ToLower(user.Status) != "active" {
		utils.WriteError(w, http.StatusForbidden, "Tài khoản của bạn đã bị khóa, vui lòng liên hệ quản trị viên")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Email hoặc mật khẩu không đúng")
		return
	}

	tokenExpiry := 15 * time.Minute
	accessToken, err := utils.GenerateAccessTokenWithExpiry(user.ID, user.RoleName(), tokenExpiry)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Đăng nhập thất bại")
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Đăng nhập thất bại")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Đăng nhập thành công",
		Data: map[string]interface{}{
			"access_token":  accessToken,
			"access_expire": time.Now().Add(tokenExpiry).UTC().Format(time.RFC3339),
			"refresh_token": refreshToken,
			"user": map[string]interface{}{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.RoleName(),
			},
		},
	})
}

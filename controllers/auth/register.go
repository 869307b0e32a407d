package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/hung20012004/Nhom373DCTT24-sub003/database"
	"github.com/hung20012004/Nhom373DCTT24-sub003/middleware"
	"github.com/hung20012004/Nhom373DCTT24-sub003/models"
	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,nameok"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,pwdmin"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// RegisterHandler creates a storefront account. New accounts always start
// with the Customer role.
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var appSetting models.Setting
	if err := database.DB.Model(&models.Setting{}).Select("closed_register, name").Take(&appSetting).Error; err == nil && appSetting.ClosedRegister {
		utils.WriteError(w, http.StatusForbidden, "Đăng ký hiện đang tạm đóng. Vui lòng quay lại sau.")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	db := database.DB

	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.WriteError(w, http.StatusConflict, "Email đã được đăng ký")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[register] DB error checking email: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	var customerRole models.Role
	if err := db.Where("name = ?", models.RoleCustomer).First(&customerRole).Error; err != nil {
		log.Printf("[register] Customer role missing: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		RoleID:   customerRole.ID,
		Status:   "Active",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("[register] create failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Đăng ký thành công",
		Data:    map[string]interface{}{"id": user.ID, "name": user.Name, "email": user.Email},
	})
}

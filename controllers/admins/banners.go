package admins

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/hung20012004/Nhom373DCTT24-sub003/database"
	"github.com/hung20012004/Nhom373DCTT24-sub003/models"
	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"

	"gorm.io/gorm"
)

const maxBannerUploadBytes = 5 << 20 // 5 MiB

// GET /api/admin/banners
func ListBannersHandler(w http.ResponseWriter, r *http.Request) {
	var banners []models.Banner
	if err := database.DB.Order("position ASC, id ASC").Find(&banners).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load banners")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Successfully",
		Data:    map[string]interface{}{"banners": banners},
	})
}

// POST /api/admin/banners — multipart form: title, link, position, image file.
// The image goes to the S3-compatible bucket; only the object key is stored.
func CreateBannerHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxBannerUploadBytes); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		utils.WriteError(w, http.StatusBadRequest, "Title is required")
		return
	}
	position, _ := strconv.Atoi(r.FormValue("position"))

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(path.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		utils.WriteError(w, http.StatusBadRequest, "Unsupported image format")
		return
	}

	objectName := fmt.Sprintf("banners/%d%s", time.Now().UnixNano(), ext)
	if err := utils.UploadObject(objectName, file); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Image upload failed")
		return
	}

	banner := models.Banner{
		Title:    title,
		Image:    objectName,
		Link:     strings.TrimSpace(r.FormValue("link")),
		Position: position,
		Status:   "Active",
	}
	if err := database.DB.Create(&banner).Error; err != nil {
		// Best effort: do not leave an orphaned object behind.
		_ = utils.DeleteObject(objectName)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create banner")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Banner created",
		Data:    banner,
	})
}

// DELETE /api/admin/banners/{id}
func DeleteBannerHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var banner models.Banner
	if err := database.DB.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Banner not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := database.DB.Delete(&banner).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete banner")
		return
	}
	_ = utils.DeleteObject(banner.Image)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Banner deleted",
	})
}

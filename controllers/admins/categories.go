package admins

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/hung20012004/Nhom373DCTT24-sub003/database"
	"github.com/hung20012004/Nhom373DCTT24-sub003/middleware"
	"github.com/hung20012004/Nhom373DCTT24-sub003/models"
	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// GET /api/admin/categories
func ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	if err := database.DB.Order("id ASC").Find(&categories).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Successfully",
		Data:    map[string]interface{}{"categories": categories},
	})
}

// POST /api/admin/categories
func CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	status := req.Status
	if status == "" {
		status = "Active"
	}
	category := models.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        strings.ToLower(strings.TrimSpace(req.Slug)),
		Description: req.Description,
		Status:      status,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Category created",
		Data:    category,
	})
}

// PUT /api/admin/categories/{id}
func UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Category not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	var req CategoryRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
	category.Description = req.Description
	if req.Status != "" {
		category.Status = req.Status
	}
	if err := database.DB.Save(&category).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Category updated",
		Data:    category,
	})
}

// DELETE /api/admin/categories/{id}
func DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res := database.DB.Delete(&models.Category{}, id)
	if res.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteError(w, http.StatusNotFound, "Category not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Category deleted",
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := mux.Vars(r)["id"]
	id64, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id64 == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return uint(id64), true
}

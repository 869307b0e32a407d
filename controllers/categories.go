package controllers

import (
	"net/http"

	"github.com/hung20012004/Nhom373DCTT24-sub003/database"
	"github.com/hung20012004/Nhom373DCTT24-sub003/models"
	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"
)

// CategoryListHandler returns active categories for the storefront grid.
func CategoryListHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var categories []models.Category
	if err := db.Where("status = ?", "Active").Order("id ASC").Find(&categories).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Successfully",
		Data:    map[string]interface{}{"categories": categories},
	})
}

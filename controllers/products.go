package controllers

import (
	"net/http"

	"github.com/hung20012004/Nhom373DCTT24-sub003/database"
	"github.com/hung20012004/Nhom373DCTT24-sub003/models"
	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"
)

// ProductListHandler returns active products grouped by category name.
// Categories without products still appear with an empty list.
func ProductListHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var categories []models.Category
	if err := db.Where("status = ?", "Active").Order("id ASC").Find(&categories).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}

	var products []models.Product
	if err := db.Preload("Category").Where("status = ?", "Active").
		Order("category_id ASC, id ASC").Find(&products).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}

	categoryMap := make(map[string][]models.Product)
	for _, p := range products {
		if p.Category != nil {
			categoryMap[p.Category.Name] = append(categoryMap[p.Category.Name], p)
		}
	}

	resp := make(map[string]interface{})
	for _, cat := range categories {
		if prods, ok := categoryMap[cat.Name]; ok {
			resp[cat.Name] = prods
		} else {
			resp[cat.Name] = []models.Product{}
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Successfully",
		Data:    resp,
	})
}

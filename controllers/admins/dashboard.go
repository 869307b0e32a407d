package admins

import (
	"net/http"

	"github.com/hung20012004/Nhom373DCTT24-sub003/database"
	"github.com/hung20012004/Nhom373DCTT24-sub003/models"
	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"
)

type DashboardStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalProducts int64 `json:"total_products"`
	TotalMessages int64 `json:"total_messages"`
	OpenSupport   int64 `json:"open_support_messages"`
}

// GetDashboardStats backs the admin panel landing page.
func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	db := database.DB
	var stats DashboardStats

	db.Model(&models.User{}).Count(&stats.TotalUsers)
	db.Model(&models.Product{}).Where("status = ?", "Active").Count(&stats.TotalProducts)
	db.Model(&models.ChatMessage{}).Count(&stats.TotalMessages)
	db.Model(&models.ChatMessage{}).
		Where("category = ? AND is_admin = ?", models.ChatCategorySupport, false).
		Count(&stats.OpenSupport)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Successfully",
		Data:    stats,
	})
}

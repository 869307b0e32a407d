package controllers

import (
	"log"
	"net/http"

	"github.com/hung20012004/Nhom373DCTT24-sub003/database"
	"github.com/hung20012004/Nhom373DCTT24-sub003/models"
	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"
)

type bannerView struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Link     string `json:"link,omitempty"`
	Position int    `json:"position"`
}

// BannerListHandler returns active carousel banners in display order with
// presigned image URLs.
func BannerListHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var banners []models.Banner
	if err := db.Where("status = ?", "Active").
		Order("position ASC, id ASC").Find(&banners).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load banners")
		return
	}

	views := make([]bannerView, 0, len(banners))
	for _, b := range banners {
		url, err := utils.PresignObjectURL(b.Image, 3600)
		if err != nil {
			// A broken object reference should not hide the rest of the carousel.
			log.Printf("[banners] presign failed for %q: %v", b.Image, err)
			url = ""
		}
		views = append(views, bannerView{
			ID:       b.ID,
			Title:    b.Title,
			ImageURL: url,
			Link:     b.Link,
			Position: b.Position,
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Successfully",
		Data:    map[string]interface{}{"banners": views},
	})
}

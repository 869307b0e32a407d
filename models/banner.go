package models

import "time"

// Banner is one slide of the storefront carousel. Image holds the object key
// in the S3-compatible bucket; clients receive a presigned URL.
type Banner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Image     string    `gorm:"size:255;not null" json:"image"`
	Link      string    `gorm:"size:255" json:"link,omitempty"`
	Position  int       `gorm:"column:position;default:0" json:"position"`
	Status    string    `gorm:"type:enum('Active','Inactive');default:'Active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Banner) TableName() string {
	return "banners"
}

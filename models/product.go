package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  uint      `gorm:"column:category_id;not null;index" json:"category_id"`
	Name        string    `gorm:"column:name;size:150;not null" json:"name"`
	Price       float64   `gorm:"column:price;type:decimal(15,2);not null" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	Image       *string   `gorm:"column:image;size:255" json:"image,omitempty"`
	Stock       int       `gorm:"column:stock;default:0" json:"stock"`
	Status      string    `gorm:"column:status;type:enum('Active','Inactive');default:'Active'" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

package database

import (
	"errors"

	"github.com/hung20012004/Nhom373DCTT24-sub003/models"

	"gorm.io/gorm"
)

// SeedRoles ensures the fixed role set exists. Roles are referenced by name
// everywhere, so they must be present before the first request.
func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: models.RoleCustomer, Description: "Storefront customer"},
		{Name: models.RoleStaff, Description: "Support staff"},
		{Name: models.RoleAdmin, Description: "Administrator"},
	}
	for _, role := range roles {
		var existing models.Role
		err := db.Where("name = ?", role.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

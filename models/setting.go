package models

type Setting struct {
	ID             int    `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:100" json:"name"`
	Company        string `gorm:"size:150" json:"company"`
	Logo           string `gorm:"size:255" json:"logo"`
	LinkSupport    string `gorm:"column:link_support;size:255" json:"link_support"`
	Maintenance    bool   `gorm:"default:false" json:"maintenance"`
	ClosedRegister bool   `gorm:"column:closed_register;default:false" json:"closed_register"`
}

func (Setting) TableName() string {
	return "settings"
}

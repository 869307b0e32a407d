package models

import "time"

// Chat message categories accepted by the exchange endpoint.
const (
	ChatCategorySupport = "support"
	ChatCategoryReturn  = "return"
	ChatCategoryOrder   = "order"
	ChatCategoryOther   = "other"
)

// ChatMessage is one unit of the shared storefront conversation. Rows are
// append-only: no update or delete path exists anywhere in the codebase.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Category  string    `gorm:"type:enum('support','return','order','other');default:'support'" json:"category"`
	IsAdmin   bool      `gorm:"column:is_admin;default:false" json:"is_admin"`
	UserID    *uint     `gorm:"column:user_id;index" json:"user_id,omitempty"` // null when the sender could not be attributed
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

// ValidChatCategory reports whether c is one of the accepted categories.
func ValidChatCategory(c string) bool {
	switch c {
	case ChatCategorySupport, ChatCategoryReturn, ChatCategoryOrder, ChatCategoryOther:
		return true
	}
	return false
}

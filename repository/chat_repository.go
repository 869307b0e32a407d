package repository

import (
	"errors"
	"strings"

	"github.com/hung20012004/Nhom373DCTT24-sub003/models"

	"gorm.io/gorm"
)

// Validation failures reported by Append. Neither consumes an identifier:
// rejected appends never reach the storage engine.
var (
	ErrEmptyMessage    = errors.New("message cannot be empty")
	ErrUnknownCategory = errors.New("unknown message category")
)

// ChatRepository is the append-only accessor for the shared conversation.
type ChatRepository interface {
	// List returns every message in insertion order (oldest first). An empty
	// conversation yields an empty slice, not an error.
	List() ([]models.ChatMessage, error)
	// Append validates and persists one message. The identifier and timestamp
	// are assigned by the storage engine, so concurrent appends always
	// receive distinct, increasing ids.
	Append(message, category string, isAdmin bool, userID *uint) (*models.ChatMessage, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) List() ([]models.ChatMessage, error) {
	messages := make([]models.ChatMessage, 0)
	if err := r.db.Order("id ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *chatRepository) Append(message, category string, isAdmin bool, userID *uint) (*models.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if category == "" {
		category = models.ChatCategorySupport
	}
	if !models.ValidChatCategory(category) {
		return nil, ErrUnknownCategory
	}

	record := models.ChatMessage{
		Message:  message,
		Category: category,
		IsAdmin:  isAdmin,
		UserID:   userID,
	}
	if err := r.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

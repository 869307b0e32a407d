package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/hung20012004/Nhom373DCTT24-sub003/middleware"
	"github.com/hung20012004/Nhom373DCTT24-sub003/repository"
	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"
)

// SendMessageRequest is the POST /api/chat body. The is_admin flag marks
// which side of the conversation the message belongs to; the resolved
// identity is recorded separately for attribution.
type SendMessageRequest struct {
	Message  string `json:"message"`
	Category string `json:"category"`
	IsAdmin  bool   `json:"is_admin"`
}

type ChatController struct {
	repo repository.ChatRepository
}

func NewChatController(repo repository.ChatRepository) *ChatController {
	return &ChatController{repo: repo}
}

// ListMessagesHandler returns the full shared conversation in insertion
// order. Clients poll this endpoint; there is no push channel.
func (c *ChatController) ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
	messages, err := c.repo.List()
	if err != nil {
		log.Printf("[chat] list failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load messages")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Successfully",
		Data:    messages,
	})
}

// SendMessageHandler appends one message and returns the created record.
// Clients re-fetch the list after a successful post.
func (c *ChatController) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	var userID *uint
	if identity, ok := middleware.IdentityFrom(r); ok {
		uid := identity.UserID
		userID = &uid
	}

	record, err := c.repo.Append(req.Message, req.Category, req.IsAdmin, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmptyMessage):
			utils.WriteError(w, http.StatusUnprocessableEntity, "Message cannot be empty")
		case errors.Is(err, repository.ErrUnknownCategory):
			utils.WriteError(w, http.StatusUnprocessableEntity, "Unknown message category")
		default:
			log.Printf("[chat] append failed: %v", err)
			utils.WriteError(w, http.StatusInternalServerError, "Failed to save message")
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Message sent",
		Data:    record,
	})
}

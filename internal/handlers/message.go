package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ducielo/rencontre-coeur-brise/internal/database"
	"github.com/ducielo/rencontre-coeur-brise/internal/models"
	"github.com/ducielo/rencontre-coeur-brise/internal/services"
)

type SendMessageInput struct {
	ReceiverID string  `json:"receiverId" binding:"required"`
	Content    string  `json:"content" binding:"required"`
	MatchID    *string `json:"matchId"`
}

// SendMessage POST /messages
func SendMessage(c *gin.Context) {
	senderID := c.MustGet("userId").(string)

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receiverId and content are required"})
		return
	}

	if input.MatchID != nil {
		// The match must exist and the sender must be one of its sides.
		var match models.Match
		err := database.DB.
			Where("id = ? AND (user1_id = ? OR user2_id = ?)", *input.MatchID, senderID, senderID).
			First(&match).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match non trouvé"})
			return
		}
	}

	msg := models.Message{
		MatchID:    input.MatchID,
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
	}

	if err := database.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	database.DB.Preload("Sender.Photos", "is_primary = ?", true).First(&msg, "id = ?", msg.ID)

	services.NotifyNewMessage(c.Request.Context(), senderID, input.ReceiverID, input.Content)

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// GetConversation GET /messages/conversation/:otherUserId
func GetConversation(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	otherUserID := c.Param("otherUserId")

	var messages []models.Message
	err := database.DB.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, otherUserID, otherUserID, userID,
	).Preload("Sender.Photos", "is_primary = ?", true).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// MarkMessageRead POST /messages/:messageId/read
// Only the receiver can flip the flag; a foreign id is a silent no-op,
// mirroring an updateMany with a compound filter.
func MarkMessageRead(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	messageID := c.Param("messageId")

	result := database.DB.Model(&models.Message{}).
		Where("id = ? AND receiver_id = ?", messageID, userID).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": result.RowsAffected})
}

// GetUnreadCount GET /messages/unread-count
func GetUnreadCount(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var count int64
	database.DB.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count)

	c.JSON(http.StatusOK, gin.H{"count": count})
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ducielo/rencontre-coeur-brise/internal/database"
	"github.com/ducielo/rencontre-coeur-brise/internal/models"
)

func TestSendMessage(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	seedUser(t, "alice", "Alice")
	seedUser(t, "bob", "Bob")

	w := httptest.NewRecorder()
	c, _ := authedContext(w, "alice")
	c.Request = jsonRequest("POST", "/api/v1/messages", SendMessageInput{
		ReceiverID: "bob",
		Content:    "Salut Bob !",
	})
	SendMessage(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Message models.Message `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "alice", response.Message.SenderID)
	assert.Equal(t, "Salut Bob !", response.Message.Content)
	assert.False(t, response.Message.IsRead)

	var notifCount int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", "bob", models.NotificationTypeMessage).
		Count(&notifCount)
	assert.Equal(t, int64(1), notifCount)
}

func TestSendMessage_ForeignMatchRejected(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	seedUser(t, "alice", "Alice")
	seedUser(t, "bob", "Bob")
	seedUser(t, "carol", "Carol")

	match := models.Match{User1ID: "bob", User2ID: "carol"}
	assert.NoError(t, database.DB.Create(&match).Error)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, "alice")
	c.Request = jsonRequest("POST", "/api/v1/messages", SendMessageInput{
		ReceiverID: "bob",
		Content:    "coucou",
		MatchID:    &match.ID,
	})
	SendMessage(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	database.DB.Model(&models.Message{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetConversation(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	seedUser(t, "alice", "Alice")
	seedUser(t, "bob", "Bob")
	seedUser(t, "carol", "Carol")

	for _, m := range []models.Message{
		{SenderID: "alice", ReceiverID: "bob", Content: "un"},
		{SenderID: "bob", ReceiverID: "alice", Content: "deux"},
		{SenderID: "carol", ReceiverID: "alice", Content: "hors sujet"},
	} {
		assert.NoError(t, database.DB.Create(&m).Error)
	}

	w := httptest.NewRecorder()
	c, _ := authedContext(w, "alice")
	c.Request, _ = http.NewRequest("GET", "/api/v1/messages/conversation/bob", nil)
	c.Params = gin.Params{{Key: "otherUserId", Value: "bob"}}
	GetConversation(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Messages []models.Message `json:"messages"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if assert.Len(t, response.Messages, 2) {
		assert.Equal(t, "un", response.Messages[0].Content)
		assert.Equal(t, "deux", response.Messages[1].Content)
	}
}

func TestMarkMessageRead(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	seedUser(t, "alice", "Alice")
	seedUser(t, "bob", "Bob")

	msg := models.Message{SenderID: "alice", ReceiverID: "bob", Content: "salut"}
	assert.NoError(t, database.DB.Create(&msg).Error)

	// Only the receiver can mark it read; the sender's attempt is a no-op.
	w := httptest.NewRecorder()
	c, _ := authedContext(w, "alice")
	c.Request, _ = http.NewRequest("POST", "/api/v1/messages/"+msg.ID+"/read", nil)
	c.Params = gin.Params{{Key: "messageId", Value: msg.ID}}
	MarkMessageRead(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var fresh models.Message
	database.DB.First(&fresh, "id = ?", msg.ID)
	assert.False(t, fresh.IsRead)

	w = httptest.NewRecorder()
	c, _ = authedContext(w, "bob")
	c.Request, _ = http.NewRequest("POST", "/api/v1/messages/"+msg.ID+"/read", nil)
	c.Params = gin.Params{{Key: "messageId", Value: msg.ID}}
	MarkMessageRead(c)

	assert.Equal(t, http.StatusOK, w.Code)

	database.DB.First(&fresh, "id = ?", msg.ID)
	assert.True(t, fresh.IsRead)
}

func TestGetUnreadCount(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	seedUser(t, "alice", "Alice")
	seedUser(t, "bob", "Bob")

	for _, m := range []models.Message{
		{SenderID: "alice", ReceiverID: "bob", Content: "un"},
		{SenderID: "alice", ReceiverID: "bob", Content: "deux"},
		{SenderID: "alice", ReceiverID: "bob", Content: "trois", IsRead: true},
	} {
		assert.NoError(t, database.DB.Create(&m).Error)
	}

	w := httptest.NewRecorder()
	c, _ := authedContext(w, "bob")
	c.Request, _ = http.NewRequest("GET", "/api/v1/messages/unread-count", nil)
	GetUnreadCount(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Count int64 `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(2), response.Count)
}

package services

import (
	"context"
	"fmt"

	"github.com/ducielo/rencontre-coeur-brise/internal/database"
	"github.com/ducielo/rencontre-coeur-brise/internal/models"
	"github.com/ducielo/rencontre-coeur-brise/pkg/logger"
)

// SendPush records a notification for the user and logs it. There is no real
// push provider yet; the row doubles as the in-app notification feed.
// TODO: plug an FCM sender behind this once the mobile app registers tokens.
func SendPush(ctx context.Context, userID, actorID string, typ models.NotificationType, title, body string) {
	var actor *string
	if actorID != "" {
		actor = &actorID
	}

	notification := models.Notification{
		UserID:  userID,
		ActorID: actor,
		Type:    typ,
		Title:   title,
		Body:    body,
	}

	if err := database.DB.WithContext(ctx).Create(&notification).Error; err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to store notification")
		return
	}

	logger.Info().
		Str("user_id", userID).
		Str("type", string(typ)).
		Str("title", title).
		Msg("Notification dispatched")
}

// NotifyNewMatch tells both participants about the match. Best effort, not
// transactional with the match insert.
func NotifyNewMatch(ctx context.Context, user1ID, user2ID string) {
	var user1, user2 models.User
	if err := database.DB.WithContext(ctx).First(&user1, "id = ?", user1ID).Error; err != nil {
		return
	}
	if err := database.DB.WithContext(ctx).First(&user2, "id = ?", user2ID).Error; err != nil {
		return
	}

	SendPush(ctx, user1ID, user2ID, models.NotificationTypeMatch,
		"Nouveau match !",
		fmt.Sprintf("Vous avez un nouveau match avec %s", user2.FirstName))
	SendPush(ctx, user2ID, user1ID, models.NotificationTypeMatch,
		"Nouveau match !",
		fmt.Sprintf("Vous avez un nouveau match avec %s", user1.FirstName))
}

// NotifyNewLike tells the receiver someone liked them.
func NotifyNewLike(ctx context.Context, senderID, receiverID string) {
	var sender models.User
	if err := database.DB.WithContext(ctx).Select("first_name").First(&sender, "id = ?", senderID).Error; err != nil {
		return
	}

	SendPush(ctx, receiverID, senderID, models.NotificationTypeLike,
		"Quelqu'un vous aime !",
		fmt.Sprintf("%s vous a envoyé un like", sender.FirstName))
}

// NotifyNewMessage tells the receiver about an incoming message.
func NotifyNewMessage(ctx context.Context, senderID, receiverID, content string) {
	var sender models.User
	if err := database.DB.WithContext(ctx).Select("first_name").First(&sender, "id = ?", senderID).Error; err != nil {
		return
	}

	SendPush(ctx, receiverID, senderID, models.NotificationTypeMessage,
		fmt.Sprintf("Message de %s", sender.FirstName),
		content)
}

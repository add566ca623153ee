package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ducielo/rencontre-coeur-brise/internal/database"
	"github.com/ducielo/rencontre-coeur-brise/internal/models"
	"github.com/ducielo/rencontre-coeur-brise/pkg/errors"
	"github.com/ducielo/rencontre-coeur-brise/pkg/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	logger.Init("test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Photo{},
		&models.Like{},
		&models.Match{},
		&models.Message{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	database.DB = db
	database.Redis = nil
}

func createUser(t *testing.T, id, firstName string) models.User {
	t.Helper()
	user := models.User{
		ID:        id,
		Email:     id + "@example.com",
		FirstName: firstName,
		LastName:  "Test",
		Gender:    models.GenderOther,
		IsActive:  true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	photo := models.Photo{UserID: id, URL: "/uploads/photos/" + id + ".jpg", IsPrimary: true}
	if err := database.DB.Create(&photo).Error; err != nil {
		t.Fatalf("failed to create photo: %v", err)
	}
	return user
}

func countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	database.DB.Model(model).Count(&n)
	return n
}

func TestSendLike_CreatesEdge(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	result, err := SendLike(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.False(t, result.IsMatch)
	assert.False(t, result.AlreadyLiked)
	assert.Nil(t, result.Match)

	assert.Equal(t, int64(1), countRows(t, &models.Like{}))
	assert.Equal(t, int64(0), countRows(t, &models.Match{}))

	// The receiver got a like notification.
	var notification models.Notification
	err = database.DB.Where("user_id = ?", "bob").First(&notification).Error
	assert.NoError(t, err)
	assert.Equal(t, models.NotificationTypeLike, notification.Type)
	if assert.NotNil(t, notification.ActorID) {
		assert.Equal(t, "alice", *notification.ActorID)
	}
}

func TestSendLike_Idempotent(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	first, err := SendLike(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.False(t, first.AlreadyLiked)

	second, err := SendLike(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.True(t, second.AlreadyLiked)
	assert.False(t, second.IsMatch)

	assert.Equal(t, int64(1), countRows(t, &models.Like{}))
}

func TestSendLike_MutualCreatesSingleMatch(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	result, err := SendLike(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.False(t, result.IsMatch)

	result, err = SendLike(ctx, "bob", "alice")
	assert.NoError(t, err)
	assert.True(t, result.IsMatch)
	if assert.NotNil(t, result.Match) {
		// Canonical ordering: alice < bob
		assert.Equal(t, "alice", result.Match.User1ID)
		assert.Equal(t, "bob", result.Match.User2ID)
		// Both profiles come with their primary photo for the match screen.
		assert.Len(t, result.Match.User1.Photos, 1)
		assert.Len(t, result.Match.User2.Photos, 1)
		assert.True(t, result.Match.User1.Photos[0].IsPrimary)
	}

	assert.Equal(t, int64(1), countRows(t, &models.Match{}))

	// Repeating either direction never creates a second match.
	again, err := SendLike(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.True(t, again.AlreadyLiked)

	again, err = SendLike(ctx, "bob", "alice")
	assert.NoError(t, err)
	assert.True(t, again.AlreadyLiked)

	assert.Equal(t, int64(1), countRows(t, &models.Match{}))

	// Both sides were notified about the match.
	var matchNotifications int64
	database.DB.Model(&models.Notification{}).Where("type = ?", models.NotificationTypeMatch).Count(&matchNotifications)
	assert.Equal(t, int64(2), matchNotifications)
}

func TestSendLike_SelfLikeRejected(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")

	_, err := SendLike(context.Background(), "alice", "alice")
	if assert.Error(t, err) {
		appErr, ok := err.(*errors.AppError)
		assert.True(t, ok)
		assert.Equal(t, 400, appErr.Code)
	}
	assert.Equal(t, int64(0), countRows(t, &models.Like{}))
}

func TestSendLike_DuplicateMatchAbsorbed(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	// A concurrent call created the match between the like insert and the
	// match insert of this one.
	_, err := SendLike(ctx, "alice", "bob")
	assert.NoError(t, err)

	existing := models.Match{User1ID: "alice", User2ID: "bob"}
	assert.NoError(t, database.DB.Create(&existing).Error)

	result, err := SendLike(ctx, "bob", "alice")
	assert.NoError(t, err)
	assert.True(t, result.IsMatch)
	assert.Equal(t, existing.ID, result.Match.ID)
	assert.Equal(t, int64(1), countRows(t, &models.Match{}))
}

func TestGetUserMatches(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")
	createUser(t, "carol", "Carol")

	_, _ = SendLike(ctx, "alice", "bob")
	older, err := SendLike(ctx, "bob", "alice")
	assert.NoError(t, err)
	database.DB.Model(older.Match).Update("created_at", time.Now().Add(-time.Hour))

	_, _ = SendLike(ctx, "alice", "carol")
	newer, err := SendLike(ctx, "carol", "alice")
	assert.NoError(t, err)

	matchID := newer.Match.ID
	msg := models.Message{MatchID: &matchID, SenderID: "carol", ReceiverID: "alice", Content: "Salut !"}
	assert.NoError(t, database.DB.Create(&msg).Error)

	summaries, err := GetUserMatches(ctx, "alice")
	assert.NoError(t, err)
	if assert.Len(t, summaries, 2) {
		// Newest match first, counterpart resolved from alice's side.
		assert.Equal(t, "carol", summaries[0].Partner.ID)
		if assert.NotNil(t, summaries[0].LastMessage) {
			assert.Equal(t, "Salut !", summaries[0].LastMessage.Content)
		}
		assert.Equal(t, "bob", summaries[1].Partner.ID)
		assert.Nil(t, summaries[1].LastMessage)
	}
}

func TestGetUserLikes(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")
	createUser(t, "carol", "Carol")

	_, _ = SendLike(ctx, "bob", "alice")
	_, _ = SendLike(ctx, "carol", "alice")
	_, _ = SendLike(ctx, "alice", "bob") // sent, must not appear

	likes, err := GetUserLikes(ctx, "alice")
	assert.NoError(t, err)
	if assert.Len(t, likes, 2) {
		for _, like := range likes {
			assert.Equal(t, "alice", like.ReceiverID)
			assert.NotEmpty(t, like.Sender.FirstName)
			assert.Len(t, like.Sender.Photos, 1)
		}
	}
}

func TestGetLikeStats(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")
	createUser(t, "carol", "Carol")
	createUser(t, "dave", "Dave")
	createUser(t, "eve", "Eve")

	// alice sends 3, receives 2, exactly one pair mutual
	_, _ = SendLike(ctx, "alice", "bob")
	_, _ = SendLike(ctx, "alice", "carol")
	_, _ = SendLike(ctx, "alice", "dave")
	_, _ = SendLike(ctx, "bob", "alice")
	_, _ = SendLike(ctx, "eve", "alice")

	stats, err := GetLikeStats(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.SentLikes)
	assert.Equal(t, int64(2), stats.ReceivedLikes)
	assert.Equal(t, int64(1), stats.Matches)
}

func TestUnmatch(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	_, _ = SendLike(ctx, "alice", "bob")
	result, _ := SendLike(ctx, "bob", "alice")
	matchID := result.Match.ID

	msg := models.Message{MatchID: &matchID, SenderID: "alice", ReceiverID: "bob", Content: "Coucou"}
	assert.NoError(t, database.DB.Create(&msg).Error)

	// A non-participant gets a not-found, nothing is deleted.
	err := Unmatch(ctx, "carol", matchID)
	if assert.Error(t, err) {
		appErr, ok := err.(*errors.AppError)
		assert.True(t, ok)
		assert.Equal(t, 404, appErr.Code)
	}
	assert.Equal(t, int64(1), countRows(t, &models.Match{}))

	// A participant deletes the match and its conversation.
	assert.NoError(t, Unmatch(ctx, "alice", matchID))
	assert.Equal(t, int64(0), countRows(t, &models.Match{}))

	var remaining int64
	database.DB.Model(&models.Message{}).Where("match_id = ?", matchID).Count(&remaining)
	assert.Equal(t, int64(0), remaining)

	// Like rows survive the unmatch; a repeat like is a plain no-op and
	// does not silently resurrect the match.
	assert.Equal(t, int64(2), countRows(t, &models.Like{}))
	again, err := SendLike(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.True(t, again.AlreadyLiked)
	assert.Equal(t, int64(0), countRows(t, &models.Match{}))
}

func TestUnmatch_MissingMatch(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")

	err := Unmatch(context.Background(), "alice", "does-not-exist")
	if assert.Error(t, err) {
		appErr, ok := err.(*errors.AppError)
		assert.True(t, ok)
		assert.Equal(t, 404, appErr.Code)
	}
}

package services

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ducielo/rencontre-coeur-brise/internal/database"
	"github.com/ducielo/rencontre-coeur-brise/internal/models"
	"github.com/ducielo/rencontre-coeur-brise/pkg/errors"
	"github.com/ducielo/rencontre-coeur-brise/pkg/logger"
	"github.com/ducielo/rencontre-coeur-brise/pkg/utils"
)

// LikeResult is the outcome of a SendLike call.
type LikeResult struct {
	AlreadyLiked bool          `json:"-"`
	IsMatch      bool          `json:"isMatch"`
	Match        *models.Match `json:"match,omitempty"`
	Message      string        `json:"message"`
}

// MatchSummary is one row of a user's match list: the match itself, the
// counterpart with their primary photo, and the latest message if any.
type MatchSummary struct {
	Match       models.Match    `json:"match"`
	Partner     models.User     `json:"partner"`
	LastMessage *models.Message `json:"lastMessage,omitempty"`
}

// LikeStats are three independent counts; no cross-consistency between them.
type LikeStats struct {
	SentLikes     int64 `json:"sentLikes"`
	ReceivedLikes int64 `json:"receivedLikes"`
	Matches       int64 `json:"matches"`
}

// SendLike records a directed like and promotes the pair to a Match when the
// reverse edge already exists.
//
// The insert is an upsert (DO NOTHING on the (sender_id, receiver_id) unique
// index), and the mutual check only runs after the edge is durable. Two
// simultaneous mutual likes therefore converge on exactly one Match: the
// later-committing insert always observes the earlier edge, and the unique
// pair index absorbs the case where both observe each other.
func SendLike(ctx context.Context, senderID, receiverID string) (*LikeResult, error) {
	if senderID == receiverID {
		return nil, errors.BadRequest("You cannot like yourself")
	}

	like := models.Like{SenderID: senderID, ReceiverID: receiverID}
	res := database.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sender_id"}, {Name: "receiver_id"}},
			DoNothing: true,
		}).
		Create(&like)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Duplicate like, including the concurrent double-submit case.
		return &LikeResult{AlreadyLiked: true, Message: "Like déjà envoyé"}, nil
	}

	invalidateStats(senderID, receiverID)

	var reverse models.Like
	err := database.DB.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ?", receiverID, senderID).
		First(&reverse).Error
	if err == gorm.ErrRecordNotFound {
		NotifyNewLike(ctx, senderID, receiverID)
		return &LikeResult{IsMatch: false, Message: "Like envoyé"}, nil
	}
	if err != nil {
		return nil, err
	}

	// Mutual like: create the match, or pick up the one a concurrent call
	// just created.
	u1, u2 := utils.OrderedPair(senderID, receiverID)
	match := models.Match{User1ID: u1, User2ID: u2}
	res = database.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
			DoNothing: true,
		}).
		Create(&match)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := database.DB.WithContext(ctx).
			Where("user1_id = ? AND user2_id = ?", u1, u2).
			First(&match).Error; err != nil {
			return nil, err
		}
	} else {
		NotifyNewMatch(ctx, senderID, receiverID)
	}

	if err := database.DB.WithContext(ctx).
		Preload("User1.Photos", "is_primary = ?", true).
		Preload("User2.Photos", "is_primary = ?", true).
		First(&match, "id = ?", match.ID).Error; err != nil {
		return nil, err
	}

	logger.Info().
		Str("match_id", match.ID).
		Str("user1", match.User1ID).
		Str("user2", match.User2ID).
		Msg("Match created")

	return &LikeResult{IsMatch: true, Match: &match, Message: "C'est un match !"}, nil
}

// GetUserMatches returns the user's matches, newest first, each enriched with
// the counterpart's primary photo and the latest message.
func GetUserMatches(ctx context.Context, userID string) ([]MatchSummary, error) {
	var matches []models.Match
	err := database.DB.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Preload("User1.Photos", "is_primary = ?", true).
		Preload("User2.Photos", "is_primary = ?", true).
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]MatchSummary, 0, len(matches))
	for i := range matches {
		summary := MatchSummary{
			Match:   matches[i],
			Partner: *matches[i].Counterpart(userID),
		}

		var last models.Message
		err := database.DB.WithContext(ctx).
			Where("match_id = ?", matches[i].ID).
			Order("created_at DESC").
			First(&last).Error
		if err == nil {
			summary.LastMessage = &last
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetUserLikes returns likes received by the user, newest first, with the
// sender's profile and primary photo.
func GetUserLikes(ctx context.Context, userID string) ([]models.Like, error) {
	var likes []models.Like
	err := database.DB.WithContext(ctx).
		Where("receiver_id = ?", userID).
		Preload("Sender.Photos", "is_primary = ?", true).
		Order("created_at DESC").
		Find(&likes).Error
	return likes, err
}

// GetLikeStats returns sent/received/match counts, cached for a minute.
func GetLikeStats(ctx context.Context, userID string) (*LikeStats, error) {
	var stats LikeStats
	if err := database.CacheGet(database.StatsKey(userID), &stats); err == nil {
		return &stats, nil
	}

	db := database.DB.WithContext(ctx)
	if err := db.Model(&models.Like{}).Where("sender_id = ?", userID).Count(&stats.SentLikes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Like{}).Where("receiver_id = ?", userID).Count(&stats.ReceivedLikes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Match{}).Where("user1_id = ? OR user2_id = ?", userID, userID).Count(&stats.Matches).Error; err != nil {
		return nil, err
	}

	if err := database.CacheSet(database.StatsKey(userID), &stats, time.Minute); err != nil {
		logger.Debug().Err(err).Str("user_id", userID).Msg("Stats cache write skipped")
	}
	return &stats, nil
}

// Unmatch deletes a match and its conversation after verifying the requester
// is a participant. Like rows are left intact, so a repeated like after an
// unmatch hits the unique index and does not quietly re-match the pair.
func Unmatch(ctx context.Context, userID, matchID string) error {
	var match models.Match
	err := database.DB.WithContext(ctx).
		Where("id = ? AND (user1_id = ? OR user2_id = ?)", matchID, userID, userID).
		First(&match).Error
	if err == gorm.ErrRecordNotFound {
		return errors.NotFound("Match non trouvé")
	}
	if err != nil {
		return err
	}

	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("match_id = ?", match.ID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&match).Error; err != nil {
			return err
		}
		invalidateStats(match.User1ID, match.User2ID)
		return nil
	})
}

func invalidateStats(userIDs ...string) {
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, database.StatsKey(id))
	}
	if err := database.CacheInvalidate(keys...); err != nil {
		logger.Debug().Err(err).Msg("Stats cache invalidation skipped")
	}
}

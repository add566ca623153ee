package services

import (
	"context"
	"time"

	"github.com/ducielo/rencontre-coeur-brise/internal/database"
	"github.com/ducielo/rencontre-coeur-brise/internal/models"
)

// DailyStats are today's headline counters for monitoring.
type DailyStats struct {
	NewUsers    int64 `json:"newUsers"`
	NewMatches  int64 `json:"newMatches"`
	NewMessages int64 `json:"newMessages"`
}

// GetDailyStats counts rows created since local midnight.
func GetDailyStats(ctx context.Context) (*DailyStats, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var stats DailyStats
	db := database.DB.WithContext(ctx)
	if err := db.Model(&models.User{}).Where("created_at >= ?", midnight).Count(&stats.NewUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Match{}).Where("created_at >= ?", midnight).Count(&stats.NewMatches).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Message{}).Where("created_at >= ?", midnight).Count(&stats.NewMessages).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

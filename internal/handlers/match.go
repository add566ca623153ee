package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ducielo/rencontre-coeur-brise/internal/services"
	apperrors "github.com/ducielo/rencontre-coeur-brise/pkg/errors"
)

type SendLikeInput struct {
	ReceiverID string `json:"receiverId" binding:"required"`
}

// SendLike POST /matches/like
func SendLike(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input SendLikeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receiverId is required"})
		return
	}

	result, err := services.SendLike(c.Request.Context(), userID, input.ReceiverID)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send like"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMatches GET /matches
func GetMatches(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	matches, err := services.GetUserMatches(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch matches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// GetReceivedLikes GET /matches/likes
func GetReceivedLikes(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	likes, err := services.GetUserLikes(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch likes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// GetLikeStats GET /matches/stats
func GetLikeStats(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	stats, err := services.GetLikeStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Unmatch DELETE /matches/:matchId
func Unmatch(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	matchID := c.Param("matchId")

	if err := services.Unmatch(c.Request.Context(), userID, matchID); err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unmatch"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Match supprimé avec succès"})
}

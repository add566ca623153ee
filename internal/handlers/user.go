package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ducielo/rencontre-coeur-brise/internal/database"
	"github.com/ducielo/rencontre-coeur-brise/internal/models"
	"github.com/ducielo/rencontre-coeur-brise/pkg/logger"
)

func orderedPhotos(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

// ListUsers returns all active users except the requester, most recently
// seen first.
func ListUsers(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var users []models.User
	err := database.DB.
		Where("id <> ? AND is_active = ?", userID, true).
		Preload("Photos", orderedPhotos).
		Order("last_seen DESC, created_at DESC").
		Find(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetDiscovery returns profiles the user has not liked yet.
func GetDiscovery(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	liked := database.DB.Model(&models.Like{}).
		Select("receiver_id").
		Where("sender_id = ?", userID)

	var users []models.User
	err := database.DB.
		Where("id <> ? AND is_active = ? AND id NOT IN (?)", userID, true, liked).
		Preload("Photos", orderedPhotos).
		Order("last_seen DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch discovery profiles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func GetUser(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	err := database.DB.Preload("Photos", orderedPhotos).First(&user, "id = ?", id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateProfileInput struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	DateOfBirth *string `json:"dateOfBirth"`
	Location    *string `json:"location"`
	Phone       *string `json:"phone"`
	Job         *string `json:"job"`
	Education   *string `json:"education"`
	Bio         *string `json:"bio"`
	Interests   *string `json:"interests"`
}

func UpdateProfile(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	setIf := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setIf("first_name", input.FirstName)
	setIf("last_name", input.LastName)
	setIf("location", input.Location)
	setIf("phone", input.Phone)
	setIf("job", input.Job)
	setIf("education", input.Education)
	setIf("bio", input.Bio)
	setIf("interests", input.Interests)

	if input.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *input.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateOfBirth, expected YYYY-MM-DD"})
			return
		}
		updates["date_of_birth"] = dob
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	database.DB.Preload("Photos", orderedPhotos).First(&user, "id = ?", userID)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Ping refreshes last_seen; the frontend calls it on app focus so the
// hourly idle job doesn't park active accounts.
func Ping(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	database.DB.Model(&models.User{}).Where("id = ?", userID).Update("last_seen", time.Now())

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// DeactivateUser flips the soft-delete flag; the row is kept.
func DeactivateUser(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	result := database.DB.Model(&models.User{}).Where("id = ?", userID).Update("is_active", false)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account"})
		return
	}

	logger.Info().Str("user_id", userID).Msg("Account deactivated")
	c.JSON(http.StatusOK, gin.H{"message": "Account deactivated"})
}

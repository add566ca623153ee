package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	appconfig "github.com/ducielo/rencontre-coeur-brise/internal/config"
	"github.com/ducielo/rencontre-coeur-brise/internal/database"
	"github.com/ducielo/rencontre-coeur-brise/internal/models"
	"github.com/ducielo/rencontre-coeur-brise/pkg/logger"
	"github.com/ducielo/rencontre-coeur-brise/pkg/utils"
)

// -- Helpers -- //

func bucketConfigured() bool {
	cfg := appconfig.AppConfig
	return cfg.R2AccountID != "" && cfg.R2AccessKeyID != "" && cfg.R2BucketName != ""
}

func getS3Client() (*s3.Client, error) {
	cfg := appconfig.AppConfig
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(r2Resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// storePhotoFile writes the uploaded file and returns its public URL.
// Bucket storage when R2 credentials are configured, local disk otherwise.
func storePhotoFile(c *gin.Context, userID string) (string, error) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("no valid file field found")
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	fileName := fmt.Sprintf("%s_%d%s", userID, time.Now().UnixMilli(), ext)

	if bucketConfigured() {
		cfg := appconfig.AppConfig
		key := fmt.Sprintf("photos/%s", fileName)

		client, err := getS3Client()
		if err != nil {
			return "", err
		}

		_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String(cfg.R2BucketName),
			Key:         aws.String(key),
			Body:        file,
			ContentType: aws.String(header.Header.Get("Content-Type")),
		})
		if err != nil {
			return "", err
		}

		publicURL := cfg.R2PublicURL
		if publicURL == "" {
			publicURL = fmt.Sprintf("https://%s.r2.dev", cfg.R2BucketName)
		}
		return fmt.Sprintf("%s/%s", publicURL, key), nil
	}

	uploadDir := filepath.Join(appconfig.AppConfig.UploadDir, "photos")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(uploadDir, fileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(file); err != nil {
		return "", err
	}

	return fmt.Sprintf("/uploads/photos/%s", fileName), nil
}

// -- Handlers -- //

// UploadPhoto POST /upload/photo
// The user's first photo automatically becomes primary.
func UploadPhoto(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	url, err := storePhotoFile(c, userID)
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Photo upload failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var photoCount int64
	database.DB.Model(&models.Photo{}).Where("user_id = ?", userID).Count(&photoCount)

	photo := models.Photo{
		ID:        utils.GenerateID(),
		UserID:    userID,
		URL:       url,
		IsPrimary: photoCount == 0,
		SortOrder: int(photoCount),
	}

	if err := database.DB.Create(&photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"photo": photo})
}

// DeletePhoto DELETE /upload/photo/:photoId
func DeletePhoto(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	photoID := c.Param("photoId")

	var photo models.Photo
	err := database.DB.Where("id = ? AND user_id = ?", photoID, userID).First(&photo).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo non trouvée"})
		return
	}

	// Local files are removed from disk; bucket objects are left for the
	// storage lifecycle rules.
	if strings.HasPrefix(photo.URL, "/uploads/") {
		path := filepath.Join(appconfig.AppConfig.UploadDir, strings.TrimPrefix(photo.URL, "/uploads/"))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("Failed to remove photo file")
		}
	}

	if err := database.DB.Delete(&photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo supprimée"})
}

// SetPrimaryPhoto PATCH /upload/photo/:photoId/primary
// Clears the flag on every photo first so at most one stays primary.
func SetPrimaryPhoto(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	photoID := c.Param("photoId")

	var photo models.Photo
	err := database.DB.Where("id = ? AND user_id = ?", photoID, userID).First(&photo).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo non trouvée"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Photo{}).Where("user_id = ?", userID).Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&photo).Update("is_primary", true).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update primary photo"})
		return
	}

	photo.IsPrimary = true
	c.JSON(http.StatusOK, gin.H{"photo": photo})
}

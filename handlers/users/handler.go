package users

import (
	"errors"
	"net/http"

	"github.com/RinKhimera/onlyscam-sub000/db"
	"github.com/RinKhimera/onlyscam-sub000/models"
	"github.com/RinKhimera/onlyscam-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /users/me [get]
func GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/{id} [get]
func GetUser(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /users/me [patch]
func UpdateMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{}
	if input.UserName != "" {
		updates["user_name"] = input.UserName
	}
	if input.Bio != "" {
		updates["bio"] = input.Bio
	}
	if input.SubscriptionPrice != nil {
		// Seuls les créateurs fixent un prix d'abonnement
		if user.Role != models.CreatorRole {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only content creators can set a subscription price"})
			return
		}
		if *input.SubscriptionPrice < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Subscription price cannot be negative"})
			return
		}
		updates["subscription_price"] = *input.SubscriptionPrice
	}
	if input.SubscriptionEnable != nil {
		updates["subscription_enable"] = *input.SubscriptionEnable
	}
	if input.CommentsEnable != nil {
		updates["comments_enable"] = *input.CommentsEnable
	}
	if input.MessageEnable != nil {
		updates["message_enable"] = *input.MessageEnable
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "Erreur lors de la mise à jour du profil dans UpdateMe")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
			return
		}
	}

	utils.LogSuccessWithUser(userID, "Profil mis à jour dans UpdateMe")
	c.JSON(http.StatusOK, user)
}

// @Summary Upload a profile picture
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param picture formData file true "Profile picture"
// @Security BearerAuth
// @Success 200 {object} map[string]string "profilePicture: URL"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /users/me/picture [post]
func UploadProfilePicture(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	file, err := c.FormFile("picture")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Picture is required"})
		return
	}

	imageURL, err := utils.UploadMedia(file, "profile_pictures", "profile")
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de l'upload de l'avatar dans UploadProfilePicture")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading picture: " + err.Error()})
		return
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("profile_picture", imageURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving picture URL"})
		return
	}

	utils.LogSuccessWithUser(userID, "Avatar mis à jour dans UploadProfilePicture")
	c.JSON(http.StatusOK, gin.H{"profilePicture": imageURL})
}

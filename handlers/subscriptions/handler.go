package subscriptions

import (
	"errors"
	"net/http"
	"time"

	"github.com/RinKhimera/onlyscam-sub000/apperrors"
	"github.com/RinKhimera/onlyscam-sub000/db"
	"github.com/RinKhimera/onlyscam-sub000/models"
	"github.com/RinKhimera/onlyscam-sub000/subscriptions"
	"github.com/RinKhimera/onlyscam-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Follow a creator
// @Description Subscribe to a creator whose subscription is free. Paid creators go through the payment checkout instead.
// @Tags subscriptions
// @Produce json
// @Param creatorId path string true "ID of the creator"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "subscriptionId, renewed, reactivated"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 402 {object} map[string]string "error: Payment required"
// @Failure 404 {object} map[string]string "error: Creator not found"
// @Router /follows/{creatorId} [post]
func FollowCreator(c *gin.Context) {
	creatorID := c.Param("creatorId")

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	subscriberID := userID.(string)

	if err := subscriptions.CanUserSubscribe(creatorID, subscriberID); err != nil {
		apperrors.HandleHTTP(c, err)
		return
	}

	var creator models.User
	if err := db.DB.First(&creator, "id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error resolving creator"})
		}
		return
	}

	// Les créateurs payants passent par le checkout : le suivi direct est
	// réservé aux abonnements gratuits
	if creator.SubscriptionPrice > 0 {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "This creator requires a paid subscription"})
		return
	}

	result, err := subscriptions.FollowUser(subscriberID, creatorID, subscriptions.FollowOptions{})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Échec du follow dans FollowCreator")
		apperrors.HandleHTTP(c, err)
		return
	}

	utils.LogSuccessWithUser(userID, "Créateur suivi avec succès dans FollowCreator")
	c.JSON(http.StatusOK, gin.H{
		"subscriptionId": result.SubscriptionID,
		"renewed":        result.Renewed,
		"reactivated":    result.Reactivated,
	})
}

// @Summary Unfollow a creator
// @Description Cancel the subscription to a creator. An already-expired subscription cannot be cancelled, it just lapses.
// @Tags subscriptions
// @Produce json
// @Param creatorId path string true "ID of the creator"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Subscription cancelled"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: No subscription found"
// @Failure 409 {object} map[string]string "error: Subscription already expired"
// @Router /follows/{creatorId} [delete]
func UnfollowCreator(c *gin.Context) {
	creatorID := c.Param("creatorId")

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := subscriptions.UnfollowUser(userID.(string), creatorID); err != nil {
		utils.LogErrorWithUser(userID, err, "Échec du unfollow dans UnfollowCreator")
		apperrors.HandleHTTP(c, err)
		return
	}

	utils.LogSuccessWithUser(userID, "Abonnement résilié avec succès dans UnfollowCreator")
	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled successfully"})
}

// @Summary Get the relationship with a creator
// @Description Return the subscription between the authenticated user and a creator, with its effective status recomputed from the end date
// @Tags subscriptions
// @Produce json
// @Param creatorId path string true "ID of the creator"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "subscription, effectiveStatus"
// @Failure 404 {object} map[string]string "error: Creator not found"
// @Router /follows/{creatorId} [get]
func GetRelationship(c *gin.Context) {
	creatorID := c.Param("creatorId")

	subscriberID := ""
	if userID, exists := c.Get("user_id"); exists {
		subscriberID = userID.(string)
	}

	sub, err := subscriptions.GetFollowSubscription(creatorID, subscriberID)
	if err != nil {
		apperrors.HandleHTTP(c, err)
		return
	}

	if sub == nil {
		c.JSON(http.StatusOK, gin.H{"subscription": nil, "effectiveStatus": nil})
		return
	}

	// Le statut stocké peut être en retard : on recalcule toujours depuis
	// EndDate avant de répondre
	c.JSON(http.StatusOK, gin.H{
		"subscription":    sub,
		"effectiveStatus": sub.EffectiveStatus(time.Now()),
	})
}

// @Summary List the user's subscriptions
// @Description Return all the subscriptions of the connected user, most recent first
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Subscription
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /subscriptions [get]
func GetUserSubscriptions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var subs []models.Subscription
	if err := db.DB.Where("subscriber_id = ?", userID).Order("created_at DESC").Find(&subs).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la récupération des abonnements dans GetUserSubscriptions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

// @Summary List a user's followers
// @Description Return the follower edges of a user, read from the denormalized follow table
// @Tags subscriptions
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} models.Follow
// @Router /users/{id}/followers [get]
func GetFollowers(c *gin.Context) {
	var follows []models.Follow
	if err := db.DB.Where("following_id = ?", c.Param("id")).Order("created_at DESC").Find(&follows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching followers"})
		return
	}
	c.JSON(http.StatusOK, follows)
}

// @Summary List the users someone follows
// @Tags subscriptions
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} models.Follow
// @Router /users/{id}/following [get]
func GetFollowing(c *gin.Context) {
	var follows []models.Follow
	if err := db.DB.Where("follower_id = ?", c.Param("id")).Order("created_at DESC").Find(&follows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching following"})
		return
	}
	c.JSON(http.StatusOK, follows)
}

package messages

import (
	"errors"
	"net/http"

	"github.com/RinKhimera/onlyscam-sub000/db"
	"github.com/RinKhimera/onlyscam-sub000/models"
	"github.com/RinKhimera/onlyscam-sub000/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Send a private message
// @Description Send a direct message from the authenticated user to another user
// @Tags messages
// @Accept json
// @Produce json
// @Param message body models.PrivateMessageCreate true "Message information"
// @Security BearerAuth
// @Success 201 {object} models.PrivateMessage
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Receiver has disabled messages"
// @Failure 404 {object} map[string]string "error: Receiver not found"
// @Router /messages [post]
func SendMessage(c *gin.Context) {
	senderID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.PrivateMessageCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data: " + err.Error()})
		return
	}

	if input.ReceiverID == senderID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot message yourself"})
		return
	}

	var receiver models.User
	if err := db.DB.Where("id = ?", input.ReceiverID).First(&receiver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receiver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error verifying receiver"})
		}
		return
	}

	if !receiver.MessageEnable {
		c.JSON(http.StatusForbidden, gin.H{"error": "Receiver has disabled private messages"})
		return
	}

	message := models.PrivateMessage{
		SenderID:   senderID.(string),
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
		Status:     "UNREAD",
	}

	if err := db.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating message"})
		return
	}

	utils.LogSuccessWithUser(senderID, "Message privé envoyé dans SendMessage")
	c.JSON(http.StatusCreated, message)
}

// @Summary Get the user's messages
// @Description All messages sent and received by the authenticated user
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PrivateMessage
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /messages [get]
func GetUserMessages(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var msgs []models.PrivateMessage
	if err := db.DB.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").Find(&msgs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving messages"})
		return
	}

	c.JSON(http.StatusOK, msgs)
}

// @Summary Mark a message as read
// @Tags messages
// @Produce json
// @Param id path string true "Message ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Message marked as read"
// @Failure 403 {object} map[string]string "error: Not the receiver"
// @Failure 404 {object} map[string]string "error: Message not found"
// @Router /messages/{id}/read [patch]
func MarkAsRead(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var message models.PrivateMessage
	if err := db.DB.First(&message, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	if message.ReceiverID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the receiver of this message"})
		return
	}

	if err := db.DB.Model(&message).Update("status", "READ").Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}

package payments

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/RinKhimera/onlyscam-sub000/apperrors"
	"github.com/RinKhimera/onlyscam-sub000/db"
	"github.com/RinKhimera/onlyscam-sub000/models"
	"github.com/RinKhimera/onlyscam-sub000/payments"
	"github.com/RinKhimera/onlyscam-sub000/subscriptions"
	"github.com/RinKhimera/onlyscam-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// @Summary Initialize a subscription payment
// @Description Start a gateway payment to subscribe to a content creator. Returns the payment URL to redirect the payer's browser to.
// @Tags payments
// @Accept json
// @Produce json
// @Param creatorId path string true "ID of the content creator"
// @Security BearerAuth
// @Success 200 {object} map[string]string "paymentUrl, transactionId"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Creator not found"
// @Failure 409 {object} map[string]string "error: Subscription rule violated"
// @Failure 502 {object} map[string]string "error: Payment gateway unreachable"
// @Router /payments/checkout/{creatorId} [post]
func InitSubscriptionPayment(c *gin.Context) {
	creatorID := c.Param("creatorId")

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "Utilisateur non authentifié dans InitSubscriptionPayment")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	subscriberID := userID.(string)

	if err := subscriptions.CanUserSubscribe(creatorID, subscriberID); err != nil {
		utils.LogErrorWithUser(userID, err, "Règle d'abonnement refusée dans InitSubscriptionPayment")
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

	amount := creator.SubscriptionPrice
	if amount <= 0 {
		amount = subscriptions.DefaultSubscriptionPrice
	}

	cfg, err := payments.LoadConfig()
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Configuration gateway absente dans InitSubscriptionPayment")
		apperrors.HandleHTTP(c, err)
		return
	}

	transactionID := uuid.NewString()

	paymentURL, err := payments.InitPayment(cfg, payments.InitPaymentParams{
		TransactionID: transactionID,
		Amount:        amount,
		Description:   fmt.Sprintf("Abonnement de 30 jours à %s", creator.UserName),
		Metadata: payments.Metadata{
			CreatorID:    creatorID,
			SubscriberID: subscriberID,
		},
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Initialisation du paiement échouée dans InitSubscriptionPayment")
		apperrors.HandleHTTP(c, err)
		return
	}

	utils.LogSuccessWithUser(userID, "Paiement d'abonnement initialisé dans InitSubscriptionPayment")
	c.JSON(http.StatusOK, gin.H{
		"paymentUrl":    paymentURL,
		"transactionId": transactionID,
	})
}

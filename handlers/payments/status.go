package payments

import (
	"net/http"

	"github.com/RinKhimera/onlyscam-sub000/apperrors"
	"github.com/RinKhimera/onlyscam-sub000/subscriptions"

	"github.com/gin-gonic/gin"
)

// @Summary Poll a transaction's processing status
// @Description Lets the client poll whether the webhook has recorded a transaction yet, while the payment settles
// @Tags payments
// @Produce json
// @Param transactionId path string true "Transaction ID"
// @Security BearerAuth
// @Success 200 {object} subscriptions.TransactionCheck
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /payments/status/{transactionId} [get]
func PaymentStatus(c *gin.Context) {
	if _, exists := c.Get("user_id"); !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	check, err := subscriptions.CheckTransaction(c.Param("transactionId"))
	if err != nil {
		apperrors.HandleHTTP(c, err)
		return
	}

	c.JSON(http.StatusOK, check)
}

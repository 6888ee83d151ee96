package payments

import (
	"net/http"
	"os"
	"time"

	"github.com/RinKhimera/onlyscam-sub000/apperrors"
	"github.com/RinKhimera/onlyscam-sub000/payments"
	"github.com/RinKhimera/onlyscam-sub000/subscriptions"
	"github.com/RinKhimera/onlyscam-sub000/utils"

	"github.com/gin-gonic/gin"
)

// isTestMode court-circuite la vérification auprès du gateway ; réservé aux
// environnements de test où le gateway n'est pas joignable
func isTestMode() bool {
	return os.Getenv("PAYMENT_MODE") == "test"
}

// Format de date du gateway, heure locale de la plateforme
const gatewayDateLayout = "2006-01-02 15:04:05"

// parsePaymentDate lit la date de paiement rapportée par le gateway. Nil si
// absente ou illisible : la fenêtre d'abonnement repartira de l'horloge
// locale.
func parsePaymentDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(gatewayDateLayout, value)
	if err != nil {
		return nil
	}
	return &parsed
}

// @Summary Payment gateway webhook
// @Description Server-to-server notification from the payment gateway. Accepts JSON or form-encoded payloads, verifies the payment then applies it idempotently.
// @Tags payments
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} map[string]interface{} "message, result, paymentDetails"
// @Failure 400 {object} map[string]string "error: Malformed notification"
// @Failure 502 {object} map[string]string "error: Payment gateway unreachable"
// @Router /payments/webhook [post]
func PaymentWebhook(c *gin.Context) {
	notification, err := payments.ParseNotification(c.Request)
	if err != nil {
		utils.LogError(err, "Notification illisible dans PaymentWebhook")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed notification payload"})
		return
	}

	if notification.TransactionID == "" || notification.SiteID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing transaction id or site id"})
		return
	}

	if notification.CreatorID == "" || notification.SubscriberID == "" {
		utils.LogPaymentError(notification.TransactionID, nil, "Couple créateur/abonné irrésoluble dans PaymentWebhook")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to resolve creator and subscriber from notification"})
		return
	}

	amountPaid := 0
	var startDate *time.Time
	var paymentDetails interface{}

	// En production la notification ne fait pas foi : on revérifie le statut
	// de la transaction directement auprès du gateway
	if !isTestMode() {
		cfg, err := payments.LoadConfig()
		if err != nil {
			utils.LogPaymentError(notification.TransactionID, err, "Configuration gateway absente dans PaymentWebhook")
			apperrors.HandleHTTP(c, err)
			return
		}

		check, err := payments.CheckPayment(cfg, notification.TransactionID)
		if err != nil {
			utils.LogPaymentError(notification.TransactionID, err, "Vérification du paiement échouée dans PaymentWebhook")
			apperrors.HandleHTTP(c, err)
			return
		}

		paymentDetails = gin.H{
			"code":        check.Code,
			"status":      check.Status,
			"amount":      check.Amount,
			"currency":    check.Currency,
			"paymentDate": check.PaymentDate,
		}

		if !cfg.IsSuccessCode(check.Code) {
			utils.LogPayment(notification.TransactionID, "Paiement non confirmé par le gateway, aucun changement")
			c.JSON(http.StatusOK, gin.H{
				"message":        "Payment not confirmed, nothing applied",
				"result":         nil,
				"paymentDetails": paymentDetails,
			})
			return
		}

		amountPaid = check.Amount
		// La fenêtre d'abonnement part de la date de paiement constatée par
		// le gateway, pas de l'heure de livraison de la notification
		startDate = parsePaymentDate(check.PaymentDate)
	}

	result, err := subscriptions.ProcessPayment(
		notification.TransactionID,
		notification.CreatorID,
		notification.SubscriberID,
		startDate,
		amountPaid,
	)
	if err != nil {
		utils.LogPaymentError(notification.TransactionID, err, "Traitement du paiement échoué dans PaymentWebhook")
		apperrors.HandleHTTP(c, err)
		return
	}

	message := "Payment processed"
	if result.AlreadyExists {
		message = "Payment already processed"
	}

	utils.LogPayment(notification.TransactionID, message)
	c.JSON(http.StatusOK, gin.H{
		"message":        message,
		"result":         result,
		"paymentDetails": paymentDetails,
	})
}

// @Summary Webhook liveness probe
// @Description Static healthy-status response so the gateway can probe the notify URL
// @Tags payments
// @Produce json
// @Success 200 {object} map[string]string "status: healthy"
// @Router /payments/webhook [get]
func WebhookHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "payment-webhook"})
}

package payments

import (
	"net/http"
	"os"

	"github.com/RinKhimera/onlyscam-sub000/payments"
	"github.com/RinKhimera/onlyscam-sub000/subscriptions"
	"github.com/RinKhimera/onlyscam-sub000/utils"

	"github.com/gin-gonic/gin"
)

// Raisons d'échec exposées dans l'URL d'annulation, une par cause pour
// pouvoir les distinguer dans les logs du frontend
const (
	reasonMissingTransaction = "missing_transaction"
	reasonConfigurationError = "configuration_error"
	reasonPaymentCheckFailed = "payment_check_failed"
	reasonPaymentFailed      = "payment_failed"
	reasonUnexpectedError    = "unexpected_error"
)

func frontendURL() string {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	return base
}

func redirectSuccess(c *gin.Context, transactionID string) {
	c.Redirect(http.StatusFound, frontendURL()+"/payment/merci?transaction="+transactionID)
}

func redirectCancelled(c *gin.Context, reason string) {
	c.Redirect(http.StatusFound, frontendURL()+"/payment/cancelled?reason="+reason)
}

// @Summary Payment return redirect
// @Description Browser redirect issued after leaving the gateway's hosted page. Gives the user immediate feedback; the authoritative state transition stays on the webhook path.
// @Tags payments
// @Accept x-www-form-urlencoded
// @Param transaction_id formData string true "Transaction ID"
// @Success 302 "Redirect to the success or cancellation page"
// @Router /payments/return [post]
func PaymentReturn(c *gin.Context) {
	// Ce chemin ne mute jamais les abonnements : quoi qu'il arrive,
	// l'utilisateur repart avec une redirection
	defer func() {
		if r := recover(); r != nil {
			utils.LogError(nil, "Panique dans PaymentReturn")
			redirectCancelled(c, reasonUnexpectedError)
		}
	}()

	transactionID := c.PostForm("transaction_id")
	if transactionID == "" {
		redirectCancelled(c, reasonMissingTransaction)
		return
	}

	// Si le webhook est déjà passé, inutile d'interroger le gateway
	check, err := subscriptions.CheckTransaction(transactionID)
	if err == nil && check.Found {
		utils.LogPayment(transactionID, "Redirection après webhook, transaction déjà enregistrée")
		redirectSuccess(c, transactionID)
		return
	}

	cfg, err := payments.LoadConfig()
	if err != nil {
		utils.LogPaymentError(transactionID, err, "Configuration gateway absente dans PaymentReturn")
		redirectCancelled(c, reasonConfigurationError)
		return
	}

	result, err := payments.CheckPayment(cfg, transactionID)
	if err != nil {
		utils.LogPaymentError(transactionID, err, "Vérification du paiement échouée dans PaymentReturn")
		redirectCancelled(c, reasonPaymentCheckFailed)
		return
	}

	if !cfg.IsSuccessCode(result.Code) {
		utils.LogPayment(transactionID, "Paiement non confirmé lors de la redirection")
		redirectCancelled(c, reasonPaymentFailed)
		return
	}

	// Le paiement est confirmé côté gateway, le webhook créera l'abonnement
	utils.LogPayment(transactionID, "Redirection succès, le webhook finalisera l'abonnement")
	redirectSuccess(c, transactionID)
}

// @Summary Return endpoint liveness probe
// @Tags payments
// @Produce json
// @Success 200 {object} map[string]string "status: healthy"
// @Router /payments/return [get]
func ReturnHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "payment-return"})
}

package routes

import (
	paymentHandlers "github.com/RinKhimera/onlyscam-sub000/handlers/payments"
	"github.com/RinKhimera/onlyscam-sub000/middleware"

	"github.com/gin-gonic/gin"
)

func PaymentsRoutes(r *gin.Engine) {
	paymentRoutes := r.Group("/payments")
	{
		paymentRoutes.POST("/checkout/:creatorId", middleware.JWTAuth(), paymentHandlers.InitSubscriptionPayment)
		paymentRoutes.GET("/status/:transactionId", middleware.JWTAuth(), paymentHandlers.PaymentStatus)

		// Les callbacks du gateway ne portent pas de JWT : webhook
		// serveur-à-serveur et redirection navigateur
		paymentRoutes.POST("/webhook", paymentHandlers.PaymentWebhook)
		paymentRoutes.GET("/webhook", paymentHandlers.WebhookHealth)
		paymentRoutes.POST("/return", paymentHandlers.PaymentReturn)
		paymentRoutes.GET("/return", paymentHandlers.ReturnHealth)
	}
}

package utils

import (
	"net/smtp"
	"os"
)

// SendMail envoie un email via le SMTP configuré. L'échec est loggé mais
// jamais bloquant pour la requête appelante.
func SendMail(email string, message []byte) {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")

	if from == "" || smtpHost == "" {
		LogError(nil, "Configuration SMTP absente, email non envoyé")
		return
	}
	if smtpPort == "" {
		smtpPort = "587"
	}

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{email}, message); err != nil {
		LogError(err, "Erreur lors de l'envoi de l'email")
		return
	}

	LogSuccess("Email envoyé avec succès")
}

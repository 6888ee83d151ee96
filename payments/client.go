// Package payments est l'adaptateur vers le gateway de paiement CinetPay :
// initialisation du paiement côté sortant, vérification du statut d'une
// transaction, et décodage des notifications entrantes.
package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/RinKhimera/onlyscam-sub000/apperrors"
	"github.com/RinKhimera/onlyscam-sub000/utils"
)

const (
	defaultBaseURL = "https://api-checkout.cinetpay.com/v2"

	// Code retourné par le gateway quand la création du paiement a réussi
	codePaymentCreated = "201"

	// Code de succès de l'endpoint de vérification
	codePaymentAccepted = "00"

	// Code transitoire encore accepté pendant la phase de test du gateway.
	// TODO: retirer "662" de la valeur par défaut avant la mise en
	// production définitive (suivi avec l'équipe paiement).
	codePaymentPendingValidation = "662"
)

const (
	requestTimeout = 15 * time.Second
	maxAttempts    = 3
	retryBackoff   = 500 * time.Millisecond
)

// Config credentials et URLs du gateway, lus dans l'environnement à chaque
// requête comme le reste des secrets du projet
type Config struct {
	APIKey        string
	SiteID        string
	BaseURL       string
	NotifyURL     string
	ReturnURL     string
	AcceptedCodes map[string]bool
}

// LoadConfig construit la configuration depuis l'environnement. L'absence
// des credentials est une erreur de configuration explicite, jamais un
// défaut silencieux.
func LoadConfig() (*Config, error) {
	apiKey := os.Getenv("CINETPAY_API_KEY")
	siteID := os.Getenv("CINETPAY_SITE_ID")
	if apiKey == "" || siteID == "" {
		return nil, apperrors.Configuration("Payment gateway credentials are not configured")
	}

	baseURL := os.Getenv("CINETPAY_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	accepted := map[string]bool{}
	codes := os.Getenv("PAYMENT_ACCEPTED_CODES")
	if codes == "" {
		codes = codePaymentAccepted + "," + codePaymentPendingValidation
	}
	for _, code := range strings.Split(codes, ",") {
		if code = strings.TrimSpace(code); code != "" {
			accepted[code] = true
		}
	}

	return &Config{
		APIKey:        apiKey,
		SiteID:        siteID,
		BaseURL:       strings.TrimRight(baseURL, "/"),
		NotifyURL:     os.Getenv("PAYMENT_NOTIFY_URL"),
		ReturnURL:     os.Getenv("PAYMENT_RETURN_URL"),
		AcceptedCodes: accepted,
	}, nil
}

// IsSuccessCode indique si un code de vérification vaut paiement réussi
func (c *Config) IsSuccessCode(code string) bool {
	return c.AcceptedCodes[code]
}

// Metadata blob opaque attaché au paiement, rejoué tel quel par le gateway
// dans le webhook
type Metadata struct {
	CreatorID    string `json:"creatorId"`
	SubscriberID string `json:"subscriberId"`
}

// InitPaymentParams paramètres d'initialisation d'un paiement
type InitPaymentParams struct {
	TransactionID string
	Amount        int
	Currency      string
	Description   string
	Metadata      Metadata
}

type initPaymentResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		PaymentToken string `json:"payment_token"`
		PaymentURL   string `json:"payment_url"`
	} `json:"data"`
}

// CheckResult statut d'une transaction tel que rapporté par le gateway
type CheckResult struct {
	Code        string
	Message     string
	Amount      int
	Currency    string
	Status      string
	PaymentDate string
}

// flexAmount encaisse les deux représentations du montant renvoyées par le
// gateway : nombre JSON ou chaîne selon l'endpoint
type flexAmount int

func (a *flexAmount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	value, err := strconv.Atoi(strings.SplitN(s, ".", 2)[0])
	if err != nil {
		return err
	}
	*a = flexAmount(value)
	return nil
}

type checkPaymentResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Amount      flexAmount `json:"amount"`
		Currency    string     `json:"currency"`
		Status      string     `json:"status"`
		PaymentDate string     `json:"payment_date"`
	} `json:"data"`
}

var httpClient = &http.Client{Timeout: requestTimeout}

// postWithRetry envoie le body JSON avec un nombre borné de tentatives.
// Seules les erreurs réseau et les 5xx sont retentées : un 4xx est une
// réponse définitive du gateway.
func postWithRetry(url string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(retryBackoff * time.Duration(attempt-1))
		}

		resp, err := httpClient.Post(url, "application/json", bytes.NewReader(body))
		if err != nil {
			lastErr = err
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(respBody))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(respBody))
		}

		return respBody, nil
	}

	return nil, lastErr
}

// InitPayment crée un paiement côté gateway et retourne l'URL de redirection
// vers laquelle envoyer le navigateur du payeur
func InitPayment(cfg *Config, params InitPaymentParams) (string, error) {
	metadata, err := json.Marshal(params.Metadata)
	if err != nil {
		return "", apperrors.Internal(err, "Error serializing payment metadata")
	}

	currency := params.Currency
	if currency == "" {
		currency = "XAF"
	}

	payload := map[string]interface{}{
		"apikey":         cfg.APIKey,
		"site_id":        cfg.SiteID,
		"transaction_id": params.TransactionID,
		"amount":         params.Amount,
		"currency":       currency,
		"description":    params.Description,
		"notify_url":     cfg.NotifyURL,
		"return_url":     cfg.ReturnURL,
		"channels":       "ALL",
		"metadata":       string(metadata),
	}

	respBody, err := postWithRetry(cfg.BaseURL+"/payment", payload)
	if err != nil {
		utils.LogPaymentError(params.TransactionID, err, "Initialisation du paiement injoignable")
		return "", apperrors.Gateway(err, "Payment gateway unreachable")
	}

	var parsed initPaymentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", apperrors.Gateway(err, "Unexpected payment gateway response")
	}

	if parsed.Code != codePaymentCreated || parsed.Data.PaymentURL == "" {
		err := fmt.Errorf("gateway refused payment creation: code=%s message=%s", parsed.Code, parsed.Message)
		utils.LogPaymentError(params.TransactionID, err, "Création du paiement refusée")
		return "", apperrors.Gateway(err, "Payment gateway rejected the payment")
	}

	utils.LogPayment(params.TransactionID, "Paiement initialisé, URL de redirection obtenue")
	return parsed.Data.PaymentURL, nil
}

// CheckPayment interroge le gateway sur le statut d'une transaction
func CheckPayment(cfg *Config, transactionID string) (*CheckResult, error) {
	payload := map[string]interface{}{
		"apikey":         cfg.APIKey,
		"site_id":        cfg.SiteID,
		"transaction_id": transactionID,
	}

	respBody, err := postWithRetry(cfg.BaseURL+"/payment/check", payload)
	if err != nil {
		utils.LogPaymentError(transactionID, err, "Vérification du paiement injoignable")
		return nil, apperrors.Gateway(err, "Payment gateway unreachable")
	}

	var parsed checkPaymentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, apperrors.Gateway(err, "Unexpected payment gateway response")
	}

	return &CheckResult{
		Code:        parsed.Code,
		Message:     parsed.Message,
		Amount:      int(parsed.Data.Amount),
		Currency:    parsed.Data.Currency,
		Status:      parsed.Data.Status,
		PaymentDate: parsed.Data.PaymentDate,
	}, nil
}

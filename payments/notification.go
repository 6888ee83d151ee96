package payments

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
)

// Notification contenu normalisé d'une notification serveur-à-serveur du
// gateway, quel que soit l'encodage d'origine
type Notification struct {
	TransactionID string
	SiteID        string
	CreatorID     string
	SubscriberID  string
	Amount        string
	Currency      string
}

// notificationPayload accepte les deux jeux de noms de champs : les champs
// cpm_* du gateway et les noms plats utilisés par les tests manuels
type notificationPayload struct {
	CpmTransID    string `json:"cpm_trans_id" form:"cpm_trans_id"`
	TransactionID string `json:"transaction_id" form:"transaction_id"`
	CpmSiteID     string `json:"cpm_site_id" form:"cpm_site_id"`
	SiteID        string `json:"site_id" form:"site_id"`
	CpmCustom     string `json:"cpm_custom" form:"cpm_custom"`
	CpmAmount     string `json:"cpm_amount" form:"cpm_amount"`
	CpmCurrency   string `json:"cpm_currency" form:"cpm_currency"`
	CreatorID     string `json:"creatorId" form:"creatorId"`
	SubscriberID  string `json:"subscriberId" form:"subscriberId"`
}

// ParseNotification décode une notification entrante. Le gateway envoie du
// form-encoded, son sandbox et les tests manuels envoient du JSON : les
// deux doivent aboutir au même résultat.
func ParseNotification(r *http.Request) (*Notification, error) {
	var payload notificationPayload

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		payload.CpmTransID = r.PostForm.Get("cpm_trans_id")
		payload.TransactionID = r.PostForm.Get("transaction_id")
		payload.CpmSiteID = r.PostForm.Get("cpm_site_id")
		payload.SiteID = r.PostForm.Get("site_id")
		payload.CpmCustom = r.PostForm.Get("cpm_custom")
		payload.CpmAmount = r.PostForm.Get("cpm_amount")
		payload.CpmCurrency = r.PostForm.Get("cpm_currency")
		payload.CreatorID = r.PostForm.Get("creatorId")
		payload.SubscriberID = r.PostForm.Get("subscriberId")
	}

	notification := &Notification{
		TransactionID: firstNonEmpty(payload.CpmTransID, payload.TransactionID),
		SiteID:        firstNonEmpty(payload.CpmSiteID, payload.SiteID),
		Amount:        payload.CpmAmount,
		Currency:      payload.CpmCurrency,
	}

	// Le couple créateur/abonné voyage dans le blob de métadonnées
	if payload.CpmCustom != "" {
		var meta Metadata
		if err := json.Unmarshal([]byte(payload.CpmCustom), &meta); err == nil {
			notification.CreatorID = meta.CreatorID
			notification.SubscriberID = meta.SubscriberID
		}
	}

	// Les champs plats ne servent qu'aux tests manuels en mode test ; en
	// production seul le blob de métadonnées fait foi
	if os.Getenv("PAYMENT_MODE") == "test" {
		if notification.CreatorID == "" {
			notification.CreatorID = payload.CreatorID
		}
		if notification.SubscriberID == "" {
			notification.SubscriberID = payload.SubscriberID
		}
	}

	return notification, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

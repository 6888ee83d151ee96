// Package subscriptions porte le cycle de vie des abonnements payants :
// lecture de l'état effectif, création/renouvellement/résiliation, et
// traitement idempotent des paiements entrants.
package subscriptions

import (
	"errors"
	"strings"
	"time"

	"github.com/RinKhimera/onlyscam-sub000/db"
	"github.com/RinKhimera/onlyscam-sub000/models"

	"gorm.io/gorm"
)

// timeNow est remplacée dans les tests pour figer l'horloge
var timeNow = time.Now

// GetByPair retourne l'abonnement du couple (créateur, abonné) pour un type
// de service donné, ou nil s'il n'existe pas. Les erreurs du store remontent
// telles quelles.
func GetByPair(creatorID, subscriberID, serviceType string) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.DB.Where("creator_id = ? AND subscriber_id = ? AND service_type = ?",
		creatorID, subscriberID, serviceType).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetByTransactionID retourne l'abonnement portant cet id de transaction,
// ou nil. C'est l'unique garde d'idempotence du flux de paiement.
func GetByTransactionID(transactionID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.DB.Where("transaction_id = ?", transactionID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// PatchVersioned applique les champs donnés si et seulement si la version
// lue n'a pas bougé. Retourne le nombre de lignes touchées : 0 signifie
// qu'un écrivain concurrent est passé avant nous.
func PatchVersioned(id string, version int, fields map[string]interface{}) (int64, error) {
	fields["version"] = gorm.Expr("version + 1")
	result := db.DB.Model(&models.Subscription{}).
		Where("id = ? AND version = ?", id, version).
		Updates(fields)
	return result.RowsAffected, result.Error
}

// isDuplicateKey reconnaît une violation de contrainte d'unicité Postgres
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "23505")
}

// duplicateOn précise quelle contrainte a été violée
func duplicateOn(err error, constraint string) bool {
	return isDuplicateKey(err) && strings.Contains(err.Error(), constraint)
}
